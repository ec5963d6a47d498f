package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-sumsub-client/models"
	"github.com/go-playground/validator"
)

// Field name constants used to restrict validation to a subset of fields.
// They match the Go field names of the validated models.
const (
	// FieldExternalUserID targets the caller-assigned applicant identifier.
	FieldExternalUserID = "ExternalUserID"

	// FieldEmail targets the applicant's e-mail address.
	FieldEmail = "Email"

	FieldPhone     = "Phone"
	FieldFirstName = "FirstName"
	FieldLastName  = "LastName"
	FieldDob       = "Dob"

	// FieldCountry targets the ISO 3166-1 alpha-3 country code.
	FieldCountry = "Country"

	// FieldIDDocType targets the document type of an upload's metadata.
	FieldIDDocType = "IDDocType"

	FieldFileName = "FileName"

	// FieldContent targets the file reader of a document upload.
	FieldContent = "Content"
)

// PayloadValidator implements the Validator interface for the request
// payloads: ApplicantAttributes, DirectorAttributes, DocumentMetadata,
// DocumentPayload and CompanyInfo.
//
// Structural rules live in the `validate` tags of the models and are
// enforced with go-playground/validator. Field names restrict validation
// to the named fields.
type PayloadValidator struct {
	validate *validator.Validate
}

// tagUppercase is a custom tag: validator v9 ships no case validators.
const tagUppercase = "uppercase"

// NewPayloadValidator constructs a new PayloadValidator
// and returns it as the Validator interface.
func NewPayloadValidator() Validator {
	validate := validator.New()
	if err := validate.RegisterValidation(tagUppercase, isUppercase); err != nil {
		panic(fmt.Sprintf("validators: register %q: %v", tagUppercase, err))
	}
	return &PayloadValidator{validate: validate}
}

// isUppercase reports whether a string field has no lowercase letters.
func isUppercase(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == strings.ToUpper(s)
}

// Validate dispatches validation on the dynamic type of obj. Both value and
// pointer forms of each supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model, and an
// error wrapping ErrInvalidField that names every failing field otherwise.
func (v *PayloadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ApplicantAttributes:
		return v.validateStruct(value, fields...)
	case *models.ApplicantAttributes:
		return v.validateStruct(*value, fields...)

	case models.DirectorAttributes:
		return v.validateStruct(value, fields...)
	case *models.DirectorAttributes:
		return v.validateStruct(*value, fields...)

	case models.DocumentMetadata:
		return v.validateStruct(value, fields...)
	case *models.DocumentMetadata:
		return v.validateStruct(*value, fields...)

	case models.DocumentPayload:
		return v.validateDocument(value, fields...)
	case *models.DocumentPayload:
		return v.validateDocument(*value, fields...)

	case models.CompanyInfo:
		if len(fields) > 0 {
			return ErrUnknownField
		}
		if len(value) == 0 {
			return ErrEmptyCompanyInfo
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

// validateDocument checks the content reader explicitly: a typed nil
// reader stored in the interface is not caught by the "required" tag.
func (v *PayloadValidator) validateDocument(doc models.DocumentPayload, fields ...string) error {
	if (len(fields) == 0 || contains(fields, FieldContent)) && doc.Content == nil {
		return ErrNilContent
	}
	return v.validateStruct(doc, fields...)
}

func (v *PayloadValidator) validateStruct(s any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.Struct(s)
	} else {
		err = v.validate.StructPartial(s, fields...)
	}
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidField, strings.Join(msgs, "; "))
}

// describe renders a field error without the field's value, which may be
// personal data.
func describe(fe validator.FieldError) string {
	name := strings.TrimPrefix(fe.Namespace(), rootName(fe.Namespace())+".")
	if fe.Param() != "" {
		return fmt.Sprintf("%s fails %s=%s", name, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s fails %s", name, fe.Tag())
}

func rootName(namespace string) string {
	root, _, _ := strings.Cut(namespace, ".")
	return root
}

func contains(fields []string, f string) bool {
	for _, field := range fields {
		if field == f {
			return true
		}
	}
	return false
}

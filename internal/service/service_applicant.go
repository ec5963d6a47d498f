package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
	"github.com/MKhiriev/go-sumsub-client/internal/logger"
	"github.com/MKhiriev/go-sumsub-client/internal/validators"
	"github.com/MKhiriev/go-sumsub-client/models"
)

type applicantService struct {
	transport adapter.Transport
	validator validators.Validator

	logger *logger.Logger
}

func NewApplicantService(transport adapter.Transport, validator validators.Validator, log *logger.Logger) ApplicantService {
	if log == nil {
		log = logger.Nop()
	}
	if validator == nil {
		validator = validators.NewPayloadValidator()
	}

	return &applicantService{
		transport: transport,
		validator: validator,
		logger:    log,
	}
}

func (a *applicantService) CreateApplicant(ctx context.Context, attrs models.ApplicantAttributes, levelName string) (string, error) {
	if err := requireNonEmpty(levelName, ErrEmptyLevelName); err != nil {
		return "", err
	}
	if err := a.validator.Validate(ctx, attrs); err != nil {
		return "", invalid(err)
	}

	return a.create(ctx, "create applicant", BuildApplicantPayload(attrs), levelName)
}

func (a *applicantService) CreateDirector(ctx context.Context, attrs models.DirectorAttributes, levelName string) (string, error) {
	if err := requireNonEmpty(levelName, ErrEmptyLevelName); err != nil {
		return "", err
	}
	if err := a.validator.Validate(ctx, attrs); err != nil {
		return "", invalid(err)
	}

	return a.create(ctx, "create director", BuildDirectorPayload(attrs), levelName)
}

func (a *applicantService) create(ctx context.Context, op string, payload models.ApplicantPayload, levelName string) (string, error) {
	req, err := adapter.NewJSONRequest(http.MethodPost, withQuery(resourcePath("applicants"), "levelName", levelName), payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var created models.ApplicantCreated
	resp, err := call(ctx, a.transport, op, req, &created)
	if err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", &adapter.DecodingError{Op: op, StatusCode: resp.StatusCode, Body: resp.Body, Err: errMissingApplicantID}
	}

	a.logger.Debug().Str("applicant_id", created.ID).Str("op", op).Msg("applicant created")
	return created.ID, nil
}

func (a *applicantService) UpdateCompanyInfo(ctx context.Context, applicantID string, info models.CompanyInfo) (models.JSONObject, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}
	if err := a.validator.Validate(ctx, info); err != nil {
		return nil, invalid(err)
	}

	path := resourcePath("applicants", url.PathEscape(applicantID), "info", "companyInfo")
	req, err := adapter.NewJSONRequest(http.MethodPatch, path, info)
	if err != nil {
		return nil, fmt.Errorf("update company info: %w", err)
	}

	return a.object(ctx, "update company info", req)
}

func (a *applicantService) GetCompanyCheck(ctx context.Context, applicantID string) (models.JSONObject, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}

	path := withQuery(resourcePath("checks", "latest"), "applicantId", applicantID, "type", "COMPANY")
	return a.object(ctx, "get company check", adapter.NewRequest(http.MethodGet, path, nil))
}

func (a *applicantService) MoveToPending(ctx context.Context, applicantID, reason string) (models.JSONObject, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}

	path := withQuery(resourcePath("applicants", url.PathEscape(applicantID), "status", "pending"), "reason", reason)
	return a.object(ctx, "move to pending", adapter.NewRequest(http.MethodPost, path, nil))
}

func (a *applicantService) ResetStep(ctx context.Context, applicantID, step string) (models.JSONObject, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}
	if err := requireNonEmpty(step, ErrEmptyStep); err != nil {
		return nil, err
	}

	path := resourcePath("applicants", url.PathEscape(applicantID), "resetStep", url.PathEscape(step))
	return a.object(ctx, "reset step", adapter.NewRequest(http.MethodPost, path, nil))
}

func (a *applicantService) ResetApplicant(ctx context.Context, applicantID string) (models.JSONObject, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}

	path := resourcePath("applicants", url.PathEscape(applicantID), "reset")
	return a.object(ctx, "reset applicant", adapter.NewRequest(http.MethodPost, path, nil))
}

func (a *applicantService) GetApplicantByID(ctx context.Context, applicantID string) (models.JSONObject, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}

	path := resourcePath("applicants", url.PathEscape(applicantID), "one")
	return a.object(ctx, "get applicant", adapter.NewRequest(http.MethodGet, path, nil))
}

func (a *applicantService) GetApplicantByExternalID(ctx context.Context, externalUserID string) (models.JSONObject, error) {
	if err := requireNonEmpty(externalUserID, ErrEmptyExternalID); err != nil {
		return nil, err
	}

	path := resourcePath("applicants", "-;externalUserId="+url.PathEscape(externalUserID), "one")
	return a.object(ctx, "get applicant by external id", adapter.NewRequest(http.MethodGet, path, nil))
}

func (a *applicantService) object(ctx context.Context, op string, req *adapter.PendingRequest) (models.JSONObject, error) {
	var out models.JSONObject
	if _, err := call(ctx, a.transport, op, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

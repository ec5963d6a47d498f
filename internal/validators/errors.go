package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidField     = errors.New("invalid field")
	ErrEmptyCompanyInfo = errors.New("company info cannot be empty")
	ErrNilContent       = errors.New("document content is required")
)

package service

import "errors"

var (
	// ErrInvalidPayload is returned when caller input fails validation.
	// Nothing is sent to the provider in that case.
	ErrInvalidPayload = errors.New("invalid payload")

	ErrEmptyApplicantID  = errors.New("applicant id is required")
	ErrEmptyExternalID   = errors.New("external user id is required")
	ErrEmptyLevelName    = errors.New("level name is required")
	ErrEmptyInspectionID = errors.New("inspection id is required")
	ErrEmptyImageID      = errors.New("image id is required")
	ErrEmptyStep         = errors.New("step type is required")
	ErrInvalidTTL        = errors.New("link ttl must be at least one second")

	errMissingApplicantID = errors.New("response has no applicant id")
)

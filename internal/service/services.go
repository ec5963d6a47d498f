package service

import (
	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
	"github.com/MKhiriev/go-sumsub-client/internal/logger"
	"github.com/MKhiriev/go-sumsub-client/internal/validators"
)

type Services struct {
	ApplicantService ApplicantService
	DocumentService  DocumentService
	SDKService       SDKService
}

func NewServices(transport adapter.Transport, validator validators.Validator, log *logger.Logger) *Services {
	return &Services{
		ApplicantService: NewApplicantService(transport, validator, log),
		DocumentService:  NewDocumentService(transport, validator, log),
		SDKService:       NewSDKService(transport, log),
	}
}

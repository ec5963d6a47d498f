// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the operations of the verification provider
// API on top of a signed [adapter.Transport].
//
// Each operation maps caller input to a method, path and body, dispatches
// the request and decodes the response into a typed result. Non-2xx
// responses are returned as [*adapter.APIError], malformed bodies as
// [*adapter.DecodingError] and network faults as [*adapter.TransportError].
package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-sumsub-client/models"
)

// ApplicantService manages applicant records.
type ApplicantService interface {
	// CreateApplicant creates an individual applicant on levelName and
	// returns the provider-assigned applicant id. A tax identification
	// number is sent only for countries that require it.
	// A duplicate externalUserId yields an error matching adapter.ErrConflict.
	CreateApplicant(ctx context.Context, attrs models.ApplicantAttributes, levelName string) (string, error)

	// CreateDirector creates a lightweight individual applicant for a
	// company director or beneficiary and returns its id.
	CreateDirector(ctx context.Context, attrs models.DirectorAttributes, levelName string) (string, error)

	// UpdateCompanyInfo patches the company info of a company applicant.
	UpdateCompanyInfo(ctx context.Context, applicantID string, info models.CompanyInfo) (models.JSONObject, error)

	// GetCompanyCheck returns the latest company check of the applicant.
	GetCompanyCheck(ctx context.Context, applicantID string) (models.JSONObject, error)

	// MoveToPending requests a review of the applicant. reason is optional.
	MoveToPending(ctx context.Context, applicantID, reason string) (models.JSONObject, error)

	// ResetStep resets a single verification step, e.g. "IDENTITY".
	ResetStep(ctx context.Context, applicantID, step string) (models.JSONObject, error)

	// ResetApplicant resets the whole verification of the applicant.
	ResetApplicant(ctx context.Context, applicantID string) (models.JSONObject, error)

	GetApplicantByID(ctx context.Context, applicantID string) (models.JSONObject, error)
	GetApplicantByExternalID(ctx context.Context, externalUserID string) (models.JSONObject, error)
}

// DocumentService uploads identity documents and reads their review state
// and images.
type DocumentService interface {
	// AddDocument uploads one document file with its metadata. The file is
	// streamed, not read into memory. The returned ImageID comes from the
	// X-Image-Id response header.
	AddDocument(ctx context.Context, applicantID string, doc models.DocumentPayload) (models.DocumentUpload, error)

	// GetRequiredDocsStatus returns the review state of every required
	// document of the applicant.
	GetRequiredDocsStatus(ctx context.Context, applicantID string) ([]models.RequiredDocStatus, error)

	// GetApplicantStatusStream returns the raw applicant status body.
	// The caller must close it.
	GetApplicantStatusStream(ctx context.Context, applicantID string) (io.ReadCloser, error)

	// GetDocumentImage returns one image of an inspection. The caller must
	// close its Content.
	GetDocumentImage(ctx context.Context, inspectionID, imageID string) (models.DocumentImage, error)

	// ListApplicantDocImages maps every image id of the applicant's
	// required documents to the document type it belongs to.
	ListApplicantDocImages(ctx context.Context, applicantID string) (map[string]models.DocImageRef, error)

	// DownloadApplicantDocImages fetches the content of every image listed
	// by ListApplicantDocImages, a few at a time.
	DownloadApplicantDocImages(ctx context.Context, applicantID, inspectionID string) (map[string][]byte, error)
}

// SDKService issues credentials for the provider's client-side SDKs.
type SDKService interface {
	// GetAccessToken issues an SDK access token for userID on levelName.
	GetAccessToken(ctx context.Context, userID, levelName string) (models.AccessToken, error)

	// GetVerificationLink issues a WebSDK link valid for ttl, rounded down
	// to whole seconds.
	GetVerificationLink(ctx context.Context, externalUserID, levelName string, ttl time.Duration) (models.VerificationLink, error)
}

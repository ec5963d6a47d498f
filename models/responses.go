package models

import (
	"bytes"
	"encoding/json"
)

// ReviewResult is the provider's verdict on a document or a step.
type ReviewResult struct {
	ModerationComment string   `json:"moderationComment,omitempty"`
	ClientComment     string   `json:"clientComment,omitempty"`
	ReviewAnswer      string   `json:"reviewAnswer,omitempty"`
	RejectLabels      []string `json:"rejectLabels,omitempty"`
	ReviewRejectType  string   `json:"reviewRejectType,omitempty"`
}

// RequiredDocStatus is one entry of the required documents status.
type RequiredDocStatus struct {
	IDDocSetType string        `json:"idDocSetType,omitempty"`
	IDDocType    string        `json:"idDocType"`
	Country      string        `json:"country,omitempty"`
	ImageIDs     []ImageID     `json:"imageIds"`
	ReviewResult *ReviewResult `json:"reviewResult,omitempty"`
}

// AccessToken is an SDK access token bound to a user and level.
type AccessToken struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// VerificationLink is a shareable WebSDK link.
type VerificationLink struct {
	URL string `json:"url"`
}

// APIErrorBody is the error envelope returned by the provider on non-2xx
// responses.
type APIErrorBody struct {
	Description   string `json:"description"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlationId"`
	ErrorCode     int    `json:"errorCode,omitempty"`
	ErrorName     string `json:"errorName,omitempty"`
}

// JSONObject is a loosely-typed JSON object returned by endpoints whose
// shape depends on the provider's level configuration.
type JSONObject map[string]any

// ImageID identifies an uploaded document image. The provider sends it as a
// JSON number; it is kept as an opaque string.
type ImageID string

// UnmarshalJSON accepts both numeric and string image ids.
func (id *ImageID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ImageID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ImageID(n.String())
	return nil
}

package models

import "io"

// DocumentMetadata is the JSON "metadata" part of an identity document upload.
type DocumentMetadata struct {
	IDDocType    string `json:"idDocType" validate:"required"`
	IDDocSubType string `json:"idDocSubType,omitempty"`
	Country      string `json:"country" validate:"required,len=3,uppercase"`
	FirstName    string `json:"firstName,omitempty"`
	MiddleName   string `json:"middleName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	IssuedDate   string `json:"issuedDate,omitempty"`
	ValidUntil   string `json:"validUntil,omitempty"`
	Number       string `json:"number,omitempty"`
	Dob          string `json:"dob,omitempty"`
	PlaceOfBirth string `json:"placeOfBirth,omitempty"`
}

// DocumentPayload describes one identity document file to upload.
// Content is streamed into the request; it is not read fully into memory.
type DocumentPayload struct {
	Metadata DocumentMetadata

	// FileName is reported in the multipart "content" part.
	FileName string `validate:"required"`

	// Content is the raw file. The caller keeps ownership and closes it.
	Content io.Reader
}

// DocumentUpload is the result of an identity document upload.
type DocumentUpload struct {
	// ImageID is taken from the X-Image-Id response header.
	ImageID string

	// Body is the raw response body, which carries document warnings when
	// requested.
	Body []byte
}

// DocumentImage is a document image downloaded from an inspection.
// The caller must close Content.
type DocumentImage struct {
	Content     io.ReadCloser
	ContentType string
}

// DocImageRef tags an image id with the type of the document it belongs to.
type DocImageRef struct {
	IDDocType string `json:"idDocType"`
}

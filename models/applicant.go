package models

// ApplicantType is the provider-side kind of an applicant record.
type ApplicantType string

// ApplicantIndividual marks a person, as opposed to a legal entity.
const ApplicantIndividual ApplicantType = "individual"

// Address is a postal address in the applicant's fixed info.
type Address struct {
	Country  string `json:"country,omitempty"`
	Town     string `json:"town,omitempty"`
	Street   string `json:"street,omitempty"`
	State    string `json:"state,omitempty"`
	PostCode string `json:"postCode,omitempty"`
}

// FixedInfo is the applicant data declared by the caller, as opposed to the
// data the provider extracts from documents.
type FixedInfo struct {
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Dob       string    `json:"dob,omitempty"`
	Country   string    `json:"country,omitempty"`
	Tin       *string   `json:"tin,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
}

// ApplicantPayload is the request body of the applicant creation endpoint.
type ApplicantPayload struct {
	ExternalUserID string        `json:"externalUserId"`
	Email          string        `json:"email,omitempty"`
	Phone          string        `json:"phone,omitempty"`
	FixedInfo      FixedInfo     `json:"fixedInfo"`
	Type           ApplicantType `json:"type,omitempty"`
}

// ApplicantAttributes are the caller-supplied attributes an applicant
// payload is assembled from.
type ApplicantAttributes struct {
	// ExternalUserID is the caller-assigned identifier of the applicant.
	ExternalUserID string `validate:"required,max=512"`

	Email     string `validate:"omitempty,email"`
	Phone     string `validate:"omitempty,max=32"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`

	// Dob is the date of birth in YYYY-MM-DD form.
	Dob string `validate:"omitempty,len=10"`

	// Country is an ISO 3166-1 alpha-3 code (e.g. "NGA").
	Country string `validate:"omitempty,len=3,uppercase"`

	City     string
	Street   string
	State    string
	PostCode string

	// Tin is the tax identification number. It is sent, even when empty,
	// for countries whose verification level requires it and dropped for
	// every other country.
	Tin string
}

// DirectorAttributes are the attributes of a company director or
// beneficiary, created as a lightweight individual applicant.
type DirectorAttributes struct {
	ExternalUserID string `validate:"required,max=512"`
	Email          string `validate:"omitempty,email"`
	Phone          string `validate:"omitempty,max=32"`
	FirstName      string `validate:"required"`
	LastName       string `validate:"required"`
}

// CompanyInfo is the body of the company info update. The provider accepts
// a large, level-dependent set of fields, so it is kept as a JSON object.
type CompanyInfo map[string]any

// ApplicantCreated is the subset of the creation response the client reads.
type ApplicantCreated struct {
	ID string `json:"id"`
}

package service

import "github.com/MKhiriev/go-sumsub-client/models"

// tinCountries lists the countries whose verification level expects a tax
// identification number in the applicant's fixed info.
var tinCountries = map[string]struct{}{
	"NGA": {},
	"USA": {},
}

func requiresTin(country string) bool {
	_, ok := tinCountries[country]
	return ok
}

// BuildApplicantPayload assembles the creation body of an individual
// applicant. The applicant's address is sent as the only entry of
// fixedInfo.addresses. The tin key is always present for countries that
// require it and absent otherwise.
func BuildApplicantPayload(attrs models.ApplicantAttributes) models.ApplicantPayload {
	info := models.FixedInfo{
		FirstName: attrs.FirstName,
		LastName:  attrs.LastName,
		Dob:       attrs.Dob,
		Country:   attrs.Country,
		Addresses: []models.Address{{
			Country:  attrs.Country,
			Town:     attrs.City,
			Street:   attrs.Street,
			State:    attrs.State,
			PostCode: attrs.PostCode,
		}},
	}
	if requiresTin(attrs.Country) {
		tin := attrs.Tin
		info.Tin = &tin
	}

	return models.ApplicantPayload{
		ExternalUserID: attrs.ExternalUserID,
		Email:          attrs.Email,
		Phone:          attrs.Phone,
		FixedInfo:      info,
	}
}

// BuildDirectorPayload assembles the creation body of a director applicant.
func BuildDirectorPayload(attrs models.DirectorAttributes) models.ApplicantPayload {
	return models.ApplicantPayload{
		ExternalUserID: attrs.ExternalUserID,
		Email:          attrs.Email,
		Phone:          attrs.Phone,
		FixedInfo: models.FixedInfo{
			FirstName: attrs.FirstName,
			LastName:  attrs.LastName,
		},
		Type: models.ApplicantIndividual,
	}
}

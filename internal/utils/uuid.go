package utils

import "github.com/google/uuid"

// IDGenerator produces unique identifiers for outbound requests.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUID v7 identifiers, falling back to
// a random v4 when the clock source fails.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

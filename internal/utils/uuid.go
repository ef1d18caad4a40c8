package utils

import "github.com/google/uuid"

// UUIDGenerator produces the globally-unique string tokens used as user
// ids by the SQL storage backends. Generated ids are time-ordered (UUIDv7)
// so that insertion order and id order agree.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a ready-to-use generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to a random UUIDv4
// if the system clock source is unavailable.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

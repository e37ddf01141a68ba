package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDGenerator issues time-ordered identifiers for submissions and traces.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random UUIDv4 when the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// MessageID builds an RFC 5322 message id local part and domain from id.
// The domain is taken from sender's address, or "localhost" if it has none.
func MessageID(id, sender string) string {
	domain := "localhost"
	if _, d, ok := strings.Cut(sender, "@"); ok && d != "" {
		domain = d
	}
	return id + "@" + domain
}

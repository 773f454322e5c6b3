package model

import "github.com/google/uuid"

// GenerateID creates a new opaque bookmark identifier.
func GenerateID() string {
	return uuid.New().String()
}

package utils

import "github.com/google/uuid"

// GenerateID returns a new random record identifier.
func GenerateID() string {
	return uuid.NewString()
}

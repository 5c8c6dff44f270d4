package model

import "github.com/google/uuid"

// generateSessionID creates a new session identifier.
func generateSessionID() string {
	return uuid.New().String()
}

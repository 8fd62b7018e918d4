package models

import (
	"time"

	"github.com/google/uuid"
)

// IntakeMessage is one user message of an intake session together with the
// profile accumulated over the session up to and including it.
type IntakeMessage struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	SessionID uuid.UUID     `json:"session_id"`
	Content   string        `json:"content"`
	Parsed    ProfileRecord `json:"parsed"`
	Missing   []string      `json:"missing"`
	Ready     bool          `json:"ready"`
	CreatedAt time.Time     `json:"created_at"`
}

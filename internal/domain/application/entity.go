package application

import (
	"time"

	"github.com/google/uuid"
)

// Terminal status labels for an application attempt.
const (
	StatusPending         = "pending"
	StatusSubmitted       = "submitted"
	StatusError           = "error"
	StatusAwaitingCaptcha = "awaiting_captcha"
)

type Log struct {
	ID              uuid.UUID
	JobMatchID      uuid.UUID
	Status          string
	SubmittedAt     *time.Time
	CaptchaRequired bool
	ErrorMessage    *string
	CreatedAt       time.Time
}

type CaptchaQueueItem struct {
	ID         uuid.UUID
	JobMatchID uuid.UUID
	Notes      *string
	CreatedAt  time.Time
}

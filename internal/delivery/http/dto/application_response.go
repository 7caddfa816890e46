package dto

import (
	"time"

	"github.com/google/uuid"

	"jobpilot/internal/domain/application"
	"jobpilot/internal/repository"
)

type ApplicationLogResponse struct {
	ID              uuid.UUID  `json:"id"`
	JobMatchID      uuid.UUID  `json:"job_match_id"`
	Status          string     `json:"status"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	CaptchaRequired bool       `json:"captcha_required"`
	ErrorMessage    *string    `json:"error_message,omitempty"`
}

func NewApplicationLogResponse(l application.Log) ApplicationLogResponse {
	return ApplicationLogResponse{
		ID:              l.ID,
		JobMatchID:      l.JobMatchID,
		Status:          l.Status,
		SubmittedAt:     l.SubmittedAt,
		CaptchaRequired: l.CaptchaRequired,
		ErrorMessage:    l.ErrorMessage,
	}
}

type CaptchaQueueItemResponse struct {
	JobMatchID uuid.UUID `json:"job_match_id"`
	Company    string    `json:"company"`
	Title      string    `json:"title"`
	ListingURL string    `json:"listing_url"`
	Notes      *string   `json:"notes,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

func NewCaptchaQueueResponse(rows []repository.CaptchaQueueRow) []CaptchaQueueItemResponse {
	out := make([]CaptchaQueueItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CaptchaQueueItemResponse{
			JobMatchID: r.JobMatchID,
			Company:    r.Company,
			Title:      r.Title,
			ListingURL: r.ListingURL,
			Notes:      r.Notes,
			AddedAt:    r.AddedAt,
		})
	}
	return out
}

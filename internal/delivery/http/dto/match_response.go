package dto

import (
	"time"

	"github.com/google/uuid"

	"jobpilot/internal/repository"
)

type JobMatchResponse struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	ExternalID *string   `json:"external_id,omitempty"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   *string   `json:"location,omitempty"`
	SalaryMin  *float64  `json:"salary_min,omitempty"`
	SalaryMax  *float64  `json:"salary_max,omitempty"`
	RemoteType *string   `json:"remote_type,omitempty"`
	Culture    []string  `json:"culture,omitempty"`
	Overlap    []string  `json:"overlap"`
	Gaps       []string  `json:"gaps"`
	ListingURL string    `json:"listing_url"`
	Score      float64   `json:"score"`
	Deviation  float64   `json:"deviation"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewJobMatchResponse(m repository.JobMatch) JobMatchResponse {
	return JobMatchResponse{
		ID:         m.ID,
		Source:     m.Source,
		ExternalID: m.ExternalID,
		Title:      m.Title,
		Company:    m.Company,
		Location:   m.Location,
		SalaryMin:  m.SalaryMin,
		SalaryMax:  m.SalaryMax,
		RemoteType: m.RemoteType,
		Culture:    m.Culture,
		Overlap:    emptyIfNil(m.Overlap),
		Gaps:       emptyIfNil(m.Gaps),
		ListingURL: m.ListingURL,
		Score:      m.Score,
		Deviation:  m.Deviation,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}

func NewJobMatchListResponse(matches []repository.JobMatch) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, NewJobMatchResponse(m))
	}
	return out
}

type EvaluationSummaryResponse struct {
	JobsConsidered int                `json:"jobs_considered"`
	Duplicates     int                `json:"duplicates"`
	Accepted       int                `json:"accepted"`
	Stored         int                `json:"stored"`
	Matches        []JobMatchResponse `json:"matches"`
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

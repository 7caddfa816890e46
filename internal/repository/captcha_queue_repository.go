package repository

import (
	"context"
	"time"

	"jobpilot/internal/database"

	"github.com/google/uuid"
)

// CaptchaQueueRow joins a queued captcha item with its job match so the
// review endpoint can render where the manual solve is needed.
type CaptchaQueueRow struct {
	JobMatchID uuid.UUID
	Company    string
	Title      string
	ListingURL string
	Notes      *string
	AddedAt    time.Time
}

type CaptchaQueueRepository interface {
	Enqueue(ctx context.Context, jobMatchID uuid.UUID, notes string) error
	List(ctx context.Context) ([]CaptchaQueueRow, error)
}

type PostgresCaptchaQueueRepository struct {
	db database.DB
}

func NewPostgresCaptchaQueueRepository(db database.DB) *PostgresCaptchaQueueRepository {
	return &PostgresCaptchaQueueRepository{db: db}
}

func (r *PostgresCaptchaQueueRepository) Enqueue(ctx context.Context, jobMatchID uuid.UUID, notes string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO captcha_queue (id, job_match_id, notes) VALUES ($1, $2, $3)`,
		uuid.New(), jobMatchID, notes,
	)
	return err
}

func (r *PostgresCaptchaQueueRepository) List(ctx context.Context) ([]CaptchaQueueRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.job_match_id, m.company, m.title, m.listing_url, c.notes, c.created_at
		 FROM captcha_queue c
		 JOIN job_matches m ON m.id = c.job_match_id
		 ORDER BY c.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CaptchaQueueRow, 0)
	for rows.Next() {
		var it CaptchaQueueRow
		if err := rows.Scan(&it.JobMatchID, &it.Company, &it.Title, &it.ListingURL, &it.Notes, &it.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobpilot/internal/database"
	"jobpilot/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrApplicationLogNotFound = errors.New("application log not found")

type ApplicationLogRepository interface {
	Create(ctx context.Context, l application.Log) error
	// Finalize writes the terminal outcome of a submission attempt.
	Finalize(ctx context.Context, l application.Log) error
	LatestByJobMatch(ctx context.Context, jobMatchID uuid.UUID) (application.Log, error)
}

type PostgresApplicationLogRepository struct {
	db database.DB
}

func NewPostgresApplicationLogRepository(db database.DB) *PostgresApplicationLogRepository {
	return &PostgresApplicationLogRepository{db: db}
}

func (r *PostgresApplicationLogRepository) Create(ctx context.Context, l application.Log) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO application_logs (id, job_match_id, status, captcha_required)
		 VALUES ($1, $2, $3, $4)`,
		l.ID, l.JobMatchID, l.Status, l.CaptchaRequired,
	)
	return err
}

func (r *PostgresApplicationLogRepository) Finalize(ctx context.Context, l application.Log) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE application_logs
		 SET status = $1, submitted_at = $2, captcha_required = $3, error_message = $4
		 WHERE id = $5`,
		l.Status, l.SubmittedAt, l.CaptchaRequired, l.ErrorMessage, l.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationLogNotFound
	}
	return nil
}

func (r *PostgresApplicationLogRepository) LatestByJobMatch(ctx context.Context, jobMatchID uuid.UUID) (application.Log, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, job_match_id, status, submitted_at, captcha_required, error_message, created_at
		 FROM application_logs
		 WHERE job_match_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		jobMatchID,
	)

	var l application.Log
	err := row.Scan(&l.ID, &l.JobMatchID, &l.Status, &l.SubmittedAt, &l.CaptchaRequired, &l.ErrorMessage, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Log{}, ErrApplicationLogNotFound
		}
		return application.Log{}, err
	}
	return l, nil
}

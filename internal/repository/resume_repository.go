package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"jobpilot/internal/database"
	"jobpilot/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ResumeRepository interface {
	Create(ctx context.Context, r profile.Resume) error
	// LatestByUser returns the most recent resume for the user, or nil when
	// the user has never uploaded one.
	LatestByUser(ctx context.Context, userID uuid.UUID) (*profile.Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Create(ctx context.Context, res profile.Resume) error {
	skills, err := json.Marshal(res.DerivedSkills)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO resumes (id, user_id, storage_path, extracted_text, derived_skills)
		 VALUES ($1, $2, $3, $4, $5)`,
		res.ID, res.UserID, res.StoragePath, res.ExtractedText, skills,
	)
	return err
}

func (r *PostgresResumeRepository) LatestByUser(ctx context.Context, userID uuid.UUID) (*profile.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, storage_path, extracted_text, derived_skills, created_at
		 FROM resumes
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var res profile.Resume
	var skills []byte
	err := row.Scan(&res.ID, &res.UserID, &res.StoragePath, &res.ExtractedText, &skills, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &res.DerivedSkills); err != nil {
			return nil, err
		}
	}
	return &res, nil
}

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

type QuestionnaireRepository interface {
	Create(ctx context.Context, q profile.QuestionnaireResponse) error
	// LatestByUser returns the most recent questionnaire response for the
	// user, or nil when none has been submitted.
	LatestByUser(ctx context.Context, userID uuid.UUID) (*profile.QuestionnaireResponse, error)
}

type PostgresQuestionnaireRepository struct {
	db database.DB
}

func NewPostgresQuestionnaireRepository(db database.DB) *PostgresQuestionnaireRepository {
	return &PostgresQuestionnaireRepository{db: db}
}

func (r *PostgresQuestionnaireRepository) Create(ctx context.Context, q profile.QuestionnaireResponse) error {
	answers, err := json.Marshal(q.RawAnswers)
	if err != nil {
		return err
	}
	vector, err := json.Marshal(q.Preference)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO questionnaire_responses (id, user_id, raw_answers, preference_vector)
		 VALUES ($1, $2, $3, $4)`,
		q.ID, q.UserID, answers, vector,
	)
	return err
}

func (r *PostgresQuestionnaireRepository) LatestByUser(ctx context.Context, userID uuid.UUID) (*profile.QuestionnaireResponse, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, raw_answers, preference_vector, created_at
		 FROM questionnaire_responses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var q profile.QuestionnaireResponse
	var answers, vector []byte
	err := row.Scan(&q.ID, &q.UserID, &answers, &vector, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &q.RawAnswers); err != nil {
			return nil, err
		}
	}
	if len(vector) > 0 {
		if err := json.Unmarshal(vector, &q.Preference); err != nil {
			return nil, err
		}
	}
	return &q, nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"jobpilot/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobMatchNotFound = errors.New("job match not found")

// Match statuses track the application lifecycle of a persisted match.
const (
	MatchStatusQueued = "queued"
)

// JobMatch is one persisted match row: a catalog job that passed the
// evaluation gate for a user, with its score breakdown.
type JobMatch struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Source     string
	ExternalID *string
	Title      string
	Company    string
	Location   *string
	SalaryMin  *float64
	SalaryMax  *float64
	RemoteType *string
	Culture    []string
	Overlap    []string
	Gaps       []string
	Notes      *string
	ListingURL string
	Score      float64
	Deviation  float64
	Status     string
	CreatedAt  time.Time
}

type JobMatchRepository interface {
	ExistsByExternalID(ctx context.Context, userID uuid.UUID, externalID string) (bool, error)
	InsertBatch(ctx context.Context, matches []JobMatch) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]JobMatch, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (JobMatch, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]JobMatch, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type PostgresJobMatchRepository struct {
	db database.DB
}

func NewPostgresJobMatchRepository(db database.DB) *PostgresJobMatchRepository {
	return &PostgresJobMatchRepository{db: db}
}

func (r *PostgresJobMatchRepository) ExistsByExternalID(ctx context.Context, userID uuid.UUID, externalID string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_matches WHERE user_id = $1 AND external_id = $2)`,
		userID, externalID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// InsertBatch persists accepted matches in one transaction, after the full
// candidate set has been scored.
func (r *PostgresJobMatchRepository) InsertBatch(ctx context.Context, matches []JobMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, m := range matches {
		culture, err := json.Marshal(m.Culture)
		if err != nil {
			return err
		}
		overlap, err := json.Marshal(m.Overlap)
		if err != nil {
			return err
		}
		gaps, err := json.Marshal(m.Gaps)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_matches
			 (id, user_id, source, external_id, title, company, location,
			  salary_min, salary_max, remote_type, culture_tags, overlap, gaps,
			  notes, listing_url, score, deviation, status)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
			m.ID, m.UserID, m.Source, m.ExternalID, m.Title, m.Company, m.Location,
			m.SalaryMin, m.SalaryMax, m.RemoteType, culture, overlap, gaps,
			m.Notes, m.ListingURL, m.Score, m.Deviation, m.Status,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const jobMatchColumns = `id, user_id, source, external_id, title, company, location,
	salary_min, salary_max, remote_type, culture_tags, overlap, gaps,
	notes, listing_url, score, deviation, status, created_at`

func (r *PostgresJobMatchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]JobMatch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobMatchColumns+`
		 FROM job_matches
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobMatches(rows)
}

func (r *PostgresJobMatchRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (JobMatch, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobMatchColumns+`
		 FROM job_matches
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	m, err := scanJobMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return JobMatch{}, ErrJobMatchNotFound
		}
		return JobMatch{}, err
	}
	return m, nil
}

func (r *PostgresJobMatchRepository) ListByStatus(ctx context.Context, status string, limit int) ([]JobMatch, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+jobMatchColumns+`
		 FROM job_matches
		 WHERE status = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		status, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobMatches(rows)
}

func (r *PostgresJobMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE job_matches SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobMatchNotFound
	}
	return nil
}

func collectJobMatches(rows database.Rows) ([]JobMatch, error) {
	out := make([]JobMatch, 0)
	for rows.Next() {
		m, err := scanJobMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJobMatch(row database.Row) (JobMatch, error) {
	var m JobMatch
	var culture, overlap, gaps []byte
	err := row.Scan(
		&m.ID, &m.UserID, &m.Source, &m.ExternalID, &m.Title, &m.Company, &m.Location,
		&m.SalaryMin, &m.SalaryMax, &m.RemoteType, &culture, &overlap, &gaps,
		&m.Notes, &m.ListingURL, &m.Score, &m.Deviation, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return JobMatch{}, err
	}
	for _, pair := range []struct {
		raw  []byte
		dest *[]string
	}{
		{culture, &m.Culture},
		{overlap, &m.Overlap},
		{gaps, &m.Gaps},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return JobMatch{}, err
		}
	}
	return m, nil
}

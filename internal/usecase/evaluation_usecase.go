package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"jobpilot/internal/config"
	domcatalog "jobpilot/internal/domain/catalog"
	"jobpilot/internal/domain/evaluation"
	"jobpilot/internal/domain/profile"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/repository"
)

var ErrEvaluationInProgress = errors.New("evaluation already running")

const (
	evaluationLockTTL = 2 * time.Minute
	matchCacheTTL     = 5 * time.Minute
)

// CatalogSource yields the current job catalog. A missing catalog is not
// an error and comes back as an empty slice.
type CatalogSource interface {
	Load() ([]domcatalog.JobRecord, error)
}

// EvaluationSummary reports one evaluation run over the catalog.
type EvaluationSummary struct {
	JobsConsidered int                   `json:"jobs_considered"`
	Duplicates     int                   `json:"duplicates"`
	Accepted       int                   `json:"accepted"`
	Stored         int                   `json:"stored"`
	Matches        []repository.JobMatch `json:"-"`
}

type EvaluationUsecase interface {
	Evaluate(ctx context.Context, userID uuid.UUID) (EvaluationSummary, error)
	ListMatches(ctx context.Context, userID uuid.UUID) ([]repository.JobMatch, error)
	GetMatch(ctx context.Context, userID uuid.UUID, matchID uuid.UUID) (repository.JobMatch, error)
}

type Evaluation struct {
	resumes        repository.ResumeRepository
	questionnaires repository.QuestionnaireRepository
	matches        repository.JobMatchRepository
	catalog        CatalogSource
	cache          *cache.Redis
	cfg            config.EvaluationConfig
	logger         *log.Logger
}

func NewEvaluationUsecase(
	resumes repository.ResumeRepository,
	questionnaires repository.QuestionnaireRepository,
	matches repository.JobMatchRepository,
	catalogSrc CatalogSource,
	cacheClient *cache.Redis,
	cfg config.EvaluationConfig,
	logger *log.Logger,
) *Evaluation {
	return &Evaluation{
		resumes:        resumes,
		questionnaires: questionnaires,
		matches:        matches,
		catalog:        catalogSrc,
		cache:          cacheClient,
		cfg:            cfg,
		logger:         logger,
	}
}

// Evaluate scores every catalog job against the user's latest profile,
// keeps the ones inside the gate and persists them as queued matches.
// The whole candidate set is scored before anything is written.
func (u *Evaluation) Evaluate(ctx context.Context, userID uuid.UUID) (EvaluationSummary, error) {
	lockKey := evaluationLockKey(userID)
	acquired, err := u.cache.SetIfNotExists(ctx, lockKey, "1", evaluationLockTTL)
	if err != nil {
		return EvaluationSummary{}, err
	}
	if !acquired {
		return EvaluationSummary{}, ErrEvaluationInProgress
	}
	defer func() {
		_ = u.cache.Delete(context.Background(), lockKey)
	}()

	skills, prefs, err := u.buildContext(ctx, userID)
	if err != nil {
		return EvaluationSummary{}, err
	}

	jobs, err := u.catalog.Load()
	if err != nil {
		return EvaluationSummary{}, err
	}

	summary := EvaluationSummary{Matches: make([]repository.JobMatch, 0)}
	for _, job := range jobs {
		summary.JobsConsidered++

		if job.ExternalID != "" {
			seen, err := u.matches.ExistsByExternalID(ctx, userID, job.ExternalID)
			if err != nil {
				return EvaluationSummary{}, err
			}
			if seen {
				summary.Duplicates++
				continue
			}
		}

		res := evaluation.Score(skills, prefs, job)
		if res.Deviation > u.cfg.DeviationTolerance || res.Score < u.cfg.SimilarityThreshold {
			continue
		}

		summary.Accepted++
		if u.cfg.BatchSize > 0 && len(summary.Matches) >= u.cfg.BatchSize {
			// Over the batch limit; the job stays eligible for a later run.
			continue
		}
		summary.Matches = append(summary.Matches, buildJobMatch(userID, job, res))
	}

	if err := u.matches.InsertBatch(ctx, summary.Matches); err != nil {
		return EvaluationSummary{}, err
	}
	summary.Stored = len(summary.Matches)

	_ = u.cache.Delete(ctx, matchCacheKey(userID))

	u.logger.Printf("Evaluation run | user=%s considered=%d duplicates=%d accepted=%d stored=%d",
		userID, summary.JobsConsidered, summary.Duplicates, summary.Accepted, summary.Stored)

	return summary, nil
}

func (u *Evaluation) ListMatches(ctx context.Context, userID uuid.UUID) ([]repository.JobMatch, error) {
	key := matchCacheKey(userID)

	var cached []repository.JobMatch
	hit, err := u.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		u.logger.Printf("Match cache read failed | user=%s err=%v", userID, err)
	} else if hit {
		return cached, nil
	}

	out, err := u.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.cache.SetJSON(ctx, key, out, matchCacheTTL); err != nil {
		u.logger.Printf("Match cache write failed | user=%s err=%v", userID, err)
	}
	return out, nil
}

func (u *Evaluation) GetMatch(ctx context.Context, userID uuid.UUID, matchID uuid.UUID) (repository.JobMatch, error) {
	return u.matches.GetByID(ctx, userID, matchID)
}

// buildContext loads the latest resume and questionnaire. Absent inputs
// degrade to an empty skill set and a zero preference vector instead of
// failing the run.
func (u *Evaluation) buildContext(ctx context.Context, userID uuid.UUID) (profile.SkillSet, profile.PreferenceVector, error) {
	var skills profile.SkillSet
	var prefs profile.PreferenceVector

	res, err := u.resumes.LatestByUser(ctx, userID)
	if err != nil {
		return nil, profile.PreferenceVector{}, err
	}
	if res != nil {
		skills = profile.NewSkillSet(res.DerivedSkills)
	} else {
		skills = profile.SkillSet{}
	}

	q, err := u.questionnaires.LatestByUser(ctx, userID)
	if err != nil {
		return nil, profile.PreferenceVector{}, err
	}
	if q != nil {
		prefs = q.Preference
	}

	return skills, prefs, nil
}

func buildJobMatch(userID uuid.UUID, job domcatalog.JobRecord, res evaluation.MatchResult) repository.JobMatch {
	m := repository.JobMatch{
		ID:         uuid.New(),
		UserID:     userID,
		Source:     job.SourceOrDefault(),
		Title:      job.Title,
		Company:    job.Company,
		SalaryMin:  job.SalaryMin,
		SalaryMax:  job.SalaryMax,
		Culture:    job.Culture,
		Overlap:    res.Overlap,
		Gaps:       res.Gaps,
		ListingURL: job.URL,
		Score:      res.Score,
		Deviation:  res.Deviation,
		Status:     repository.MatchStatusQueued,
	}
	if job.ExternalID != "" {
		id := job.ExternalID
		m.ExternalID = &id
	}
	if job.Location != "" {
		loc := job.Location
		m.Location = &loc
	}
	if job.RemoteType != "" {
		rt := job.RemoteType
		m.RemoteType = &rt
	}
	if job.Notes != "" {
		n := job.Notes
		m.Notes = &n
	}
	return m
}

func evaluationLockKey(userID uuid.UUID) string {
	return fmt.Sprintf("evaluation:lock:%s", userID)
}

func matchCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("matches:user:%s", userID)
}

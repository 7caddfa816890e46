package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"jobpilot/internal/domain/application"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/repository"
	"jobpilot/internal/ws"
)

var (
	ErrMatchNotFound       = errors.New("job match not found")
	ErrMatchNotSubmittable = errors.New("job match not submittable")
	ErrNoListingURL        = errors.New("job match has no listing url")
)

const captchaQueueNote = "Manual captcha solve required"

// FormSubmitter drives a headless browser against the listing page.
// The bool result reports whether a captcha blocked the submission.
type FormSubmitter interface {
	Submit(ctx context.Context, listingURL string, answers map[string]any) (bool, error)
}

// ApplicationOutcome is the terminal record of one submission attempt.
type ApplicationOutcome struct {
	Log   application.Log
	Match repository.JobMatch
}

type ApplicationUsecase interface {
	SubmitApplication(ctx context.Context, userID uuid.UUID, matchID uuid.UUID, answers map[string]any) (ApplicationOutcome, error)
	CaptchaQueue(ctx context.Context) ([]repository.CaptchaQueueRow, error)
}

type Application struct {
	matches   repository.JobMatchRepository
	logs      repository.ApplicationLogRepository
	captcha   repository.CaptchaQueueRepository
	submitter FormSubmitter
	cache     *cache.Redis
	logger    *log.Logger
}

func NewApplicationUsecase(
	matches repository.JobMatchRepository,
	logs repository.ApplicationLogRepository,
	captcha repository.CaptchaQueueRepository,
	submitter FormSubmitter,
	cacheClient *cache.Redis,
	logger *log.Logger,
) *Application {
	return &Application{
		matches:   matches,
		logs:      logs,
		captcha:   captcha,
		submitter: submitter,
		cache:     cacheClient,
		logger:    logger,
	}
}

// SubmitApplication runs one attempt against the match's listing page.
// A pending log row is written before the browser starts so a crash mid
// submission still leaves a trace, then the row is finalized with the
// outcome. A detected captcha parks the match in the manual queue.
func (u *Application) SubmitApplication(ctx context.Context, userID uuid.UUID, matchID uuid.UUID, answers map[string]any) (ApplicationOutcome, error) {
	match, err := u.matches.GetByID(ctx, userID, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrJobMatchNotFound) {
			return ApplicationOutcome{}, ErrMatchNotFound
		}
		return ApplicationOutcome{}, err
	}
	if match.Status != repository.MatchStatusQueued {
		return ApplicationOutcome{}, ErrMatchNotSubmittable
	}
	if match.ListingURL == "" {
		return ApplicationOutcome{}, ErrNoListingURL
	}

	logRow := application.Log{
		ID:         uuid.New(),
		JobMatchID: match.ID,
		Status:     application.StatusPending,
	}
	if err := u.logs.Create(ctx, logRow); err != nil {
		return ApplicationOutcome{}, err
	}

	captchaHit, submitErr := u.submitter.Submit(ctx, match.ListingURL, answers)

	switch {
	case captchaHit:
		logRow.Status = application.StatusAwaitingCaptcha
		logRow.CaptchaRequired = true
	case submitErr != nil:
		logRow.Status = application.StatusError
		msg := submitErr.Error()
		logRow.ErrorMessage = &msg
	default:
		logRow.Status = application.StatusSubmitted
		now := time.Now().UTC()
		logRow.SubmittedAt = &now
	}

	if err := u.logs.Finalize(ctx, logRow); err != nil {
		return ApplicationOutcome{}, err
	}

	if captchaHit {
		if err := u.captcha.Enqueue(ctx, match.ID, captchaQueueNote); err != nil {
			return ApplicationOutcome{}, err
		}
	}

	if err := u.matches.UpdateStatus(ctx, match.ID, logRow.Status); err != nil {
		return ApplicationOutcome{}, err
	}
	match.Status = logRow.Status

	_ = u.cache.Delete(ctx, matchCacheKey(userID))

	ws.NotifyApplicationStatus(match.ID, logRow.Status, logRow.CaptchaRequired)

	u.logger.Printf("Application attempt | match=%s status=%s captcha=%t err=%v",
		match.ID, logRow.Status, logRow.CaptchaRequired, submitErr)

	return ApplicationOutcome{Log: logRow, Match: match}, nil
}

func (u *Application) CaptchaQueue(ctx context.Context) ([]repository.CaptchaQueueRow, error) {
	return u.captcha.List(ctx)
}

// SubmitQueued processes up to limit queued matches for the autonomous
// agent loop. Each failed attempt is retried with a fixed backoff before
// the match is marked errored.
func (u *Application) SubmitQueued(ctx context.Context, limit int, attempts int, backoff time.Duration) (int, error) {
	queued, err := u.matches.ListByStatus(ctx, repository.MatchStatusQueued, limit)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, m := range queued {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if err := u.submitQueuedMatch(ctx, m, attempts, backoff); err != nil {
			u.logger.Printf("Agent attempt failed | match=%s err=%v", m.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (u *Application) submitQueuedMatch(ctx context.Context, m repository.JobMatch, attempts int, backoff time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	lastErr := errors.New("no attempts made")
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		out, err := u.SubmitApplication(ctx, m.UserID, m.ID, defaultAgentAnswers(m))
		if err != nil {
			if errors.Is(err, ErrMatchNotSubmittable) {
				// Someone else handled the match in the meantime.
				return nil
			}
			return err
		}
		if out.Log.Status != application.StatusError {
			return nil
		}

		lastErr = errors.New("submission errored")
		if out.Log.ErrorMessage != nil {
			lastErr = errors.New(*out.Log.ErrorMessage)
		}
		if i < attempts-1 {
			// Put the match back so the next attempt passes the status check.
			if err := u.matches.UpdateStatus(ctx, m.ID, repository.MatchStatusQueued); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// defaultAgentAnswers fills the common fields an application form asks
// for when no user-supplied answers exist for the unattended run.
func defaultAgentAnswers(m repository.JobMatch) map[string]any {
	return map[string]any{
		"position": m.Title,
		"company":  m.Company,
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobpilot/internal/domain/application"
	"jobpilot/internal/repository"
)

type mockLogRepo struct {
	created   []application.Log
	finalized []application.Log
}

func (m *mockLogRepo) Create(_ context.Context, l application.Log) error {
	m.created = append(m.created, l)
	return nil
}
func (m *mockLogRepo) Finalize(_ context.Context, l application.Log) error {
	m.finalized = append(m.finalized, l)
	return nil
}
func (m *mockLogRepo) LatestByJobMatch(context.Context, uuid.UUID) (application.Log, error) {
	return application.Log{}, repository.ErrApplicationLogNotFound
}

type mockCaptchaRepo struct {
	enqueued []uuid.UUID
	notes    []string
}

func (m *mockCaptchaRepo) Enqueue(_ context.Context, jobMatchID uuid.UUID, notes string) error {
	m.enqueued = append(m.enqueued, jobMatchID)
	m.notes = append(m.notes, notes)
	return nil
}
func (m *mockCaptchaRepo) List(context.Context) ([]repository.CaptchaQueueRow, error) {
	return nil, nil
}

type mockSubmitter struct {
	captcha bool
	err     error
	calls   int
}

func (m *mockSubmitter) Submit(context.Context, string, map[string]any) (bool, error) {
	m.calls++
	return m.captcha, m.err
}

func queuedMatch(userID uuid.UUID) repository.JobMatch {
	return repository.JobMatch{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      "Backend Engineer",
		Company:    "Acme",
		ListingURL: "https://jobs.example.com/acme",
		Status:     repository.MatchStatusQueued,
	}
}

func newApplicationFixture(match repository.JobMatch, submitter FormSubmitter) (*Application, *mockMatchRepo, *mockLogRepo, *mockCaptchaRepo) {
	matchRepo := newMockMatchRepo()
	matchRepo.byID[match.ID] = match
	logRepo := &mockLogRepo{}
	captchaRepo := &mockCaptchaRepo{}
	uc := NewApplicationUsecase(matchRepo, logRepo, captchaRepo, submitter, bypassCache(), discardLogger())
	return uc, matchRepo, logRepo, captchaRepo
}

func TestSubmitApplication_Success(t *testing.T) {
	userID := uuid.New()
	match := queuedMatch(userID)
	uc, matchRepo, logRepo, captchaRepo := newApplicationFixture(match, &mockSubmitter{})

	out, err := uc.SubmitApplication(context.Background(), userID, match.ID, map[string]any{"name": "Demo"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if out.Log.Status != application.StatusSubmitted {
		t.Fatalf("expected submitted, got %q", out.Log.Status)
	}
	if out.Log.SubmittedAt == nil {
		t.Fatalf("expected submitted_at set")
	}
	if len(logRepo.created) != 1 || logRepo.created[0].Status != application.StatusPending {
		t.Fatalf("expected one pending log row, got %+v", logRepo.created)
	}
	if len(logRepo.finalized) != 1 {
		t.Fatalf("expected one finalized log row")
	}
	if matchRepo.statuses[match.ID] != application.StatusSubmitted {
		t.Fatalf("expected match marked submitted, got %q", matchRepo.statuses[match.ID])
	}
	if len(captchaRepo.enqueued) != 0 {
		t.Fatalf("expected no captcha enqueue")
	}
}

func TestSubmitApplication_Captcha(t *testing.T) {
	userID := uuid.New()
	match := queuedMatch(userID)
	uc, matchRepo, _, captchaRepo := newApplicationFixture(match, &mockSubmitter{captcha: true})

	out, err := uc.SubmitApplication(context.Background(), userID, match.ID, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if out.Log.Status != application.StatusAwaitingCaptcha {
		t.Fatalf("expected awaiting_captcha, got %q", out.Log.Status)
	}
	if !out.Log.CaptchaRequired {
		t.Fatalf("expected captcha_required")
	}
	if out.Log.SubmittedAt != nil {
		t.Fatalf("expected no submitted_at")
	}
	if len(captchaRepo.enqueued) != 1 || captchaRepo.enqueued[0] != match.ID {
		t.Fatalf("expected match in captcha queue, got %v", captchaRepo.enqueued)
	}
	if captchaRepo.notes[0] != "Manual captcha solve required" {
		t.Fatalf("unexpected queue note %q", captchaRepo.notes[0])
	}
	if matchRepo.statuses[match.ID] != application.StatusAwaitingCaptcha {
		t.Fatalf("expected match parked, got %q", matchRepo.statuses[match.ID])
	}
}

func TestSubmitApplication_BrowserError(t *testing.T) {
	userID := uuid.New()
	match := queuedMatch(userID)
	uc, matchRepo, logRepo, _ := newApplicationFixture(match, &mockSubmitter{err: errors.New("navigation timeout")})

	out, err := uc.SubmitApplication(context.Background(), userID, match.ID, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if out.Log.Status != application.StatusError {
		t.Fatalf("expected error status, got %q", out.Log.Status)
	}
	if out.Log.ErrorMessage == nil || *out.Log.ErrorMessage != "navigation timeout" {
		t.Fatalf("expected error message, got %v", out.Log.ErrorMessage)
	}
	if matchRepo.statuses[match.ID] != application.StatusError {
		t.Fatalf("expected match errored, got %q", matchRepo.statuses[match.ID])
	}
	if len(logRepo.finalized) != 1 {
		t.Fatalf("expected finalized log row")
	}
}

func TestSubmitApplication_NotQueued(t *testing.T) {
	userID := uuid.New()
	match := queuedMatch(userID)
	match.Status = application.StatusSubmitted
	uc, _, logRepo, _ := newApplicationFixture(match, &mockSubmitter{})

	_, err := uc.SubmitApplication(context.Background(), userID, match.ID, nil)
	if !errors.Is(err, ErrMatchNotSubmittable) {
		t.Fatalf("expected ErrMatchNotSubmittable, got %v", err)
	}
	if len(logRepo.created) != 0 {
		t.Fatalf("expected no log rows")
	}
}

func TestSubmitApplication_UnknownMatch(t *testing.T) {
	userID := uuid.New()
	uc, _, _, _ := newApplicationFixture(queuedMatch(userID), &mockSubmitter{})

	_, err := uc.SubmitApplication(context.Background(), userID, uuid.New(), nil)
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestSubmitApplication_MissingListingURL(t *testing.T) {
	userID := uuid.New()
	match := queuedMatch(userID)
	match.ListingURL = ""
	uc, _, _, _ := newApplicationFixture(match, &mockSubmitter{})

	_, err := uc.SubmitApplication(context.Background(), userID, match.ID, nil)
	if !errors.Is(err, ErrNoListingURL) {
		t.Fatalf("expected ErrNoListingURL, got %v", err)
	}
}

func TestSubmitQueued_RetriesThenErrors(t *testing.T) {
	userID := uuid.New()
	match := queuedMatch(userID)
	submitter := &mockSubmitter{err: errors.New("flaky page")}

	uc, matchRepo, _, _ := newApplicationFixture(match, submitter)
	matchRepo.queued = []repository.JobMatch{match}

	processed, err := uc.SubmitQueued(context.Background(), 5, 3, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if processed != 0 {
		t.Fatalf("expected 0 processed, got %d", processed)
	}
	if submitter.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", submitter.calls)
	}
	if matchRepo.statuses[match.ID] != application.StatusError {
		t.Fatalf("expected final status error, got %q", matchRepo.statuses[match.ID])
	}
}

func TestSubmitQueued_SucceedsFirstAttempt(t *testing.T) {
	userID := uuid.New()
	match := queuedMatch(userID)
	submitter := &mockSubmitter{}

	uc, matchRepo, _, _ := newApplicationFixture(match, submitter)
	matchRepo.queued = []repository.JobMatch{match}

	processed, err := uc.SubmitQueued(context.Background(), 5, 3, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected 1 processed, got %d", processed)
	}
	if submitter.calls != 1 {
		t.Fatalf("expected single attempt, got %d", submitter.calls)
	}
}

package usecase

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"

	"jobpilot/internal/config"
	domcatalog "jobpilot/internal/domain/catalog"
	"jobpilot/internal/domain/profile"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/repository"
)

type mockResumeRepo struct {
	resume *profile.Resume
	err    error
}

func (m mockResumeRepo) Create(context.Context, profile.Resume) error { return nil }
func (m mockResumeRepo) LatestByUser(context.Context, uuid.UUID) (*profile.Resume, error) {
	return m.resume, m.err
}

type mockQuestionnaireRepo struct {
	q   *profile.QuestionnaireResponse
	err error
}

func (m mockQuestionnaireRepo) Create(context.Context, profile.QuestionnaireResponse) error {
	return nil
}
func (m mockQuestionnaireRepo) LatestByUser(context.Context, uuid.UUID) (*profile.QuestionnaireResponse, error) {
	return m.q, m.err
}

type mockMatchRepo struct {
	existing map[string]bool
	inserted []repository.JobMatch
	byID     map[uuid.UUID]repository.JobMatch
	queued   []repository.JobMatch
	statuses map[uuid.UUID]string
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{
		existing: map[string]bool{},
		byID:     map[uuid.UUID]repository.JobMatch{},
		statuses: map[uuid.UUID]string{},
	}
}

func (m *mockMatchRepo) ExistsByExternalID(_ context.Context, _ uuid.UUID, externalID string) (bool, error) {
	return m.existing[externalID], nil
}
func (m *mockMatchRepo) InsertBatch(_ context.Context, matches []repository.JobMatch) error {
	m.inserted = append(m.inserted, matches...)
	return nil
}
func (m *mockMatchRepo) ListByUser(context.Context, uuid.UUID) ([]repository.JobMatch, error) {
	return m.inserted, nil
}
func (m *mockMatchRepo) GetByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (repository.JobMatch, error) {
	match, ok := m.byID[id]
	if !ok {
		return repository.JobMatch{}, repository.ErrJobMatchNotFound
	}
	return match, nil
}
func (m *mockMatchRepo) ListByStatus(context.Context, string, int) ([]repository.JobMatch, error) {
	return m.queued, nil
}
func (m *mockMatchRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	m.statuses[id] = status
	if match, ok := m.byID[id]; ok {
		match.Status = status
		m.byID[id] = match
	}
	return nil
}

type mockCatalogSource struct {
	jobs []domcatalog.JobRecord
	err  error
}

func (m mockCatalogSource) Load() ([]domcatalog.JobRecord, error) { return m.jobs, m.err }

func testEvaluationConfig() config.EvaluationConfig {
	return config.EvaluationConfig{
		BatchSize:           10,
		SimilarityThreshold: 0.65,
		DeviationTolerance:  1.0,
	}
}

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func bypassCache() *cache.Redis { return &cache.Redis{} }

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func resumeWith(skills ...string) *profile.Resume {
	return &profile.Resume{ID: uuid.New(), DerivedSkills: skills}
}

func TestEvaluate_GateAndPersist(t *testing.T) {
	matchRepo := newMockMatchRepo()
	matchRepo.existing["dup-1"] = true

	jobs := []domcatalog.JobRecord{
		{
			ExternalID: "keep-1",
			Title:      "Backend Engineer",
			Company:    "Acme",
			Skills:     []string{"python", "sql"},
			URL:        "https://jobs.example.com/keep-1",
		},
		{
			ExternalID: "reject-1",
			Title:      "Frontend Engineer",
			Company:    "Beta",
			Skills:     []string{"react", "typescript", "node"},
		},
		{
			ExternalID: "dup-1",
			Title:      "Already Seen",
			Company:    "Gamma",
			Skills:     []string{"python", "sql"},
		},
	}

	uc := NewEvaluationUsecase(
		mockResumeRepo{resume: resumeWith("python", "sql")},
		mockQuestionnaireRepo{},
		matchRepo,
		mockCatalogSource{jobs: jobs},
		bypassCache(),
		testEvaluationConfig(),
		discardLogger(),
	)

	userID := uuid.New()
	summary, err := uc.Evaluate(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if summary.JobsConsidered != 3 {
		t.Fatalf("expected 3 considered, got %d", summary.JobsConsidered)
	}
	if summary.Duplicates != 1 {
		t.Fatalf("expected 1 duplicate, got %d", summary.Duplicates)
	}
	if summary.Accepted != 1 || summary.Stored != 1 {
		t.Fatalf("expected 1 accepted and stored, got %d/%d", summary.Accepted, summary.Stored)
	}
	if len(matchRepo.inserted) != 1 {
		t.Fatalf("expected 1 inserted match, got %d", len(matchRepo.inserted))
	}

	m := matchRepo.inserted[0]
	if m.UserID != userID {
		t.Fatalf("expected match user %s, got %s", userID, m.UserID)
	}
	if m.Status != repository.MatchStatusQueued {
		t.Fatalf("expected status queued, got %q", m.Status)
	}
	if m.ExternalID == nil || *m.ExternalID != "keep-1" {
		t.Fatalf("expected external id keep-1, got %v", m.ExternalID)
	}
	if m.Score != 1.0 {
		t.Fatalf("expected score 1.0, got %v", m.Score)
	}
	if m.Source != "sample" {
		t.Fatalf("expected default source, got %q", m.Source)
	}
}

func TestEvaluate_BatchLimitTruncatesInDiscoveryOrder(t *testing.T) {
	matchRepo := newMockMatchRepo()

	jobs := []domcatalog.JobRecord{
		{ExternalID: "a", Title: "A", Skills: []string{"python"}},
		{ExternalID: "b", Title: "B", Skills: []string{"python"}},
		{ExternalID: "c", Title: "C", Skills: []string{"python"}},
	}

	cfg := testEvaluationConfig()
	cfg.BatchSize = 2

	uc := NewEvaluationUsecase(
		mockResumeRepo{resume: resumeWith("python")},
		mockQuestionnaireRepo{},
		matchRepo,
		mockCatalogSource{jobs: jobs},
		bypassCache(),
		cfg,
		discardLogger(),
	)

	summary, err := uc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if summary.Accepted != 3 {
		t.Fatalf("expected 3 accepted, got %d", summary.Accepted)
	}
	if summary.Stored != 2 {
		t.Fatalf("expected 2 stored, got %d", summary.Stored)
	}
	if *matchRepo.inserted[0].ExternalID != "a" || *matchRepo.inserted[1].ExternalID != "b" {
		t.Fatalf("expected first two jobs kept, got %v and %v",
			*matchRepo.inserted[0].ExternalID, *matchRepo.inserted[1].ExternalID)
	}
}

func TestEvaluate_EmptyCatalog(t *testing.T) {
	matchRepo := newMockMatchRepo()

	uc := NewEvaluationUsecase(
		mockResumeRepo{resume: resumeWith("python")},
		mockQuestionnaireRepo{},
		matchRepo,
		mockCatalogSource{},
		bypassCache(),
		testEvaluationConfig(),
		discardLogger(),
	)

	summary, err := uc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.JobsConsidered != 0 || summary.Stored != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if len(matchRepo.inserted) != 0 {
		t.Fatalf("expected no inserts, got %d", len(matchRepo.inserted))
	}
}

func TestEvaluate_MissingProfileDegradesToEmpty(t *testing.T) {
	matchRepo := newMockMatchRepo()

	jobs := []domcatalog.JobRecord{
		{ExternalID: "x", Title: "X", Skills: []string{"python", "sql"}},
	}

	uc := NewEvaluationUsecase(
		mockResumeRepo{},
		mockQuestionnaireRepo{},
		matchRepo,
		mockCatalogSource{jobs: jobs},
		bypassCache(),
		testEvaluationConfig(),
		discardLogger(),
	)

	summary, err := uc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// No skills means zero score on every job with requirements.
	if summary.Accepted != 0 {
		t.Fatalf("expected nothing accepted, got %d", summary.Accepted)
	}
}

func TestEvaluate_DeviationGate(t *testing.T) {
	matchRepo := newMockMatchRepo()

	jobs := []domcatalog.JobRecord{
		{
			ExternalID: "far-salary",
			Title:      "Staff Engineer",
			Skills:     []string{"python"},
			SalaryMin:  f(300000),
		},
	}

	q := &profile.QuestionnaireResponse{
		Preference: profile.PreferenceVector{
			Salary: &profile.SalaryPreference{Min: i(100000)},
		},
	}

	uc := NewEvaluationUsecase(
		mockResumeRepo{resume: resumeWith("python")},
		mockQuestionnaireRepo{q: q},
		matchRepo,
		mockCatalogSource{jobs: jobs},
		bypassCache(),
		testEvaluationConfig(),
		discardLogger(),
	)

	summary, err := uc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Perfect skill match, but deviation 2.0 sits outside tolerance 1.0.
	if summary.Accepted != 0 || len(matchRepo.inserted) != 0 {
		t.Fatalf("expected deviation gate to reject, got %+v", summary)
	}
}

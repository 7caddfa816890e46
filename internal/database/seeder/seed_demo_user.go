package seeder

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobpilot/internal/database"
	"jobpilot/internal/domain/profile"
	"jobpilot/internal/domain/user"
	"jobpilot/internal/ingestion"
	"jobpilot/internal/repository"
)

const (
	demoEmail    = "demo@jobpilot.local"
	demoPassword = "demo-password-123"
)

const demoResumeText = `Seasoned backend developer with eight years building data products.
Shipped Python services on AWS behind FastAPI, with SQL and PostgreSQL
modelling, Docker packaging and the occasional NLP side project.`

// DemoUserSeeder provisions a ready-to-evaluate demo account: user row,
// one resume and one questionnaire, run through the real ingestion path
// so the derived profile matches what the API would produce.
type DemoUserSeeder struct {
	ResumeDir string
}

func (DemoUserSeeder) Name() string { return "demo_user" }

func (s DemoUserSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "created_at"); err != nil {
		return err
	}

	users := repository.NewPostgresUserRepository(db)
	exists, err := users.ExistsByEmail(ctx, demoEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := "Demo Applicant"
	u := user.User{
		ID:           uuid.New(),
		Email:        demoEmail,
		PasswordHash: string(hash),
		DisplayName:  &name,
	}
	if err := users.CreateUser(ctx, u); err != nil {
		return err
	}

	processor := ingestion.NewResumeProcessor(s.ResumeDir)
	path, skills, err := processor.Store(u.ID, demoResumeText)
	if err != nil {
		return err
	}

	resumes := repository.NewPostgresResumeRepository(db)
	if err := resumes.Create(ctx, profile.Resume{
		ID:            uuid.New(),
		UserID:        u.ID,
		StoragePath:   path,
		ExtractedText: demoResumeText,
		DerivedSkills: skills,
	}); err != nil {
		return err
	}

	answers := map[string]any{
		"preferred_salary_min": 110000,
		"preferred_salary_max": 140000,
		"preferred_locations":  []any{"Remote", "Berlin"},
		"culture_keywords":     []any{"collaborative", "async"},
		"remote_ok":            true,
	}

	questionnaires := repository.NewPostgresQuestionnaireRepository(db)
	return questionnaires.Create(ctx, profile.QuestionnaireResponse{
		ID:         uuid.New(),
		UserID:     u.ID,
		RawAnswers: answers,
		Preference: ingestion.BuildPreferenceVector(answers),
	})
}

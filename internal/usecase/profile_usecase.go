package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"jobpilot/internal/domain/profile"
	"jobpilot/internal/domain/user"
	"jobpilot/internal/ingestion"
	"jobpilot/internal/repository"
)

var (
	ErrEmptyResume        = errors.New("resume content empty")
	ErrEmptyQuestionnaire = errors.New("questionnaire answers empty")
)

type ProfileUsecase interface {
	SubmitResume(ctx context.Context, userID uuid.UUID, content string) (profile.Resume, error)
	SubmitQuestionnaire(ctx context.Context, userID uuid.UUID, answers map[string]any) (profile.QuestionnaireResponse, error)
	Snapshot(ctx context.Context, userID uuid.UUID) (*profile.Resume, *profile.QuestionnaireResponse, error)
}

type Profile struct {
	users          user.Repository
	resumes        repository.ResumeRepository
	questionnaires repository.QuestionnaireRepository
	processor      *ingestion.ResumeProcessor
}

func NewProfileUsecase(users user.Repository, resumes repository.ResumeRepository, questionnaires repository.QuestionnaireRepository, processor *ingestion.ResumeProcessor) *Profile {
	return &Profile{users: users, resumes: resumes, questionnaires: questionnaires, processor: processor}
}

// ensureUser inserts a placeholder row when ingestion runs for an id the
// users table has never seen, which happens for seeded or imported ids.
func (u *Profile) ensureUser(ctx context.Context, userID uuid.UUID) error {
	_, err := u.users.GetUserByID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}
	return u.users.CreateUser(ctx, user.User{
		ID:           userID,
		Email:        userID.String() + "@placeholder.invalid",
		PasswordHash: "",
	})
}

// SubmitResume stores the raw text, derives the skill list and persists
// both. Each submission is a new row; evaluation always reads the latest.
func (u *Profile) SubmitResume(ctx context.Context, userID uuid.UUID, content string) (profile.Resume, error) {
	if strings.TrimSpace(content) == "" {
		return profile.Resume{}, ErrEmptyResume
	}
	if err := u.ensureUser(ctx, userID); err != nil {
		return profile.Resume{}, err
	}

	path, skills, err := u.processor.Store(userID, content)
	if err != nil {
		return profile.Resume{}, err
	}

	res := profile.Resume{
		ID:            uuid.New(),
		UserID:        userID,
		StoragePath:   path,
		ExtractedText: content,
		DerivedSkills: skills,
	}
	if err := u.resumes.Create(ctx, res); err != nil {
		return profile.Resume{}, err
	}
	return res, nil
}

func (u *Profile) SubmitQuestionnaire(ctx context.Context, userID uuid.UUID, answers map[string]any) (profile.QuestionnaireResponse, error) {
	if len(answers) == 0 {
		return profile.QuestionnaireResponse{}, ErrEmptyQuestionnaire
	}
	if err := u.ensureUser(ctx, userID); err != nil {
		return profile.QuestionnaireResponse{}, err
	}

	q := profile.QuestionnaireResponse{
		ID:         uuid.New(),
		UserID:     userID,
		RawAnswers: answers,
		Preference: ingestion.BuildPreferenceVector(answers),
	}
	if err := u.questionnaires.Create(ctx, q); err != nil {
		return profile.QuestionnaireResponse{}, err
	}
	return q, nil
}

// Snapshot returns the latest resume and questionnaire. Either may be nil
// when the user has not submitted one yet.
func (u *Profile) Snapshot(ctx context.Context, userID uuid.UUID) (*profile.Resume, *profile.QuestionnaireResponse, error) {
	res, err := u.resumes.LatestByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	q, err := u.questionnaires.LatestByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return res, q, nil
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"jobpilot/internal/domain/profile"
	"jobpilot/internal/domain/user"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

type ResumeResponse struct {
	ID            uuid.UUID `json:"id"`
	StoragePath   string    `json:"storage_path"`
	DerivedSkills []string  `json:"derived_skills"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewResumeResponse(r profile.Resume) ResumeResponse {
	skills := r.DerivedSkills
	if skills == nil {
		skills = []string{}
	}
	return ResumeResponse{
		ID:            r.ID,
		StoragePath:   r.StoragePath,
		DerivedSkills: skills,
		CreatedAt:     r.CreatedAt,
	}
}

type QuestionnaireResponseBody struct {
	ID         uuid.UUID                `json:"id"`
	Preference profile.PreferenceVector `json:"preference_vector"`
	CreatedAt  time.Time                `json:"created_at"`
}

func NewQuestionnaireResponse(q profile.QuestionnaireResponse) QuestionnaireResponseBody {
	return QuestionnaireResponseBody{
		ID:         q.ID,
		Preference: q.Preference,
		CreatedAt:  q.CreatedAt,
	}
}

// ProfileSnapshotResponse is the combined "what would evaluation see"
// view. Nil sections mean the user never submitted that input.
type ProfileSnapshotResponse struct {
	Resume        *ResumeResponse            `json:"resume"`
	Questionnaire *QuestionnaireResponseBody `json:"questionnaire"`
}

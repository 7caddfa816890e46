package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resume is a stored résumé with the skills derived from its text.
type Resume struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	StoragePath   string
	ExtractedText string
	DerivedSkills []string
	CreatedAt     time.Time
}

// QuestionnaireResponse is a stored questionnaire with its computed
// preference vector.
type QuestionnaireResponse struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	RawAnswers map[string]any
	Preference PreferenceVector
	CreatedAt  time.Time
}

// SkillSet is a set of lowercase skill names. It is built once from a
// résumé and never mutated afterwards.
type SkillSet map[string]struct{}

func NewSkillSet(skills []string) SkillSet {
	s := make(SkillSet, len(skills))
	for _, name := range skills {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		s[name] = struct{}{}
	}
	return s
}

func (s SkillSet) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

func (s SkillSet) Len() int { return len(s) }

// Sorted-insensitive snapshot for persistence and responses.
func (s SkillSet) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	return out
}

// SalaryPreference carries the desired salary band. Nil fields mean the
// answer was not given.
type SalaryPreference struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// PreferenceVector is built once from questionnaire answers and is
// immutable after creation. Zero values mean "no preference".
type PreferenceVector struct {
	Salary    *SalaryPreference `json:"salary,omitempty"`
	Locations []string          `json:"locations,omitempty"`
	Culture   []string          `json:"culture,omitempty"`
	RemoteOK  *bool             `json:"remote_ok,omitempty"`
}

func (p PreferenceVector) HasSalary() bool {
	return p.Salary != nil && (p.Salary.Min != nil || p.Salary.Max != nil)
}

package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot/internal/domain/catalog"
	"jobpilot/internal/domain/profile"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestScore_OverlapAndGaps(t *testing.T) {
	skills := profile.NewSkillSet([]string{"python", "sql"})
	job := catalog.JobRecord{Skills: []string{"Python", "SQL", "AWS"}}

	res := Score(skills, profile.PreferenceVector{}, job)

	assert.Equal(t, 0.667, res.Score)
	assert.Equal(t, 0.05, res.Deviation)
	assert.Equal(t, []string{"python", "sql"}, res.Overlap)
	assert.Equal(t, []string{"aws"}, res.Gaps)
}

func TestScore_EmptyJobSkills(t *testing.T) {
	skills := profile.NewSkillSet([]string{"python"})

	res := Score(skills, profile.PreferenceVector{}, catalog.JobRecord{})

	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 0.0, res.Deviation)
	assert.Empty(t, res.Overlap)
	assert.Empty(t, res.Gaps)
}

func TestScore_EmptySkillSet(t *testing.T) {
	job := catalog.JobRecord{Skills: []string{"python", "sql", "aws"}}

	res := Score(profile.SkillSet{}, profile.PreferenceVector{}, job)

	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Overlap)
	assert.Equal(t, []string{"aws", "python", "sql"}, res.Gaps)
}

func TestScore_CultureBonus(t *testing.T) {
	skills := profile.NewSkillSet([]string{"python", "sql"})
	prefs := profile.PreferenceVector{Culture: []string{"collaborative", "async"}}
	job := catalog.JobRecord{
		Skills:  []string{"python", "sql"},
		Culture: []string{"Collaborative", "data-driven"},
	}

	res := Score(skills, prefs, job)

	// base 1.0 is capped before the 0.1 bonus could push it over.
	assert.Equal(t, 1.0, res.Score)

	partial := Score(profile.NewSkillSet([]string{"python"}), prefs, job)
	// 0.5 base + 1/2 * 0.2 bonus
	assert.Equal(t, 0.6, partial.Score)
}

func TestScore_CultureBonusRequiresBothSides(t *testing.T) {
	skills := profile.NewSkillSet([]string{"python"})
	job := catalog.JobRecord{Skills: []string{"python", "sql"}, Culture: []string{"async"}}

	noPrefs := Score(skills, profile.PreferenceVector{}, job)
	assert.Equal(t, 0.5, noPrefs.Score)

	noJobCulture := Score(skills, profile.PreferenceVector{Culture: []string{"async"}},
		catalog.JobRecord{Skills: []string{"python", "sql"}})
	assert.Equal(t, 0.5, noJobCulture.Score)
}

func TestScore_SalaryDeviation(t *testing.T) {
	tests := []struct {
		name string
		pref *profile.SalaryPreference
		job  catalog.JobRecord
		want float64
	}{
		{
			name: "no preference means no deviation",
			pref: nil,
			job:  catalog.JobRecord{SalaryMin: fptr(150000)},
			want: 0,
		},
		{
			name: "job without salary gets fixed penalty",
			pref: &profile.SalaryPreference{Min: iptr(100000)},
			job:  catalog.JobRecord{},
			want: 0.5,
		},
		{
			name: "relative distance from preferred min",
			pref: &profile.SalaryPreference{Min: iptr(100000)},
			job:  catalog.JobRecord{SalaryMin: fptr(150000)},
			want: 0.5,
		},
		{
			name: "falls back to preferred max",
			pref: &profile.SalaryPreference{Max: iptr(120000)},
			job:  catalog.JobRecord{SalaryMin: fptr(110000)},
			want: 0.083,
		},
		{
			name: "exact match",
			pref: &profile.SalaryPreference{Min: iptr(110000)},
			job:  catalog.JobRecord{SalaryMin: fptr(110000)},
			want: 0,
		},
		{
			name: "job max used when min missing",
			pref: &profile.SalaryPreference{Min: iptr(100000)},
			job:  catalog.JobRecord{SalaryMax: fptr(120000)},
			want: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := profile.PreferenceVector{Salary: tt.pref}
			res := Score(profile.SkillSet{}, prefs, tt.job)
			assert.Equal(t, tt.want, res.Deviation)
		})
	}
}

func TestScore_GapPenaltyAddsToSalaryDeviation(t *testing.T) {
	skills := profile.NewSkillSet([]string{"python"})
	prefs := profile.PreferenceVector{Salary: &profile.SalaryPreference{Min: iptr(100000)}}
	job := catalog.JobRecord{
		Skills:    []string{"python", "sql", "aws"},
		SalaryMin: fptr(110000),
	}

	res := Score(skills, prefs, job)

	// 10000/100000 salary distance plus two gaps at 0.05 each.
	assert.Equal(t, 0.2, res.Deviation)
}

func TestScore_Bounds(t *testing.T) {
	skills := profile.NewSkillSet([]string{"python", "sql", "aws", "docker"})
	prefs := profile.PreferenceVector{Culture: []string{"async"}}
	job := catalog.JobRecord{
		Skills:  []string{"python", "sql", "aws", "docker"},
		Culture: []string{"async"},
	}

	res := Score(skills, prefs, job)

	require.LessOrEqual(t, res.Score, 1.0)
	assert.Equal(t, 1.0, res.Score)
	assert.GreaterOrEqual(t, res.Deviation, 0.0)
}

func TestScore_Deterministic(t *testing.T) {
	skills := profile.NewSkillSet([]string{"python", "ml"})
	prefs := profile.PreferenceVector{
		Salary:  &profile.SalaryPreference{Min: iptr(100000), Max: iptr(140000)},
		Culture: []string{"collaborative"},
	}
	job := catalog.JobRecord{
		Skills:    []string{"Python", "ML", "NLP"},
		Culture:   []string{"collaborative"},
		SalaryMin: fptr(120000),
	}

	first := Score(skills, prefs, job)
	second := Score(skills, prefs, job)

	assert.Equal(t, first, second)
}

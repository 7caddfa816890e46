package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPreferenceVector_Full(t *testing.T) {
	answers := map[string]any{
		"preferred_salary_min": float64(110000),
		"preferred_salary_max": 140000,
		"preferred_locations":  []any{"Remote", " Berlin "},
		"culture_keywords":     []any{"Collaborative", "ASYNC"},
		"remote_ok":            true,
	}

	v := BuildPreferenceVector(answers)

	require.NotNil(t, v.Salary)
	require.NotNil(t, v.Salary.Min)
	require.NotNil(t, v.Salary.Max)
	assert.Equal(t, 110000, *v.Salary.Min)
	assert.Equal(t, 140000, *v.Salary.Max)
	assert.Equal(t, []string{"remote", "berlin"}, v.Locations)
	assert.Equal(t, []string{"collaborative", "async"}, v.Culture)
	require.NotNil(t, v.RemoteOK)
	assert.True(t, *v.RemoteOK)
}

func TestBuildPreferenceVector_SalaryFallbackKeys(t *testing.T) {
	v := BuildPreferenceVector(map[string]any{
		"salary_min": 90000,
		"salary_max": 120000,
	})

	require.NotNil(t, v.Salary)
	assert.Equal(t, 90000, *v.Salary.Min)
	assert.Equal(t, 120000, *v.Salary.Max)
}

func TestBuildPreferenceVector_Empty(t *testing.T) {
	v := BuildPreferenceVector(map[string]any{})

	assert.Nil(t, v.Salary)
	assert.Nil(t, v.Locations)
	assert.Nil(t, v.Culture)
	assert.Nil(t, v.RemoteOK)
	assert.False(t, v.HasSalary())
}

func TestBuildPreferenceVector_IgnoresWrongTypes(t *testing.T) {
	v := BuildPreferenceVector(map[string]any{
		"preferred_salary_min": "not a number",
		"remote_ok":            "yes",
		"culture_keywords":     "collaborative",
	})

	assert.Nil(t, v.Salary)
	assert.Nil(t, v.RemoteOK)
	assert.Nil(t, v.Culture)
}

func TestBuildPreferenceVector_PartialSalary(t *testing.T) {
	v := BuildPreferenceVector(map[string]any{"preferred_salary_min": 100000})

	require.NotNil(t, v.Salary)
	assert.Equal(t, 100000, *v.Salary.Min)
	assert.Nil(t, v.Salary.Max)
	assert.True(t, v.HasSalary())
}

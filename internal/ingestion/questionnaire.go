package ingestion

import (
	"strings"

	"jobpilot/internal/domain/profile"
)

// BuildPreferenceVector computes the preference vector from raw
// questionnaire answers. Keys the answers do not carry stay unset.
func BuildPreferenceVector(answers map[string]any) profile.PreferenceVector {
	var vector profile.PreferenceVector

	salaryMin := intAnswer(answers, "preferred_salary_min", "salary_min")
	salaryMax := intAnswer(answers, "preferred_salary_max", "salary_max")
	if salaryMin != nil || salaryMax != nil {
		vector.Salary = &profile.SalaryPreference{Min: salaryMin, Max: salaryMax}
	}

	if locs := stringListAnswer(answers, "preferred_locations"); locs != nil {
		vector.Locations = locs
	}
	if culture := stringListAnswer(answers, "culture_keywords"); culture != nil {
		vector.Culture = culture
	}

	if remote, ok := answers["remote_ok"].(bool); ok {
		vector.RemoteOK = &remote
	}

	return vector
}

func intAnswer(answers map[string]any, keys ...string) *int {
	for _, key := range keys {
		raw, ok := answers[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case int:
			return &v
		case int64:
			n := int(v)
			return &n
		case float64:
			// JSON numbers decode as float64.
			n := int(v)
			return &n
		}
	}
	return nil
}

func stringListAnswer(answers map[string]any, key string) []string {
	raw, ok := answers[key]
	if !ok || raw == nil {
		return nil
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			out = append(out, strings.ToLower(strings.TrimSpace(s)))
		}
		return out
	default:
		return nil
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

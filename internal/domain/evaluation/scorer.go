// Package evaluation scores catalog jobs against a user profile. Scoring is
// a pure function over in-memory values; persistence and thresholds belong
// to the caller.
package evaluation

import (
	"math"
	"sort"
	"strings"

	"jobpilot/internal/domain/catalog"
	"jobpilot/internal/domain/profile"
)

const (
	// Weight of the culture-keyword bonus on top of the skill overlap.
	cultureBonusWeight = 0.2
	// Fixed penalty when the user has a salary preference but the job
	// carries no salary data at all.
	unknownSalaryPenalty = 0.5
	// Deviation added per missing skill.
	gapPenaltyPerSkill = 0.05
)

// MatchResult is the scored outcome of one (profile, job) comparison.
// Never mutated after creation.
type MatchResult struct {
	Score     float64
	Deviation float64
	Overlap   []string
	Gaps      []string
}

// Score compares a skill set and preference vector against one job record.
// Score is in [0,1]; Deviation is >= 0; both rounded to 3 decimals.
func Score(skills profile.SkillSet, prefs profile.PreferenceVector, job catalog.JobRecord) MatchResult {
	jobSkills := make(map[string]struct{}, len(job.Skills))
	for _, s := range job.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		jobSkills[s] = struct{}{}
	}

	overlap := make([]string, 0, len(jobSkills))
	gaps := make([]string, 0, len(jobSkills))
	for s := range jobSkills {
		if _, ok := skills[s]; ok {
			overlap = append(overlap, s)
		} else {
			gaps = append(gaps, s)
		}
	}
	sort.Strings(overlap)
	sort.Strings(gaps)

	baseScore := 0.0
	if len(jobSkills) > 0 {
		baseScore = float64(len(overlap)) / float64(len(jobSkills))
	}

	score := baseScore + cultureBonus(prefs, job)
	if score > 1.0 {
		score = 1.0
	}

	deviation := salaryDeviation(prefs, job) + gapPenaltyPerSkill*float64(len(gaps))

	return MatchResult{
		Score:     round3(score),
		Deviation: round3(deviation),
		Overlap:   overlap,
		Gaps:      gaps,
	}
}

func cultureBonus(prefs profile.PreferenceVector, job catalog.JobRecord) float64 {
	desired := lowerSet(prefs.Culture)
	jobCulture := lowerSet(job.Culture)
	if len(desired) == 0 || len(jobCulture) == 0 {
		return 0
	}

	overlap := 0
	for kw := range desired {
		if _, ok := jobCulture[kw]; ok {
			overlap++
		}
	}
	return round3(float64(overlap) / float64(len(desired)) * cultureBonusWeight)
}

// salaryDeviation measures how far the job's salary sits from the preferred
// one. The fallback chain (preferred min, preferred max, job min, job max,
// zero) conflates preferred and observed salary when one side is missing;
// that matches the historical behavior and is relied on downstream.
func salaryDeviation(prefs profile.PreferenceVector, job catalog.JobRecord) float64 {
	if !prefs.HasSalary() {
		return 0
	}

	if job.SalaryMin == nil && job.SalaryMax == nil {
		return unknownSalaryPenalty
	}

	target := firstNonZero(
		intValue(prefs.Salary.Min),
		intValue(prefs.Salary.Max),
		floatValue(job.SalaryMin),
		floatValue(job.SalaryMax),
	)
	jobValue := firstNonZero(floatValue(job.SalaryMin), floatValue(job.SalaryMax), target)
	if target == 0 {
		return 0
	}

	delta := math.Abs(jobValue - target)
	return round3(delta / math.Max(target, 1))
}

func lowerSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" {
			continue
		}
		out[it] = struct{}{}
	}
	return out
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func intValue(p *int) float64 {
	if p == nil {
		return 0
	}
	return float64(*p)
}

func floatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

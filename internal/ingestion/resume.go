// Package ingestion turns raw résumé text and questionnaire answers into
// the profile values the evaluator consumes.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Skill keywords recognized in résumé text. Matching is exact against
// lowercase tokens.
var skillKeywords = []string{
	"python", "javascript", "typescript", "sql", "aws", "gcp", "azure",
	"docker", "kubernetes", "django", "fastapi", "react", "node", "ml", "nlp",
	"go", "postgresql", "redis",
}

var tokenSplitRe = regexp.MustCompile(`[^A-Za-z0-9#+]+`)

// ResumeProcessor stores résumé text on disk and derives the skill list.
type ResumeProcessor struct {
	storageDir string
}

func NewResumeProcessor(storageDir string) *ResumeProcessor {
	return &ResumeProcessor{storageDir: storageDir}
}

// Store writes the raw text under the storage directory and returns the
// file path together with the derived skills.
func (p *ResumeProcessor) Store(userID uuid.UUID, content string) (string, []string, error) {
	if err := os.MkdirAll(p.storageDir, 0o755); err != nil {
		return "", nil, err
	}

	path := filepath.Join(p.storageDir, fmt.Sprintf("%s_%s.txt", userID, uuid.NewString()))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", nil, err
	}

	return path, ExtractSkills(content), nil
}

// ExtractSkills tokenizes résumé text and intersects it with the known
// skill keywords. The result is sorted and lowercase.
func ExtractSkills(resumeText string) []string {
	tokens := make(map[string]struct{})
	for _, tok := range tokenSplitRe.Split(resumeText, -1) {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			tokens[tok] = struct{}{}
		}
	}

	found := make([]string, 0)
	for _, kw := range skillKeywords {
		if _, ok := tokens[kw]; ok {
			found = append(found, kw)
		}
	}
	sort.Strings(found)
	return found
}

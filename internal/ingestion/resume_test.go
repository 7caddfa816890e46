package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills(t *testing.T) {
	text := "Built Python services with SQL and AWS. Shipped Docker images, some C#, no cobol."

	got := ExtractSkills(text)

	assert.Equal(t, []string{"aws", "docker", "python", "sql"}, got)
}

func TestExtractSkills_TokenBoundaries(t *testing.T) {
	// Punctuation splits tokens; '#' and '+' do not.
	got := ExtractSkills("python,sql;aws|typescript")
	assert.Equal(t, []string{"aws", "python", "sql", "typescript"}, got)

	// Skill only appears welded to another word, so it is not a token.
	assert.Empty(t, ExtractSkills("pythonic sqly"))
}

func TestExtractSkills_NoMatches(t *testing.T) {
	assert.Empty(t, ExtractSkills("managed a team of gardeners"))
	assert.Empty(t, ExtractSkills(""))
}

func TestResumeProcessorStore(t *testing.T) {
	dir := t.TempDir()
	p := NewResumeProcessor(filepath.Join(dir, "resumes"))
	userID := uuid.New()

	path, skills, err := p.Store(userID, "Python and SQL all day")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), userID.String()+"_"))
	assert.Equal(t, []string{"python", "sql"}, skills)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Python and SQL all day", string(content))
}

func TestResumeProcessorStore_UniquePaths(t *testing.T) {
	p := NewResumeProcessor(t.TempDir())
	userID := uuid.New()

	first, _, err := p.Store(userID, "sql")
	require.NoError(t, err)
	second, _, err := p.Store(userID, "sql")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "jobpilot/internal/domain/catalog"
)

func TestFileStoreLoad_MissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	records, err := s.Load()

	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestFileStoreLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()

	assert.Error(t, err)
}

func TestFileStoreSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	s := NewFileStore(path)

	min := 95000.0
	in := []domain.JobRecord{
		{
			ExternalID: "job-1",
			Title:      "Backend Engineer",
			Company:    "Acme",
			SalaryMin:  &min,
			Skills:     []string{"python", "sql"},
		},
		{ExternalID: "job-2", Title: "Data Engineer", Company: "Beta"},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "job-1", out[0].ExternalID)
	assert.Equal(t, []string{"python", "sql"}, out[0].Skills)
	require.NotNil(t, out[0].SalaryMin)
	assert.Equal(t, 95000.0, *out[0].SalaryMin)
	assert.Equal(t, "sample", out[1].SourceOrDefault())
}

func TestFileStoreLoad_PreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	s := NewFileStore(path)

	in := []domain.JobRecord{
		{ExternalID: "c", Title: "Third"},
		{ExternalID: "a", Title: "First"},
		{ExternalID: "b", Title: "Second"},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	ids := []string{out[0].ExternalID, out[1].ExternalID, out[2].ExternalID}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

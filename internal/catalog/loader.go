// Package catalog loads the job catalog the evaluator scores against: a
// local JSON sample file, optionally rewritten from a remote listing page.
package catalog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	domain "jobpilot/internal/domain/catalog"
)

// FileStore reads and rewrites the sample catalog file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the catalog in file order. A missing file is an empty
// catalog, not an error; a corrupt file surfaces.
func (s *FileStore) Load() ([]domain.JobRecord, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var records []domain.JobRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *FileStore) Save(records []domain.JobRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

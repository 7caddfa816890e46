package usecase

import (
	"context"
	"errors"
	"log"

	"jobpilot/internal/catalog"
	domcatalog "jobpilot/internal/domain/catalog"
)

var ErrInvalidCatalogSource = errors.New("invalid catalog source")

// CatalogStore is the writable side of the catalog file.
type CatalogStore interface {
	Load() ([]domcatalog.JobRecord, error)
	Save(records []domcatalog.JobRecord) error
}

// CatalogRefreshResult reports one refresh: how many jobs the remote page
// yielded and how many were new to the catalog.
type CatalogRefreshResult struct {
	Fetched int `json:"fetched"`
	Added   int `json:"added"`
	Total   int `json:"total"`
}

type CatalogUsecase interface {
	List(ctx context.Context) ([]domcatalog.JobRecord, error)
	Refresh(ctx context.Context, src catalog.RemoteSource, limit int) (CatalogRefreshResult, error)
}

type Catalog struct {
	store   CatalogStore
	fetcher *catalog.Fetcher
	logger  *log.Logger
}

func NewCatalogUsecase(store CatalogStore, fetcher *catalog.Fetcher, logger *log.Logger) *Catalog {
	return &Catalog{store: store, fetcher: fetcher, logger: logger}
}

func (u *Catalog) List(ctx context.Context) ([]domcatalog.JobRecord, error) {
	records, err := u.store.Load()
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = make([]domcatalog.JobRecord, 0)
	}
	return records, nil
}

// Refresh scrapes the remote source and merges new jobs into the catalog
// file. Existing entries are kept; remote jobs whose external id is
// already present are skipped.
func (u *Catalog) Refresh(ctx context.Context, src catalog.RemoteSource, limit int) (CatalogRefreshResult, error) {
	if src.ListURL == "" {
		return CatalogRefreshResult{}, ErrInvalidCatalogSource
	}

	fetched, err := u.fetcher.Fetch(ctx, src, limit)
	if err != nil {
		return CatalogRefreshResult{}, err
	}

	existing, err := u.store.Load()
	if err != nil {
		return CatalogRefreshResult{}, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		if r.ExternalID != "" {
			known[r.ExternalID] = struct{}{}
		}
	}

	merged := existing
	added := 0
	for _, r := range fetched {
		if r.ExternalID != "" {
			if _, ok := known[r.ExternalID]; ok {
				continue
			}
			known[r.ExternalID] = struct{}{}
		}
		merged = append(merged, r)
		added++
	}

	if added > 0 {
		if err := u.store.Save(merged); err != nil {
			return CatalogRefreshResult{}, err
		}
	}

	u.logger.Printf("Catalog refresh | source=%s fetched=%d added=%d total=%d",
		src.Name, len(fetched), added, len(merged))

	return CatalogRefreshResult{Fetched: len(fetched), Added: added, Total: len(merged)}, nil
}

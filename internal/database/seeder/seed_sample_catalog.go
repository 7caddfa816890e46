package seeder

import (
	"context"

	"jobpilot/internal/catalog"
	"jobpilot/internal/database"
	domain "jobpilot/internal/domain/catalog"
)

// SampleCatalogSeeder writes the bundled demo catalog when no catalog
// file exists yet. An existing file, even an empty one, is left alone.
type SampleCatalogSeeder struct {
	Store *catalog.FileStore
}

func (SampleCatalogSeeder) Name() string { return "sample_catalog" }

func (s SampleCatalogSeeder) Run(ctx context.Context, _ database.DB) error {
	if s.Store == nil {
		return nil
	}

	existing, err := s.Store.Load()
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	return s.Store.Save(sampleJobs())
}

func sampleJobs() []domain.JobRecord {
	f := func(v float64) *float64 { return &v }

	return []domain.JobRecord{
		{
			ExternalID: "sample-001",
			Title:      "Backend Engineer",
			Company:    "Northwind Analytics",
			Location:   "Berlin",
			SalaryMin:  f(95000),
			SalaryMax:  f(120000),
			RemoteType: "hybrid",
			Skills:     []string{"Python", "SQL", "AWS", "Docker"},
			Culture:    []string{"collaborative", "data-driven"},
			URL:        "https://jobs.example.com/northwind/backend-engineer",
		},
		{
			ExternalID: "sample-002",
			Title:      "Data Platform Engineer",
			Company:    "Lumen Labs",
			Location:   "Remote",
			SalaryMin:  f(110000),
			SalaryMax:  f(140000),
			RemoteType: "remote",
			Skills:     []string{"Python", "SQL", "Kubernetes", "GCP"},
			Culture:    []string{"async", "autonomous"},
			URL:        "https://jobs.example.com/lumen/data-platform",
		},
		{
			ExternalID: "sample-003",
			Title:      "Machine Learning Engineer",
			Company:    "Brightpath AI",
			Location:   "Amsterdam",
			SalaryMin:  f(120000),
			SalaryMax:  f(155000),
			RemoteType: "onsite",
			Skills:     []string{"Python", "ML", "NLP", "Docker", "AWS"},
			Culture:    []string{"research-minded", "collaborative"},
			URL:        "https://jobs.example.com/brightpath/ml-engineer",
		},
		{
			ExternalID: "sample-004",
			Title:      "Full Stack Developer",
			Company:    "Seaside Software",
			Location:   "Lisbon",
			RemoteType: "hybrid",
			Skills:     []string{"JavaScript", "TypeScript", "React", "Node"},
			Culture:    []string{"product-led"},
			URL:        "https://jobs.example.com/seaside/full-stack",
			Notes:      "No salary band published",
		},
		{
			ExternalID: "sample-005",
			Title:      "Platform Reliability Engineer",
			Company:    "Granite Cloud",
			Location:   "Remote",
			SalaryMin:  f(105000),
			SalaryMax:  f(135000),
			RemoteType: "remote",
			Skills:     []string{"Go", "Kubernetes", "Docker", "PostgreSQL"},
			Culture:    []string{"async", "on-call friendly"},
			URL:        "https://jobs.example.com/granite/reliability",
		},
	}
}

package seeder

import (
	"jobpilot/internal/catalog"
	"jobpilot/internal/config"
)

func Defaults(cfg config.Config) []Seeder {
	return []Seeder{
		SampleCatalogSeeder{Store: catalog.NewFileStore(cfg.Storage.SampleJobFile)},
		DemoUserSeeder{ResumeDir: cfg.Storage.ResumeDir},
	}
}

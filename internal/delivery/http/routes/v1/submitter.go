package v1

import (
	"log"

	"jobpilot/internal/automation"
	"jobpilot/internal/config"
)

func automationSubmitter(cfg config.Config, logger *log.Logger) *automation.Submitter {
	return automation.NewSubmitter(cfg.Application.Headless, cfg.Application.SubmitTimeout, logger)
}

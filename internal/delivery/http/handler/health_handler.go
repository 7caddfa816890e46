package handler

import (
	"context"
	"time"

	"jobpilot/internal/database"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, cacheClient *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cacheClient}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
	}

	cacheStatus := "up"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		// The service runs fine without Redis, report it but stay healthy.
		cacheStatus = "down"
	}

	status := fiber.StatusOK
	if dbStatus == "down" {
		status = fiber.StatusServiceUnavailable
	}

	data := map[string]any{
		"database": dbStatus,
		"cache":    cacheStatus,
	}
	if status != fiber.StatusOK {
		return response.Error(c, status, response.DefaultMessageForStatus(status), data)
	}
	return response.Success(c, status, response.MessageOK, data)
}

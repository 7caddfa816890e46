package routes

import (
	"log"

	"jobpilot/internal/config"
	"jobpilot/internal/database"
	"jobpilot/internal/delivery/http/handler"
	v1 "jobpilot/internal/delivery/http/routes/v1"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries what handler construction needs.
type Deps struct {
	Cfg    config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

type Registry struct {
	deps Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(r.deps.DB, r.deps.Cache)
	health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Cfg:    r.deps.Cfg,
		DB:     r.deps.DB,
		Cache:  r.deps.Cache,
		Hub:    r.deps.Hub,
		Logger: r.deps.Logger,
	})
}

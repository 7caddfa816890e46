package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"jobpilot/internal/database/migration"
	"jobpilot/internal/database/seeder"
	"jobpilot/internal/delivery/http/middleware"
	"jobpilot/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap wires the full HTTP service: infrastructure container,
// migrations, seed data, middleware and routes. The returned cleanup
// releases the container.
func Bootstrap(c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, fmt.Errorf("nil container")
	}

	if err := os.MkdirAll(c.Config.Storage.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	runner := migration.Runner{Dir: "migrations"}
	if err := runner.Run(ctx, c.DB.SQLDB()); err != nil {
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	seedRunner := seeder.Runner{Seeders: seeder.Defaults(c.Config)}
	if err := seedRunner.Run(ctx, c.DB); err != nil {
		return nil, nil, fmt.Errorf("seeding: %w", err)
	}

	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	registry := routes.NewRegistry(routes.Deps{
		Cfg:    c.Config,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Logger: c.Logger,
	})
	registry.Register(f)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

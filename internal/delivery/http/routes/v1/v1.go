package v1

import (
	"log"

	"jobpilot/internal/catalog"
	"jobpilot/internal/config"
	"jobpilot/internal/database"
	"jobpilot/internal/delivery/http/handler"
	"jobpilot/internal/delivery/http/middleware"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/ingestion"
	"jobpilot/internal/pkg/jwt"
	"jobpilot/internal/repository"
	"jobpilot/internal/usecase"
	"jobpilot/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Cfg    config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	cfg := deps.Cfg

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	resumeRepo := repository.NewPostgresResumeRepository(deps.DB)
	questionnaireRepo := repository.NewPostgresQuestionnaireRepository(deps.DB)
	matchRepo := repository.NewPostgresJobMatchRepository(deps.DB)
	logRepo := repository.NewPostgresApplicationLogRepository(deps.DB)
	captchaRepo := repository.NewPostgresCaptchaQueueRepository(deps.DB)

	processor := ingestion.NewResumeProcessor(cfg.Storage.ResumeDir)
	catalogStore := catalog.NewFileStore(cfg.Storage.SampleJobFile)
	fetcher := catalog.NewFetcher(deps.Logger)
	submitter := automationSubmitter(cfg, deps.Logger)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(userRepo, resumeRepo, questionnaireRepo, processor)
	evaluationUC := usecase.NewEvaluationUsecase(resumeRepo, questionnaireRepo, matchRepo, catalogStore, deps.Cache, cfg.Evaluation, deps.Logger)
	applicationUC := usecase.NewApplicationUsecase(matchRepo, logRepo, captchaRepo, submitter, deps.Cache, deps.Logger)
	catalogUC := usecase.NewCatalogUsecase(catalogStore, fetcher, deps.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	evaluationHandler := handler.NewEvaluationHandler(evaluationUC)
	applicationHandler := handler.NewApplicationHandler(applicationUC)
	catalogHandler := handler.NewCatalogHandler(catalogUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())

	users := protected.Group("/users")
	profileHandler.RegisterRoutes(users)
	evaluationHandler.RegisterRoutes(users)
	applicationHandler.RegisterRoutes(users)

	applicationHandler.RegisterCaptchaRoutes(protected.Group("/captcha"))
	catalogHandler.RegisterRoutes(protected.Group("/catalog"))

	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)
	r.Get("/ws", wsHandler.HandleApplicationsWS)
}

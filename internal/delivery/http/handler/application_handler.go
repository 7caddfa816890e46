package handler

import (
	"errors"

	"jobpilot/internal/delivery/http/dto"
	"jobpilot/internal/delivery/http/middleware"
	"jobpilot/internal/pkg/response"
	"jobpilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type submitRequest struct {
	Answers map[string]any `json:"answers"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/me/jobs/:job_id/submit", h.Submit)
}

func (h *ApplicationHandler) RegisterCaptchaRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.CaptchaQueue)
}

func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	matchID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req submitRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.SubmitApplication(c.Context(), userID, matchID, req.Answers)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	data := map[string]any{
		"application": dto.NewApplicationLogResponse(out.Log),
		"match":       dto.NewJobMatchResponse(out.Match),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ApplicationHandler) CaptchaQueue(c fiber.Ctx) error {
	rows, err := h.uc.CaptchaQueue(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCaptchaQueueResponse(rows))
}

func mapApplicationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job match not found", nil, err)
	case errors.Is(err, usecase.ErrMatchNotSubmittable):
		return middleware.NewAppError(fiber.StatusConflict, "Job match already processed", nil, err)
	case errors.Is(err, usecase.ErrNoListingURL):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job match has no listing url", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

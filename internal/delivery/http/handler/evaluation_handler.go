package handler

import (
	"errors"

	"jobpilot/internal/delivery/http/dto"
	"jobpilot/internal/delivery/http/middleware"
	"jobpilot/internal/pkg/response"
	"jobpilot/internal/repository"
	"jobpilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EvaluationHandler struct {
	uc usecase.EvaluationUsecase
}

func NewEvaluationHandler(uc usecase.EvaluationUsecase) *EvaluationHandler {
	return &EvaluationHandler{uc: uc}
}

func (h *EvaluationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/me/evaluate", h.Evaluate)
	r.Get("/me/jobs", h.ListMatches)
	r.Get("/me/jobs/:job_id", h.GetMatch)
}

func (h *EvaluationHandler) Evaluate(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.Evaluate(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrEvaluationInProgress) {
			return middleware.NewAppError(fiber.StatusConflict, "Evaluation already running", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	data := dto.EvaluationSummaryResponse{
		JobsConsidered: summary.JobsConsidered,
		Duplicates:     summary.Duplicates,
		Accepted:       summary.Accepted,
		Stored:         summary.Stored,
		Matches:        dto.NewJobMatchListResponse(summary.Matches),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *EvaluationHandler) ListMatches(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	matches, err := h.uc.ListMatches(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobMatchListResponse(matches))
}

func (h *EvaluationHandler) GetMatch(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	matchID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	m, err := h.uc.GetMatch(c.Context(), userID, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrJobMatchNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job match not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobMatchResponse(m))
}

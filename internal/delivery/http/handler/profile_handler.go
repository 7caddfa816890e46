package handler

import (
	"errors"

	"jobpilot/internal/delivery/http/dto"
	"jobpilot/internal/delivery/http/middleware"
	"jobpilot/internal/pkg/response"
	"jobpilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type resumeRequest struct {
	Content string `json:"content"`
}

type questionnaireRequest struct {
	Answers map[string]any `json:"answers"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/me/resume", h.SubmitResume)
	r.Post("/me/questionnaire", h.SubmitQuestionnaire)
	r.Get("/me/profile", h.Snapshot)
}

func (h *ProfileHandler) SubmitResume(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req resumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.SubmitResume(c.Context(), userID, req.Content)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewResumeResponse(res))
}

func (h *ProfileHandler) SubmitQuestionnaire(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req questionnaireRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	q, err := h.uc.SubmitQuestionnaire(c.Context(), userID, req.Answers)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewQuestionnaireResponse(q))
}

func (h *ProfileHandler) Snapshot(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	res, q, err := h.uc.Snapshot(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	snap := dto.ProfileSnapshotResponse{}
	if res != nil {
		r := dto.NewResumeResponse(*res)
		snap.Resume = &r
	}
	if q != nil {
		qr := dto.NewQuestionnaireResponse(*q)
		snap.Questionnaire = &qr
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, snap)
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmptyResume):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume content required", nil, err)
	case errors.Is(err, usecase.ErrEmptyQuestionnaire):
		return middleware.NewAppError(fiber.StatusBadRequest, "Questionnaire answers required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

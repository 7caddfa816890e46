package handler

import (
	"errors"

	"jobpilot/internal/catalog"
	"jobpilot/internal/delivery/http/middleware"
	"jobpilot/internal/pkg/response"
	"jobpilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

type refreshRequest struct {
	Name            string `json:"name"`
	ListURL         string `json:"list_url"`
	LinkSelector    string `json:"link_selector"`
	TitleSelector   string `json:"title_selector"`
	CompanySelector string `json:"company_selector"`
	Limit           int    `json:"limit"`
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/refresh", h.Refresh)
}

func (h *CatalogHandler) List(c fiber.Ctx) error {
	records, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, records)
}

func (h *CatalogHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	src := catalog.RemoteSource{
		Name:            req.Name,
		ListURL:         req.ListURL,
		LinkSelector:    req.LinkSelector,
		TitleSelector:   req.TitleSelector,
		CompanySelector: req.CompanySelector,
	}

	result, err := h.uc.Refresh(c.Context(), src, req.Limit)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCatalogSource) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Catalog source requires a list url", nil, err)
		}
		return middleware.NewAppError(fiber.StatusBadGateway, "Catalog refresh failed", nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

package handler

import (
	"jobpilot/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// userIDFromCtx reads the authenticated user id the auth middleware
// stored in locals.
func userIDFromCtx(c fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals(middleware.CtxUserIDKey)
	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

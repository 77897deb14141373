package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stepforge/onboarding-backend/internal/dto"
	"github.com/stepforge/onboarding-backend/internal/services"
	"github.com/stepforge/onboarding-backend/internal/store"
)

// SubjectsHandler serves the read-only data viewer.
type SubjectsHandler struct {
	viewerService *services.ViewerService
	storeTimeout  time.Duration
}

func NewSubjectsHandler(viewerService *services.ViewerService, storeTimeout time.Duration) *SubjectsHandler {
	return &SubjectsHandler{viewerService: viewerService, storeTimeout: storeTimeout}
}

func (h *SubjectsHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	views, err := h.viewerService.ListSubjects(ctx)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load users. Please try again.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"count":    len(views),
		"subjects": views,
	})
}

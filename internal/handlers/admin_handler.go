package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stepforge/onboarding-backend/internal/dto"
	"github.com/stepforge/onboarding-backend/internal/services"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stepforge/onboarding-backend/internal/wizard"
)

type AdminHandler struct {
	configService *services.StepConfigService
	storeTimeout  time.Duration
}

func NewAdminHandler(configService *services.StepConfigService, storeTimeout time.Duration) *AdminHandler {
	return &AdminHandler{configService: configService, storeTimeout: storeTimeout}
}

// GetConfig returns the current component-to-page assignments.
func (h *AdminHandler) GetConfig(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	assignments, err := h.configService.List(ctx)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"assignments": assignments})
}

// SaveConfig commits a full proposed assignment set. The set is validated
// before anything is written; a rejected set leaves the stored
// configuration untouched.
func (h *AdminHandler) SaveConfig(c *fiber.Ctx) error {
	var req dto.SaveConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	set := make(wizard.ConfigSet, len(req.Assignments))
	for _, a := range req.Assignments {
		component, err := wizard.ParseComponentType(a.ComponentType)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if err := set.SetPage(component, a.PageNumber); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	if err := h.configService.Commit(ctx, set); err != nil {
		var emptyPage *wizard.EmptyPageError
		switch {
		case errors.As(err, &emptyPage):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Error: true, Message: emptyPage.Error(),
			})
		case errors.Is(err, wizard.ErrInvalidPage):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, store.ErrUnavailable):
			return h.mapError(c, err)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Configuration saved successfully",
	})
}

// GetDefaults returns the seeded default mapping for the admin surface to
// stage locally. Nothing is persisted.
func (h *AdminHandler) GetDefaults(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"assignments": h.configService.Defaults()})
}

func (h *AdminHandler) mapError(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save configuration. Please try again.",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

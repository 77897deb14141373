package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stepforge/onboarding-backend/internal/dto"
	"github.com/stepforge/onboarding-backend/internal/services"
	"github.com/stepforge/onboarding-backend/internal/session"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stepforge/onboarding-backend/internal/wizard"
)

type WizardHandler struct {
	wizardService *services.WizardService
	storeTimeout  time.Duration
}

func NewWizardHandler(wizardService *services.WizardService, storeTimeout time.Duration) *WizardHandler {
	return &WizardHandler{wizardService: wizardService, storeTimeout: storeTimeout}
}

// State resumes a session: the step to re-enter at and the saved draft.
func (h *WizardHandler) State(c *fiber.Ctx) error {
	subjectID, err := session.SubjectID(c)
	if err != nil {
		return sessionInvalid(c)
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	state, err := h.wizardService.Resume(ctx, subjectID)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(dto.WizardStateResponse{
		Step:      state.Step,
		Completed: state.Completed,
		Email:     state.Email,
		Draft: dto.DraftPayload{
			AboutMe:       state.Draft.AboutMe,
			StreetAddress: state.Draft.StreetAddress,
			City:          state.Draft.City,
			State:         state.Draft.State,
			Zip:           state.Draft.Zip,
			Birthdate:     state.Draft.Birthdate,
		},
		DynamicPages: state.DynamicPages,
		TotalSteps:   state.TotalSteps,
	})
}

// Page returns the components resolved for a dynamic page, freshly read
// from the configuration store.
func (h *WizardHandler) Page(c *fiber.Ctx) error {
	page, err := c.ParamsInt("page")
	if err != nil {
		return unknownPage(c)
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	components, err := h.wizardService.ComponentsForPage(ctx, page)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":       page,
		"components": components,
	})
}

// Submit validates and persists one dynamic page of the draft.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	subjectID, err := session.SubjectID(c)
	if err != nil {
		return sessionInvalid(c)
	}

	page, err := c.ParamsInt("page")
	if err != nil {
		return unknownPage(c)
	}

	var payload dto.DraftPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	result, err := h.wizardService.SubmitPage(ctx, subjectID, page, wizard.Draft{
		AboutMe:       payload.AboutMe,
		StreetAddress: payload.StreetAddress,
		City:          payload.City,
		State:         payload.State,
		Zip:           payload.Zip,
		Birthdate:     payload.Birthdate,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	if len(result.FieldErrors) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Error:       true,
			Message:     "Please correct the highlighted fields",
			FieldErrors: result.FieldErrors,
		})
	}

	return c.JSON(dto.SubmitResponse{NextStep: result.NextStep})
}

// Back computes the previous dynamic page. No record mutation.
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	page, err := c.ParamsInt("page")
	if err != nil {
		return unknownPage(c)
	}

	prev, err := h.wizardService.Back(page)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Cannot navigate back from this step",
		})
	}
	return c.JSON(fiber.Map{"step": prev})
}

// Complete marks the onboarding finished.
func (h *WizardHandler) Complete(c *fiber.Ctx) error {
	subjectID, err := session.SubjectID(c)
	if err != nil {
		return sessionInvalid(c)
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	if err := h.wizardService.Complete(ctx, subjectID); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"completed": true})
}

func (h *WizardHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionInvalid):
		return sessionInvalid(c)
	case errors.Is(err, services.ErrUnknownPage):
		return unknownPage(c)
	case errors.Is(err, store.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save your information. Please try again.",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func sessionInvalid(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Session is no longer valid",
		Code:    "session_invalid",
	})
}

func unknownPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "Unknown wizard page",
	})
}

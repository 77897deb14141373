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

type AuthHandler struct {
	authService  *services.AuthService
	storeTimeout time.Duration
}

func NewAuthHandler(authService *services.AuthService, storeTimeout time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, storeTimeout: storeTimeout}
}

// Identify is the identity micro-step: one submit signs in or signs up.
// A duplicate-email race is a normal outcome (409), not a server error.
func (h *AuthHandler) Identify(c *fiber.Ctx) error {
	var req dto.IdentifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.storeTimeout)
	defer cancel()

	result, err := h.authService.Identify(ctx, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "An account with this email already exists. Please try signing in.",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Incorrect password. Please try again.",
			})
		case errors.Is(err, services.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Passwords don't match",
			})
		case errors.Is(err, store.ErrUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Something went wrong. Please try again.",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.IdentityResponse{
		Token: result.Token,
		Subject: dto.SubjectResponse{
			ID:          result.Subject.ID,
			Email:       result.Subject.Email,
			CurrentStep: result.Subject.CurrentStep,
			Completed:   result.Subject.Completed,
		},
		Created: result.Created,
	})
}

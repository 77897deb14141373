package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("unique constraint violation")
	ErrUnavailable = errors.New("data store unavailable")
)

// SubjectRepository is the narrow persistence surface the wizard core
// needs for subject records.
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subject, error)
	GetByEmail(ctx context.Context, email string) (*models.Subject, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	List(ctx context.Context) ([]models.Subject, error)
}

// AssignmentRepository persists the component-to-page mapping.
type AssignmentRepository interface {
	List(ctx context.Context) ([]models.StepAssignment, error)
	ListForPage(ctx context.Context, page int) ([]models.StepAssignment, error)
	// ReplaceAll reassigns every listed component in a single transaction,
	// so concurrent readers observe either the old or the new mapping.
	ReplaceAll(ctx context.Context, pages map[string]int) error
	Count(ctx context.Context) (int64, error)
	CreateAll(ctx context.Context, assignments []models.StepAssignment) error
}

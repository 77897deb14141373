package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/models"
	"gorm.io/gorm"
)

// SubjectStore is the GORM-backed SubjectRepository.
type SubjectStore struct {
	db *gorm.DB
}

func NewSubjectStore(db *gorm.DB) *SubjectStore {
	return &SubjectStore{db: db}
}

func (s *SubjectStore) Create(ctx context.Context, subject *models.Subject) error {
	return wrapErr(s.db.WithContext(ctx).Create(subject).Error)
}

func (s *SubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &subject, nil
}

func (s *SubjectStore) GetByEmail(ctx context.Context, email string) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&subject).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &subject, nil
}

func (s *SubjectStore) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&models.Subject{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return wrapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SubjectStore) List(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&subjects).Error; err != nil {
		return nil, wrapErr(err)
	}
	return subjects, nil
}

// AssignmentStore is the GORM-backed AssignmentRepository.
type AssignmentStore struct {
	db *gorm.DB
}

func NewAssignmentStore(db *gorm.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

func (s *AssignmentStore) List(ctx context.Context) ([]models.StepAssignment, error) {
	var assignments []models.StepAssignment
	if err := s.db.WithContext(ctx).Order("component_type ASC").Find(&assignments).Error; err != nil {
		return nil, wrapErr(err)
	}
	return assignments, nil
}

func (s *AssignmentStore) ListForPage(ctx context.Context, page int) ([]models.StepAssignment, error) {
	var assignments []models.StepAssignment
	err := s.db.WithContext(ctx).
		Where("page_number = ?", page).
		Order("component_type ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return assignments, nil
}

func (s *AssignmentStore) ReplaceAll(ctx context.Context, pages map[string]int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for componentType, page := range pages {
			result := tx.Model(&models.StepAssignment{}).
				Where("component_type = ?", componentType).
				Update("page_number", page)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Row was never seeded; create it rather than lose the assignment.
				create := models.StepAssignment{ComponentType: componentType, PageNumber: page}
				if err := tx.Create(&create).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	return wrapErr(err)
}

func (s *AssignmentStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.StepAssignment{}).Count(&count).Error; err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}

func (s *AssignmentStore) CreateAll(ctx context.Context, assignments []models.StepAssignment) error {
	return wrapErr(s.db.WithContext(ctx).Create(&assignments).Error)
}

// wrapErr maps GORM errors onto the repository sentinels. Anything that is
// not a recognized data condition counts as the store being unavailable.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

package services

import (
	"context"
	"log/slog"

	"github.com/stepforge/onboarding-backend/internal/models"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stepforge/onboarding-backend/internal/wizard"
)

// StepConfigService is the write path for the component-to-page mapping.
// Validation always happens before any write, so concurrent wizard
// sessions can only ever observe a configuration that satisfies the
// non-empty-page invariant.
type StepConfigService struct {
	assignments store.AssignmentRepository
}

func NewStepConfigService(assignments store.AssignmentRepository) *StepConfigService {
	return &StepConfigService{assignments: assignments}
}

// List returns the current persisted assignments in component order.
func (s *StepConfigService) List(ctx context.Context) ([]wizard.Assignment, error) {
	rows, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(wizard.ConfigSet, len(rows))
	for _, row := range rows {
		component, err := wizard.ParseComponentType(row.ComponentType)
		if err != nil {
			return nil, err
		}
		set[component] = row.PageNumber
	}
	return set.Sorted(), nil
}

// Commit validates the full proposed set and persists every assignment
// transactionally. A rejected set leaves the stored configuration intact.
func (s *StepConfigService) Commit(ctx context.Context, set wizard.ConfigSet) error {
	if err := set.Validate(); err != nil {
		return err
	}
	pages := make(map[string]int, len(set))
	for component, page := range set {
		pages[string(component)] = page
	}
	return s.assignments.ReplaceAll(ctx, pages)
}

// Defaults returns the seeded default mapping without touching storage;
// the admin surface decides when to commit it.
func (s *StepConfigService) Defaults() []wizard.Assignment {
	return wizard.DefaultConfig().Sorted()
}

// Seed inserts the default assignments on first boot, when the table is
// still empty.
func (s *StepConfigService) Seed(ctx context.Context) error {
	count, err := s.assignments.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := wizard.DefaultConfig().Sorted()
	rows := make([]models.StepAssignment, 0, len(defaults))
	for _, a := range defaults {
		rows = append(rows, models.StepAssignment{
			ComponentType: string(a.Component),
			PageNumber:    a.Page,
		})
	}
	if err := s.assignments.CreateAll(ctx, rows); err != nil {
		return err
	}
	slog.Info("seeded step configuration defaults", "assignments", len(rows))
	return nil
}

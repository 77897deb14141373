package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stepforge/onboarding-backend/internal/wizard"
)

var (
	// ErrSessionInvalid means a stored session pointer no longer resolves
	// to a subject. Clients treat it as "no session" and restart at the
	// identity step; it is not shown as an error.
	ErrSessionInvalid = errors.New("session no longer resolves to a subject")
	ErrUnknownPage    = errors.New("unknown wizard page")
)

// WizardService drives the dynamic steps: resolving which components
// render on a page, validating and persisting page submissions, and
// resuming persisted progress.
type WizardService struct {
	subjects    store.SubjectRepository
	assignments store.AssignmentRepository
	machine     wizard.Machine
}

func NewWizardService(subjects store.SubjectRepository, assignments store.AssignmentRepository, machine wizard.Machine) *WizardService {
	return &WizardService{subjects: subjects, assignments: assignments, machine: machine}
}

func (s *WizardService) Machine() wizard.Machine {
	return s.machine
}

// State is what a resuming client needs to re-enter the wizard.
type State struct {
	Step         int
	Completed    bool
	Email        string
	Draft        wizard.Draft
	DynamicPages []int
	TotalSteps   int
}

// Resume loads the subject behind a session pointer and computes the step
// to re-enter at. A subject that no longer exists yields ErrSessionInvalid.
func (s *WizardService) Resume(ctx context.Context, subjectID uuid.UUID) (*State, error) {
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	return &State{
		Step:         s.machine.ResumeStep(subject.CurrentStep, subject.Completed),
		Completed:    subject.Completed,
		Email:        subject.Email,
		Draft:        wizard.DraftFromSubject(subject),
		DynamicPages: s.machine.Pages(),
		TotalSteps:   s.machine.CompletionStep(),
	}, nil
}

// ComponentsForPage resolves the ordered components assigned to a dynamic
// page. It reads the configuration store on every call: an admin commit is
// visible to the very next page render.
func (s *WizardService) ComponentsForPage(ctx context.Context, page int) ([]wizard.Component, error) {
	if !s.machine.IsDynamicPage(page) {
		return nil, ErrUnknownPage
	}

	rows, err := s.assignments.ListForPage(ctx, page)
	if err != nil {
		return nil, err
	}

	components := make([]wizard.Component, 0, len(rows))
	for _, row := range rows {
		componentType, err := wizard.ParseComponentType(row.ComponentType)
		if err != nil {
			return nil, err
		}
		component, _ := wizard.Lookup(componentType)
		components = append(components, component)
	}
	return components, nil
}

// SubmitResult is the outcome of a page submission. A non-empty FieldErrors
// map means validation failed and nothing was persisted.
type SubmitResult struct {
	NextStep    int
	FieldErrors map[string]string
}

// SubmitPage validates the draft against exactly the components resolved
// for the page and, on success, persists their values together with the
// step advance. A store failure after validation leaves the record exactly
// as it was and surfaces as a retry-able error.
func (s *WizardService) SubmitPage(ctx context.Context, subjectID uuid.UUID, page int, draft wizard.Draft) (*SubmitResult, error) {
	components, err := s.ComponentsForPage(ctx, page)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}

	if fieldErrors := wizard.Validate(components, draft); len(fieldErrors) > 0 {
		return &SubmitResult{FieldErrors: fieldErrors}, nil
	}

	updates := wizard.BuildUpdate(components, draft, page, subject.CurrentStep)
	if err := s.subjects.UpdateFields(ctx, subjectID, updates); err != nil {
		return nil, err
	}

	return &SubmitResult{NextStep: s.machine.NextStep(page)}, nil
}

// Back computes the page reached by the explicit back action. It has no
// persistence side effect.
func (s *WizardService) Back(page int) (int, error) {
	return s.machine.BackFrom(page)
}

// Complete marks the subject finished. This is the only write site for the
// completed flag, so completed always implies the terminal step.
func (s *WizardService) Complete(ctx context.Context, subjectID uuid.UUID) error {
	err := s.subjects.UpdateFields(ctx, subjectID, map[string]interface{}{
		"completed":    true,
		"current_step": s.machine.CompletionStep(),
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrSessionInvalid
	}
	return err
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stepforge/onboarding-backend/internal/wizard"
)

const (
	displayTimeLayout = "Jan 02, 2006 15:04"
	displayDateLayout = "Jan 02, 2006"
	emptyCell         = "—"
)

// SubjectView is the read-only projection rendered by the data viewer.
type SubjectView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	AboutMe   string    `json:"about_me"`
	Address   string    `json:"address"`
	Birthdate string    `json:"birthdate"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// ViewerService lists all subjects with derived display fields. Pure
// projection; no wizard logic.
type ViewerService struct {
	subjects store.SubjectRepository
	machine  wizard.Machine
}

func NewViewerService(subjects store.SubjectRepository, machine wizard.Machine) *ViewerService {
	return &ViewerService{subjects: subjects, machine: machine}
}

func (s *ViewerService) ListSubjects(ctx context.Context) ([]SubjectView, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]SubjectView, 0, len(subjects))
	for _, subject := range subjects {
		view := SubjectView{
			ID:        subject.ID,
			Email:     subject.Email,
			Status:    fmt.Sprintf("Step %d of %d", subject.CurrentStep, s.machine.LastFormStep()),
			AboutMe:   emptyCell,
			Address:   emptyCell,
			Birthdate: emptyCell,
			CreatedAt: subject.CreatedAt.Format(displayTimeLayout),
			UpdatedAt: subject.UpdatedAt.Format(displayTimeLayout),
		}
		if subject.Completed {
			view.Status = "Completed"
		}
		if subject.AboutMe != nil && *subject.AboutMe != "" {
			view.AboutMe = *subject.AboutMe
		}
		if address := joinAddress(subject.StreetAddress, subject.City, subject.State, subject.Zip); address != "" {
			view.Address = address
		}
		if subject.Birthdate != nil {
			view.Birthdate = subject.Birthdate.Format(displayDateLayout)
		}
		views = append(views, view)
	}
	return views, nil
}

func joinAddress(parts ...*string) string {
	var present []string
	for _, p := range parts {
		if p != nil && *p != "" {
			present = append(present, *p)
		}
	}
	return strings.Join(present, ", ")
}

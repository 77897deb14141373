package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/models"
	"github.com/stepforge/onboarding-backend/internal/store"
)

// fakeSubjectRepo is an in-memory SubjectRepository for service tests.
type fakeSubjectRepo struct {
	subjects map[uuid.UUID]*models.Subject

	createErr error
	getErr    error
	updateErr error
	listErr   error

	createdCount int
	lastUpdateID uuid.UUID
	lastUpdate   map[string]interface{}
	updateCalls  int
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[uuid.UUID]*models.Subject)}
}

func (f *fakeSubjectRepo) add(s *models.Subject) {
	f.subjects[s.ID] = s
}

func (f *fakeSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdCount++
	f.subjects[subject.ID] = subject
	return nil
}

func (f *fakeSubjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if s, ok := f.subjects[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeSubjectRepo) GetByEmail(ctx context.Context, email string) (*models.Subject, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, s := range f.subjects {
		if s.Email == email {
			copied := *s
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeSubjectRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.subjects[id]; !ok {
		return store.ErrNotFound
	}
	f.updateCalls++
	f.lastUpdateID = id
	f.lastUpdate = fields
	return nil
}

func (f *fakeSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Subject, 0, len(f.subjects))
	for _, s := range f.subjects {
		out = append(out, *s)
	}
	return out, nil
}

// fakeAssignmentRepo is an in-memory AssignmentRepository.
type fakeAssignmentRepo struct {
	rows []models.StepAssignment

	listErr    error
	replaceErr error

	replaced     map[string]int
	replaceCalls int
	created      []models.StepAssignment
}

func (f *fakeAssignmentRepo) List(ctx context.Context) ([]models.StepAssignment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.StepAssignment, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeAssignmentRepo) ListForPage(ctx context.Context, page int) ([]models.StepAssignment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.StepAssignment
	for _, row := range f.rows {
		if row.PageNumber == page {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) ReplaceAll(ctx context.Context, pages map[string]int) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaceCalls++
	f.replaced = pages
	for i, row := range f.rows {
		if page, ok := pages[row.ComponentType]; ok {
			f.rows[i].PageNumber = page
		}
	}
	return nil
}

func (f *fakeAssignmentRepo) Count(ctx context.Context) (int64, error) {
	if f.listErr != nil {
		return 0, f.listErr
	}
	return int64(len(f.rows)), nil
}

func (f *fakeAssignmentRepo) CreateAll(ctx context.Context, assignments []models.StepAssignment) error {
	f.created = append(f.created, assignments...)
	f.rows = append(f.rows, assignments...)
	return nil
}

func defaultAssignmentRows() []models.StepAssignment {
	return []models.StepAssignment{
		{ID: uuid.New(), ComponentType: "about_me", PageNumber: 2},
		{ID: uuid.New(), ComponentType: "address", PageNumber: 2},
		{ID: uuid.New(), ComponentType: "birthdate", PageNumber: 3},
	}
}

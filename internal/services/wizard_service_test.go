package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/models"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stepforge/onboarding-backend/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWizardService(subjects *fakeSubjectRepo, assignments *fakeAssignmentRepo) *WizardService {
	return NewWizardService(subjects, assignments, wizard.DefaultMachine())
}

func TestResumeUnknownSubject(t *testing.T) {
	svc := newWizardService(newFakeSubjectRepo(), &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	_, err := svc.Resume(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestResumeCompletedSubject(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "done@example.com", CurrentStep: 3, Completed: true})
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	state, err := svc.Resume(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 4, state.Step)
	assert.True(t, state.Completed)
}

func TestResumeFloorsAtFirstDynamicPage(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "fresh@example.com", CurrentStep: 1})
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	state, err := svc.Resume(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Step, "identity is already done, so resume lands on the first form page")
	assert.Equal(t, []int{2, 3}, state.DynamicPages)
	assert.Equal(t, 4, state.TotalSteps)
}

func TestResumeCarriesDraftValues(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	about := "hello there"
	city := "Springfield"
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	subjects.add(&models.Subject{
		ID:          id,
		Email:       "draft@example.com",
		CurrentStep: 3,
		AboutMe:     &about,
		City:        &city,
		Birthdate:   &birth,
	})
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	state, err := svc.Resume(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Step)
	assert.Equal(t, "hello there", state.Draft.AboutMe)
	assert.Equal(t, "Springfield", state.Draft.City)
	assert.Equal(t, "1990-06-15", state.Draft.Birthdate)
}

func TestComponentsForPageReadsFreshConfig(t *testing.T) {
	assignments := &fakeAssignmentRepo{rows: defaultAssignmentRows()}
	svc := newWizardService(newFakeSubjectRepo(), assignments)

	components, err := svc.ComponentsForPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, components, 2)

	// An admin commit between calls is visible on the next render.
	require.NoError(t, assignments.ReplaceAll(context.Background(), map[string]int{
		"about_me": 2, "address": 3, "birthdate": 3,
	}))

	components, err = svc.ComponentsForPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, wizard.ComponentAboutMe, components[0].Type)
}

func TestComponentsForPageRejectsNonDynamicPage(t *testing.T) {
	svc := newWizardService(newFakeSubjectRepo(), &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	for _, page := range []int{1, 4, 7} {
		_, err := svc.ComponentsForPage(context.Background(), page)
		assert.ErrorIs(t, err, ErrUnknownPage)
	}
}

func TestSubmitPageValidationFailurePersistsNothing(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "a@example.com", CurrentStep: 1})
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	res, err := svc.SubmitPage(context.Background(), id, 2, wizard.Draft{AboutMe: "set", City: "only city"})
	require.NoError(t, err)

	assert.Equal(t, "Street address is required", res.FieldErrors["street_address"])
	assert.Equal(t, "State is required", res.FieldErrors["state"])
	assert.Equal(t, "ZIP code is required", res.FieldErrors["zip"])
	assert.NotContains(t, res.FieldErrors, "about_me")
	assert.NotContains(t, res.FieldErrors, "birthdate", "birthdate lives on page 3 and is not checked here")
	assert.Equal(t, 0, subjects.updateCalls)
}

func TestSubmitPageOnlyValidatesResolvedComponents(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "a@example.com", CurrentStep: 1})

	// Address moved to page 3: page 2 now needs only about_me.
	assignments := &fakeAssignmentRepo{rows: []models.StepAssignment{
		{ID: uuid.New(), ComponentType: "about_me", PageNumber: 2},
		{ID: uuid.New(), ComponentType: "address", PageNumber: 3},
		{ID: uuid.New(), ComponentType: "birthdate", PageNumber: 3},
	}}
	svc := newWizardService(subjects, assignments)

	res, err := svc.SubmitPage(context.Background(), id, 2, wizard.Draft{AboutMe: "just me"})
	require.NoError(t, err)
	assert.Empty(t, res.FieldErrors)
	assert.Equal(t, 3, res.NextStep)

	assert.Equal(t, "just me", subjects.lastUpdate["about_me"])
	assert.NotContains(t, subjects.lastUpdate, "street_address")
	assert.Equal(t, 2, subjects.lastUpdate["current_step"])
}

func TestSubmitPagePersistsBirthdateAsDate(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "a@example.com", CurrentStep: 2})
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	res, err := svc.SubmitPage(context.Background(), id, 3, wizard.Draft{Birthdate: "1990-06-15"})
	require.NoError(t, err)
	require.Empty(t, res.FieldErrors)
	assert.Equal(t, 4, res.NextStep)

	birth, ok := subjects.lastUpdate["birthdate"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), birth)
	assert.Equal(t, 3, subjects.lastUpdate["current_step"])
}

func TestSubmitPageNeverLowersProgress(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "a@example.com", CurrentStep: 3})
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	// Re-submitting page 2 after going back must not rewind current_step.
	res, err := svc.SubmitPage(context.Background(), id, 2, wizard.Draft{
		AboutMe: "edited", StreetAddress: "1 Main St", City: "Springfield", State: "IL", Zip: "62701",
	})
	require.NoError(t, err)
	require.Empty(t, res.FieldErrors)
	assert.NotContains(t, subjects.lastUpdate, "current_step")
}

func TestSubmitPageStoreFailureDoesNotAdvance(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "a@example.com", CurrentStep: 2})
	subjects.updateErr = store.ErrUnavailable
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	_, err := svc.SubmitPage(context.Background(), id, 3, wizard.Draft{Birthdate: "1990-06-15"})
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestSubmitPageUnknownSubject(t *testing.T) {
	svc := newWizardService(newFakeSubjectRepo(), &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	_, err := svc.SubmitPage(context.Background(), uuid.New(), 2, wizard.Draft{})
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestBack(t *testing.T) {
	svc := newWizardService(newFakeSubjectRepo(), &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	prev, err := svc.Back(3)
	require.NoError(t, err)
	assert.Equal(t, 2, prev)

	_, err = svc.Back(2)
	assert.ErrorIs(t, err, wizard.ErrBackUnavailable)
}

func TestCompleteMarksSubjectFinished(t *testing.T) {
	subjects := newFakeSubjectRepo()
	id := uuid.New()
	subjects.add(&models.Subject{ID: id, Email: "a@example.com", CurrentStep: 3})
	svc := newWizardService(subjects, &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	require.NoError(t, svc.Complete(context.Background(), id))
	assert.Equal(t, true, subjects.lastUpdate["completed"])
	assert.Equal(t, 4, subjects.lastUpdate["current_step"])
}

func TestCompleteUnknownSubject(t *testing.T) {
	svc := newWizardService(newFakeSubjectRepo(), &fakeAssignmentRepo{rows: defaultAssignmentRows()})

	err := svc.Complete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/config"
	"github.com/stepforge/onboarding-backend/internal/models"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTSessionExpiry: time.Hour,
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestIdentifySignupCreatesSubject(t *testing.T) {
	repo := newFakeSubjectRepo()
	svc := NewAuthService(repo, testConfig())

	res, err := svc.Identify(context.Background(), "  New@Example.COM ", "secret1", "secret1")
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "new@example.com", res.Subject.Email)
	assert.Equal(t, 1, res.Subject.CurrentStep)
	assert.Equal(t, 1, repo.createdCount)

	// The stored hash must verify against the submitted password.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.Subject.PasswordHash), []byte("secret1")))

	// The token must be a valid session token carrying the subject id.
	parsed, err := jwt.Parse(res.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, res.Subject.ID.String(), claims["sub"])
	assert.Equal(t, "new@example.com", claims["email"])
}

func TestIdentifyConfirmMismatch(t *testing.T) {
	repo := newFakeSubjectRepo()
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Identify(context.Background(), "new@example.com", "secret1", "secret2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Equal(t, 0, repo.createdCount)
}

func TestIdentifyRejectsBadInput(t *testing.T) {
	repo := newFakeSubjectRepo()
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Identify(context.Background(), "not-an-email", "secret1", "secret1")
	assert.Error(t, err)

	_, err = svc.Identify(context.Background(), "ok@example.com", "short", "short")
	assert.Error(t, err)

	assert.Equal(t, 0, repo.createdCount)
}

func TestIdentifySignupRaceReportsEmailTaken(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.createErr = store.ErrDuplicate
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Identify(context.Background(), "race@example.com", "secret1", "secret1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestIdentifySignInWrongPassword(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.add(&models.Subject{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: hashPassword(t, "secret1"),
		CurrentStep:  3,
	})
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Identify(context.Background(), "jane@example.com", "wrong-password", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestIdentifySignInReturnsPersistedProgress(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.add(&models.Subject{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: hashPassword(t, "secret1"),
		CurrentStep:  3,
	})
	svc := NewAuthService(repo, testConfig())

	res, err := svc.Identify(context.Background(), "Jane@Example.com", "secret1", "")
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Equal(t, 3, res.Subject.CurrentStep)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 1, len(repo.subjects))
}

func TestIdentifyStoreUnavailable(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.getErr = store.ErrUnavailable
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Identify(context.Background(), "jane@example.com", "secret1", "secret1")
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

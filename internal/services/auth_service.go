package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stepforge/onboarding-backend/internal/config"
	"github.com/stepforge/onboarding-backend/internal/models"
	"github.com/stepforge/onboarding-backend/internal/store"
	"github.com/stepforge/onboarding-backend/internal/wizard"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// AuthService handles the identity step of the wizard: one submit either
// signs an existing subject in or creates a new record.
type AuthService struct {
	subjects store.SubjectRepository
	cfg      *config.Config
}

func NewAuthService(subjects store.SubjectRepository, cfg *config.Config) *AuthService {
	return &AuthService{subjects: subjects, cfg: cfg}
}

// IdentityResult carries the outcome of the identity step: the subject
// record (with its persisted progress) and the session token the client
// stores as its only continuation pointer.
type IdentityResult struct {
	Subject *models.Subject
	Token   string
	Created bool
}

// Identify looks the email up and verifies the password, or creates the
// account when the email is unknown. A unique-violation on the insert
// means another session won the signup race and is reported as the
// account already existing.
func (s *AuthService) Identify(ctx context.Context, email, password, confirm string) (*IdentityResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email address is required")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	existing, err := s.subjects.GetByEmail(ctx, email)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		token, err := s.issueSessionToken(existing)
		if err != nil {
			return nil, err
		}
		return &IdentityResult{Subject: existing, Token: token}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if confirm != password {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	subject := &models.Subject{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CurrentStep:  wizard.StepIdentity,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.issueSessionToken(subject)
	if err != nil {
		return nil, err
	}
	return &IdentityResult{Subject: subject, Token: token, Created: true}, nil
}

func (s *AuthService) issueSessionToken(subject *models.Subject) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject.ID.String(),
		"email": subject.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTSessionExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

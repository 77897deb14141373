package dto

import "github.com/google/uuid"

type IdentifyRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type SubjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	CurrentStep int       `json:"current_step"`
	Completed   bool      `json:"completed"`
}

type IdentityResponse struct {
	Token   string          `json:"token"`
	Subject SubjectResponse `json:"subject"`
	Created bool            `json:"created"`
}

type DraftPayload struct {
	AboutMe       string `json:"about_me"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Birthdate     string `json:"birthdate"`
}

type WizardStateResponse struct {
	Step         int          `json:"step"`
	Completed    bool         `json:"completed"`
	Email        string       `json:"email"`
	Draft        DraftPayload `json:"draft"`
	DynamicPages []int        `json:"dynamic_pages"`
	TotalSteps   int          `json:"total_steps"`
}

type SubmitResponse struct {
	NextStep int `json:"next_step"`
}

type ValidationErrorResponse struct {
	Error       bool              `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"field_errors"`
}

type AssignmentPayload struct {
	ComponentType string `json:"component_type"`
	PageNumber    int    `json:"page_number"`
}

type SaveConfigRequest struct {
	Assignments []AssignmentPayload `json:"assignments"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

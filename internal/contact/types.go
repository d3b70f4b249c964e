// Package contact submits the contact form to the external form backend and
// tracks each visitor's submission state.
package contact

import (
	"errors"
	"fmt"
	"time"
)

// State is a contact channel state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Terminal reports whether s ends a submission.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateError
}

var (
	// ErrSubmitInProgress is returned when a channel is already submitting.
	ErrSubmitInProgress = errors.New("submission already in progress")
	// ErrInvalidSubmission wraps field validation failures.
	ErrInvalidSubmission = errors.New("invalid submission")
)

// Submission is one form post. It is never persisted.
type Submission struct {
	Name    string `json:"name" validate:"notblank,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("form backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("form backend returned status %d: %s", e.StatusCode, e.Body)
}

// Record is the persisted outcome of one submission. It holds no form data.
type Record struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"-"`
	State      State     `json:"state"`
	HTTPStatus int       `json:"httpStatus,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Stats summarizes stored outcomes.
type Stats struct {
	Total   int        `json:"total"`
	Success int        `json:"success"`
	Error   int        `json:"error"`
	Last    *time.Time `json:"last,omitempty"`
}

// User-facing messages shown by the contact page.
const (
	MessageSuccess    = "Votre message a été envoyé avec succès!"
	MessageError      = "Une erreur s'est produite. Veuillez réessayer plus tard."
	MessageSubmitting = "Envoi en cours..."
	MessageInvalid    = "Veuillez remplir tous les champs correctement."
)

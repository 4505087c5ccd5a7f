package service

import (
	"errors"

	"github.com/lshigami/vidcert/internal/repository"
)

// ValidationError marks bad caller input. It is always detected before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

var (
	ErrEmptyQuiz = &ValidationError{Message: "quiz has no questions"}

	ErrGenerationFailed = errors.New("Failed to generate quiz. Please check the URL or try again.")

	ErrQuizNotFound        = repository.ErrQuizNotFound
	ErrCertificateNotFound = repository.ErrCertificateNotFound

	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

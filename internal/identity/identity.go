// Package identity talks to a GoTrue compatible identity provider. Accounts,
// passwords and email confirmation all live with the provider; this package only
// relays credentials and resolves access tokens to users.
package identity

import (
	"context"
	"errors"

	"github.com/lshigami/vidcert/internal/model"
)

//go:generate mockgen -source=identity.go -destination=mock/identity_mock.go

const defaultUsername = "User"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("session is missing or expired")
	ErrUnavailable        = errors.New("identity provider unavailable")
)

// ProviderError carries a message the provider meant for the end user, such as
// "User already registered".
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// AuthResult is returned by Register and Login. AccessToken is empty and
// PendingVerification set when the provider requires email confirmation first.
type AuthResult struct {
	User                model.User
	AccessToken         string
	PendingVerification bool
}

type Provider interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Session(ctx context.Context, accessToken string) (*model.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

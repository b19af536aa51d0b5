// Package auth verifies credentials and issues session tokens.
package auth

import (
	"context"

	"pos_service/internal/domain"
)

const (
	ModeDemo        = "demo"
	ModeCredentials = "credentials"
)

// Authenticator turns credentials into a session principal. Rejected
// credentials are reported as domain.ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
}

// DemoAuthenticator accepts any non-empty credentials and signs the caller in
// as the built-in administrator.
type DemoAuthenticator struct{}

func (DemoAuthenticator) Authenticate(_ context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return domain.User{
		ID:    "1",
		Name:  "Admin User",
		Email: email,
		Role:  domain.RoleAdmin,
	}, nil
}

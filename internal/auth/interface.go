package auth

import "context"

// Authenticator is the session provider used by the HTTP layer.
type Authenticator interface {
	SignUp(ctx context.Context, email, password, username string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*User, error)
}

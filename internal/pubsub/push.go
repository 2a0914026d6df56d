package pubsub

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/idtoken"
)

// ErrUnauthorizedPush is returned for push deliveries that do not come from
// the configured Pub/Sub subscription.
var ErrUnauthorizedPush = errors.New("unauthorized push delivery")

// PushVerifier authenticates Pub/Sub push deliveries.
type PushVerifier interface {
	Verify(r *http.Request) error
}

// NewPushVerifier picks how push deliveries are authenticated. With an
// audience, the OIDC token Pub/Sub attaches to each push is validated (and,
// when serviceAccount is set, its email claim must match). Otherwise a
// shared token in the push endpoint's "token" query parameter is required.
// With neither configured every delivery is rejected.
func NewPushVerifier(audience, serviceAccount, token string) PushVerifier {
	switch {
	case audience != "":
		return &oidcVerifier{audience: audience, serviceAccount: serviceAccount, validate: idtoken.Validate}
	case token != "":
		return &tokenVerifier{token: token}
	default:
		return denyVerifier{}
	}
}

type oidcVerifier struct {
	audience       string
	serviceAccount string
	validate       func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func (v *oidcVerifier) Verify(r *http.Request) error {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("%w: missing bearer token", ErrUnauthorizedPush)
	}
	payload, err := v.validate(r.Context(), strings.TrimPrefix(authHeader, "Bearer "), v.audience)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorizedPush, err)
	}
	if v.serviceAccount != "" {
		email, _ := payload.Claims["email"].(string)
		verified, _ := payload.Claims["email_verified"].(bool)
		if email != v.serviceAccount || !verified {
			return fmt.Errorf("%w: unexpected service account %q", ErrUnauthorizedPush, email)
		}
	}
	return nil
}

type tokenVerifier struct {
	token string
}

func (v *tokenVerifier) Verify(r *http.Request) error {
	got := r.URL.Query().Get("token")
	if subtle.ConstantTimeCompare([]byte(got), []byte(v.token)) != 1 {
		return fmt.Errorf("%w: bad push token", ErrUnauthorizedPush)
	}
	return nil
}

type denyVerifier struct{}

func (denyVerifier) Verify(*http.Request) error {
	return fmt.Errorf("%w: push authentication is not configured", ErrUnauthorizedPush)
}

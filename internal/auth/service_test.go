package auth_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mauv0809/hoopsheet/internal/auth"
	"github.com/mauv0809/hoopsheet/internal/database"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupTestService(t *testing.T) (*auth.Service, *sql.DB, *metrics.Mock) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() {
		dbTeardown()
		db.Close()
	})

	m := metrics.NewMock()
	return auth.NewService(db, m, testSecret, time.Hour), db, m
}

func TestSignUpThenSignIn(t *testing.T) {
	svc, db, m := setupTestService(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, " Coach@Example.com ", "hoops-1234", "Coach K")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "coach@example.com", session.User.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	var username string
	require.NoError(t, db.QueryRow("SELECT username FROM profiles WHERE id = ?", session.User.ID).Scan(&username))
	assert.Equal(t, "Coach K", username)

	signedIn, err := svc.SignIn(ctx, "COACH@example.com", "hoops-1234")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, signedIn.User.ID)
	assert.NotEqual(t, session.Token, signedIn.Token, "every sign-in issues a distinct token")

	user, err := svc.CurrentUser(ctx, signedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
	assert.Equal(t, 1, m.SignIns())
}

func TestSignUp_Rejects(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "coach@example.com", "hoops-1234", "Coach")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "COACH@example.com", "another-pass", "Other")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	_, err = svc.SignUp(ctx, "not-an-email", "hoops-1234", "Coach")
	assert.ErrorIs(t, err, auth.ErrInvalidInput)

	_, err = svc.SignUp(ctx, "short@example.com", "short", "Coach")
	assert.ErrorIs(t, err, auth.ErrInvalidInput)

	_, err = svc.SignUp(ctx, "nameless@example.com", "hoops-1234", "  ")
	assert.ErrorIs(t, err, auth.ErrInvalidInput)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc, _, m := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "coach@example.com", "hoops-1234", "Coach")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "coach@example.com", "wrong-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "hoops-1234")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	assert.Equal(t, 2, m.SignInFailures())
	assert.Zero(t, m.SignIns())
}

func TestSignOut_RevokesToken(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	first, err := svc.SignUp(ctx, "coach@example.com", "hoops-1234", "Coach")
	require.NoError(t, err)
	second, err := svc.SignIn(ctx, "coach@example.com", "hoops-1234")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, first.Token))
	require.NoError(t, svc.SignOut(ctx, first.Token), "signing out twice is harmless")

	_, err = svc.CurrentUser(ctx, first.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.CurrentUser(ctx, second.Token)
	assert.NoError(t, err, "other sessions stay valid")
}

func TestCurrentUser_RejectsBadTokens(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, "coach@example.com", "hoops-1234", "Coach")
	require.NoError(t, err)

	sign := func(secret string, expiresAt time.Time) string {
		claims := auth.Claims{
			UserID: session.User.ID,
			Email:  session.User.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti-1",
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	cases := map[string]string{
		"garbage":      "not-a-jwt",
		"empty":        "",
		"wrong secret": sign("other-secret", time.Now().Add(time.Hour)),
		"expired":      sign(testSecret, time.Now().Add(-time.Minute)),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CurrentUser(ctx, token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}

	_, err = svc.CurrentUser(ctx, sign(testSecret, time.Now().Add(time.Hour)))
	assert.NoError(t, err, "a well-formed token with the right secret is accepted")

	assert.ErrorIs(t, svc.SignOut(ctx, "not-a-jwt"), auth.ErrInvalidToken)
}

func TestPurgeExpiredRevocations(t *testing.T) {
	svc, db, _ := setupTestService(t)
	ctx := context.Background()

	_, err := db.Exec("INSERT INTO revoked_tokens (token_id, expires_at) VALUES ('old', ?), ('fresh', ?)",
		time.Now().Add(-time.Hour).Unix(), time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	n, err := svc.PurgeExpiredRevocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var remaining string
	require.NoError(t, db.QueryRow("SELECT token_id FROM revoked_tokens").Scan(&remaining))
	assert.Equal(t, "fresh", remaining)
}

func TestStartJanitor(t *testing.T) {
	svc, _, _ := setupTestService(t)

	sched, err := svc.StartJanitor(time.Hour)
	require.NoError(t, err)
	assert.Len(t, sched.Jobs(), 1)
	assert.NoError(t, sched.Shutdown())
}

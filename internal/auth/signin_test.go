package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/hoopsheet/internal/database"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignIn_UnknownEmailStillComparesHash(t *testing.T) {
	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(dbTeardown)

	var compared []string
	checkPassword = func(password, hash string) bool {
		compared = append(compared, hash)
		return CheckPassword(password, hash)
	}
	t.Cleanup(func() { checkPassword = CheckPassword })

	m := metrics.NewMock()
	svc := NewService(db, m, "test-secret", time.Hour)

	_, err = svc.SignIn(context.Background(), "nobody@example.com", "hoops-1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, compared, 1, "a bcrypt comparison runs for unknown emails")
	assert.Equal(t, dummyHash(), compared[0])
	assert.Equal(t, 1, m.SignInFailures())

	cost, err := bcrypt.Cost([]byte(dummyHash()))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost, "same work factor as real hashes")

	// The dummy password itself never signs anyone in.
	_, err = svc.SignIn(context.Background(), "nobody@example.com", "hoopsheet-no-such-user")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

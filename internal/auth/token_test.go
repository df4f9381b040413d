// File: internal/auth/token_test.go
package auth

import (
	"testing"
	"time"

	"iqamah_backend/internal/config"
	"iqamah_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testUser() *user.User {
	u := &user.User{Email: "claims@example.com", Provider: user.ProviderLocal}
	u.ID = uuid.New()
	return u
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(newTestConfig(), zap.NewNop())
	u := testUser()

	token, expiresAt, err := svc.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	expired := NewJWTService(&config.Config{
		JWTSecretKey: "test-secret-key",
		JWTExpiry:    -time.Minute,
	}, zap.NewNop())

	token, _, err := expired.Generate(testUser())
	require.NoError(t, err)

	_, err = expired.Validate(token)
	require.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(newTestConfig(), zap.NewNop())
	other := NewJWTService(&config.Config{
		JWTSecretKey: "a-different-secret",
		JWTExpiry:    time.Hour,
	}, zap.NewNop())

	token, _, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(newTestConfig(), zap.NewNop())

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := svc.Validate(token)
		assert.Error(t, err, "token %q", token)
	}
}

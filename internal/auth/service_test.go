// File: internal/auth/service_test.go
package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"iqamah_backend/internal/common"
	"iqamah_backend/internal/config"
	"iqamah_backend/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// stubVerifier lets each test decide what the Google token resolves to.
type stubVerifier struct {
	info *GoogleUserInfo
	err  error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*GoogleUserInfo, error) {
	return s.info, s.err
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
		JWTExpiry:    time.Hour,
	}
}

func newAuthTestService(t *testing.T, verifier GoogleVerifier) (Service, user.Repository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))

	repo := user.NewGORMRepository(db)
	tokens := NewJWTService(newTestConfig(), zap.NewNop())
	if verifier == nil {
		verifier = &stubVerifier{err: errors.New("no verifier configured")}
	}
	return NewService(repo, tokens, verifier, zap.NewNop()), repo
}

func assertStatus(t *testing.T, err error, want int) *common.APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, want, apiErr.StatusCode)
	return apiErr
}

func TestService_Register(t *testing.T) {
	svc, _ := newAuthTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "  New.User@Example.COM ",
		Password: "password123",
		Name:     "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.user@example.com", resp.Email)
	require.NotNil(t, resp.Name)
	assert.Equal(t, "New User", *resp.Name)
	assert.Equal(t, user.ProviderLocal, resp.Provider)

	// A second registration with the same email, any casing, is a conflict.
	_, err = svc.Register(ctx, RegisterRequest{Email: "new.user@example.com", Password: "otherpassword"})
	assertStatus(t, err, common.ErrConflict.StatusCode)
}

func TestService_Register_DoesNotLeakPasswordHash(t *testing.T) {
	svc, repo := newAuthTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "hash@example.com", Password: "password123"})
	require.NoError(t, err)

	stored, err := repo.FindByEmail(ctx, "hash@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", *stored.PasswordHash)
}

func TestService_Login(t *testing.T) {
	svc, _ := newAuthTestService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Email: "Login@Example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "login@example.com", resp.User.Email)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "login@example.com", Password: "wrongpassword"})
		assertStatus(t, err, common.ErrUnauthorized.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assertStatus(t, err, common.ErrUnauthorized.StatusCode)
	})
}

func TestService_Login_GoogleAccountRejected(t *testing.T) {
	verifier := &stubVerifier{info: &GoogleUserInfo{
		GoogleID: "google-sub-1",
		Email:    "gonly@example.com",
		Name:     "Google Only",
	}}
	svc, _ := newAuthTestService(t, verifier)
	ctx := context.Background()

	_, err := svc.GoogleSignIn(ctx, "a-valid-looking-token")
	require.NoError(t, err)

	// Password login against a Google-created account is a client error
	// with an actionable message, not a generic 401.
	_, err = svc.Login(ctx, LoginRequest{Email: "gonly@example.com", Password: "anything123"})
	apiErr := assertStatus(t, err, common.ErrBadRequest.StatusCode)
	assert.Contains(t, apiErr.Details, "sign in with Google")
}

func TestService_GoogleSignIn_CreatesUser(t *testing.T) {
	verifier := &stubVerifier{info: &GoogleUserInfo{
		GoogleID:  "google-sub-2",
		Email:     "fresh@example.com",
		Name:      "Fresh User",
		AvatarURL: "https://example.com/avatar.png",
	}}
	svc, repo := newAuthTestService(t, verifier)

	resp, err := svc.GoogleSignIn(context.Background(), "token")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ProviderGoogle, resp.User.Provider)

	stored, err := repo.FindByEmail(context.Background(), "fresh@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "google-sub-2", *stored.GoogleID)
	require.NotNil(t, stored.AvatarURL)
	assert.Nil(t, stored.PasswordHash)
}

func TestService_GoogleSignIn_UpgradesLocalAccount(t *testing.T) {
	verifier := &stubVerifier{info: &GoogleUserInfo{
		GoogleID:  "google-sub-3",
		Email:     "local@example.com",
		Name:      "Name From Google",
		AvatarURL: "https://example.com/a.png",
	}}
	svc, repo := newAuthTestService(t, verifier)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Email: "local@example.com", Password: "password123", Name: "Original Name",
	})
	require.NoError(t, err)

	resp, err := svc.GoogleSignIn(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, user.ProviderGoogle, resp.User.Provider)

	stored, err := repo.FindByEmail(ctx, "local@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "google-sub-3", *stored.GoogleID)
	// The name the user registered with wins over the Google profile name.
	require.NotNil(t, stored.Name)
	assert.Equal(t, "Original Name", *stored.Name)
	require.NotNil(t, stored.AvatarURL)
}

func TestService_GoogleSignIn_SecondSignInReusesUser(t *testing.T) {
	verifier := &stubVerifier{info: &GoogleUserInfo{
		GoogleID: "google-sub-4",
		Email:    "repeat@example.com",
	}}
	svc, _ := newAuthTestService(t, verifier)
	ctx := context.Background()

	first, err := svc.GoogleSignIn(ctx, "token")
	require.NoError(t, err)
	second, err := svc.GoogleSignIn(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestService_GoogleSignIn_InvalidToken(t *testing.T) {
	svc, _ := newAuthTestService(t, &stubVerifier{err: errors.New("token expired")})

	_, err := svc.GoogleSignIn(context.Background(), "bad-token")
	assertStatus(t, err, common.ErrUnauthorized.StatusCode)
}

func TestService_GoogleSignIn_MissingEmail(t *testing.T) {
	svc, _ := newAuthTestService(t, &stubVerifier{info: &GoogleUserInfo{GoogleID: "sub"}})

	_, err := svc.GoogleSignIn(context.Background(), "token")
	assertStatus(t, err, common.ErrBadRequest.StatusCode)
}

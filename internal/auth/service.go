// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"strings"

	"iqamah_backend/internal/common"
	"iqamah_backend/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Service handles registration, credential sign-in and Google sign-in.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*user.Response, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GoogleSignIn(ctx context.Context, idToken string) (*AuthResponse, error)
}

type service struct {
	users    user.Repository
	tokens   TokenService
	verifier GoogleVerifier
	logger   *zap.Logger
}

// NewService creates a new auth service.
func NewService(users user.Repository, tokens TokenService, verifier GoogleVerifier, logger *zap.Logger) Service {
	return &service{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		logger:   logger.Named("AuthService"),
	}
}

// Register creates a LOCAL user with a bcrypt-hashed password.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*user.Response, error) {
	email := user.NormalizeEmail(req.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, common.ErrConflict.WithDetails("User already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	hash := string(hashed)

	newUser := &user.User{
		Email:        email,
		PasswordHash: &hash,
		Provider:     user.ProviderLocal,
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		newUser.Name = &name
	}

	// The unique index still decides the race between two concurrent
	// registrations; the repository maps that to the same Conflict.
	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userID", newUser.ID.String()))
	resp := user.ToResponse(newUser)
	return &resp, nil
}

// Login verifies local credentials and issues a session token.
func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrUnauthorized.WithDetails("Invalid credentials.")
		}
		return nil, err
	}

	if u.PasswordHash == nil || u.Provider == user.ProviderGoogle {
		return nil, common.ErrBadRequest.WithDetails(
			"This account was created with Google. Please sign in with Google.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid credentials.")
	}

	return s.issueToken(u)
}

// GoogleSignIn verifies a Google ID token, then finds, upgrades or creates
// the matching user.
func (s *service) GoogleSignIn(ctx context.Context, idToken string) (*AuthResponse, error) {
	info, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid Google token.")
	}
	if info.Email == "" {
		return nil, common.ErrBadRequest.WithDetails("Google account has no email address.")
	}
	info.Email = user.NormalizeEmail(info.Email)

	u, err := s.users.FindByEmail(ctx, info.Email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	switch {
	case u == nil:
		u = &user.User{
			Email:    info.Email,
			Provider: user.ProviderGoogle,
			GoogleID: &info.GoogleID,
		}
		if info.Name != "" {
			name := info.Name
			u.Name = &name
		}
		if info.AvatarURL != "" {
			avatar := info.AvatarURL
			u.AvatarURL = &avatar
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		s.logger.Info("User created via Google Sign-In", zap.String("userID", u.ID.String()))

	case u.Provider == user.ProviderLocal || u.GoogleID == nil:
		// Upgrade an existing local account in place. The existing name is
		// kept; the Google profile only fills the gap.
		u.Provider = user.ProviderGoogle
		u.GoogleID = &info.GoogleID
		if info.AvatarURL != "" {
			avatar := info.AvatarURL
			u.AvatarURL = &avatar
		}
		if u.Name == nil && info.Name != "" {
			name := info.Name
			u.Name = &name
		}
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
		s.logger.Info("Local account upgraded to Google Sign-In", zap.String("userID", u.ID.String()))
	}

	return s.issueToken(u)
}

func (s *service) issueToken(u *user.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(u)
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err), zap.String("userID", u.ID.String()))
		return nil, common.ErrInternalServer
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToResponse(u),
	}, nil
}

func isNotFound(err error) bool {
	var apiErr *common.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == common.ErrNotFound.StatusCode
}

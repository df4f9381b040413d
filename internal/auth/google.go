// File: internal/auth/google.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"iqamah_backend/internal/config"

	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

// GoogleUserInfo holds the identity fields extracted from a verified
// Google ID token.
type GoogleUserInfo struct {
	GoogleID      string
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

// GoogleVerifier verifies a Google ID token's signature and audience
// against the configured OAuth client ID.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleUserInfo, error)
}

type googleVerifier struct {
	clientID string
	logger   *zap.Logger
}

// NewGoogleVerifier creates a verifier bound to the configured client ID.
func NewGoogleVerifier(cfg *config.Config, logger *zap.Logger) (GoogleVerifier, error) {
	if strings.TrimSpace(cfg.GoogleClientID) == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required for Google Sign-In")
	}
	return &googleVerifier{clientID: cfg.GoogleClientID, logger: logger.Named("GoogleVerifier")}, nil
}

func (v *googleVerifier) Verify(ctx context.Context, token string) (*GoogleUserInfo, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		v.logger.Warn("Google ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("invalid Google token: %w", err)
	}

	info := &GoogleUserInfo{GoogleID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = strings.ToLower(email)
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		info.AvatarURL = picture
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.EmailVerified = verified
	}
	return info, nil
}

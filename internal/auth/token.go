// File: internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"iqamah_backend/internal/config"
	"iqamah_backend/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenIssuer = "iqamah_backend"

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	Generate(u *user.User) (string, time.Time, error)
	Validate(tokenString string) (*Claims, error)
}

type jwtService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewJWTService creates a new JWT-backed token service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) TokenService {
	return &jwtService{cfg: cfg, logger: logger.Named("JWTService")}
}

func (s *jwtService) Generate(u *user.User) (string, time.Time, error) {
	expirationTime := time.Now().Add(s.cfg.JWTExpiry)

	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
			Subject:   u.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign session token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// Validate parses a session token and returns its claims. Expired or
// tampered tokens fail here; there is nothing to revoke server-side.
func (s *jwtService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// File: internal/auth/model.go
package auth

import (
	"time"

	"iqamah_backend/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by a session token. Verification is a pure signature +
// expiry check; there is no server-side session store.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest is the payload for local account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"` // bcrypt max is 72 bytes
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
}

// LoginRequest is the payload for local credential sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries a Google ID token obtained by the client.
type GoogleSignInRequest struct {
	Token string `json:"token" binding:"required,min=10"`
}

// AuthResponse is returned by login and Google sign-in.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      user.Response `json:"user"`
}

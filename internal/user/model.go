// File: internal/user/model.go
package user

import (
	"time"

	"iqamah_backend/internal/common"

	"github.com/google/uuid"
)

// Auth providers. A LOCAL user signs in with email+password; a GOOGLE user
// may have no password hash at all.
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash *string `gorm:"type:varchar(255)"` // NULL for OAuth-only accounts
	Name         *string `gorm:"type:varchar(100)"`
	AvatarURL    *string `gorm:"type:text"`
	Provider     string  `gorm:"type:varchar(50);not null;default:'LOCAL'"`
	GoogleID     *string `gorm:"type:varchar(255);uniqueIndex"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Response defines the public user fields sent in API responses.
// The password hash is never part of it.
type Response struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	AvatarURL *string   `json:"avatar,omitempty"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts a User model to its public representation.
func ToResponse(u *User) Response {
	return Response{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

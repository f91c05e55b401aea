package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the canonical identity record. PasswordHash is nil for accounts
// created through Google sign-in until the user sets a password.
type User struct {
	ID                  uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                string     `gorm:"column:name;not null"`
	Email               string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash        *string    `gorm:"column:password_hash"`
	ResetTokenID        *string    `gorm:"column:reset_token_id"`
	ResetTokenExpiresAt *time.Time `gorm:"column:reset_token_expires_at"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// HasPassword reports whether the account can log in with credentials.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != nil && *u.PasswordHash != ""
}

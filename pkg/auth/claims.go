package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPurpose separates session tokens from password-reset tokens so one can
// never be presented where the other is expected.
type TokenPurpose string

const (
	PurposeSession       TokenPurpose = "session"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// Claims is the typed JWT issued to clients. The user id is the only
// identity claim; everything else is standard bookkeeping.
type Claims struct {
	UserID  uuid.UUID    `json:"user_id"`
	Purpose TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

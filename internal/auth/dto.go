package auth

import (
	"time"

	"github.com/google/uuid"
)

// UserView is the identity shape returned to clients. The password hash
// never leaves the service.
type UserView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Session pairs a freshly minted token with its subject.
type Session struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

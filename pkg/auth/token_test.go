package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rajchaudar/HR-Dep/pkg/config"
)

var testJWT = config.JWTConfig{
	Secret:           "test-secret",
	Issuer:           "hr-dep",
	SessionTTL:       time.Hour,
	PasswordResetTTL: 15 * time.Minute,
}

func TestSessionTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	token, err := MintSessionToken(testJWT, now, userID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseSessionToken(testJWT, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, claims.UserID)
	}
	if claims.Purpose != PurposeSession {
		t.Fatalf("expected session purpose, got %s", claims.Purpose)
	}
}

func TestResetTokenCannotAuthenticate(t *testing.T) {
	token, jti, err := MintResetToken(testJWT, time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a jti for reset tokens")
	}

	if _, err := ParseSessionToken(testJWT, token); err == nil {
		t.Fatal("a reset token must not pass session parsing")
	}
	if _, err := ParseResetToken(testJWT, token); err != nil {
		t.Fatalf("reset parsing should accept it: %v", err)
	}
}

func TestSessionTokenCannotResetPassword(t *testing.T) {
	token, err := MintSessionToken(testJWT, time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseResetToken(testJWT, token); err == nil {
		t.Fatal("a session token must not pass reset parsing")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issued := time.Now().UTC().Add(-2 * time.Hour)
	token, err := MintSessionToken(testJWT, issued, uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(testJWT, token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := MintSessionToken(testJWT, time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := testJWT
	other.Secret = "different"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestMintValidation(t *testing.T) {
	if _, err := MintSessionToken(config.JWTConfig{Issuer: "x", SessionTTL: time.Hour}, time.Now(), uuid.New()); err == nil {
		t.Fatal("expected error without secret")
	}
	if _, err := MintSessionToken(testJWT, time.Now(), uuid.Nil); err == nil {
		t.Fatal("expected error for nil user id")
	}
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rajchaudar/HR-Dep/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintSessionToken issues the bearer token handed out at login.
func MintSessionToken(cfg config.JWTConfig, now time.Time, userID uuid.UUID) (string, error) {
	return mint(cfg, now, userID, PurposeSession, cfg.SessionTTL)
}

// MintResetToken issues the short-lived token embedded in reset links.
// The returned jti is persisted on the user so a token can be invalidated
// server-side once used.
func MintResetToken(cfg config.JWTConfig, now time.Time, userID uuid.UUID) (token string, jti string, err error) {
	jti = uuid.NewString()
	token, err = mintWithID(cfg, now, userID, PurposePasswordReset, cfg.PasswordResetTTL, jti)
	return token, jti, err
}

func mint(cfg config.JWTConfig, now time.Time, userID uuid.UUID, purpose TokenPurpose, ttl time.Duration) (string, error) {
	return mintWithID(cfg, now, userID, purpose, ttl, uuid.NewString())
}

func mintWithID(cfg config.JWTConfig, now time.Time, userID uuid.UUID, purpose TokenPurpose, ttl time.Duration, jti string) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("jwt ttl must be positive")
	}
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}

	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a bearer token and returns its claims.
func ParseSessionToken(cfg config.JWTConfig, tokenString string) (*Claims, error) {
	return parse(cfg, tokenString, PurposeSession)
}

// ParseResetToken validates a password-reset token and returns its claims.
func ParseResetToken(cfg config.JWTConfig, tokenString string) (*Claims, error) {
	return parse(cfg, tokenString, PurposePasswordReset)
}

func parse(cfg config.JWTConfig, tokenString string, purpose TokenPurpose) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("token purpose %q not valid here", claims.Purpose)
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("token missing user id")
	}
	return claims, nil
}

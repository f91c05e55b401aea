package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/rajchaudar/HR-Dep/internal/users"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	"github.com/rajchaudar/HR-Dep/pkg/db/models"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
)

// GoogleIdentity is the subset of a verified Google profile the service
// needs to find or create an account.
type GoogleIdentity struct {
	Email string
	Name  string
}

// GoogleVerifier resolves Google credentials to a verified identity.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, rawToken string) (*GoogleIdentity, error)
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error)
}

// GoogleClient verifies Google sign-ins via ID tokens and the OAuth
// redirect flow.
type GoogleClient struct {
	clientID string
	oauth    *oauth2.Config
}

// NewGoogleClient builds the verifier from the configured OAuth client.
func NewGoogleClient(cfg config.GoogleConfig) (*GoogleClient, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("google client id is required")
	}
	return &GoogleClient{
		clientID: cfg.ClientID,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleoauth.Endpoint,
		},
	}, nil
}

// VerifyIDToken validates a raw ID token against Google's keys and this
// app's client id.
func (g *GoogleClient) VerifyIDToken(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("validating google id token: %w", err)
	}
	return identityFromClaims(payload.Claims)
}

func (g *GoogleClient) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode swaps an authorization code for tokens and verifies the
// bundled ID token.
func (g *GoogleClient) ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging google code: %w", err)
	}
	rawID, ok := token.Extra("id_token").(string)
	if !ok || rawID == "" {
		return nil, fmt.Errorf("google token response missing id_token")
	}
	return g.VerifyIDToken(ctx, rawID)
}

func identityFromClaims(claims map[string]any) (*GoogleIdentity, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("google id token has no email claim")
	}
	if verified, ok := claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("google account email is not verified")
	}
	name, _ := claims["name"].(string)
	if name == "" {
		name = email
	}
	return &GoogleIdentity{Email: email, Name: name}, nil
}

// LoginWithGoogleIDToken signs a user in with an ID token obtained by the
// frontend. First-time users get an account without a password.
func (s *service) LoginWithGoogleIDToken(ctx context.Context, idToken string) (*Session, error) {
	if s.google == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "google sign-in is not configured")
	}
	identity, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "google sign-in rejected")
	}
	return s.sessionForGoogleIdentity(ctx, identity)
}

// GoogleAuthURL returns the redirect URL that starts the OAuth flow.
func (s *service) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "google sign-in is not configured")
	}
	return s.google.AuthCodeURL(state), nil
}

// LoginWithGoogleCode completes the OAuth redirect flow.
func (s *service) LoginWithGoogleCode(ctx context.Context, code string) (*Session, error) {
	if s.google == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "google sign-in is not configured")
	}
	identity, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "google sign-in rejected")
	}
	return s.sessionForGoogleIdentity(ctx, identity)
}

func (s *service) sessionForGoogleIdentity(ctx context.Context, identity *GoogleIdentity) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, identity.Email)
	if err == users.ErrNotFound {
		user, err = s.repo.Create(ctx, &models.User{Name: identity.Name, Email: identity.Email})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create google user")
		}
		if s.logg != nil {
			logCtx := s.logg.WithUserID(ctx, user.ID.String())
			s.logg.Info(logCtx, "auth.google_user_created")
		}
	} else if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	return s.openSession(user)
}

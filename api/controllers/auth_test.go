package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/rajchaudar/HR-Dep/api/middleware"
	authsvc "github.com/rajchaudar/HR-Dep/internal/auth"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, name, email, password string) (*authsvc.UserView, error)
	loginFn        func(ctx context.Context, email, password string) (*authsvc.Session, error)
	googleTokenFn  func(ctx context.Context, idToken string) (*authsvc.Session, error)
	googleURLFn    func(state string) (string, error)
	googleCodeFn   func(ctx context.Context, code string) (*authsvc.Session, error)
	requestResetFn func(ctx context.Context, email string) error
	resetFn        func(ctx context.Context, token, newPassword string) error
	currentUserFn  func(ctx context.Context, userID uuid.UUID) (*authsvc.UserView, error)
	listUsersFn    func(ctx context.Context) ([]authsvc.UserView, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*authsvc.UserView, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*authsvc.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) LoginWithGoogleIDToken(ctx context.Context, idToken string) (*authsvc.Session, error) {
	return s.googleTokenFn(ctx, idToken)
}

func (s *stubAuthService) GoogleAuthURL(state string) (string, error) {
	return s.googleURLFn(state)
}

func (s *stubAuthService) LoginWithGoogleCode(ctx context.Context, code string) (*authsvc.Session, error) {
	return s.googleCodeFn(ctx, code)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.requestResetFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetFn(ctx, token, newPassword)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*authsvc.UserView, error) {
	return s.currentUserFn(ctx, userID)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]authsvc.UserView, error) {
	return s.listUsersFn(ctx)
}

func TestAuthRegisterSuccess(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*authsvc.UserView, error) {
			return &authsvc.UserView{ID: uuid.New(), Name: name, Email: email, HasPassword: true}, nil
		},
	}
	handler := AuthRegister(svc, nil)

	body := `{"name":"Raj","email":"RAJ@Example.com","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Success bool             `json:"success"`
		User    authsvc.UserView `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	if envelope.User.Email != "raj@example.com" {
		t.Fatalf("expected normalized email, got %q", envelope.User.Email)
	}
}

func TestAuthRegisterRejectsUnknownField(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (*authsvc.UserView, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	handler := AuthRegister(svc, nil)

	body := `{"name":"Raj","email":"raj@example.com","password":"supersecret","admin":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*authsvc.Session, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		},
	}
	handler := AuthLogin(svc, nil)

	body := `{"email":"raj@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	var envelope struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected error code %q", envelope.Code)
	}
}

func TestAuthLoginReturnsToken(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*authsvc.Session, error) {
			return &authsvc.Session{
				Token: "session-token",
				User:  authsvc.UserView{ID: userID, Email: email, HasPassword: true},
			}, nil
		},
	}
	handler := AuthLogin(svc, nil)

	body := `{"email":"raj@example.com","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Token string           `json:"token"`
		User  authsvc.UserView `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Token != "session-token" {
		t.Fatalf("unexpected token %q", envelope.Token)
	}
	if envelope.User.ID != userID {
		t.Fatalf("unexpected user id %s", envelope.User.ID)
	}
}

func TestAuthGoogleRedirect(t *testing.T) {
	svc := &stubAuthService{
		googleURLFn: func(state string) (string, error) {
			if state == "" {
				t.Fatal("expected a generated state value")
			}
			return "https://accounts.google.com/o/oauth2/auth?state=" + state, nil
		},
	}
	handler := AuthGoogleRedirect(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307 got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); !strings.HasPrefix(loc, "https://accounts.google.com/") {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestAuthGoogleCallbackMissingCode(t *testing.T) {
	handler := AuthGoogleCallback(&stubAuthService{}, config.AppConfig{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthGoogleCallbackRedirectsWithToken(t *testing.T) {
	svc := &stubAuthService{
		googleCodeFn: func(ctx context.Context, code string) (*authsvc.Session, error) {
			if code != "auth-code" {
				t.Fatalf("unexpected code %q", code)
			}
			return &authsvc.Session{Token: "session-token"}, nil
		},
	}
	handler := AuthGoogleCallback(svc, config.AppConfig{FrontendURL: "http://localhost:5500"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=auth-code", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", resp.Code)
	}
	loc := resp.Header().Get("Location")
	if loc != "http://localhost:5500/auth/callback?token=session-token" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestAuthRequestSetPasswordAcksUnknownEmail(t *testing.T) {
	svc := &stubAuthService{
		requestResetFn: func(ctx context.Context, email string) error {
			return nil
		},
	}
	handler := AuthRequestSetPassword(svc, nil)

	body := `{"email":"nobody@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/request-set-password", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthResetPasswordInvalidToken(t *testing.T) {
	svc := &stubAuthService{
		resetFn: func(ctx context.Context, token, newPassword string) error {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
		},
	}
	handler := AuthResetPassword(svc, nil)

	body := `{"token":"stale","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reset-password", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthCurrentUserMissingContext(t *testing.T) {
	handler := AuthCurrentUser(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthCurrentUserSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{
		currentUserFn: func(ctx context.Context, id uuid.UUID) (*authsvc.UserView, error) {
			if id != userID {
				t.Fatalf("expected user id %s got %s", userID, id)
			}
			return &authsvc.UserView{ID: id, Email: "raj@example.com"}, nil
		},
	}
	handler := AuthCurrentUser(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

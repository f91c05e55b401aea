package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rajchaudar/HR-Dep/internal/users"
	pkgAuth "github.com/rajchaudar/HR-Dep/pkg/auth"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	"github.com/rajchaudar/HR-Dep/pkg/db"
	"github.com/rajchaudar/HR-Dep/pkg/db/models"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
	"github.com/rajchaudar/HR-Dep/pkg/mailer"
	"github.com/rajchaudar/HR-Dep/pkg/security"
)

// Service defines registration, login and password-reset operations.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*UserView, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	LoginWithGoogleIDToken(ctx context.Context, idToken string) (*Session, error)
	GoogleAuthURL(state string) (string, error)
	LoginWithGoogleCode(ctx context.Context, code string) (*Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	ListUsers(ctx context.Context) ([]UserView, error)
}

type service struct {
	repo    users.Repository
	mail    mailer.Sender
	google  GoogleVerifier
	jwtCfg  config.JWTConfig
	pwCfg   config.PasswordConfig
	appCfg  config.AppConfig
	logg    *logger.Logger
	nowFunc func() time.Time
}

// NewService builds the auth service. The google verifier and mailer are
// optional; the operations that need them fail cleanly when absent.
func NewService(repo users.Repository, mail mailer.Sender, google GoogleVerifier, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig, appCfg config.AppConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:    repo,
		mail:    mail,
		google:  google,
		jwtCfg:  jwtCfg,
		pwCfg:   pwCfg,
		appCfg:  appCfg,
		logg:    logg,
		nowFunc: time.Now,
	}, nil
}

const minPasswordLength = 8

func (s *service) Register(ctx context.Context, name, email, password string) (*UserView, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{Name: name, Email: email, PasswordHash: &hash}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	if s.logg != nil {
		logCtx := s.logg.WithUserID(ctx, created.ID.String())
		s.logg.Info(logCtx, "auth.user_registered")
	}

	view := toUserView(created)
	return &view, nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err == users.ErrNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if !user.HasPassword() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account has no password; sign in with Google or set a password first")
	}

	ok, err := security.VerifyPassword(password, *user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	return s.openSession(user)
}

// RequestPasswordReset mints a single-use reset token and emails it. The
// response is identical whether or not the email exists.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err == users.ErrNotFound {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	now := s.nowFunc()
	token, jti, err := pkgAuth.MintResetToken(s.jwtCfg, now, user.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint reset token")
	}

	expiresAt := now.Add(s.jwtCfg.PasswordResetTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, jti, expiresAt); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}

	if s.mail == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "mail delivery is not configured")
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.appCfg.FrontendURL, token)
	body := fmt.Sprintf("Hello %s,\n\nUse the link below to set a new password. It expires in %d minutes.\n\n%s\n\nIf you did not request this, ignore this email.\n",
		user.Name, int(s.jwtCfg.PasswordResetTTL.Minutes()), link)
	if err := s.mail.Send(ctx, user.Email, "Reset your password", body); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send reset email")
	}

	if s.logg != nil {
		logCtx := s.logg.WithUserID(ctx, user.ID.String())
		s.logg.Info(logCtx, "auth.reset_requested")
	}
	return nil
}

// ResetPassword consumes a reset token. The token must match the stored
// token id, so issuing a new reset link invalidates all earlier ones.
func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	claims, err := pkgAuth.ParseResetToken(s.jwtCfg, token)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid reset token")
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err == users.ErrNotFound {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid reset token")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if user.ResetTokenID == nil || *user.ResetTokenID != claims.ID {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "reset token is no longer valid")
	}
	if user.ResetTokenExpiresAt == nil || s.nowFunc().After(*user.ResetTokenExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "reset token has expired")
	}

	hash, err := security.HashPassword(newPassword, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	if err := s.repo.ClearResetToken(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear reset token")
	}

	if s.logg != nil {
		logCtx := s.logg.WithUserID(ctx, user.ID.String())
		s.logg.Info(logCtx, "auth.password_reset")
	}
	return nil
}

func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err == users.ErrNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	view := toUserView(user)
	return &view, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserView, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	views := make([]UserView, 0, len(list))
	for i := range list {
		views = append(views, toUserView(&list[i]))
	}
	return views, nil
}

func (s *service) openSession(user *models.User) (*Session, error) {
	token, err := pkgAuth.MintSessionToken(s.jwtCfg, s.nowFunc(), user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}
	return &Session{Token: token, User: toUserView(user)}, nil
}

func toUserView(user *models.User) UserView {
	return UserView{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		HasPassword: user.HasPassword(),
		CreatedAt:   user.CreatedAt,
	}
}

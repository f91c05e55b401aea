package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rajchaudar/HR-Dep/internal/users"
	pkgAuth "github.com/rajchaudar/HR-Dep/pkg/auth"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	"github.com/rajchaudar/HR-Dep/pkg/db/models"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
)

// weak argon params keep the test suite fast
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "test-secret",
		Issuer:           "hr-dep",
		SessionTTL:       time.Hour,
		PasswordResetTTL: 15 * time.Minute,
	}
}

type stubUsersRepo struct {
	byEmail   map[string]*models.User
	byID      map[uuid.UUID]*models.User
	createErr error
}

func newStubUsersRepo(seed ...*models.User) *stubUsersRepo {
	repo := &stubUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
	for _, user := range seed {
		repo.byEmail[user.Email] = user
		repo.byID[user.ID] = user
	}
	return repo
}

func (s *stubUsersRepo) WithTx(tx *gorm.DB) users.Repository { return s }

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return nil, errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, users.ErrNotFound
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, users.ErrNotFound
}

func (s *stubUsersRepo) List(ctx context.Context) ([]models.User, error) {
	list := make([]models.User, 0, len(s.byID))
	for _, user := range s.byID {
		list = append(list, *user)
	}
	return list, nil
}

func (s *stubUsersRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	user, ok := s.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	user.PasswordHash = &hash
	return nil
}

func (s *stubUsersRepo) SetResetToken(ctx context.Context, id uuid.UUID, tokenID string, expiresAt time.Time) error {
	user, ok := s.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	user.ResetTokenID = &tokenID
	user.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (s *stubUsersRepo) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	user, ok := s.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	user.ResetTokenID = nil
	user.ResetTokenExpiresAt = nil
	return nil
}

type stubMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (s *stubMailer) Send(ctx context.Context, to, subject, textBody string) error {
	if s.err != nil {
		return s.err
	}
	s.to = to
	s.subject = subject
	s.body = textBody
	return nil
}

type stubGoogle struct {
	identity *GoogleIdentity
	err      error
}

func (s *stubGoogle) VerifyIDToken(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func (s *stubGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (s *stubGoogle) ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error) {
	return s.VerifyIDToken(ctx, code)
}

func mustAuthService(t *testing.T, repo users.Repository, mail *stubMailer, google GoogleVerifier) Service {
	t.Helper()
	svc, err := NewService(repo, mail, google, testJWTConfig(), testPasswordConfig(), config.AppConfig{FrontendURL: "http://localhost:5500"}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newStubUsersRepo()
	svc := mustAuthService(t, repo, &stubMailer{}, nil)

	view, err := svc.Register(context.Background(), "Alice", "alice@example.com", "longenough1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !view.HasPassword {
		t.Fatal("expected password set")
	}

	stored := repo.byEmail["alice@example.com"]
	if stored.PasswordHash == nil || *stored.PasswordHash == "longenough1" {
		t.Fatal("password must be stored hashed")
	}
	if !strings.HasPrefix(*stored.PasswordHash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", *stored.PasswordHash)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newStubUsersRepo()
	svc := mustAuthService(t, repo, &stubMailer{}, nil)

	if _, err := svc.Register(context.Background(), "Alice", "dup@example.com", "longenough1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Bob", "dup@example.com", "longenough1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := mustAuthService(t, newStubUsersRepo(), &stubMailer{}, nil)

	_, err := svc.Register(context.Background(), "Alice", "a@example.com", "short")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginMintsSessionToken(t *testing.T) {
	repo := newStubUsersRepo()
	svc := mustAuthService(t, repo, &stubMailer{}, nil)

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "longenough1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	session, err := svc.Login(context.Background(), "alice@example.com", "longenough1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := pkgAuth.ParseSessionToken(testJWTConfig(), session.Token)
	if err != nil {
		t.Fatalf("session token does not parse: %v", err)
	}
	if claims.UserID != session.User.ID {
		t.Fatalf("token subject mismatch: %s vs %s", claims.UserID, session.User.ID)
	}
}

func TestLoginWrongCredentialsAreIndistinguishable(t *testing.T) {
	repo := newStubUsersRepo()
	svc := mustAuthService(t, repo, &stubMailer{}, nil)

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "longenough1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, badPassword := svc.Login(context.Background(), "alice@example.com", "wrongpassword")
	_, badEmail := svc.Login(context.Background(), "nobody@example.com", "longenough1")

	for _, err := range []error{badPassword, badEmail} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if typed.Message() != "invalid email or password" {
			t.Fatalf("login errors must not reveal which part failed: %q", typed.Message())
		}
	}
}

func TestLoginGoogleOnlyAccountRejected(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "G", Email: "g@example.com"}
	svc := mustAuthService(t, newStubUsersRepo(user), &stubMailer{}, nil)

	_, err := svc.Login(context.Background(), "g@example.com", "whatever123")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRequestPasswordResetStoresTokenAndSendsMail(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	repo := newStubUsersRepo(user)
	mail := &stubMailer{}
	svc := mustAuthService(t, repo, mail, nil)

	if err := svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}

	if user.ResetTokenID == nil || *user.ResetTokenID == "" {
		t.Fatal("expected reset token id stored")
	}
	if mail.to != "alice@example.com" {
		t.Fatalf("expected mail to user, got %q", mail.to)
	}
	if !strings.Contains(mail.body, "http://localhost:5500/reset-password?token=") {
		t.Fatalf("expected reset link in mail body:\n%s", mail.body)
	}
}

func TestRequestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	mail := &stubMailer{}
	svc := mustAuthService(t, newStubUsersRepo(), mail, nil)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if mail.to != "" {
		t.Fatal("no mail may be sent for unknown emails")
	}
}

func TestResetPasswordHappyPath(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	repo := newStubUsersRepo(user)
	mail := &stubMailer{}
	svc := mustAuthService(t, repo, mail, nil)

	if err := svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	token := strings.TrimPrefix(mail.body[strings.Index(mail.body, "token=")+len("token="):], "")
	token = strings.Fields(token)[0]

	if err := svc.ResetPassword(context.Background(), token, "brandnewpass1"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if user.ResetTokenID != nil {
		t.Fatal("reset token must be cleared after use")
	}

	if _, err := svc.Login(context.Background(), "alice@example.com", "brandnewpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestResetPasswordStaleTokenRejected(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	repo := newStubUsersRepo(user)
	mail := &stubMailer{}
	svc := mustAuthService(t, repo, mail, nil)

	if err := svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	firstBody := mail.body

	// a second request supersedes the first token
	if err := svc.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}

	stale := strings.Fields(firstBody[strings.Index(firstBody, "token=")+len("token="):])[0]
	err := svc.ResetPassword(context.Background(), stale, "brandnewpass1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("stale token must be rejected, got %v", err)
	}
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	repo := newStubUsersRepo()
	svc := mustAuthService(t, repo, &stubMailer{}, nil)

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "longenough1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	session, err := svc.Login(context.Background(), "alice@example.com", "longenough1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	err = svc.ResetPassword(context.Background(), session.Token, "brandnewpass1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("session token must not reset passwords, got %v", err)
	}
}

func TestGoogleLoginCreatesPasswordlessUser(t *testing.T) {
	repo := newStubUsersRepo()
	google := &stubGoogle{identity: &GoogleIdentity{Email: "g@example.com", Name: "G User"}}
	svc := mustAuthService(t, repo, &stubMailer{}, google)

	session, err := svc.LoginWithGoogleIDToken(context.Background(), "raw-id-token")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if session.User.HasPassword {
		t.Fatal("google-created account must have no password")
	}

	// second sign-in resolves to the same account
	again, err := svc.LoginWithGoogleIDToken(context.Background(), "raw-id-token")
	if err != nil {
		t.Fatalf("second google login: %v", err)
	}
	if again.User.ID != session.User.ID {
		t.Fatal("expected the same account on repeat sign-in")
	}
}

func TestGoogleLoginRejectedToken(t *testing.T) {
	google := &stubGoogle{err: errors.New("bad signature")}
	svc := mustAuthService(t, newStubUsersRepo(), &stubMailer{}, google)

	_, err := svc.LoginWithGoogleIDToken(context.Background(), "bad")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	svc := mustAuthService(t, newStubUsersRepo(), &stubMailer{}, nil)

	_, err := svc.LoginWithGoogleIDToken(context.Background(), "token")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

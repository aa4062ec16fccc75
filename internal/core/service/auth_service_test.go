package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     []*domain.User
	createErr error
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	r.users = append(r.users, &clone)
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

type stubSessionRepo struct {
	current *domain.User
	setErr  error
}

func (r *stubSessionRepo) Current(_ context.Context) (*domain.User, error) {
	if r.current == nil {
		return nil, nil
	}
	clone := *r.current
	return &clone, nil
}

func (r *stubSessionRepo) SetCurrent(_ context.Context, user *domain.User) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.current = user
	return nil
}

var discardLogger = zerolog.Nop()

func newAuthSvc(users *stubUserRepo, sessions *stubSessionRepo) *AuthService {
	return NewAuthService(context.Background(), users, sessions, discardLogger)
}

// ---------------------------------------------------------------------------
// SignUp
// ---------------------------------------------------------------------------

func TestAuthService_SignUp_Success(t *testing.T) {
	users := &stubUserRepo{}
	sessions := &stubSessionRepo{}
	svc := newAuthSvc(users, sessions)

	user, err := svc.SignUp(context.Background(), "alice@example.com", "pass123", "Alice")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected an allocated id")
	}
	if user.Role != domain.RoleCitizen {
		t.Errorf("expected role %q, got %q", domain.RoleCitizen, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestAuthService_SignUp_SetsSession(t *testing.T) {
	users := &stubUserRepo{}
	sessions := &stubSessionRepo{}
	svc := newAuthSvc(users, sessions)

	user, err := svc.SignUp(context.Background(), "alice@example.com", "pass123", "")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if current := svc.CurrentUser(); current == nil || current.Email != user.Email {
		t.Error("sign-up must make the new user the current session")
	}
	if sessions.current == nil || sessions.current.Email != user.Email {
		t.Error("sign-up must persist the session")
	}

	if found, err := users.FindByEmail(context.Background(), "alice@example.com"); err != nil || found.ID != user.ID {
		t.Errorf("registered user must be retrievable: %v", err)
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	users := &stubUserRepo{}
	svc := newAuthSvc(users, &stubSessionRepo{})

	if _, err := svc.SignUp(context.Background(), "alice@example.com", "first", ""); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	_, err := svc.SignUp(context.Background(), "alice@example.com", "second", "")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(users.users) != 1 {
		t.Errorf("duplicate registration must not grow the collection: got %d users", len(users.users))
	}
}

func TestAuthService_SignUp_InvalidInput(t *testing.T) {
	svc := newAuthSvc(&stubUserRepo{}, &stubSessionRepo{})

	cases := []struct{ email, password string }{
		{"", "pass"},
		{"not-an-email", "pass"},
		{"alice@example.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.SignUp(context.Background(), tc.email, tc.password, ""); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("SignUp(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

// ---------------------------------------------------------------------------
// SignIn
// ---------------------------------------------------------------------------

func TestAuthService_SignIn_Success(t *testing.T) {
	users := &stubUserRepo{}
	sessions := &stubSessionRepo{}
	svc := newAuthSvc(users, sessions)

	if _, err := svc.SignUp(context.Background(), "alice@example.com", "pass123", ""); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	svc.SignOut(context.Background())

	user, err := svc.SignIn(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %s", user.Email)
	}
	if svc.CurrentUser() == nil {
		t.Error("sign-in must set the session")
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	svc := newAuthSvc(&stubUserRepo{}, &stubSessionRepo{})
	if _, err := svc.SignUp(context.Background(), "alice@example.com", "pass123", ""); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	svc := newAuthSvc(&stubUserRepo{}, &stubSessionRepo{})
	if _, err := svc.SignIn(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_SeededAccountWithoutHash(t *testing.T) {
	// Seeded sample accounts carry no password hash and accept any
	// non-empty password; the empty password still fails.
	users := &stubUserRepo{users: []*domain.User{{
		ID:        "1",
		Email:     "citizen@example.com",
		Role:      domain.RoleCitizen,
		CreatedAt: time.Now().UTC(),
	}}}
	svc := newAuthSvc(users, &stubSessionRepo{})

	if _, err := svc.SignIn(context.Background(), "citizen@example.com", "anything"); err != nil {
		t.Fatalf("seeded account should accept a non-empty password: %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "citizen@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password must fail, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SignOut and session restore
// ---------------------------------------------------------------------------

func TestAuthService_SignOut_ClearsSession(t *testing.T) {
	sessions := &stubSessionRepo{}
	svc := newAuthSvc(&stubUserRepo{}, sessions)
	if _, err := svc.SignUp(context.Background(), "alice@example.com", "pass123", ""); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	svc.SignOut(context.Background())

	if svc.CurrentUser() != nil {
		t.Error("SignOut must clear the in-memory session")
	}
	if sessions.current != nil {
		t.Error("SignOut must clear the persisted session")
	}
}

func TestAuthService_SignOut_SurvivesPersistFailure(t *testing.T) {
	sessions := &stubSessionRepo{}
	svc := newAuthSvc(&stubUserRepo{}, sessions)
	if _, err := svc.SignUp(context.Background(), "alice@example.com", "pass123", ""); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	sessions.setErr = errors.New("disk full")
	svc.SignOut(context.Background())

	if svc.CurrentUser() != nil {
		t.Error("SignOut must clear the session even when persisting fails")
	}
}

func TestAuthService_RestoresPersistedSession(t *testing.T) {
	sessions := &stubSessionRepo{current: &domain.User{ID: "7", Email: "back@example.com", Role: domain.RoleCitizen}}
	svc := newAuthSvc(&stubUserRepo{}, sessions)

	current := svc.CurrentUser()
	if current == nil || current.ID != "7" {
		t.Fatalf("expected restored session user 7, got %+v", current)
	}
}

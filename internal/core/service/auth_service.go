package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
)

// AuthService implements registration, sign-in and sign-out. It owns the
// session pointer: callers receive it explicitly instead of reading ambient
// global state, and the persisted session is restored at construction time.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	validate *validator.Validate
	current  *domain.User
	log      zerolog.Logger
}

type signUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// NewAuthService builds an AuthService and restores whatever user was
// previously persisted as current, or none.
func NewAuthService(ctx context.Context, users ports.UserRepository, sessions ports.SessionRepository, log zerolog.Logger) *AuthService {
	s := &AuthService{
		users:    users,
		sessions: sessions,
		validate: validator.New(),
		log:      log,
	}

	restored, err := sessions.Current(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not restore session")
		return s
	}
	s.current = restored
	if restored != nil {
		log.Debug().Str("email", restored.Email).Msg("session restored")
	}
	return s
}

// SignUp registers a new citizen account and signs it in as a side effect.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	if err := s.validate.Struct(signUpInput{Email: email, Password: password}); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Role:         domain.RoleCitizen,
		FullName:     fullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.setSession(ctx, created)
	s.log.Info().Str("email", created.Email).Msg("user registered")
	return created, nil
}

// SignIn authenticates by exact email match. Stored records without a
// password hash (seeded sample accounts) accept any non-empty password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
	}

	s.setSession(ctx, user)
	s.log.Info().Str("email", user.Email).Msg("user signed in")
	return user, nil
}

// SignOut clears the session unconditionally. A failure to persist the
// cleared pointer is logged but does not keep the user signed in.
func (s *AuthService) SignOut(ctx context.Context) {
	s.current = nil
	if err := s.sessions.SetCurrent(ctx, nil); err != nil {
		s.log.Warn().Err(err).Msg("could not persist sign-out")
	}
}

// CurrentUser returns the session's active user, or nil when signed out.
func (s *AuthService) CurrentUser() *domain.User {
	return s.current
}

func (s *AuthService) setSession(ctx context.Context, user *domain.User) {
	s.current = user
	if err := s.sessions.SetCurrent(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("could not persist session")
	}
}

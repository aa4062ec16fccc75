package ports

import (
	"context"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create persists a new user. Fails with domain.ErrUserExists when a
	// user with the same email is already stored.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail retrieves a user by exact email match.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// SessionRepository persists the single "current user" pointer so a session
// survives restarts of the same client.
type SessionRepository interface {
	// Current returns the active user, or nil when no session is stored.
	Current(ctx context.Context) (*domain.User, error)
	// SetCurrent stores the active user; nil clears the session.
	SetCurrent(ctx context.Context, user *domain.User) error
}

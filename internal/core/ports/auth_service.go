package ports

import (
	"context"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// AuthService owns the session: the single active authenticated user.
type AuthService interface {
	// SignUp registers a new citizen account and makes it the current session.
	SignUp(ctx context.Context, email, password, fullName string) (*domain.User, error)
	// SignIn authenticates by email and makes the user the current session.
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	// SignOut clears the session unconditionally.
	SignOut(ctx context.Context)
	// CurrentUser returns the session's active user, or nil when signed out.
	CurrentUser() *domain.User
}

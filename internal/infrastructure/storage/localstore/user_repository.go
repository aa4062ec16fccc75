package localstore

import (
	"context"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// UserRepository persists users under the "users" key.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create appends a new user. Email uniqueness is checked within the same
// read-modify-write cycle.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	var users []*domain.User
	err := r.store.update(keyUsers, &users, func() error {
		for _, u := range users {
			if u.Email == user.Email {
				return domain.ErrUserExists
			}
		}
		clone := *user
		users = append(users, &clone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	clone := *user
	return &clone, nil
}

// FindByEmail retrieves a user by exact, case-sensitive email match.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	var users []*domain.User
	if err := r.store.read(keyUsers, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	var users []*domain.User
	if err := r.store.read(keyUsers, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.store.read(keyUsers, &users); err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

// SessionRepository persists the current-user pointer under "current_user".
type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Current returns the persisted session user, or nil when none is stored.
func (r *SessionRepository) Current(_ context.Context) (*domain.User, error) {
	var user *domain.User
	if err := r.store.read(keyCurrentUser, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetCurrent stores the session user; nil removes the key entirely.
func (r *SessionRepository) SetCurrent(_ context.Context, user *domain.User) error {
	if user == nil {
		return r.store.remove(keyCurrentUser)
	}
	return r.store.write(keyCurrentUser, user)
}

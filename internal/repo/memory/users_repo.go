package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/eventlyhq/evently/internal/domain/user"
)

// UsersRepo keeps the user table in process memory. Lives for the process
// lifetime; only the session itself is persisted elsewhere.
type UsersRepo struct {
	mu    sync.RWMutex
	users []user.User
}

func NewUsersRepo(seed ...user.User) *UsersRepo {
	return &UsersRepo{
		users: append([]user.User(nil), seed...),
	}
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// exact, case-sensitive match
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return user.User{}, user.ErrNotFound
}

// Create appends a new user with id = current count + 1 (as a string). The
// email uniqueness check happens here, under the same lock as the append.
func (r *UsersRepo) Create(ctx context.Context, name, email, password, role string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return user.User{}, user.ErrEmailTaken
		}
	}

	u := user.User{
		ID:       strconv.Itoa(len(r.users) + 1),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}

	r.users = append(r.users, u)

	return u, nil
}

func (r *UsersRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}

package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/eventlyhq/evently/internal/domain/user"
	"github.com/eventlyhq/evently/internal/security"
)

const sessionKey = "session:user"

// envelopeVersion guards the persisted shape; any mismatch on load fails closed.
const envelopeVersion = 1

// UserDirectory is the slice of the user repository the store needs.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, name, email, password, role string) (user.User, error)
}

// Store is the single source of truth for "who is logged in". The current user
// is mirrored into Storage so a restarted process can restore it.
type Store struct {
	mu       sync.RWMutex
	current  *user.User
	users    UserDirectory
	verifier security.CredentialVerifier
	storage  Storage
}

func NewStore(users UserDirectory, verifier security.CredentialVerifier, storage Storage) *Store {
	return &Store{
		users:    users,
		verifier: verifier,
		storage:  storage,
	}
}

type persistedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type envelope struct {
	V    int           `json:"v"`
	User persistedUser `json:"user"`
}

// Login scans the user table for an exact email match and verifies the
// credential. A failed lookup and a failed verify are indistinguishable to the
// caller: both return user.ErrInvalidCredentials and leave the session untouched.
func (s *Store) Login(ctx context.Context, email, password string) (user.User, error) {
	found, err := s.users.GetByEmail(ctx, email)

	if err != nil {
		return user.User{}, user.ErrInvalidCredentials
	}

	err = s.verifier.Verify(found.Password, password)

	if err != nil {
		return user.User{}, user.ErrInvalidCredentials
	}

	err = s.setCurrent(ctx, &found)

	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// SignUp appends a new user and establishes it as the active session. The email
// uniqueness check is case-sensitive and lives in the directory, which returns
// user.ErrEmailTaken.
func (s *Store) SignUp(ctx context.Context, name, email, password string, isAdmin bool) (user.User, error) {
	role := user.RoleUser

	if isAdmin {
		role = user.RoleAdmin
	}

	stored, err := s.verifier.Store(password)

	if err != nil {
		return user.User{}, err
	}

	created, err := s.users.Create(ctx, name, email, stored, role)

	if err != nil {
		return user.User{}, err
	}

	err = s.setCurrent(ctx, &created)

	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// Logout clears the session and removes the persisted copy.
func (s *Store) Logout(ctx context.Context) error {
	return s.setCurrent(ctx, nil)
}

// Current returns the logged-in user, if any.
func (s *Store) Current() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return user.User{}, false
	}

	return *s.current, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) IsAdmin() bool {
	u, ok := s.Current()
	return ok && u.Role == user.RoleAdmin
}

// Restore reads the persisted session at startup. Malformed data, an unknown
// envelope version, or an empty user id all fail closed: the bad value is
// deleted and the store starts unauthenticated. The user is not re-validated
// against the directory; a since-deleted user stays logged in until logout.
func (s *Store) Restore(ctx context.Context) error {
	raw, found, err := s.storage.Get(ctx, sessionKey)

	if err != nil {
		return err
	}

	if !found {
		return nil
	}

	var env envelope

	err = json.Unmarshal([]byte(raw), &env)

	if err != nil || env.V != envelopeVersion || env.User.ID == "" {
		return s.storage.Delete(ctx, sessionKey)
	}

	u := user.User{
		ID:       env.User.ID,
		Name:     env.User.Name,
		Email:    env.User.Email,
		Password: env.User.Password,
		Role:     env.User.Role,
	}

	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	return nil
}

func (s *Store) setCurrent(ctx context.Context, u *user.User) error {
	if u == nil {
		err := s.storage.Delete(ctx, sessionKey)

		if err != nil {
			return err
		}

		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		return nil
	}

	env := envelope{
		V: envelopeVersion,
		User: persistedUser{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
			Role:     u.Role,
		},
	}

	b, err := json.Marshal(env)

	if err != nil {
		return err
	}

	err = s.storage.Set(ctx, sessionKey, string(b))

	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()

	return nil
}

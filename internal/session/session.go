// Package session tracks the logged-in identity. The identity is
// persisted alongside the collections, so a restart resumes the
// session the way a browser reload would.
package session

import (
	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/store"
)

// Manager handles registration, login and the current identity.
type Manager struct {
	store *store.Store
}

// NewManager constructs a session manager over the store.
func NewManager(s *store.Store) *Manager {
	return &Manager{store: s}
}

// Register creates an account and logs it in. Fails with
// ErrDuplicateEmail when the email is taken, compared
// case-insensitively to match the authorization path.
func (m *Manager) Register(name, email, password string) (*model.User, error) {
	u, err := m.store.CreateUser(name, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetCurrentUser(*u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login establishes the identity for a matching email/password pair.
// The email side of the match is case-insensitive, the password side
// is exact. Any mismatch fails with ErrInvalidCredentials; whether
// the account exists is not disclosed.
func (m *Manager) Login(email, password string) (*model.User, error) {
	u, err := m.store.UserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password != password {
		return nil, errs.ErrInvalidCredentials
	}
	if err := m.store.SetCurrentUser(*u); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout clears the identity. Logging out while logged out is fine.
func (m *Manager) Logout() error {
	return m.store.ClearCurrentUser()
}

// Current returns the logged-in user, or nil when there is none.
func (m *Manager) Current() (*model.User, error) {
	return m.store.CurrentUser()
}

package store

import (
	"encoding/json"
	"strings"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/google/uuid"
)

// Users returns all registered users.
func (s *Store) Users() ([]model.User, error) {
	var users []model.User
	if err := s.loadInto(keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserByEmail returns the user with the given email, or nil if none.
// Email comparison is case-insensitive.
func (s *Store) UserByEmail(email string) (*model.User, error) {
	users, err := s.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// UserByID returns the user with the given id, or nil if none.
func (s *Store) UserByID(id string) (*model.User, error) {
	users, err := s.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser appends a new user. Fails with ErrDuplicateEmail when
// the email is already taken, compared case-insensitively.
func (s *Store) CreateUser(name, email, password string) (*model.User, error) {
	users, err := s.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return nil, errs.ErrDuplicateEmail
		}
	}

	u := model.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	users = append(users, u)
	if err := s.save(keyUsers, users); err != nil {
		return nil, err
	}
	return &u, nil
}

// CurrentUser returns the persisted session identity, or nil when
// nobody is logged in.
func (s *Store) CurrentUser() (*model.User, error) {
	raw, ok, err := s.kv.Get(keyCurrentUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// Corrupt identity record reads as logged out.
		return nil, nil
	}
	return &u, nil
}

// SetCurrentUser persists u as the session identity.
func (s *Store) SetCurrentUser(u model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.kv.Put(keyCurrentUser, string(raw))
}

// ClearCurrentUser removes the session identity.
func (s *Store) ClearCurrentUser() error {
	return s.kv.Delete(keyCurrentUser)
}

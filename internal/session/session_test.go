package session

import (
	"path/filepath"
	"testing"

	"github.com/averix/kanvas/internal/db"
	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	s := store.New(database)
	return NewManager(s), s
}

func TestRegisterEstablishesSession(t *testing.T) {
	m, _ := newTestManager(t)

	u, err := m.Register("Ada", "ada@x.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	cur, err := m.Current()
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Register("Ada", "ada@x.com", "pw")
	require.NoError(t, err)

	_, err = m.Register("Imposter", "ada@x.com", "other")
	assert.ErrorIs(t, err, errs.ErrDuplicateEmail)

	// Uniqueness is case-insensitive, same as authorization matching.
	_, err = m.Register("Imposter", "ADA@X.COM", "other")
	assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Register("Ada", "ada@x.com", "pw")
	require.NoError(t, err)
	require.NoError(t, m.Logout())

	_, err = m.Login("ada@x.com", "wrong")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = m.Login("ghost@x.com", "pw")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	u, err := m.Login("ADA@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	cur, err := m.Current()
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

func TestLogoutClearsSession(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Register("Ada", "ada@x.com", "pw")
	require.NoError(t, err)

	require.NoError(t, m.Logout())
	cur, err := m.Current()
	require.NoError(t, err)
	assert.Nil(t, cur)

	// Logging out twice is fine.
	require.NoError(t, m.Logout())
}

func TestSessionSurvivesRestart(t *testing.T) {
	m, s := newTestManager(t)
	u, err := m.Register("Ada", "ada@x.com", "pw")
	require.NoError(t, err)

	// A fresh manager over the same store resumes the session.
	m2 := NewManager(s)
	cur, err := m2.Current()
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

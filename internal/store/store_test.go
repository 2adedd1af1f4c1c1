package store

import (
	"path/filepath"
	"testing"

	"github.com/averix/kanvas/internal/db"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return New(database)
}

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	s := newTestStore(t)

	boards, err := s.Boards()
	require.NoError(t, err)
	require.Empty(t, boards)

	cards, err := s.Cards()
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestLoadMalformedCollectionIsEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.kv.Put("boards", "{not json"))
	require.NoError(t, s.kv.Put("cards", `"scalar"`))

	boards, err := s.Boards()
	require.NoError(t, err)
	require.Empty(t, boards)

	cards, err := s.Cards()
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestSaveOverwritesWholeCollection(t *testing.T) {
	s := newTestStore(t)
	u, err := s.CreateUser("Ada", "ada@x.com", "pw")
	require.NoError(t, err)

	_, err = s.CreateBoard("One", "blue", u.ID)
	require.NoError(t, err)
	_, err = s.CreateBoard("Two", "green", u.ID)
	require.NoError(t, err)

	boards, err := s.Boards()
	require.NoError(t, err)
	require.Len(t, boards, 2)

	require.NoError(t, s.DeleteBoard(boards[0].ID))
	boards, err = s.Boards()
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Equal(t, "Two", boards[0].Name)
}

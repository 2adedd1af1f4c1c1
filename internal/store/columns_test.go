package store

import (
	"testing"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultColumns(t *testing.T) {
	s := newTestStore(t)
	b, err := s.CreateBoard("Roadmap", model.ColorBlue, "owner1")
	require.NoError(t, err)

	cols, err := s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)
	require.Len(t, cols, 4)
	for i, name := range []string{"Backlog", "To Do", "In Progress", "Done"} {
		assert.Equal(t, name, cols[i].Name)
		assert.Equal(t, i, cols[i].Order)
		assert.Equal(t, b.ID, cols[i].BoardID)
	}

	// Idempotent: a second call changes nothing.
	again, err := s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)
	require.Len(t, again, 4)
	assert.Equal(t, cols[0].ID, again[0].ID)

	all, err := s.ColumnsByBoard(b.ID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestEnsureDefaultColumnsMissingBoard(t *testing.T) {
	s := newTestStore(t)
	_, err := s.EnsureDefaultColumns("missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateColumnOrdersAfterExisting(t *testing.T) {
	s := newTestStore(t)
	b, err := s.CreateBoard("Roadmap", model.ColorBlue, "owner1")
	require.NoError(t, err)

	first, err := s.CreateColumn(b.ID, "Ideas")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)

	_, err = s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)
	cols, err := s.ColumnsByBoard(b.ID)
	require.NoError(t, err)
	// Board already had a column, so no defaults were seeded.
	require.Len(t, cols, 1)

	second, err := s.CreateColumn(b.ID, "Review")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	_, err = s.CreateColumn("missing", "x")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

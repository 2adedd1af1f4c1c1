package store

import (
	"testing"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoardNormalizesColor(t *testing.T) {
	s := newTestStore(t)

	b, err := s.CreateBoard("Roadmap", "chartreuse", "owner1")
	require.NoError(t, err)
	assert.Equal(t, model.ColorBlue, b.Color)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	b2, err := s.CreateBoard("Sprints", model.ColorPink, "owner1")
	require.NoError(t, err)
	assert.Equal(t, model.ColorPink, b2.Color)
}

func TestUpdateBoard(t *testing.T) {
	s := newTestStore(t)
	b, err := s.CreateBoard("Roadmap", model.ColorBlue, "owner1")
	require.NoError(t, err)

	require.NoError(t, s.UpdateBoard(b.ID, "Roadmap 2026", model.ColorGreen))
	got, err := s.BoardByID(b.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Roadmap 2026", got.Name)
	assert.Equal(t, model.ColorGreen, got.Color)

	err = s.UpdateBoard("missing", "x", model.ColorBlue)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteBoardCascades(t *testing.T) {
	s := newTestStore(t)
	b, err := s.CreateBoard("Roadmap", model.ColorBlue, "owner1")
	require.NoError(t, err)
	other, err := s.CreateBoard("Other", model.ColorRed, "owner1")
	require.NoError(t, err)

	cols, err := s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)
	otherCols, err := s.EnsureDefaultColumns(other.ID)
	require.NoError(t, err)

	_, err = s.CreateCard(b.ID, cols[0].ID, "a", "", model.PriorityLow, nil, "Ada")
	require.NoError(t, err)
	_, err = s.CreateCard(b.ID, cols[1].ID, "b", "", model.PriorityHigh, nil, "Ada")
	require.NoError(t, err)
	keep, err := s.CreateCard(other.ID, otherCols[0].ID, "keep", "", model.PriorityLow, nil, "Ada")
	require.NoError(t, err)

	require.NoError(t, s.DeleteBoard(b.ID))

	// The board, all its columns, and every card are gone.
	got, err := s.BoardByID(b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	remaining, err := s.ColumnsByBoard(b.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	cards, err := s.Cards()
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, keep.ID, cards[0].ID)

	// No surviving card references a deleted column.
	for _, c := range cards {
		col, err := s.ColumnByID(c.ColumnID)
		require.NoError(t, err)
		assert.NotNil(t, col)
	}

	assert.ErrorIs(t, s.DeleteBoard(b.ID), errs.ErrNotFound)
}

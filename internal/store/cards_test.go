package store

import (
	"testing"
	"time"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBoard(t *testing.T, s *Store) (model.Board, []model.Column) {
	t.Helper()
	b, err := s.CreateBoard("Roadmap", model.ColorBlue, "owner1")
	require.NoError(t, err)
	cols, err := s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)
	return *b, cols
}

func TestCreateCardAppendsToColumn(t *testing.T) {
	s := newTestStore(t)
	b, cols := seedBoard(t, s)
	todo := cols[1]

	c1, err := s.CreateCard(b.ID, todo.ID, "Ship v1", "first release", model.PriorityHigh, nil, "Ada")
	require.NoError(t, err)
	assert.Equal(t, 0, c1.Order)
	assert.Equal(t, []string{"Ada"}, c1.Assignees)

	c2, err := s.CreateCard(b.ID, todo.ID, "Ship v2", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 1, c2.Order)
	assert.Empty(t, c2.Assignees)

	got, err := s.CardsByColumn(todo.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, c2.ID, got[len(got)-1].ID)

	// Column must exist and belong to the stated board.
	_, err = s.CreateCard(b.ID, "missing", "x", "", model.PriorityLow, nil, "")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	otherBoard, err := s.CreateBoard("Other", model.ColorRed, "owner1")
	require.NoError(t, err)
	_, err = s.CreateCard(otherBoard.ID, todo.ID, "x", "", model.PriorityLow, nil, "")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreateCardNormalizesPriority(t *testing.T) {
	s := newTestStore(t)
	b, cols := seedBoard(t, s)

	c, err := s.CreateCard(b.ID, cols[0].ID, "x", "", "urgent", nil, "")
	require.NoError(t, err)
	assert.Equal(t, model.PriorityLow, c.Priority)
}

func TestUpdateCard(t *testing.T) {
	s := newTestStore(t)
	b, cols := seedBoard(t, s)
	c, err := s.CreateCard(b.ID, cols[0].ID, "x", "", model.PriorityLow, nil, "")
	require.NoError(t, err)

	due := time.Now().Add(48 * time.Hour)
	require.NoError(t, s.UpdateCard(c.ID, "y", "desc", model.PriorityMedium, &due))
	got, err := s.CardByID(c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "y", got.Title)
	assert.Equal(t, "desc", got.Description)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	require.NotNil(t, got.DueDate)

	err = s.UpdateCard("missing", "y", "", model.PriorityLow, nil)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMoveCardAppendsToDestination(t *testing.T) {
	s := newTestStore(t)
	b, cols := seedBoard(t, s)
	todo, done := cols[1], cols[3]

	_, err := s.CreateCard(b.ID, done.ID, "already done", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	c, err := s.CreateCard(b.ID, todo.ID, "Ship v1", "", model.PriorityHigh, nil, "Ada")
	require.NoError(t, err)

	require.NoError(t, s.MoveCard(c.ID, done.ID))

	inDone, err := s.CardsByColumn(done.ID)
	require.NoError(t, err)
	require.Len(t, inDone, 2)
	assert.Equal(t, c.ID, inDone[1].ID, "moved card lands at the end")

	inTodo, err := s.CardsByColumn(todo.ID)
	require.NoError(t, err)
	assert.Empty(t, inTodo)

	// Rapid successive moves stay well ordered.
	c2, err := s.CreateCard(b.ID, todo.ID, "v2", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	c3, err := s.CreateCard(b.ID, todo.ID, "v3", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	require.NoError(t, s.MoveCard(c2.ID, done.ID))
	require.NoError(t, s.MoveCard(c3.ID, done.ID))
	inDone, err = s.CardsByColumn(done.ID)
	require.NoError(t, err)
	require.Len(t, inDone, 4)
	assert.Equal(t, c2.ID, inDone[2].ID)
	assert.Equal(t, c3.ID, inDone[3].ID)

	assert.ErrorIs(t, s.MoveCard("missing", done.ID), errs.ErrNotFound)
	assert.ErrorIs(t, s.MoveCard(c.ID, "missing"), errs.ErrNotFound)
}

func TestCardMutationsRefreshBoardCount(t *testing.T) {
	s := newTestStore(t)
	b, cols := seedBoard(t, s)

	c, err := s.CreateCard(b.ID, cols[0].ID, "a", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	_, err = s.CreateCard(b.ID, cols[1].ID, "b", "", model.PriorityLow, nil, "")
	require.NoError(t, err)

	got, err := s.BoardByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CardCount)

	require.NoError(t, s.DeleteCard(c.ID))
	got, err = s.BoardByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CardCount)

	// Deleting an already-deleted card is a no-op.
	require.NoError(t, s.DeleteCard(c.ID))
}

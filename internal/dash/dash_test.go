package dash

import (
	"path/filepath"
	"testing"

	"github.com/averix/kanvas/internal/access"
	"github.com/averix/kanvas/internal/db"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T) (*Aggregator, *store.Store, *access.Service) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	s := store.New(database)
	a := access.NewService(s)
	return NewAggregator(s, a), s, a
}

func TestRoadmapScenario(t *testing.T) {
	agg, s, _ := newTestAggregator(t)
	owner, err := s.CreateUser("Olga", "olga@x.com", "pw")
	require.NoError(t, err)

	b, err := s.CreateBoard("Roadmap", model.ColorBlue, owner.ID)
	require.NoError(t, err)
	cols, err := s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)
	todo, done := cols[1], cols[3]

	card, err := s.CreateCard(b.ID, todo.ID, "Ship v1", "", model.PriorityHigh, nil, owner.Name)
	require.NoError(t, err)

	st, err := agg.Stats(*owner)
	require.NoError(t, err)
	assert.Equal(t, Stats{BoardCount: 1, TotalCards: 1, CompletedCards: 0}, st)

	require.NoError(t, s.MoveCard(card.ID, done.ID))

	st, err = agg.Stats(*owner)
	require.NoError(t, err)
	assert.Equal(t, Stats{BoardCount: 1, TotalCards: 1, CompletedCards: 1}, st)
}

func TestDoneMarkersAcrossLocales(t *testing.T) {
	agg, s, _ := newTestAggregator(t)
	owner, err := s.CreateUser("Olga", "olga@x.com", "pw")
	require.NoError(t, err)
	b, err := s.CreateBoard("Mixte", model.ColorGreen, owner.ID)
	require.NoError(t, err)

	fini, err := s.CreateColumn(b.ID, "Terminé")
	require.NoError(t, err)
	encours, err := s.CreateColumn(b.ID, "En cours")
	require.NoError(t, err)

	_, err = s.CreateCard(b.ID, fini.ID, "fait", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	_, err = s.CreateCard(b.ID, encours.ID, "pas fait", "", model.PriorityLow, nil, "")
	require.NoError(t, err)

	st, err := agg.Stats(*owner)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalCards)
	assert.Equal(t, 1, st.CompletedCards)
}

func TestAccessibleBoardsAcrossOwners(t *testing.T) {
	agg, s, svc := newTestAggregator(t)
	owner, err := s.CreateUser("Olga", "olga@x.com", "pw")
	require.NoError(t, err)
	memberUser, err := s.CreateUser("Alice", "alice@x.com", "pw")
	require.NoError(t, err)
	strangerUser, err := s.CreateUser("Eve", "eve@x.com", "pw")
	require.NoError(t, err)

	b, err := s.CreateBoard("Roadmap", model.ColorBlue, owner.ID)
	require.NoError(t, err)
	own, err := s.CreateBoard("Mine", model.ColorRed, memberUser.ID)
	require.NoError(t, err)

	_, err = svc.Grant(*owner, "Alice", "alice@x.com")
	require.NoError(t, err)

	boards, err := agg.AccessibleBoards(*memberUser)
	require.NoError(t, err)
	ids := make([]string, 0, len(boards))
	for _, bd := range boards {
		ids = append(ids, bd.ID)
	}
	assert.Contains(t, ids, b.ID, "granted board is visible")
	assert.Contains(t, ids, own.ID)

	boards, err = agg.AccessibleBoards(*strangerUser)
	require.NoError(t, err)
	require.Len(t, boards, 0)
}

func TestAccessibleBoardsRecountCards(t *testing.T) {
	agg, s, _ := newTestAggregator(t)
	owner, err := s.CreateUser("Olga", "olga@x.com", "pw")
	require.NoError(t, err)
	b, err := s.CreateBoard("Roadmap", model.ColorBlue, owner.ID)
	require.NoError(t, err)
	cols, err := s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)
	_, err = s.CreateCard(b.ID, cols[0].ID, "a", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	_, err = s.CreateCard(b.ID, cols[1].ID, "b", "", model.PriorityLow, nil, "")
	require.NoError(t, err)

	boards, err := agg.AccessibleBoards(*owner)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, 2, boards[0].CardCount)
}

func TestColumnAndCardOrdering(t *testing.T) {
	agg, s, _ := newTestAggregator(t)
	owner, err := s.CreateUser("Olga", "olga@x.com", "pw")
	require.NoError(t, err)
	b, err := s.CreateBoard("Roadmap", model.ColorBlue, owner.ID)
	require.NoError(t, err)
	cols, err := s.EnsureDefaultColumns(b.ID)
	require.NoError(t, err)

	got, err := agg.ColumnsForBoard(b.ID)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Order, got[i].Order)
	}

	first, err := s.CreateCard(b.ID, cols[0].ID, "first", "", model.PriorityLow, nil, "")
	require.NoError(t, err)
	last, err := s.CreateCard(b.ID, cols[0].ID, "last", "", model.PriorityLow, nil, "")
	require.NoError(t, err)

	cards, err := agg.CardsForColumn(cols[0].ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, first.ID, cards[0].ID)
	assert.Equal(t, last.ID, cards[1].ID)
}

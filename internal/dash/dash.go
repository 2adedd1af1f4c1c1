// Package dash computes the read-side projections the views render:
// accessible boards, dashboard statistics, and ordered columns and
// cards. Everything here is recomputed from the collections on every
// call; no denormalized field is trusted.
package dash

import (
	"sort"

	"github.com/averix/kanvas/internal/access"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/store"
)

// Stats summarizes a viewer's dashboard numbers.
type Stats struct {
	BoardCount     int
	TotalCards     int
	CompletedCards int
}

// Aggregator derives views over the store, scoped by access.
type Aggregator struct {
	store  *store.Store
	access *access.Service
}

// NewAggregator constructs an aggregator.
func NewAggregator(s *store.Store, a *access.Service) *Aggregator {
	return &Aggregator{store: s, access: a}
}

// AccessibleBoards returns every board the viewer may see: their own
// plus boards of owners who granted them access. Card counts are
// recounted from the cards collection. Boards come back oldest first,
// the order they were created in.
func (a *Aggregator) AccessibleBoards(viewer model.User) ([]model.Board, error) {
	owners, err := a.access.OwnerSet(viewer)
	if err != nil {
		return nil, err
	}
	boards, err := a.store.Boards()
	if err != nil {
		return nil, err
	}
	cards, err := a.store.Cards()
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, c := range cards {
		counts[c.BoardID]++
	}

	var out []model.Board
	for _, b := range boards {
		if !owners[b.UserID] {
			continue
		}
		b.CardCount = counts[b.ID]
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Stats computes the viewer's dashboard numbers over their accessible
// boards. A card counts as completed when its column's name carries a
// done marker.
func (a *Aggregator) Stats(viewer model.User) (Stats, error) {
	boards, err := a.AccessibleBoards(viewer)
	if err != nil {
		return Stats{}, err
	}
	boardIDs := map[string]bool{}
	for _, b := range boards {
		boardIDs[b.ID] = true
	}

	columns, err := a.store.Columns()
	if err != nil {
		return Stats{}, err
	}
	done := map[string]bool{}
	for _, c := range columns {
		if c.IsDone() {
			done[c.ID] = true
		}
	}

	cards, err := a.store.Cards()
	if err != nil {
		return Stats{}, err
	}
	st := Stats{BoardCount: len(boards)}
	for _, c := range cards {
		if !boardIDs[c.BoardID] {
			continue
		}
		st.TotalCards++
		if done[c.ColumnID] {
			st.CompletedCards++
		}
	}
	return st, nil
}

// ColumnsForBoard returns the board's columns sorted ascending by
// order.
func (a *Aggregator) ColumnsForBoard(boardID string) ([]model.Column, error) {
	return a.store.ColumnsByBoard(boardID)
}

// CardsForColumn returns the column's cards sorted ascending by order.
func (a *Aggregator) CardsForColumn(columnID string) ([]model.Card, error) {
	return a.store.CardsByColumn(columnID)
}

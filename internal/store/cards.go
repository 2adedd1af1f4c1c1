package store

import (
	"sort"
	"time"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/google/uuid"
)

// Cards returns all cards across all boards.
func (s *Store) Cards() ([]model.Card, error) {
	var cards []model.Card
	if err := s.loadInto(keyCards, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CardByID returns the card with the given id, or nil if none.
func (s *Store) CardByID(id string) (*model.Card, error) {
	cards, err := s.Cards()
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].ID == id {
			c := cards[i]
			return &c, nil
		}
	}
	return nil, nil
}

// CardsByColumn returns the column's cards sorted ascending by order.
func (s *Store) CardsByColumn(columnID string) ([]model.Card, error) {
	cards, err := s.Cards()
	if err != nil {
		return nil, err
	}
	var out []model.Card
	for _, c := range cards {
		if c.ColumnID == columnID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// CardsByBoard returns all cards of a board.
func (s *Store) CardsByBoard(boardID string) ([]model.Card, error) {
	cards, err := s.Cards()
	if err != nil {
		return nil, err
	}
	var out []model.Card
	for _, c := range cards {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	return out, nil
}

// CreateCard appends a card to the column, ordered after every
// existing card there. The author, when named, becomes the first
// assignee.
func (s *Store) CreateCard(boardID, columnID, title, description string, priority model.Priority, dueDate *time.Time, authorName string) (*model.Card, error) {
	col, err := s.ColumnByID(columnID)
	if err != nil {
		return nil, err
	}
	// The card's boardId is denormalized from the column; the column
	// must exist and belong to the stated board.
	if col == nil || col.BoardID != boardID {
		return nil, errs.ErrNotFound
	}

	cards, err := s.Cards()
	if err != nil {
		return nil, err
	}
	order := 0
	for _, c := range cards {
		if c.ColumnID == columnID && c.Order >= order {
			order = c.Order + 1
		}
	}

	assignees := []string{}
	if authorName != "" {
		assignees = append(assignees, authorName)
	}

	card := model.Card{
		ID:          uuid.New().String(),
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Priority:    model.NormalizePriority(priority),
		DueDate:     dueDate,
		Assignees:   assignees,
		Order:       order,
		CreatedAt:   time.Now(),
	}
	cards = append(cards, card)
	if err := s.save(keyCards, cards); err != nil {
		return nil, err
	}
	if err := s.refreshCardCount(boardID); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCard changes a card's editable fields in place.
func (s *Store) UpdateCard(id, title, description string, priority model.Priority, dueDate *time.Time) error {
	cards, err := s.Cards()
	if err != nil {
		return err
	}
	for i := range cards {
		if cards[i].ID == id {
			cards[i].Title = title
			cards[i].Description = description
			cards[i].Priority = model.NormalizePriority(priority)
			cards[i].DueDate = dueDate
			if err := s.save(keyCards, cards); err != nil {
				return err
			}
			return s.refreshCardCount(cards[i].BoardID)
		}
	}
	return errs.ErrNotFound
}

// MoveCard reassigns a card to another column of the same board and
// appends it to the end of that column's ordering.
func (s *Store) MoveCard(id, toColumnID string) error {
	cards, err := s.Cards()
	if err != nil {
		return err
	}
	idx := -1
	for i := range cards {
		if cards[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errs.ErrNotFound
	}

	col, err := s.ColumnByID(toColumnID)
	if err != nil {
		return err
	}
	if col == nil || col.BoardID != cards[idx].BoardID {
		return errs.ErrNotFound
	}

	order := 0
	for _, c := range cards {
		if c.ColumnID == toColumnID && c.Order >= order {
			order = c.Order + 1
		}
	}
	cards[idx].ColumnID = toColumnID
	cards[idx].Order = order
	if err := s.save(keyCards, cards); err != nil {
		return err
	}
	return s.refreshCardCount(cards[idx].BoardID)
}

// DeleteCard removes the card. Removing an absent card is not an
// error: another instance may have deleted it first.
func (s *Store) DeleteCard(id string) error {
	cards, err := s.Cards()
	if err != nil {
		return err
	}
	boardID := ""
	kept := cards[:0]
	for _, c := range cards {
		if c.ID == id {
			boardID = c.BoardID
			continue
		}
		kept = append(kept, c)
	}
	if boardID == "" {
		return nil
	}
	if err := s.save(keyCards, kept); err != nil {
		return err
	}
	return s.refreshCardCount(boardID)
}

// refreshCardCount recomputes the owning board's denormalized card
// count after a card mutation. Reads never trust this field; it only
// keeps the stored shape consistent.
func (s *Store) refreshCardCount(boardID string) error {
	boards, err := s.Boards()
	if err != nil {
		return err
	}
	cards, err := s.Cards()
	if err != nil {
		return err
	}
	count := 0
	for _, c := range cards {
		if c.BoardID == boardID {
			count++
		}
	}
	for i := range boards {
		if boards[i].ID == boardID {
			if boards[i].CardCount == count {
				return nil
			}
			boards[i].CardCount = count
			return s.save(keyBoards, boards)
		}
	}
	return nil
}

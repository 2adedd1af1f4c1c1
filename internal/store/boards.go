package store

import (
	"database/sql"
	"time"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/google/uuid"
)

// Boards returns all boards across all owners.
func (s *Store) Boards() ([]model.Board, error) {
	var boards []model.Board
	if err := s.loadInto(keyBoards, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// BoardByID returns the board with the given id, or nil if none.
func (s *Store) BoardByID(id string) (*model.Board, error) {
	boards, err := s.Boards()
	if err != nil {
		return nil, err
	}
	for i := range boards {
		if boards[i].ID == id {
			b := boards[i]
			return &b, nil
		}
	}
	return nil, nil
}

// BoardsByOwner returns the boards owned by userID.
func (s *Store) BoardsByOwner(userID string) ([]model.Board, error) {
	boards, err := s.Boards()
	if err != nil {
		return nil, err
	}
	var out []model.Board
	for _, b := range boards {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// CreateBoard appends a new board for ownerID. Unrecognized colors
// fall back to the default.
func (s *Store) CreateBoard(name string, color model.Color, ownerID string) (*model.Board, error) {
	boards, err := s.Boards()
	if err != nil {
		return nil, err
	}

	b := model.Board{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     model.NormalizeColor(color),
		UserID:    ownerID,
		CreatedAt: time.Now(),
	}
	boards = append(boards, b)
	if err := s.save(keyBoards, boards); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBoard changes a board's name and color in place.
func (s *Store) UpdateBoard(id, name string, color model.Color) error {
	boards, err := s.Boards()
	if err != nil {
		return err
	}
	for i := range boards {
		if boards[i].ID == id {
			boards[i].Name = name
			boards[i].Color = model.NormalizeColor(color)
			return s.save(keyBoards, boards)
		}
	}
	return errs.ErrNotFound
}

// DeleteBoard removes the board and cascades: every column of the
// board and every card of the board go with it. The three collection
// writes happen in one transaction so a failure never leaves orphaned
// columns or cards behind.
func (s *Store) DeleteBoard(id string) error {
	boards, err := s.Boards()
	if err != nil {
		return err
	}

	kept := boards[:0]
	found := false
	for _, b := range boards {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return errs.ErrNotFound
	}

	columns, err := s.Columns()
	if err != nil {
		return err
	}
	keptCols := columns[:0]
	for _, c := range columns {
		if c.BoardID != id {
			keptCols = append(keptCols, c)
		}
	}

	cards, err := s.Cards()
	if err != nil {
		return err
	}
	keptCards := cards[:0]
	for _, c := range cards {
		if c.BoardID != id {
			keptCards = append(keptCards, c)
		}
	}

	return s.kv.Transaction(func(tx *sql.Tx) error {
		if err := s.saveTx(tx, keyBoards, kept); err != nil {
			return err
		}
		if err := s.saveTx(tx, keyColumns, keptCols); err != nil {
			return err
		}
		return s.saveTx(tx, keyCards, keptCards)
	})
}

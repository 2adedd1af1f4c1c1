package store

import (
	"sort"

	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/google/uuid"
)

// Columns returns all columns across all boards.
func (s *Store) Columns() ([]model.Column, error) {
	var columns []model.Column
	if err := s.loadInto(keyColumns, &columns); err != nil {
		return nil, err
	}
	return columns, nil
}

// ColumnByID returns the column with the given id, or nil if none.
func (s *Store) ColumnByID(id string) (*model.Column, error) {
	columns, err := s.Columns()
	if err != nil {
		return nil, err
	}
	for i := range columns {
		if columns[i].ID == id {
			c := columns[i]
			return &c, nil
		}
	}
	return nil, nil
}

// ColumnsByBoard returns the board's columns sorted ascending by
// order. Ties keep insertion order; they do not occur in normal
// operation.
func (s *Store) ColumnsByBoard(boardID string) ([]model.Column, error) {
	columns, err := s.Columns()
	if err != nil {
		return nil, err
	}
	var out []model.Column
	for _, c := range columns {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// CreateColumn appends a column to the board, ordered after every
// existing column.
func (s *Store) CreateColumn(boardID, name string) (*model.Column, error) {
	board, err := s.BoardByID(boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, errs.ErrNotFound
	}

	columns, err := s.Columns()
	if err != nil {
		return nil, err
	}
	order := 0
	for _, c := range columns {
		if c.BoardID == boardID && c.Order >= order {
			order = c.Order + 1
		}
	}

	col := model.Column{
		ID:      uuid.New().String(),
		BoardID: boardID,
		Name:    name,
		Order:   order,
	}
	columns = append(columns, col)
	if err := s.save(keyColumns, columns); err != nil {
		return nil, err
	}
	return &col, nil
}

// EnsureDefaultColumns lazily seeds an empty board with the four
// default columns. A board that already has at least one column is
// left alone. Returns the board's columns either way.
func (s *Store) EnsureDefaultColumns(boardID string) ([]model.Column, error) {
	existing, err := s.ColumnsByBoard(boardID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	board, err := s.BoardByID(boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, errs.ErrNotFound
	}

	columns, err := s.Columns()
	if err != nil {
		return nil, err
	}
	var seeded []model.Column
	for i, name := range model.DefaultColumnNames {
		col := model.Column{
			ID:      uuid.New().String(),
			BoardID: boardID,
			Name:    name,
			Order:   i,
		}
		columns = append(columns, col)
		seeded = append(seeded, col)
	}
	if err := s.save(keyColumns, columns); err != nil {
		return nil, err
	}
	return seeded, nil
}

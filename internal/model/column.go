package model

import "strings"

// Default column names seeded into an empty board, in order.
var DefaultColumnNames = []string{"Backlog", "To Do", "In Progress", "Done"}

// doneMarkers are the substrings that classify a column as terminal.
// The set matches the locales the original data carries.
var doneMarkers = []string{"done", "terminé", "complété"}

// Column is an ordered stage within a board.
type Column struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
}

// IsDone reports whether cards in this column count as completed.
// It is a name heuristic: renaming a column away from a recognized
// marker reclassifies its cards.
func (c Column) IsDone() bool {
	name := strings.ToLower(c.Name)
	for _, m := range doneMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

package model

import (
	"time"
)

// Priority represents card priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NormalizePriority maps unknown or missing values to low, the
// original form default.
func NormalizePriority(p Priority) Priority {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityLow
	}
}

// Card is a unit of work placed in exactly one column. BoardID is
// denormalized from the column for cheap filtering and must agree
// with the column's board.
type Card struct {
	ID          string     `json:"id"`
	BoardID     string     `json:"boardId"`
	ColumnID    string     `json:"columnId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Attachments int        `json:"attachments"`
	Comments    int        `json:"comments"`
	Assignees   []string   `json:"assignees"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IsOverdue returns true if the card is past its due date.
func (c *Card) IsOverdue() bool {
	if c.DueDate == nil {
		return false
	}
	return time.Now().After(*c.DueDate)
}

// DueIn returns whole days until the due date, negative when overdue.
func (c *Card) DueIn() int {
	if c.DueDate == nil {
		return 0
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := c.DueDate.Sub(today)
	return int(d.Hours() / 24)
}

// PriorityWeight returns a numeric weight for sorting by priority
func (c *Card) PriorityWeight() int {
	switch c.Priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

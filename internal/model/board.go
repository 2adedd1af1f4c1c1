package model

import (
	"time"
)

// Color is a board accent color from the fixed palette.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorPink   Color = "pink"
)

// Colors lists the palette in display order.
func Colors() []Color {
	return []Color{ColorBlue, ColorPurple, ColorGreen, ColorYellow, ColorRed, ColorPink}
}

// NormalizeColor maps unknown or missing values to the default.
func NormalizeColor(c Color) Color {
	switch c {
	case ColorBlue, ColorPurple, ColorGreen, ColorYellow, ColorRed, ColorPink:
		return c
	default:
		return ColorBlue
	}
}

// Board is a named collection of columns and cards owned by one user.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     Color     `json:"color"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// CardCount is a denormalized artifact of the stored shape,
	// refreshed after card mutations. Displays always recount from
	// the cards collection instead of trusting it.
	CardCount int `json:"cardCount"`
}

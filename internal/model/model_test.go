package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, ColorPink, NormalizeColor("pink"))
	assert.Equal(t, ColorBlue, NormalizeColor(""))
	assert.Equal(t, ColorBlue, NormalizeColor("magenta"))
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, NormalizePriority("high"))
	assert.Equal(t, PriorityLow, NormalizePriority(""))
	assert.Equal(t, PriorityLow, NormalizePriority("urgent"))
}

func TestColumnIsDone(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Done", true},
		{"DONE", true},
		{"Really Done", true},
		{"Terminé", true},
		{"Complété", true},
		{"To Do", false},
		{"In Progress", false},
		{"Backlog", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Column{Name: tc.name}.IsDone(), "column %q", tc.name)
	}
}

func TestUserInitial(t *testing.T) {
	assert.Equal(t, "A", User{Name: "ada lovelace"}.Initial())
	assert.Equal(t, "?", User{}.Initial())
}

package views

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "a long ...", truncate("a long card title", 10))
}

func TestTruncateKeepsMultiByteRunesIntact(t *testing.T) {
	got := truncate("Terminé terminé terminé", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Terminé...", got)
	assert.Equal(t, 10, utf8.RuneCountInString(got))
}

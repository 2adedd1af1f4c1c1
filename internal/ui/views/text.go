package views

// truncate shortens s to at most max runes, ending with an ellipsis.
// Slicing runes instead of bytes keeps multi-byte titles like
// "Terminé" intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 4 {
		max = 4
	}
	return string(runes[:max-3]) + "..."
}

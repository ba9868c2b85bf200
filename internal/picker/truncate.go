package picker

import "unicode/utf8"

const ellipsis = "..."

// truncate shortens text to at most width runes, ending in an ellipsis when
// anything was cut.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= width {
		return text
	}

	// Not enough room for any text and the ellipsis
	if width <= len(ellipsis) {
		return ellipsis[:width]
	}

	runes := []rune(text)
	return string(runes[:width-len(ellipsis)]) + ellipsis
}

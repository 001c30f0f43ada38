package stringutils

import (
	"strings"
	"unicode/utf8"
)

// LeftJust pads text on the right with fill until it is at least length runes long.
func LeftJust(text string, fill string, length int) string {
	n := utf8.RuneCountInString(text)
	if n >= length || fill == "" {
		return text
	}

	return text + strings.Repeat(fill, length-n)
}

func Truncate(text string, length int) string {
	if length <= 0 {
		return ""
	}

	r := []rune(text)
	if len(r) <= length {
		return text
	}

	if length <= 3 {
		return string(r[:length])
	}

	return string(r[:length-3]) + "..."
}

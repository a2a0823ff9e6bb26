package tk

import (
	"strings"
	"unicode"

	"src.tvim.sh/pkg/ui"
)

// TildeText converts a label where "~" toggles highlighting, such as
// "~F~ile", into a Text, using the normal style outside of the markers and
// the hot style inside them.
func TildeText(s string, normal, hot ui.Style) ui.Text {
	var t ui.Text
	inHot := false
	for {
		i := strings.IndexByte(s, '~')
		if i == -1 {
			break
		}
		if i > 0 {
			t = append(t, tildeSegment(s[:i], normal, hot, inHot))
		}
		inHot = !inHot
		s = s[i+1:]
	}
	if s != "" {
		t = append(t, tildeSegment(s, normal, hot, inHot))
	}
	return t
}

func tildeSegment(s string, normal, hot ui.Style, inHot bool) *ui.Segment {
	if inHot {
		return &ui.Segment{Style: hot, Text: s}
	}
	return &ui.Segment{Style: normal, Text: s}
}

// TildeWidth returns the visual width of a label, not counting the markers.
func TildeWidth(s string) int {
	return ui.T(strings.ReplaceAll(s, "~", "")).Width()
}

// HotRune returns the first highlighted rune of a label in lower case, or 0
// if the label has no highlighted part.
func HotRune(s string) rune {
	i := strings.IndexByte(s, '~')
	if i == -1 || i == len(s)-1 {
		return 0
	}
	r := []rune(s[i+1:])[0]
	if r == '~' {
		return 0
	}
	return unicode.ToLower(r)
}

// matchesHotRune returns whether a key press selects a label with the given
// hot rune. Both the plain letter and the letter with Alt match.
func matchesHotRune(k ui.Key, hot rune, allowPlain, allowAlt bool) bool {
	if hot == 0 || k.Rune <= 0 || unicode.ToLower(k.Rune) != hot {
		return false
	}
	return (allowPlain && k.Mod == 0) || (allowAlt && k.Mod == ui.Alt)
}

package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most width columns, ending with an ellipsis
// when anything was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	if width == 1 {
		return Ellipsis
	}
	return runewidth.Truncate(text, width, Ellipsis)
}

// Wrap breaks text into lines no wider than width, splitting on spaces.
// Words longer than width are hard-cut. At most maxLines lines are returned
// when maxLines > 0; the last one is truncated if text continues.
func Wrap(text string, width, maxLines int) []string {
	if width <= 0 {
		return nil
	}
	words := strings.Fields(text)
	var lines []string
	var cur strings.Builder
	curWidth := 0
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}
	for _, w := range words {
		ww := DisplayWidth(w)
		for ww > width {
			if curWidth > 0 {
				flush()
			}
			head := runewidth.Truncate(w, width, "")
			if head == "" {
				break
			}
			lines = append(lines, head)
			w = strings.TrimPrefix(w, head)
			ww = DisplayWidth(w)
		}
		if ww == 0 {
			continue
		}
		if curWidth > 0 && curWidth+1+ww > width {
			flush()
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(w)
		curWidth += ww
	}
	if curWidth > 0 {
		flush()
	}
	if maxLines > 0 && len(lines) > maxLines {
		last := lines[maxLines-1]
		if DisplayWidth(last)+1 > width {
			last = runewidth.Truncate(last, width-1, "")
		}
		last += Ellipsis
		lines = append(lines[:maxLines-1], last)
	}
	return lines
}

package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// flowChips lays out rendered chips left to right, wrapping to width
// columns. A chip wider than the whole row is cut with an ellipsis.
func flowChips(chips []string, width int, gap string) []string {
	if width <= 0 {
		return []string{strings.Join(chips, gap)}
	}
	gapW := xansi.StringWidth(gap)

	var rows []string
	var cur strings.Builder
	curW := 0
	for _, c := range chips {
		w := xansi.StringWidth(c)
		if w > width {
			c = xansi.Truncate(c, width, glyphEllipsis())
			w = xansi.StringWidth(c)
		}
		if curW > 0 && curW+gapW+w > width {
			rows = append(rows, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteString(gap)
			curW += gapW
		}
		cur.WriteString(c)
		curW += w
	}
	if curW > 0 {
		rows = append(rows, cur.String())
	}
	return rows
}

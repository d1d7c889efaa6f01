package barchart

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type cell struct {
	text   string
	style  lipgloss.Style
	styled bool
	// covered by a double-width glyph in the cell to its left
	covered bool
}

// grid is a fixed-size block of terminal cells that overlays can be written
// into before it is flattened to a string.
type grid [][]cell

func newGrid(width, height int) grid {
	g := make(grid, height)
	for r := range g {
		g[r] = make([]cell, width)
		for c := range g[r] {
			g[r][c].text = " "
		}
	}
	return g
}

// put writes s starting at (row, col). Cells past the right edge are
// dropped.
func (g grid) put(row, col int, s string, style *lipgloss.Style) {
	if row < 0 || row >= len(g) {
		return
	}
	line := g[row]
	for _, r := range s {
		if col >= len(line) {
			return
		}
		w := lipgloss.Width(string(r))
		if col < 0 {
			col += max(w, 1)
			continue
		}
		g.clear(row, col)
		c := cell{text: string(r)}
		if style != nil {
			c.style = *style
			c.styled = true
		}
		line[col] = c
		if w == 2 {
			if col+1 >= len(line) {
				line[col].text = " "
				return
			}
			g.clear(row, col+1)
			line[col+1] = cell{covered: true}
		}
		col += max(w, 1)
	}
}

// clear blanks (row, col) along with any wide glyph it is part of.
func (g grid) clear(row, col int) {
	line := g[row]
	if line[col].covered && col > 0 {
		line[col-1] = cell{text: " "}
	}
	if col+1 < len(line) && line[col+1].covered {
		line[col+1] = cell{text: " "}
	}
	line[col] = cell{text: " "}
}

func (g grid) String() string {
	lines := make([]string, len(g))
	for r, row := range g {
		var b strings.Builder
		for _, c := range row {
			switch {
			case c.covered:
			case c.styled:
				b.WriteString(c.style.Render(c.text))
			default:
				b.WriteString(c.text)
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

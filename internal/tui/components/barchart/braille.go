package barchart

import (
	drawille "github.com/exrook/drawille-go"
)

const emptyBraille rune = '⠀'

// canvasRows extracts the canvas as rows of exactly width/2 runes, height/4
// rows deep.
func canvasRows(canvas *drawille.Canvas, width, height int) [][]rune {
	// each braille char is 2 dots wide, 4 dots tall
	charWidth := width / 2
	charHeight := height / 4

	rows := canvas.Rows(0, 0, width, height)

	lines := make([][]rune, charHeight)
	for i := range charHeight {
		var line []rune
		if i < len(rows) {
			line = []rune(rows[i])
		}
		if len(line) > charWidth {
			line = line[:charWidth]
		}
		for len(line) < charWidth {
			line = append(line, ' ')
		}
		lines[i] = line
	}
	return lines
}

// isBraille returns true if the rune is a braille character (U+2800 to U+28FF)
func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}

func hasDots(r rune) bool {
	return isBraille(r) && r != emptyBraille
}

// combineBraille ORs the dots of two braille characters together
func combineBraille(a, b rune) rune {
	if !isBraille(a) {
		return b
	}
	if !isBraille(b) {
		return a
	}
	return emptyBraille + ((a - emptyBraille) | (b - emptyBraille))
}

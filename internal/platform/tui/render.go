package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbreaker/internal/core"
)

// ansiCodes maps core.Color to ANSI 256-color codes.
// ColorDefault is absent and keeps the terminal's own foreground.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// cellStyle returns the style for a cell's color and emphasis.
// Highlighted cells are drawn reversed and bold, so a hovered block shows as
// a solid patch of its own color.
func cellStyle(c core.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	if code, ok := ansiCodes[c.Color]; ok {
		style = style.Foreground(lipgloss.Color(code))
	}
	if c.Highlight {
		style = style.Reverse(true).Bold(true)
	}
	return style
}

// styleRun is a horizontal stretch of cells sharing one style.
// Only the Color and Highlight fields of style are set.
type styleRun struct {
	style core.Cell
	text  string
}

// rowRuns splits row y into runs of cells with the same color and emphasis.
func rowRuns(s *core.Screen, y int) []styleRun {
	var runs []styleRun
	var text strings.Builder

	for x := 0; x < s.Width(); {
		first := s.GetCell(x, y)
		text.Reset()
		for ; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != first.Color || cell.Highlight != first.Highlight {
				break
			}
			text.WriteRune(cell.Rune)
		}
		runs = append(runs, styleRun{
			style: core.Cell{Color: first.Color, Highlight: first.Highlight},
			text:  text.String(),
		})
	}
	return runs
}

// RenderScreen converts a Screen buffer to a styled string for display,
// emitting one escape sequence per run rather than per cell.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, run := range rowRuns(s, y) {
			sb.WriteString(cellStyle(run.style).Render(run.text))
		}
	}
	return sb.String()
}

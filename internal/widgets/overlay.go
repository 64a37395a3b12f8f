// Package widgets holds ANSI-aware rendering primitives shared by views.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2)

// RenderPopup centers popup over base inside a width×height canvas,
// wrapping it in a rounded border card. Base cells outside the card stay
// visible, which is what keeps the underlying list on screen behind modal
// dialogs.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := canvasRows(base, width, height)
	card := cardRows(popup)
	if len(card) == 0 {
		return strings.Join(rows, "\n")
	}
	x := (width - ansi.StringWidth(card[0])) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(card)) / 2
	if y < 0 {
		y = 0
	}
	for i, line := range card {
		if y+i >= height {
			break
		}
		rows[y+i] = spliceRow(rows[y+i], line, x, width)
	}
	return strings.Join(rows, "\n")
}

// FitCanvas pads/truncates s into an exact width×height block.
func FitCanvas(s string, width, height int) string {
	return strings.Join(canvasRows(s, width, height), "\n")
}

// canvasRows normalizes s into exactly height rows of exactly width cells.
func canvasRows(s string, width, height int) []string {
	rows := strings.Split(s, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = padRow(rows[i], width)
	}
	return rows
}

// cardRows renders the bordered card and returns its lines, each padded to
// the card's widest row so the splice covers a rectangle.
func cardRows(popup string) []string {
	lines := strings.Split(cardStyle.Render(popup), "\n")
	widest := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	if widest == 0 {
		return nil
	}
	for i := range lines {
		lines[i] = padRow(lines[i], widest)
	}
	return lines
}

// spliceRow replaces the cells [x, x+w) of row with insert, where w is the
// display width of insert. row is expected to be width cells already.
func spliceRow(row, insert string, x, width int) string {
	w := ansi.StringWidth(insert)
	left := ansi.Truncate(row, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	covered := ansi.Truncate(row, x+w, "")
	right := strings.TrimPrefix(row, covered)
	if gap := width - x - w - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + insert + right
}

// padRow truncates or pads s to exactly width display cells.
func padRow(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

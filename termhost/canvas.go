package termhost

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/esimov/sheetfab"
	"github.com/esimov/sheetfab/config"
	"github.com/esimov/sheetfab/element"
	"github.com/esimov/sheetfab/imop"
)

var textColor = color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}

type cell struct {
	bg, fg color.NRGBA
	ch     rune
}

// sample computes the cells of the grid from the stage, painting the control,
// the scrim and the sheet in this order.
func (m Model) sample(cols, rows int) [][]cell {
	s := m.stage
	grid := make([][]cell, rows)

	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			p := m.toStage(x, y)
			bg := s.Palette.Background

			if hitRound(s.Control.Box, p) {
				bg = imop.SrcOver(s.Control.Background(), bg, s.Control.Transform().Alpha)
			}
			bg = s.Dim(bg)
			if s.Sheet.Shown() && p.In(s.Sheet.VisualBounds()) {
				bg = imop.SrcOver(s.SheetColor(), bg, s.Sheet.Transform().Alpha)
			}
			grid[y][x] = cell{bg: bg, ch: ' '}
		}
	}
	m.label(grid)

	return grid
}

// label writes the sheet items into the rows of the fully shown sheet.
func (m Model) label(grid [][]cell) {
	s := m.stage
	if s.Coordinator.State() != sheetfab.Shown {
		return
	}
	for i, item := range s.Items {
		r := s.ItemRect(i)
		row := (r.Min.Y + r.Dy()/2) / m.cell.Y
		col := r.Min.X/m.cell.X + 2
		if row < 0 || row >= len(grid) {
			continue
		}
		for j, ch := range []rune(item) {
			x := col + j
			if x < 0 || x >= len(grid[row]) || (x+1)*m.cell.X > r.Max.X {
				break
			}
			grid[row][x].ch = ch
			grid[row][x].fg = textColor
		}
	}
}

// hitRound reports whether p falls in the ellipse inscribed in the visible box.
func hitRound(b *element.Box, p image.Point) bool {
	if !b.Shown() {
		return false
	}
	r := b.VisualBounds()
	if r.Empty() {
		return false
	}
	rx, ry := float64(r.Dx())/2, float64(r.Dy())/2
	dx := (float64(p.X) - float64(r.Min.X) - rx) / rx
	dy := (float64(p.Y) - float64(r.Min.Y) - ry) / ry
	return dx*dx+dy*dy <= 1
}

// render turns the grid into styled lines, one style per run of identical cells.
func render(grid [][]cell) string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var (
			sb  strings.Builder
			run strings.Builder
			cur cell
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Background(lipgloss.Color(config.Hex(cur.bg)))
			if cur.fg.A > 0 {
				style = style.Foreground(lipgloss.Color(config.Hex(cur.fg)))
			}
			sb.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x, c := range row {
			if x > 0 && (c.bg != cur.bg || c.fg != cur.fg) {
				flush()
			}
			cur = c
			run.WriteRune(c.ch)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

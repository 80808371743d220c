package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell is one terminal cell. A double-width rune occupies its head cell plus
// a continuation cell (cont=true, empty ch) to its right.
type cell struct {
	ch    string
	cont  bool
	style CellStyle
}

// Frame is a width x height grid of styled cells the bar composes each redraw
// into. All coordinates are in cells; the float64 parameters exist because
// the layout engine works in float64 and hands over integral values.
type Frame struct {
	width  int
	height int
	bg     CellStyle

	cells  [][]cell
	styles map[CellStyle]lipgloss.Style
}

// NewFrame returns a frame filled with the background style.
func NewFrame(width, height int, bg CellStyle) *Frame {
	f := &Frame{
		width:  width,
		height: height,
		bg:     bg,
		styles: make(map[CellStyle]lipgloss.Style),
	}
	f.cells = make([][]cell, height)
	for row := range f.cells {
		f.cells[row] = make([]cell, width)
	}
	f.ClearAll()
	return f
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// ClearAll fills the whole frame with background.
func (f *Frame) ClearAll() {
	for row := range f.cells {
		for col := range f.cells[row] {
			f.cells[row][col] = cell{ch: " ", style: f.bg}
		}
	}
}

// ClearSpan fills [startX, endX) on every row with background. The span is
// widened to whole cells (floor/ceil) and clamped to the frame.
func (f *Frame) ClearSpan(startX, endX float64) {
	start := int(math.Floor(startX))
	end := int(math.Ceil(endX))
	if start < 0 {
		start = 0
	}
	if end > f.width {
		end = f.width
	}
	for row := 0; row < f.height; row++ {
		for col := start; col < end; col++ {
			f.setCell(row, col, cell{ch: " ", style: f.bg})
		}
	}
}

// DrawText writes text starting at (x, y), clipping at the frame edge, and
// returns the number of cells written. Zero-width runes are dropped.
func (f *Frame) DrawText(x, y float64, text string, style CellStyle) int {
	row := int(math.Round(y))
	col := int(math.Round(x))
	if row < 0 || row >= f.height {
		return 0
	}

	drawn := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col < 0 {
			col += w
			continue
		}
		if col+w > f.width {
			break
		}
		f.setCell(row, col, cell{ch: string(r), style: style})
		if w == 2 {
			f.setCell(row, col+1, cell{cont: true, style: style})
		}
		col += w
		drawn += w
	}
	return drawn
}

// setCell writes one cell, splitting any double-width rune the write lands on
// so no half runes survive.
func (f *Frame) setCell(row, col int, c cell) {
	old := f.cells[row][col]
	if old.cont && col > 0 {
		f.cells[row][col-1] = cell{ch: " ", style: f.cells[row][col-1].style}
	}
	if runewidth.StringWidth(old.ch) == 2 && col+1 < f.width {
		f.cells[row][col+1] = cell{ch: " ", style: old.style}
	}
	f.cells[row][col] = c
}

// Render composes the frame into a terminal string, one line per row, runs of
// equally styled cells rendered together.
func (f *Frame) Render() string {
	var out strings.Builder
	for row := 0; row < f.height; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle CellStyle
		started := false
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(f.style(runStyle).Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < f.width; col++ {
			c := f.cells[row][col]
			if c.cont {
				continue
			}
			if !started || c.style != runStyle {
				flush()
				runStyle = c.style
				started = true
			}
			run.WriteString(c.ch)
		}
		flush()
	}
	return out.String()
}

func (f *Frame) style(cs CellStyle) lipgloss.Style {
	s, ok := f.styles[cs]
	if !ok {
		s = cs.Style()
		f.styles[cs] = s
	}
	return s
}

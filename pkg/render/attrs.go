// Package render holds the drawing side of the bar: styled cell frames that
// panels paint into, the attrs model resolved from configuration, and the
// handle panels use to measure text.
package render

import "github.com/charmbracelet/lipgloss"

// Attrs are the configurable style fields for a panel or for the bar's
// defaults. Unset fields (empty strings, nil bools) inherit from the bar
// defaults when the panel runs.
type Attrs struct {
	FG        string
	BG        string
	Bold      *bool
	Italic    *bool
	Underline *bool
}

// Inherit fills unset fields from defaults. Set fields win.
func (a *Attrs) Inherit(defaults Attrs) {
	if a.FG == "" {
		a.FG = defaults.FG
	}
	if a.BG == "" {
		a.BG = defaults.BG
	}
	if a.Bold == nil {
		a.Bold = defaults.Bold
	}
	if a.Italic == nil {
		a.Italic = defaults.Italic
	}
	if a.Underline == nil {
		a.Underline = defaults.Underline
	}
}

// Cell resolves the attrs to a concrete cell style.
func (a Attrs) Cell() CellStyle {
	cs := CellStyle{FG: a.FG, BG: a.BG}
	if a.Bold != nil {
		cs.Bold = *a.Bold
	}
	if a.Italic != nil {
		cs.Italic = *a.Italic
	}
	if a.Underline != nil {
		cs.Underline = *a.Underline
	}
	return cs
}

// CellStyle is the concrete, comparable style of a frame cell. Adjacent cells
// with equal styles render as one escape sequence run.
type CellStyle struct {
	FG        string
	BG        string
	Bold      bool
	Italic    bool
	Underline bool
}

// Style builds the lipgloss style for this cell style.
func (cs CellStyle) Style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if cs.FG != "" {
		s = s.Foreground(lipgloss.Color(cs.FG))
	}
	if cs.BG != "" {
		s = s.Background(lipgloss.Color(cs.BG))
	}
	if cs.Bold {
		s = s.Bold(true)
	}
	if cs.Italic {
		s = s.Italic(true)
	}
	if cs.Underline {
		s = s.Underline(true)
	}
	return s
}

// Bool is a convenience for building tri-state attr fields.
func Bool(v bool) *bool {
	return &v
}

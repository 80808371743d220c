// Package bar implements the status bar engine: panel visibility resolution,
// group layout with minimal-region redraws, the orchestrator that brings up
// panel producers and multiplexes their updates, and the router that delivers
// mouse and socket messages to panels.
package bar

import (
	"fmt"
	"strings"

	"github.com/b/ledge/pkg/render"
)

// Alignment is the horizontal group a panel belongs to.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("alignment(%d)", int(a))
}

// Dependence declares that a panel hides itself unless its neighbor(s) are
// visible.
type Dependence int

const (
	DependsNone Dependence = iota
	DependsLeft
	DependsRight
	DependsBoth
)

// ParseDependence maps a config string to a Dependence.
func ParseDependence(s string) (Dependence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return DependsNone, nil
	case "left":
		return DependsLeft, nil
	case "right":
		return DependsRight, nil
	case "both":
		return DependsBoth, nil
	}
	return DependsNone, fmt.Errorf("unknown dependence %q", s)
}

// DrawInfo is a panel's current draw descriptor: its size, its dependence
// tag, and the callback that paints it at a translated origin. It is replaced
// wholesale on every update. The optional hooks fire when dependence or
// visibility toggles the panel on screen (Show/Hide) and once at bar
// teardown (Shutdown).
type DrawInfo struct {
	Width      int
	Height     int
	Dependence Dependence

	Draw     func(f *render.Frame, x, y float64) error
	Show     func() error
	Hide     func() error
	Shutdown func()
}

// Update is one emission from a panel producer: a new descriptor or an error.
// On error the panel keeps its last-good descriptor.
type Update struct {
	Info *DrawInfo
	Err  error
}

// Panel is one slot in an alignment group. Index-stable for the process
// lifetime: panels are never removed, only rendered as zero width.
type Panel struct {
	name     string
	endpoint *Endpoint

	drawInfo *DrawInfo
	x, y     float64

	// visible is toggled over IPC; a cleared flag forces the panel to zero
	// width regardless of its descriptor.
	visible   bool
	lastShown bool
}

// NewPanel returns a panel slot with no draw descriptor yet.
func NewPanel(name string, visible bool, endpoint *Endpoint) *Panel {
	return &Panel{name: name, visible: visible, endpoint: endpoint}
}

// Name returns the panel's routing identity.
func (p *Panel) Name() string { return p.name }

// X returns the panel's current on-screen x origin; meaningful only once a
// draw descriptor exists.
func (p *Panel) X() float64 { return p.x }

// StatusKind classifies a panel's visibility for one redraw pass.
type StatusKind int

const (
	StatusShown StatusKind = iota
	StatusZeroWidth
	StatusDependent
)

// Status is a panel's visibility for one redraw pass. Dep is set only for
// StatusDependent, which arises when dependence chains deeper than one
// neighbor; such panels are treated as hidden.
type Status struct {
	Kind StatusKind
	Dep  Dependence
}

// Shown reports whether the panel draws this pass.
func (s Status) Shown() bool { return s.Kind == StatusShown }

// rawStatus is the single-panel classification before neighbor resolution.
func rawStatus(p *Panel) Status {
	if !p.visible {
		return Status{Kind: StatusZeroWidth}
	}
	if p.drawInfo == nil {
		return Status{Kind: StatusZeroWidth}
	}
	switch {
	case p.drawInfo.Dependence != DependsNone:
		return Status{Kind: StatusDependent, Dep: p.drawInfo.Dependence}
	case p.drawInfo.Width == 0:
		return Status{Kind: StatusZeroWidth}
	default:
		return Status{Kind: StatusShown}
	}
}

// neighborStatus is rawStatus with bounds checking: out of range hides.
func neighborStatus(panels []*Panel, idx int) Status {
	if idx < 0 || idx >= len(panels) {
		return Status{Kind: StatusZeroWidth}
	}
	return rawStatus(panels[idx])
}

func andStatus(a, b Status) Status {
	if a.Shown() && b.Shown() {
		return Status{Kind: StatusShown}
	}
	return Status{Kind: StatusZeroWidth}
}

// resolveDependence computes each panel's effective visibility for one pass.
// A dependent panel inherits its immediate neighbor's raw status, one level
// only: a neighbor that is itself dependent stays hidden this pass.
func resolveDependence(panels []*Panel) []Status {
	statuses := make([]Status, len(panels))
	for idx, p := range panels {
		raw := rawStatus(p)
		switch {
		case raw.Kind != StatusDependent:
			statuses[idx] = raw
		case raw.Dep == DependsLeft:
			statuses[idx] = neighborStatus(panels, idx-1)
		case raw.Dep == DependsRight:
			statuses[idx] = neighborStatus(panels, idx+1)
		default: // DependsBoth
			statuses[idx] = andStatus(
				neighborStatus(panels, idx-1),
				neighborStatus(panels, idx+1),
			)
		}
	}
	return statuses
}

// processShowHide fires each panel's show/hide hook when its resolved status
// transitions, and records the new state.
func processShowHide(log logger, panels []*Panel, statuses []Status) {
	for idx, p := range panels {
		shown := statuses[idx].Shown()
		if p.drawInfo != nil && p.lastShown && !shown {
			if p.drawInfo.Hide != nil {
				if err := p.drawInfo.Hide(); err != nil {
					log.Printf("panel %s hide hook: %v", p.name, err)
				}
			}
		}
		if p.drawInfo != nil && !p.lastShown && shown {
			if p.drawInfo.Show != nil {
				if err := p.drawInfo.Show(); err != nil {
					log.Printf("panel %s show hook: %v", p.name, err)
				}
			}
		}
		p.lastShown = shown
	}
}

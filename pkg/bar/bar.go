package bar

import (
	"io"
	"log"

	"github.com/b/ledge/pkg/render"
)

// logger is the subset of *log.Logger the engine needs.
type logger interface {
	Printf(format string, v ...any)
}

// Surface is the terminal side of the bar: it displays composed frames and
// reflects bar-level visibility toggles.
type Surface interface {
	Flush(frame string)
	SetBarVisible(visible bool)
}

// Options configure a Bar at construction.
type Options struct {
	Name          string
	Width         int
	Height        int
	Margins       Margins
	Background    render.CellStyle
	ReverseScroll bool
	Surface       Surface
	Log           *log.Logger
}

// Bar owns the three panel groups and all layout state. Every method must be
// called from the single event-loop goroutine; nothing here locks.
type Bar struct {
	name    string
	width   int
	height  int
	margins Margins
	bg      render.CellStyle

	reverseScroll bool

	left   []*Panel
	center []*Panel
	right  []*Panel

	extents     Extents
	centerState CenterState

	frame   *render.Frame
	surface Surface
	mapped  bool

	log logger
}

// New builds a bar with empty panel groups. Panels are installed by the
// orchestrator during bring-up. A zero width defers frame allocation to the
// first Resize.
func New(opts Options) *Bar {
	var lg logger = opts.Log
	if opts.Log == nil {
		lg = log.New(io.Discard, "", 0)
	}
	height := opts.Height
	if height <= 0 {
		height = 1
	}
	b := &Bar{
		name:          opts.Name,
		width:         opts.Width,
		height:        height,
		margins:       opts.Margins,
		bg:            opts.Background,
		reverseScroll: opts.ReverseScroll,
		surface:       opts.Surface,
		mapped:        true,
		log:           lg,
	}
	if b.width > 0 {
		b.frame = render.NewFrame(b.width, b.height, b.bg)
	}
	return b
}

// Name returns the bar's configured name.
func (b *Bar) Name() string { return b.name }

// Width returns the current bar width in cells.
func (b *Bar) Width() int { return b.width }

// Resize reallocates the frame at a new width and runs a full relayout.
func (b *Bar) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if width == b.width && height == b.height && b.frame != nil {
		return nil
	}
	b.width = width
	b.height = height
	b.frame = render.NewFrame(width, height, b.bg)
	return b.RedrawBar()
}

// setMapped toggles whole-bar visibility (the IPC show/hide/toggle verbs).
func (b *Bar) setMapped(mapped bool) {
	b.mapped = mapped
	if b.surface != nil {
		b.surface.SetBarVisible(mapped)
	}
}

// flush hands the composed frame to the surface.
func (b *Bar) flush() {
	if b.surface != nil && b.frame != nil {
		b.surface.Flush(b.frame.Render())
	}
}

// clearRegion paints background over the scope of a redraw.
func (b *Bar) clearRegion(r Region) {
	if b.frame == nil {
		return
	}
	switch r.Kind {
	case RegionLeft:
		b.frame.ClearSpan(0, b.extents.Left+b.margins.Internal)
	case RegionCenterRight:
		b.frame.ClearSpan(b.extents.CenterStart-b.margins.Internal, float64(b.width))
	case RegionRight:
		b.frame.ClearSpan(b.extents.Right-b.margins.Internal, float64(b.width))
	case RegionAll:
		b.frame.ClearSpan(0, float64(b.width))
	case RegionCustom:
		b.frame.ClearSpan(r.Start, r.End)
	}
}

// group returns the panel slice for an alignment.
func (b *Bar) group(a Alignment) []*Panel {
	switch a {
	case AlignLeft:
		return b.left
	case AlignCenter:
		return b.center
	case AlignRight:
		return b.right
	}
	return nil
}

// Panels returns the bar's panels in left, center, right order.
func (b *Bar) Panels() []*Panel {
	all := make([]*Panel, 0, len(b.left)+len(b.center)+len(b.right))
	all = append(all, b.left...)
	all = append(all, b.center...)
	all = append(all, b.right...)
	return all
}

// shutdownPanels runs every panel's shutdown hook. Called once, at teardown.
func (b *Bar) shutdownPanels() {
	for _, p := range b.Panels() {
		if p.drawInfo != nil && p.drawInfo.Shutdown != nil {
			p.drawInfo.Shutdown()
		}
	}
}

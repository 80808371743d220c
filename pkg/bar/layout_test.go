package bar

import (
	"strings"
	"testing"

	"github.com/b/ledge/pkg/render"
)

type recordingSurface struct {
	frames  []string
	visible []bool
}

func (s *recordingSurface) Flush(frame string)   { s.frames = append(s.frames, frame) }
func (s *recordingSurface) SetBarVisible(v bool) { s.visible = append(s.visible, v) }

func (s *recordingSurface) last() string {
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1]
}

// testInfo paints the panel as width copies of ch so frame assertions can spot
// exactly where each panel landed.
func testInfo(width int, ch string) *DrawInfo {
	return &DrawInfo{
		Width:  width,
		Height: 1,
		Draw: func(f *render.Frame, x, y float64) error {
			f.DrawText(x, y, strings.Repeat(ch, width), render.CellStyle{})
			return nil
		},
	}
}

func testBar(width int, margins Margins) (*Bar, *recordingSurface) {
	s := &recordingSurface{}
	b := New(Options{
		Name:    "test",
		Width:   width,
		Height:  1,
		Margins: margins,
		Surface: s,
	})
	return b, s
}

func addPanel(b *Bar, a Alignment, name string, info *DrawInfo) *Panel {
	p := NewPanel(name, true, nil)
	p.drawInfo = info
	group := b.groupRef(a)
	*group = append(*group, p)
	return p
}

func checkSpan(t *testing.T, line string, start, end int, ch byte) {
	t.Helper()
	for i := start; i < end; i++ {
		if line[i] != ch {
			t.Fatalf("expected %q at column %d, got %q", string(ch), i, string(line[i]))
		}
	}
}

func TestRedrawBarCenteredPlacement(t *testing.T) {
	b, s := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	left := addPanel(b, AlignLeft, "l0", testInfo(100, "l"))
	center := addPanel(b, AlignCenter, "c0", testInfo(200, "c"))
	right := addPanel(b, AlignRight, "r0", testInfo(50, "r"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	if b.extents.Left != 110 {
		t.Fatalf("expected left extent 110, got %v", b.extents.Left)
	}
	if b.centerState != CenterCentered {
		t.Fatalf("expected centered placement, got %v", b.centerState)
	}
	if b.extents.CenterStart != 400 || b.extents.CenterEnd != 600 {
		t.Fatalf("expected center 400..600, got %v..%v", b.extents.CenterStart, b.extents.CenterEnd)
	}
	if b.extents.Right != 940 {
		t.Fatalf("expected right extent 940, got %v", b.extents.Right)
	}
	if left.X() != 10 || center.X() != 400 || right.X() != 940 {
		t.Fatalf("expected positions 10/400/940, got %v/%v/%v", left.X(), center.X(), right.X())
	}

	line := s.last()
	if len(line) != 1000 {
		t.Fatalf("expected 1000 columns, got %d", len(line))
	}
	checkSpan(t, line, 0, 10, ' ')
	checkSpan(t, line, 10, 110, 'l')
	checkSpan(t, line, 110, 400, ' ')
	checkSpan(t, line, 400, 600, 'c')
	checkSpan(t, line, 600, 940, ' ')
	checkSpan(t, line, 940, 990, 'r')
	checkSpan(t, line, 990, 1000, ' ')
}

func TestRedrawBarOverflowPlacement(t *testing.T) {
	b, _ := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	addPanel(b, AlignLeft, "l0", testInfo(100, "l"))
	addPanel(b, AlignCenter, "c0", testInfo(900, "c"))
	addPanel(b, AlignRight, "r0", testInfo(50, "r"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	if b.centerState != CenterUnknown {
		t.Fatalf("expected overflow placement, got %v", b.centerState)
	}
	if b.extents.CenterStart != 115 {
		t.Fatalf("expected center start 115, got %v", b.extents.CenterStart)
	}
	// The right group no longer fits after the oversized center; its start is
	// clamped to the center's end plus the internal margin.
	if b.extents.Right != b.extents.CenterEnd+5 {
		t.Fatalf("expected right clamped to %v, got %v", b.extents.CenterEnd+5, b.extents.Right)
	}
}

func TestRedrawBarAnchoredLeftPlacement(t *testing.T) {
	// A wide right group pushes the center left of true center.
	b, _ := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	addPanel(b, AlignLeft, "l0", testInfo(100, "l"))
	center := addPanel(b, AlignCenter, "c0", testInfo(200, "c"))
	addPanel(b, AlignRight, "r0", testInfo(600, "r"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	if b.centerState != CenterLeft {
		t.Fatalf("expected left-anchored placement, got %v", b.centerState)
	}
	// Boundary 1000-(600+10)-5=385; center starts 385-200-5=180.
	if center.X() != 180 {
		t.Fatalf("expected center at 180, got %v", center.X())
	}
	if b.extents.Right != 390 {
		t.Fatalf("expected right extent 390, got %v", b.extents.Right)
	}
}

func TestRedrawBarAnchoredRightPlacement(t *testing.T) {
	// A wide left group pushes the center right of true center.
	b, _ := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	addPanel(b, AlignLeft, "l0", testInfo(600, "l"))
	center := addPanel(b, AlignCenter, "c0", testInfo(200, "c"))
	addPanel(b, AlignRight, "r0", testInfo(100, "r"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	if b.centerState != CenterRight {
		t.Fatalf("expected right-anchored placement, got %v", b.centerState)
	}
	if center.X() != 615 {
		t.Fatalf("expected center at 615, got %v", center.X())
	}
	if b.extents.Right != 890 {
		t.Fatalf("expected right extent 890, got %v", b.extents.Right)
	}
}

func TestRedrawBarIdempotent(t *testing.T) {
	b, s := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	addPanel(b, AlignLeft, "l0", testInfo(100, "l"))
	addPanel(b, AlignCenter, "c0", testInfo(200, "c"))
	addPanel(b, AlignRight, "r0", testInfo(50, "r"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}
	extents := b.extents
	state := b.centerState
	frame := s.last()

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	if b.extents != extents {
		t.Fatalf("expected extents %+v, got %+v", extents, b.extents)
	}
	if b.centerState != state {
		t.Fatalf("expected state %v, got %v", state, b.centerState)
	}
	if s.last() != frame {
		t.Fatalf("frame changed on relayout of unchanged panels")
	}
}

func TestRedrawBarSkipsHiddenPanels(t *testing.T) {
	b, s := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	hidden := addPanel(b, AlignLeft, "l0", testInfo(100, "x"))
	hidden.visible = false
	shown := addPanel(b, AlignLeft, "l1", testInfo(40, "l"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	if b.extents.Left != 50 {
		t.Fatalf("expected left extent 50, got %v", b.extents.Left)
	}
	if shown.X() != 10 {
		t.Fatalf("expected shown panel at 10, got %v", shown.X())
	}
	if strings.ContainsRune(s.last(), 'x') {
		t.Fatalf("hidden panel was drawn")
	}
}

func TestRedrawLeftFollowsDependence(t *testing.T) {
	b, s := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	anchor := addPanel(b, AlignLeft, "l0", testInfo(40, "a"))
	follower := addPanel(b, AlignLeft, "l1", testInfo(20, "b"))
	follower.drawInfo.Dependence = DependsLeft

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}
	if b.extents.Left != 70 {
		t.Fatalf("expected left extent 70, got %v", b.extents.Left)
	}

	// Hiding the anchor takes the follower down with it.
	anchor.visible = false
	if err := b.redrawLeft(); err != nil {
		t.Fatalf("redrawLeft: %v", err)
	}
	if b.extents.Left != 10 {
		t.Fatalf("expected left extent 10, got %v", b.extents.Left)
	}
	line := s.last()
	if strings.ContainsRune(line, 'a') || strings.ContainsRune(line, 'b') {
		t.Fatalf("dependent pair still drawn after anchor hidden")
	}
}

func TestResizeRelayouts(t *testing.T) {
	b, s := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	center := addPanel(b, AlignCenter, "c0", testInfo(100, "c"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}
	if center.X() != 450 {
		t.Fatalf("expected center at 450, got %v", center.X())
	}

	if err := b.Resize(500, 1); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if b.Width() != 500 {
		t.Fatalf("expected width 500, got %d", b.Width())
	}
	if center.X() != 200 {
		t.Fatalf("expected center at 200 after resize, got %v", center.X())
	}
	if len(s.last()) != 500 {
		t.Fatalf("expected 500 columns, got %d", len(s.last()))
	}
}

func TestZeroWidthBarDefersLayout(t *testing.T) {
	s := &recordingSurface{}
	b := New(Options{Name: "test", Height: 1, Surface: s})
	addPanel(b, AlignLeft, "l0", testInfo(10, "l"))

	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar before sizing: %v", err)
	}
	if len(s.frames) != 0 {
		t.Fatalf("expected no frames before sizing, got %d", len(s.frames))
	}

	if err := b.Resize(100, 1); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if len(s.frames) == 0 {
		t.Fatalf("expected a frame after sizing")
	}
	checkSpan(t, s.last(), 0, 10, 'l')
}

package bar

import (
	"strings"
	"testing"
)

func TestUpdatePanelSameWidthKeepsOtherPositions(t *testing.T) {
	b, s := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
	left := addPanel(b, AlignLeft, "l0", testInfo(100, "l"))
	center := addPanel(b, AlignCenter, "c0", testInfo(200, "c"))
	right := addPanel(b, AlignRight, "r0", testInfo(50, "r"))
	if err := b.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	if err := b.UpdatePanel(AlignCenter, 0, testInfo(200, "C")); err != nil {
		t.Fatalf("UpdatePanel: %v", err)
	}

	if left.X() != 10 || center.X() != 400 || right.X() != 940 {
		t.Fatalf("expected positions 10/400/940, got %v/%v/%v", left.X(), center.X(), right.X())
	}
	line := s.last()
	checkSpan(t, line, 400, 600, 'C')
	if strings.ContainsRune(line, 'c') {
		t.Fatalf("stale panel content survived the repaint")
	}
	checkSpan(t, line, 10, 110, 'l')
	checkSpan(t, line, 940, 990, 'r')
}

func TestUpdatePanelOutOfRange(t *testing.T) {
	b, _ := testBar(1000, Margins{})
	addPanel(b, AlignRight, "r0", testInfo(50, "r"))

	err := b.UpdatePanel(AlignRight, 3, testInfo(50, "r"))
	if err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
	if err.Error() != "no right panel at index 3" {
		t.Fatalf("unexpected error %q", err)
	}
}

// TestUpdatePanelMatchesFullRelayout drives the incremental-repaint decision
// table through every branch and checks, step by step, that the bar is
// indistinguishable from one that relays out from scratch on each update.
func TestUpdatePanelMatchesFullRelayout(t *testing.T) {
	chars := map[Alignment][]string{
		AlignLeft:   {"a", "b"},
		AlignCenter: {"c", "d"},
		AlignRight:  {"e", "f"},
	}
	build := func() (*Bar, *recordingSurface) {
		b, s := testBar(1000, Margins{Left: 10, Internal: 5, Right: 10})
		addPanel(b, AlignLeft, "l0", testInfo(100, "a"))
		addPanel(b, AlignLeft, "l1", testInfo(50, "b"))
		addPanel(b, AlignCenter, "c0", testInfo(100, "c"))
		addPanel(b, AlignCenter, "c1", testInfo(60, "d"))
		addPanel(b, AlignRight, "r0", testInfo(40, "e"))
		addPanel(b, AlignRight, "r1", testInfo(40, "f"))
		return b, s
	}

	incremental, si := build()
	reference, sr := build()
	if err := incremental.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}
	if err := reference.RedrawBar(); err != nil {
		t.Fatalf("RedrawBar: %v", err)
	}

	steps := []struct {
		alignment Alignment
		idx       int
		width     int
	}{
		{AlignLeft, 0, 120},   // growth clear of the center: left-only repaint
		{AlignLeft, 0, 120},   // same width: single panel repaint
		{AlignRight, 1, 80},   // growth clear of the center: right-only repaint
		{AlignCenter, 0, 150}, // any center width change: full relayout
		{AlignRight, 0, 300},  // growth the slack around the center absorbs
		{AlignLeft, 1, 350},   // growth that collides with the center
		{AlignRight, 1, 5},    // shrink with an overflowed center
		{AlignCenter, 1, 0},   // center panel collapses to zero width
		{AlignLeft, 0, 40},    // shrink with a right-anchored center
	}

	for n, step := range steps {
		ch := chars[step.alignment][step.idx]
		if err := incremental.UpdatePanel(step.alignment, step.idx, testInfo(step.width, ch)); err != nil {
			t.Fatalf("step %d: UpdatePanel: %v", n, err)
		}
		reference.group(step.alignment)[step.idx].drawInfo = testInfo(step.width, ch)
		if err := reference.RedrawBar(); err != nil {
			t.Fatalf("step %d: RedrawBar: %v", n, err)
		}

		if incremental.extents != reference.extents {
			t.Fatalf("step %d: extents %+v, reference %+v", n, incremental.extents, reference.extents)
		}
		if incremental.centerState != reference.centerState {
			t.Fatalf("step %d: state %v, reference %v", n, incremental.centerState, reference.centerState)
		}
		pi, pr := incremental.Panels(), reference.Panels()
		for i := range pi {
			if pi[i].X() != pr[i].X() {
				t.Fatalf("step %d: panel %s at %v, reference %v", n, pi[i].Name(), pi[i].X(), pr[i].X())
			}
		}
		if si.last() != sr.last() {
			t.Fatalf("step %d: incremental frame diverged from full relayout", n)
		}
	}
}

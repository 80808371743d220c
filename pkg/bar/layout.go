package bar

import (
	"fmt"

	"github.com/b/ledge/pkg/perf"
)

// shownWidth sums the widths of panels resolved Shown.
func shownWidth(panels []*Panel, statuses []Status) float64 {
	total := 0
	for idx, p := range panels {
		if statuses[idx].Shown() && p.drawInfo != nil {
			total += p.drawInfo.Width
		}
	}
	return float64(total)
}

// place draws every Shown panel left to right from cursor, records each
// panel's position, and returns the advanced cursor.
func (b *Bar) place(panels []*Panel, statuses []Status, cursor float64) (float64, error) {
	for idx, p := range panels {
		if !statuses[idx].Shown() || p.drawInfo == nil {
			continue
		}
		x := cursor
		y := float64(b.height-p.drawInfo.Height) / 2.0
		p.x = x
		p.y = y
		if err := p.drawInfo.Draw(b.frame, x, y); err != nil {
			return cursor, fmt.Errorf("draw panel %s: %w", p.name, err)
		}
		cursor += float64(p.drawInfo.Width)
	}
	return cursor, nil
}

// RedrawBar clears everything and lays out all three groups from scratch.
func (b *Bar) RedrawBar() error {
	if b.frame == nil {
		return nil
	}
	defer perf.Span("redraw_bar")()

	b.clearRegion(Region{Kind: RegionAll})

	if err := b.redrawLeft(); err != nil {
		return err
	}
	return b.redrawCenterRight(false)
}

// redrawLeft repaints the left group: panels packed from margins.Left, the
// left extent advancing past each shown panel.
func (b *Bar) redrawLeft() error {
	if b.frame == nil {
		return nil
	}
	b.clearRegion(Region{Kind: RegionLeft})

	b.extents.Left = b.margins.Left

	statuses := resolveDependence(b.left)
	processShowHide(b.log, b.left, statuses)

	cursor, err := b.place(b.left, statuses, b.extents.Left)
	b.extents.Left = cursor
	if err != nil {
		return err
	}

	b.flush()
	return nil
}

// redrawCenterRight positions the center and right groups jointly. The
// center picks one of four placements against the space left between the
// side groups; the right group is then pinned from the bar's right edge,
// clamped so it never starts before the center's end.
func (b *Bar) redrawCenterRight(standalone bool) error {
	if b.frame == nil {
		return nil
	}
	if standalone {
		b.clearRegion(Region{Kind: RegionCenterRight})
	}

	centerStatuses := resolveDependence(b.center)
	processShowHide(b.log, b.center, centerStatuses)

	rightStatuses := resolveDependence(b.right)
	processShowHide(b.log, b.right, rightStatuses)

	centerWidth := shownWidth(b.center, centerStatuses)

	// Placement boundary for the right group; its trailing margin counts
	// against it here so an anchored center keeps an internal gap from the
	// right group's real start.
	b.extents.Right = float64(b.width) -
		(shownWidth(b.right, rightStatuses) + b.margins.Right) -
		b.margins.Internal

	half := float64(b.width / 2)
	switch {
	case centerWidth > (b.extents.Right-b.extents.Left)-2*b.margins.Internal:
		b.extents.CenterStart = b.margins.Internal + b.extents.Left
		b.extents.CenterEnd = b.margins.Internal + b.extents.Left
		b.centerState = CenterUnknown
	case centerWidth/2 > b.extents.Right-half-b.margins.Internal:
		b.extents.CenterStart = b.extents.Right - centerWidth - b.margins.Internal
		b.extents.CenterEnd = b.extents.Right - centerWidth - b.margins.Internal
		b.centerState = CenterLeft
	case centerWidth/2 > half-b.extents.Left-b.margins.Internal:
		b.extents.CenterStart = b.extents.Left + b.margins.Internal
		b.extents.CenterEnd = b.extents.Left + b.margins.Internal
		b.centerState = CenterRight
	default:
		b.extents.CenterStart = half - centerWidth/2
		b.extents.CenterEnd = half - centerWidth/2
		b.centerState = CenterCentered
	}

	cursor, err := b.place(b.center, centerStatuses, b.extents.CenterEnd)
	b.extents.CenterEnd = cursor
	if err != nil {
		return err
	}

	if err := b.redrawRight(standalone, rightStatuses); err != nil {
		return err
	}

	b.flush()
	return nil
}

// redrawRight repaints the right group from its recomputed start.
func (b *Bar) redrawRight(standalone bool, statuses []Status) error {
	if b.frame == nil {
		return nil
	}
	if standalone {
		b.clearRegion(Region{Kind: RegionRight})
	}

	if statuses == nil {
		statuses = resolveDependence(b.right)
		processShowHide(b.log, b.right, statuses)
	}

	totalWidth := shownWidth(b.right, statuses) + b.margins.Right

	if totalWidth > float64(b.width)-b.extents.CenterEnd {
		b.extents.Right = b.extents.CenterEnd + b.margins.Internal
	} else {
		b.extents.Right = float64(b.width) - totalWidth
	}

	if _, err := b.place(b.right, statuses, b.extents.Right); err != nil {
		return err
	}

	b.flush()
	return nil
}

// redrawOne repaints a single panel in place, clearing only its own span.
func (b *Bar) redrawOne(alignment Alignment, idx int) error {
	if b.frame == nil {
		return nil
	}
	panels := b.group(alignment)
	if idx < 0 || idx >= len(panels) {
		return fmt.Errorf("no %s panel at index %d", alignment, idx)
	}
	p := panels[idx]
	if p.drawInfo == nil {
		return nil
	}

	b.clearRegion(CustomRegion(p.x, p.x+float64(p.drawInfo.Width)))
	if err := p.drawInfo.Draw(b.frame, p.x, p.y); err != nil {
		return fmt.Errorf("draw panel %s: %w", p.name, err)
	}

	b.flush()
	return nil
}

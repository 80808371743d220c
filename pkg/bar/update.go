package bar

import (
	"fmt"
	"math"
)

// widthEpsilon is the tolerance for "same width" comparisons.
const widthEpsilon = 1e-9

// UpdatePanel installs a panel's new draw descriptor and repaints the
// smallest region that provably looks identical to a full relayout:
//
//   - same width: just that panel's own span;
//   - left-group growth that stays clear of a centered/left-anchored center:
//     the left group;
//   - right-group change that stays clear of the center's end: the right
//     group; right-group change the slack around the center can absorb:
//     center+right;
//   - anything else (and any center width change): the whole bar.
func (b *Bar) UpdatePanel(alignment Alignment, idx int, info *DrawInfo) error {
	panels := b.group(alignment)
	if idx < 0 || idx >= len(panels) {
		return fmt.Errorf("no %s panel at index %d", alignment, idx)
	}
	p := panels[idx]

	curWidth := 0.0
	if p.drawInfo != nil {
		curWidth = float64(p.drawInfo.Width)
	}
	newWidth := float64(info.Width)
	p.drawInfo = info

	switch alignment {
	case AlignLeft:
		switch {
		case math.Abs(newWidth-curWidth) < widthEpsilon:
			return b.redrawOne(alignment, idx)
		case newWidth-curWidth+b.extents.Left+b.margins.Internal < b.extents.CenterStart &&
			(b.centerState == CenterCentered || b.centerState == CenterLeft):
			return b.redrawLeft()
		default:
			return b.RedrawBar()
		}

	case AlignCenter:
		if math.Abs(newWidth-curWidth) < widthEpsilon {
			return b.redrawOne(alignment, idx)
		}
		return b.RedrawBar()

	case AlignRight:
		switch {
		case math.Abs(newWidth-curWidth) < widthEpsilon:
			return b.redrawOne(alignment, idx)
		case b.extents.Right-newWidth-curWidth-b.margins.Internal > b.extents.CenterEnd:
			return b.redrawRight(true, nil)
		case (b.extents.Right-b.extents.CenterEnd-b.margins.Internal)+
			(b.extents.CenterStart-b.extents.Left-b.margins.Internal) > newWidth-curWidth:
			b.extents.Right += newWidth - curWidth
			return b.redrawCenterRight(true)
		default:
			return b.RedrawBar()
		}
	}
	return fmt.Errorf("unknown alignment %d", int(alignment))
}

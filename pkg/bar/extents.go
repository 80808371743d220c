package bar

import "fmt"

// Margins are the minimum gaps at the bar edges and between groups, fixed at
// construction.
type Margins struct {
	Left     float64
	Internal float64
	Right    float64
}

// Extents is the mutable geometry of one layout pass: the left cursor, the
// center group's start and advancing cursor, and the right group's start.
type Extents struct {
	Left        float64
	CenterStart float64
	CenterEnd   float64
	Right       float64
}

// CenterState records which placement strategy positioned the center group
// last pass. It is a fast-path hint only: left-group updates may skip the
// full relayout when the center was centered or pushed left.
type CenterState int

const (
	// CenterUnknown means the center group overflowed the space between the
	// side groups and was placed flush after the left group.
	CenterUnknown CenterState = iota
	// CenterCentered means the center group sits on the bar midpoint.
	CenterCentered
	// CenterLeft means the center group was pushed left, anchored against
	// the right group.
	CenterLeft
	// CenterRight means the center group was pushed right, anchored against
	// the left group.
	CenterRight
)

func (c CenterState) String() string {
	switch c {
	case CenterUnknown:
		return "unknown"
	case CenterCentered:
		return "center"
	case CenterLeft:
		return "left"
	case CenterRight:
		return "right"
	}
	return fmt.Sprintf("centerstate(%d)", int(c))
}

// RegionKind names the bar region a redraw clears before repainting.
type RegionKind int

const (
	RegionLeft RegionKind = iota
	RegionCenterRight
	RegionRight
	RegionAll
	RegionCustom
)

// Region is the cleared scope of one redraw. Start/End are set only for
// RegionCustom.
type Region struct {
	Kind  RegionKind
	Start float64
	End   float64
}

// CustomRegion scopes a clear to [start, end).
func CustomRegion(start, end float64) Region {
	return Region{Kind: RegionCustom, Start: start, End: end}
}

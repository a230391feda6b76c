// Package style defines the per-node layout style record: display and
// position modes, box-model edges, flex and grid properties, and alignment.
// A Style is pure data; building one never depends on tree context.
package style

// Display selects the layout algorithm used for a node's children.
type Display uint8

const (
	// DisplayFlex lays children out with the flexbox algorithm. Default.
	DisplayFlex Display = iota
	// DisplayGrid lays children out with the grid algorithm.
	DisplayGrid
	// DisplayBlock stacks children vertically.
	DisplayBlock
	// DisplayNone hides the node and its subtree.
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayFlex:
		return "flex"
	case DisplayGrid:
		return "grid"
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	}
	return "invalid"
}

// Position selects the positioning strategy. Relative items participate in
// their parent's layout flow; absolute items are taken out of flow and
// positioned against their containing block via the inset rect.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

func (p Position) String() string {
	if p == PositionAbsolute {
		return "absolute"
	}
	return "relative"
}

// Overflow describes the desired behavior when content does not fit.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowClip
)

func (o Overflow) String() string {
	switch o {
	case OverflowVisible:
		return "visible"
	case OverflowHidden:
		return "hidden"
	case OverflowScroll:
		return "scroll"
	case OverflowClip:
		return "clip"
	}
	return "invalid"
}

// FlexDirection sets the main axis of a flex container.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
	FlexRowReverse
	FlexColumnReverse
)

// IsRow reports whether the main axis is horizontal.
func (d FlexDirection) IsRow() bool {
	return d == FlexRow || d == FlexRowReverse
}

// IsReverse reports whether items are laid out in reverse order along the
// main axis.
func (d FlexDirection) IsReverse() bool {
	return d == FlexRowReverse || d == FlexColumnReverse
}

func (d FlexDirection) String() string {
	switch d {
	case FlexRow:
		return "row"
	case FlexColumn:
		return "column"
	case FlexRowReverse:
		return "row-reverse"
	case FlexColumnReverse:
		return "column-reverse"
	}
	return "invalid"
}

// FlexWrap controls whether flex items may wrap onto multiple lines.
type FlexWrap uint8

const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

func (w FlexWrap) String() string {
	switch w {
	case NoWrap:
		return "nowrap"
	case Wrap:
		return "wrap"
	case WrapReverse:
		return "wrap-reverse"
	}
	return "invalid"
}

// Alignment is the shared nine-value alignment vocabulary used by
// align-items/self/content and justify-items/self/content. Not every value is
// valid in every context: the distribution values (space-between and friends)
// only apply to the *-content properties, and baseline only to item
// alignment. AlignDefault means "not set" and falls back contextually.
type Alignment uint8

const (
	AlignDefault Alignment = iota
	AlignStart
	AlignEnd
	AlignFlexStart
	AlignFlexEnd
	AlignCenter
	AlignBaseline
	AlignStretch
	AlignSpaceBetween
	AlignSpaceAround
	AlignSpaceEvenly
)

func (a Alignment) String() string {
	switch a {
	case AlignDefault:
		return "default"
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	case AlignFlexStart:
		return "flex-start"
	case AlignFlexEnd:
		return "flex-end"
	case AlignCenter:
		return "center"
	case AlignBaseline:
		return "baseline"
	case AlignStretch:
		return "stretch"
	case AlignSpaceBetween:
		return "space-between"
	case AlignSpaceAround:
		return "space-around"
	case AlignSpaceEvenly:
		return "space-evenly"
	}
	return "invalid"
}

// GridAutoFlow controls how auto-placed grid items fill the grid.
type GridAutoFlow uint8

const (
	AutoFlowRow GridAutoFlow = iota
	AutoFlowColumn
	AutoFlowRowDense
	AutoFlowColumnDense
)

// IsColumn reports whether auto placement advances column-major.
func (f GridAutoFlow) IsColumn() bool {
	return f == AutoFlowColumn || f == AutoFlowColumnDense
}

// IsDense reports whether auto placement backfills earlier holes.
func (f GridAutoFlow) IsDense() bool {
	return f == AutoFlowRowDense || f == AutoFlowColumnDense
}

func (f GridAutoFlow) String() string {
	switch f {
	case AutoFlowRow:
		return "row"
	case AutoFlowColumn:
		return "column"
	case AutoFlowRowDense:
		return "row dense"
	case AutoFlowColumnDense:
		return "column dense"
	}
	return "invalid"
}

package style

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

// ErrInvalidValue is returned when a style carries a value that is rejected
// eagerly at build time, such as a negative border width or auto padding.
var ErrInvalidValue = errors.New("invalid style value")

var logger = zap.NewNop()

// SetLogger installs a logger for the package. The style parser reports
// unrecognized properties through it at warn level.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Style is the full set of recognized layout properties for one node. It is
// pure data: construction never inspects the tree, and layout never mutates
// it. Use New for defaults; the zero value has points-zero margins rather
// than the CSS defaults.
type Style struct {
	Display  Display
	Position Position
	Overflow Overflow

	// Inset positions absolute nodes against their containing block and
	// offsets relative nodes. All edges default to auto.
	Inset geometry.Rect

	Size    geometry.Size
	MinSize geometry.Size
	MaxSize geometry.Size

	// AspectRatio is width / height. Zero means none.
	AspectRatio float64

	// Margin edges may be auto; padding and border may not.
	Margin  geometry.Rect
	Padding geometry.Rect
	Border  geometry.Rect

	// Gap holds row gap in Height and column gap in Width.
	Gap geometry.Size

	AlignItems     Alignment
	AlignSelf      Alignment
	AlignContent   Alignment
	JustifyItems   Alignment
	JustifySelf    Alignment
	JustifyContent Alignment

	FlexDirection FlexDirection
	FlexWrap      FlexWrap
	FlexGrow      float64
	FlexShrink    float64
	FlexBasis     geometry.Length

	GridTemplateRows    TrackList
	GridTemplateColumns TrackList
	GridAutoRows        []TrackSize
	GridAutoColumns     []TrackSize
	GridAutoFlow        GridAutoFlow
	GridRow             GridLine
	GridColumn          GridLine
}

// New returns a style with CSS-equivalent defaults: display flex, relative
// position, auto size and inset, zero margin/padding/border, flex-shrink 1
// and flex-basis auto.
func New() *Style {
	return &Style{
		Inset:      geometry.AutoRect(),
		Size:       geometry.AutoSize(),
		MinSize:    geometry.AutoSize(),
		MaxSize:    geometry.AutoSize(),
		Margin:     geometry.ZeroRect(),
		Padding:    geometry.ZeroRect(),
		Border:     geometry.ZeroRect(),
		Gap:        geometry.SizeOf(geometry.Zero(), geometry.Zero()),
		FlexShrink: 1,
		FlexBasis:  geometry.Auto(),
	}
}

// Validate rejects values that can never be laid out: auto or negative
// padding/border edges, negative flex factors, non-positive aspect ratios and
// NaN lengths. Violations are programming errors by the style producer and
// are reported before any layout runs.
func (s *Style) Validate() error {
	if err := validateEdgeRect("padding", s.Padding); err != nil {
		return err
	}
	if err := validateEdgeRect("border", s.Border); err != nil {
		return err
	}
	if s.FlexGrow < 0 || math.IsNaN(s.FlexGrow) {
		return fmt.Errorf("%w: flex-grow %g", ErrInvalidValue, s.FlexGrow)
	}
	if s.FlexShrink < 0 || math.IsNaN(s.FlexShrink) {
		return fmt.Errorf("%w: flex-shrink %g", ErrInvalidValue, s.FlexShrink)
	}
	if s.AspectRatio != 0 && (s.AspectRatio < 0 || math.IsNaN(s.AspectRatio)) {
		return fmt.Errorf("%w: aspect-ratio %g", ErrInvalidValue, s.AspectRatio)
	}
	for _, l := range []struct {
		name string
		v    geometry.Length
	}{
		{"width", s.Size.Width}, {"height", s.Size.Height},
		{"min-width", s.MinSize.Width}, {"min-height", s.MinSize.Height},
		{"max-width", s.MaxSize.Width}, {"max-height", s.MaxSize.Height},
		{"flex-basis", s.FlexBasis},
		{"row-gap", s.Gap.Height}, {"column-gap", s.Gap.Width},
	} {
		if err := validateFinite(l.name, l.v); err != nil {
			return err
		}
	}
	if s.Gap.Width.IsAuto() || s.Gap.Height.IsAuto() {
		return fmt.Errorf("%w: gap cannot be auto", ErrInvalidValue)
	}
	return nil
}

func validateEdgeRect(name string, r geometry.Rect) error {
	for _, e := range []struct {
		side string
		l    geometry.Length
	}{
		{"top", r.Top}, {"right", r.Right}, {"bottom", r.Bottom}, {"left", r.Left},
	} {
		switch e.l.Unit {
		case geometry.UnitPoints, geometry.UnitPercent:
			if e.l.Value < 0 || math.IsNaN(e.l.Value) {
				return fmt.Errorf("%w: %s-%s %s", ErrInvalidValue, name, e.side, e.l)
			}
		default:
			return fmt.Errorf("%w: %s-%s %s", ErrInvalidValue, name, e.side, e.l)
		}
	}
	return nil
}

func validateFinite(name string, l geometry.Length) error {
	switch l.Unit {
	case geometry.UnitPoints, geometry.UnitPercent, geometry.UnitFraction,
		geometry.UnitFitContentPoints, geometry.UnitFitContentPercent:
		if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
			return fmt.Errorf("%w: %s %s", ErrInvalidValue, name, l)
		}
	}
	return nil
}

// AlignSelfFor resolves the effective cross-axis alignment of a child inside
// a container: the child's align-self, falling back to the container's
// align-items, falling back to stretch.
func AlignSelfFor(child, container *Style) Alignment {
	if child.AlignSelf != AlignDefault {
		return child.AlignSelf
	}
	if container.AlignItems != AlignDefault {
		return container.AlignItems
	}
	return AlignStretch
}

// JustifySelfFor resolves the effective inline-axis alignment of a grid item:
// the item's justify-self, falling back to the container's justify-items,
// falling back to stretch.
func JustifySelfFor(child, container *Style) Alignment {
	if child.JustifySelf != AlignDefault {
		return child.JustifySelf
	}
	if container.JustifyItems != AlignDefault {
		return container.JustifyItems
	}
	return AlignStretch
}

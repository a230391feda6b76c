// Package geometry provides the length, size and rectangle value types that
// styles are built from, and the resolution arithmetic that converts them to
// concrete measurements during layout.
//
// Indefinite dimensions are modeled as NaN rather than a separate option type:
// arithmetic on an indefinite value stays indefinite, which matches how "auto"
// propagates through a style tree.
package geometry

import (
	"fmt"
	"math"
)

// Indefinite returns the marker value for a dimension that is not (yet) known.
func Indefinite() float64 {
	return math.NaN()
}

// IsDefinite reports whether v holds a concrete measurement.
func IsDefinite(v float64) bool {
	return !math.IsNaN(v)
}

// Unit identifies how a Length value is interpreted. Not every unit is valid
// in every property; styles are validated when they are built.
type Unit uint8

const (
	// UnitAuto defers sizing to the layout algorithm.
	UnitAuto Unit = iota
	// UnitPoints is an absolute length.
	UnitPoints
	// UnitPercent is a fraction of the containing dimension (0.5 == 50%).
	UnitPercent
	// UnitMinContent sizes to the smallest size that avoids overflow.
	UnitMinContent
	// UnitMaxContent sizes to the content's preferred size.
	UnitMaxContent
	// UnitFraction is a share of leftover space. Grid tracks only.
	UnitFraction
	// UnitFitContentPoints clamps max-content at an absolute limit. Grid tracks only.
	UnitFitContentPoints
	// UnitFitContentPercent clamps max-content at a percentage limit. Grid tracks only.
	UnitFitContentPercent
)

// Length is a tagged dimension value: an absolute length, a percentage, a
// content keyword, a grid fraction, or auto.
type Length struct {
	Unit  Unit
	Value float64
}

// Points returns an absolute length.
func Points(v float64) Length {
	return Length{Unit: UnitPoints, Value: v}
}

// Percent returns a percentage length. The value is a fraction: Percent(0.5)
// is 50%.
func Percent(v float64) Length {
	return Length{Unit: UnitPercent, Value: v}
}

// Fr returns a grid fraction unit.
func Fr(v float64) Length {
	return Length{Unit: UnitFraction, Value: v}
}

// FitContent wraps a points or percent limit into the corresponding
// fit-content unit.
func FitContent(limit Length) Length {
	switch limit.Unit {
	case UnitPercent:
		return Length{Unit: UnitFitContentPercent, Value: limit.Value}
	default:
		return Length{Unit: UnitFitContentPoints, Value: limit.Value}
	}
}

// Auto returns the auto keyword.
func Auto() Length {
	return Length{Unit: UnitAuto}
}

// MinContent returns the min-content keyword.
func MinContent() Length {
	return Length{Unit: UnitMinContent}
}

// MaxContent returns the max-content keyword.
func MaxContent() Length {
	return Length{Unit: UnitMaxContent}
}

// Zero returns a zero-point length.
func Zero() Length {
	return Length{Unit: UnitPoints}
}

// IsAuto reports whether the length is the auto keyword.
func (l Length) IsAuto() bool {
	return l.Unit == UnitAuto
}

// IsFraction reports whether the length is a grid fraction.
func (l Length) IsFraction() bool {
	return l.Unit == UnitFraction
}

// IsIntrinsic reports whether the length is a content-based keyword that only
// a layout algorithm can resolve.
func (l Length) IsIntrinsic() bool {
	switch l.Unit {
	case UnitMinContent, UnitMaxContent, UnitFitContentPoints, UnitFitContentPercent:
		return true
	}
	return false
}

// Resolve converts the length to a concrete value against the containing
// dimension. Points always resolve. Percent resolves only when the container
// is definite; an indefinite container yields an indefinite result, never a
// silent zero. Auto, content keywords and fractions are indefinite here; they
// are resolved inside the layout algorithms.
func (l Length) Resolve(container float64) float64 {
	switch l.Unit {
	case UnitPoints:
		return l.Value
	case UnitPercent:
		if IsDefinite(container) {
			return l.Value * container
		}
		return Indefinite()
	default:
		return Indefinite()
	}
}

// ResolveOrZero is Resolve with the indefinite result collapsed to zero. This
// is the CSS fallback used for padding and border against an indefinite
// containing axis.
func (l Length) ResolveOrZero(container float64) float64 {
	if v := l.Resolve(container); IsDefinite(v) {
		return v
	}
	return 0
}

func (l Length) String() string {
	switch l.Unit {
	case UnitAuto:
		return "auto"
	case UnitPoints:
		return fmt.Sprintf("%gpt", l.Value)
	case UnitPercent:
		return fmt.Sprintf("%g%%", l.Value*100)
	case UnitMinContent:
		return "min-content"
	case UnitMaxContent:
		return "max-content"
	case UnitFraction:
		return fmt.Sprintf("%gfr", l.Value)
	case UnitFitContentPoints:
		return fmt.Sprintf("fit-content(%gpt)", l.Value)
	case UnitFitContentPercent:
		return fmt.Sprintf("fit-content(%g%%)", l.Value*100)
	}
	return "invalid"
}

// SpaceKind identifies how available space is constrained.
type SpaceKind uint8

const (
	// SpaceDefinite is a concrete amount of space.
	SpaceDefinite SpaceKind = iota
	// SpaceMinContent asks for the smallest size that avoids overflow.
	SpaceMinContent
	// SpaceMaxContent asks for the content's preferred size.
	SpaceMaxContent
)

// AvailableSpace is the sizing constraint passed into layout along one axis:
// either a definite amount of space or an intrinsic sizing request.
type AvailableSpace struct {
	Kind  SpaceKind
	Value float64
}

// Definite returns a definite amount of available space.
func Definite(v float64) AvailableSpace {
	return AvailableSpace{Kind: SpaceDefinite, Value: v}
}

// MinContentSpace returns a min-content sizing request.
func MinContentSpace() AvailableSpace {
	return AvailableSpace{Kind: SpaceMinContent}
}

// MaxContentSpace returns a max-content sizing request.
func MaxContentSpace() AvailableSpace {
	return AvailableSpace{Kind: SpaceMaxContent}
}

// IsDefinite reports whether the space is a concrete amount.
func (a AvailableSpace) IsDefinite() bool {
	return a.Kind == SpaceDefinite
}

// OrIndefinite returns the definite value, or NaN for intrinsic requests.
func (a AvailableSpace) OrIndefinite() float64 {
	if a.Kind == SpaceDefinite {
		return a.Value
	}
	return Indefinite()
}

// WithDefinite replaces the space with a definite value when v is definite,
// keeping the intrinsic request otherwise.
func (a AvailableSpace) WithDefinite(v float64) AvailableSpace {
	if IsDefinite(v) {
		return Definite(v)
	}
	return a
}

// Shrink reduces definite space by delta, flooring at zero. Intrinsic
// requests pass through unchanged.
func (a AvailableSpace) Shrink(delta float64) AvailableSpace {
	if a.Kind != SpaceDefinite || !IsDefinite(delta) {
		return a
	}
	return Definite(math.Max(0, a.Value-delta))
}

func (a AvailableSpace) String() string {
	switch a.Kind {
	case SpaceDefinite:
		return fmt.Sprintf("%g", a.Value)
	case SpaceMinContent:
		return "min-content"
	case SpaceMaxContent:
		return "max-content"
	}
	return "invalid"
}

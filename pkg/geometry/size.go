package geometry

import (
	"fmt"
	"math"
)

// Size is a width/height pair of style lengths.
type Size struct {
	Width  Length
	Height Length
}

// AutoSize returns a size with both axes auto.
func AutoSize() Size {
	return Size{Width: Auto(), Height: Auto()}
}

// SizeOf builds a size from two lengths.
func SizeOf(width, height Length) Size {
	return Size{Width: width, Height: height}
}

// SizePoints builds a size from two absolute lengths.
func SizePoints(width, height float64) Size {
	return Size{Width: Points(width), Height: Points(height)}
}

// Resolve resolves both axes against a containing size. Indefinite axes stay
// indefinite.
func (s Size) Resolve(container FloatSize) FloatSize {
	return FloatSize{
		Width:  s.Width.Resolve(container.Width),
		Height: s.Height.Resolve(container.Height),
	}
}

func (s Size) String() string {
	return fmt.Sprintf("Size(width: %s; height: %s)", s.Width, s.Height)
}

// FloatSize is a concrete width/height pair. Either axis may be indefinite
// (NaN).
type FloatSize struct {
	Width  float64
	Height float64
}

// IndefiniteSize returns a size with both axes indefinite.
func IndefiniteSize() FloatSize {
	return FloatSize{Width: Indefinite(), Height: Indefinite()}
}

// FloatSizeOf builds a concrete size.
func FloatSizeOf(width, height float64) FloatSize {
	return FloatSize{Width: width, Height: height}
}

// BothDefinite reports whether width and height are both concrete.
func (s FloatSize) BothDefinite() bool {
	return IsDefinite(s.Width) && IsDefinite(s.Height)
}

// Or fills each indefinite axis from fallback.
func (s FloatSize) Or(fallback FloatSize) FloatSize {
	out := s
	if !IsDefinite(out.Width) {
		out.Width = fallback.Width
	}
	if !IsDefinite(out.Height) {
		out.Height = fallback.Height
	}
	return out
}

// Clamp constrains each definite axis into [min, max]. Indefinite bounds on a
// side leave that side unconstrained.
func (s FloatSize) Clamp(min, max FloatSize) FloatSize {
	return FloatSize{
		Width:  clampOptional(s.Width, min.Width, max.Width),
		Height: clampOptional(s.Height, min.Height, max.Height),
	}
}

// Axis returns the size along the given axis.
func (s FloatSize) Axis(horizontal bool) float64 {
	if horizontal {
		return s.Width
	}
	return s.Height
}

func (s FloatSize) String() string {
	return fmt.Sprintf("(%g, %g)", s.Width, s.Height)
}

func clampOptional(v, min, max float64) float64 {
	if !IsDefinite(v) {
		return v
	}
	if IsDefinite(max) && v > max {
		v = max
	}
	if IsDefinite(min) && v < min {
		v = min
	}
	return v
}

// AvailSize is an available-space constraint along both axes.
type AvailSize struct {
	Width  AvailableSpace
	Height AvailableSpace
}

// DefiniteAvail builds a definite available-space constraint.
func DefiniteAvail(width, height float64) AvailSize {
	return AvailSize{Width: Definite(width), Height: Definite(height)}
}

// MaxContentAvail is the default constraint: size to content on both axes.
func MaxContentAvail() AvailSize {
	return AvailSize{Width: MaxContentSpace(), Height: MaxContentSpace()}
}

// MinContentAvail requests the smallest non-overflowing size on both axes.
func MinContentAvail() AvailSize {
	return AvailSize{Width: MinContentSpace(), Height: MinContentSpace()}
}

// OrIndefinite converts both axes to concrete-or-NaN values.
func (a AvailSize) OrIndefinite() FloatSize {
	return FloatSize{Width: a.Width.OrIndefinite(), Height: a.Height.OrIndefinite()}
}

// WithDefinite overrides each axis with a definite value where known is
// definite.
func (a AvailSize) WithDefinite(known FloatSize) AvailSize {
	return AvailSize{
		Width:  a.Width.WithDefinite(known.Width),
		Height: a.Height.WithDefinite(known.Height),
	}
}

func (a AvailSize) String() string {
	return fmt.Sprintf("(%s, %s)", a.Width, a.Height)
}

// MaxDefinite returns the axis-wise maximum of a and b, treating indefinite
// values as absent.
func MaxDefinite(a, b FloatSize) FloatSize {
	return FloatSize{
		Width:  maxOrDefinite(a.Width, b.Width),
		Height: maxOrDefinite(a.Height, b.Height),
	}
}

func maxOrDefinite(a, b float64) float64 {
	switch {
	case !IsDefinite(a):
		return b
	case !IsDefinite(b):
		return a
	default:
		return math.Max(a, b)
	}
}

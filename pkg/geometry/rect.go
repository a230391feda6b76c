package geometry

import (
	"fmt"
)

// Rect holds one style length per box edge, in CSS order
// (top, right, bottom, left). Used for margin, padding, border and inset.
type Rect struct {
	Top    Length
	Right  Length
	Bottom Length
	Left   Length
}

// UniformRect returns a rect with the same length on every edge.
func UniformRect(l Length) Rect {
	return Rect{Top: l, Right: l, Bottom: l, Left: l}
}

// ZeroRect returns a rect of zero-point edges.
func ZeroRect() Rect {
	return UniformRect(Zero())
}

// AutoRect returns a rect with every edge auto.
func AutoRect() Rect {
	return UniformRect(Auto())
}

// RectOf builds a rect from explicit edges in CSS order.
func RectOf(top, right, bottom, left Length) Rect {
	return Rect{Top: top, Right: right, Bottom: bottom, Left: left}
}

// RectFromValues expands 1 to 4 positional lengths per the CSS shorthand
// rules: one value applies to all edges, two to (vertical, horizontal), three
// to (top, horizontal, bottom), four to (top, right, bottom, left).
func RectFromValues(values ...Length) (Rect, error) {
	switch len(values) {
	case 1:
		return UniformRect(values[0]), nil
	case 2:
		return Rect{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3:
		return Rect{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	case 4:
		return Rect{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return Rect{}, fmt.Errorf("unsupported number of rect values (%d)", len(values))
	}
}

// HasAuto reports whether any edge is the auto keyword.
func (r Rect) HasAuto() bool {
	return r.Top.IsAuto() || r.Right.IsAuto() || r.Bottom.IsAuto() || r.Left.IsAuto()
}

// Resolve resolves all four edges against the containing width. Percentages
// on every edge resolve against the inline (width) axis, matching CSS.
// Indefinite edges stay indefinite.
func (r Rect) Resolve(containerWidth float64) Edges {
	return Edges{
		Top:    r.Top.Resolve(containerWidth),
		Right:  r.Right.Resolve(containerWidth),
		Bottom: r.Bottom.Resolve(containerWidth),
		Left:   r.Left.Resolve(containerWidth),
	}
}

// ResolveOrZero resolves all four edges with the indefinite fallback of zero.
func (r Rect) ResolveOrZero(containerWidth float64) Edges {
	return Edges{
		Top:    r.Top.ResolveOrZero(containerWidth),
		Right:  r.Right.ResolveOrZero(containerWidth),
		Bottom: r.Bottom.ResolveOrZero(containerWidth),
		Left:   r.Left.ResolveOrZero(containerWidth),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(top: %s; right: %s; bottom: %s; left: %s)", r.Top, r.Right, r.Bottom, r.Left)
}

// Edges holds concrete per-edge measurements.
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal returns left + right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns top + bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// MainAxis returns the leading and trailing edges along the given axis.
func (e Edges) MainAxis(horizontal bool) (start, end float64) {
	if horizontal {
		return e.Left, e.Right
	}
	return e.Top, e.Bottom
}

// Sum returns the per-axis totals as a size.
func (e Edges) Sum() FloatSize {
	return FloatSize{Width: e.Horizontal(), Height: e.Vertical()}
}

// Add returns the edge-wise sum of two edge sets.
func (e Edges) Add(o Edges) Edges {
	return Edges{
		Top:    e.Top + o.Top,
		Right:  e.Right + o.Right,
		Bottom: e.Bottom + o.Bottom,
		Left:   e.Left + o.Left,
	}
}

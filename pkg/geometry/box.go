package geometry

import "fmt"

// Box is a computed rectangle: a position and a size. The position refers to
// the top-left corner; y grows downward unless a query flips it.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Inset shrinks the box by the given edges, moving the origin inward.
func (b Box) Inset(e Edges) Box {
	return Box{
		X:      b.X + e.Left,
		Y:      b.Y + e.Top,
		Width:  b.Width - e.Horizontal(),
		Height: b.Height - e.Vertical(),
	}
}

// Outset grows the box by the given edges, moving the origin outward.
func (b Box) Outset(e Edges) Box {
	return Box{
		X:      b.X - e.Left,
		Y:      b.Y - e.Top,
		Width:  b.Width + e.Horizontal(),
		Height: b.Height + e.Vertical(),
	}
}

// Translate shifts the box origin by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

func (b Box) String() string {
	return fmt.Sprintf("Box(x: %g, y: %g, w: %g, h: %g)", b.X, b.Y, b.Width, b.Height)
}

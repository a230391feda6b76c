package layout

import (
	"fmt"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

// Edge selects which box of the CSS box model a query returns.
type Edge uint8

const (
	// EdgeContent is the box inside padding and border.
	EdgeContent Edge = iota
	// EdgePadding is the box inside the border only.
	EdgePadding
	// EdgeBorder is the border box; positions and sizes in Layout use it.
	EdgeBorder
	// EdgeMargin is the border box grown by the margins.
	EdgeMargin
)

func (e Edge) String() string {
	switch e {
	case EdgeContent:
		return "content"
	case EdgePadding:
		return "padding"
	case EdgeBorder:
		return "border"
	case EdgeMargin:
		return "margin"
	}
	return "invalid"
}

// BoxOption adjusts how a box query reports coordinates.
type BoxOption func(*boxQuery)

type boxQuery struct {
	flipY bool
}

// FlipY reports y growing upward from the bottom of the reference frame
// (the parent for relative queries, the root otherwise) instead of downward
// from its top.
func FlipY() BoxOption {
	return func(q *boxQuery) {
		q.flipY = true
	}
}

// Layout returns the node's computed geometry. It fails with ErrNotComputed
// while the node is dirty: results are only published by a successful
// ComputeLayout covering this node.
func (n *Node) Layout() (Layout, error) {
	if n.dirty {
		return Layout{}, fmt.Errorf("%w: node %s", ErrNotComputed, n.Address())
	}
	return n.layout, nil
}

// Box returns one of the node's box-model rectangles. With relative set the
// position is against the parent's border box; otherwise it is against the
// root of the tree.
func (n *Node) Box(edge Edge, relative bool, opts ...BoxOption) (geometry.Box, error) {
	var q boxQuery
	for _, opt := range opts {
		opt(&q)
	}
	if n.dirty {
		return geometry.Box{}, fmt.Errorf("%w: node %s", ErrNotComputed, n.Address())
	}

	b := geometry.Box{X: n.layout.X, Y: n.layout.Y, Width: n.layout.Width, Height: n.layout.Height}
	switch edge {
	case EdgeMargin:
		b = b.Outset(n.layout.Margin)
	case EdgePadding:
		b = b.Inset(n.layout.Border)
	case EdgeContent:
		b = b.Inset(n.layout.Border.Add(n.layout.Padding))
	}

	frame := n.parent
	if !relative {
		for p := n.parent; p != nil; p = p.parent {
			if p.dirty {
				return geometry.Box{}, fmt.Errorf("%w: ancestor %s", ErrNotComputed, p.Address())
			}
			b = b.Translate(p.layout.X, p.layout.Y)
		}
		frame = n.Root()
	}

	if q.flipY {
		frameH := n.layout.Height
		if frame != nil {
			frameH = frame.layout.Height
		}
		b.Y = frameH - b.Y - b.Height
	}
	return b, nil
}

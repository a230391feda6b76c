package layout

import "math"

// roundTree snaps a computed layout to whole pixels. Edges are rounded in
// cumulative absolute coordinates and each size is derived from the
// difference of its rounded edges, so adjacent boxes stay contiguous and the
// children of a container never drift out of it by accumulation.
func roundTree(n *Node, absX, absY float64) {
	x := absX + n.layout.X
	y := absY + n.layout.Y
	n.layout.X = math.Round(x) - math.Round(absX)
	n.layout.Y = math.Round(y) - math.Round(absY)
	n.layout.Width = math.Round(x+n.layout.Width) - math.Round(x)
	n.layout.Height = math.Round(y+n.layout.Height) - math.Round(y)
	n.layout.ContentWidth = math.Round(x+n.layout.ContentWidth) - math.Round(x)
	n.layout.ContentHeight = math.Round(y+n.layout.ContentHeight) - math.Round(y)
	for _, c := range n.children {
		roundTree(c, x, y)
	}
}

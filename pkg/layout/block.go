package layout

import (
	"math"

	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/style"
)

// computeBlock stacks in-flow children vertically. Auto-width children fill
// the container's content width; horizontal auto margins center a child that
// is narrower than the content box. Margins do not collapse.
func (n *Node) computeBlock(in layoutInput, mode passMode) geometry.FloatSize {
	s := n.styleRec
	edges := resolveEdges(s, in.parent.Width)
	inset := edges.contentInset()

	styled := geometry.IndefiniteSize()
	minSize := geometry.IndefiniteSize()
	maxSize := geometry.IndefiniteSize()
	if in.sizing == inherentSizing {
		styled = applyAspectRatio(s.Size.Resolve(in.parent), s.AspectRatio)
		minSize = s.MinSize.Resolve(in.parent)
		maxSize = s.MaxSize.Resolve(in.parent)
	}
	known := applyAspectRatio(in.known.Or(styled), s.AspectRatio)

	// Container width: explicit, else fill definite available space, else
	// the widest child's outer max-content width.
	width := known.Width
	if !geometry.IsDefinite(width) {
		if in.avail.Width.IsDefinite() {
			margin := edges.marginOrZero()
			width = in.avail.Width.Value - margin.Horizontal()
		} else {
			width = n.blockIntrinsicWidth(in)
		}
	}
	width = clampAxis(width, minSize.Width, maxSize.Width)
	width = math.Max(width, inset.Horizontal())
	innerWidth := width - inset.Horizontal()

	innerHeight := geometry.Indefinite()
	if geometry.IsDefinite(known.Height) {
		innerHeight = math.Max(0, known.Height-inset.Vertical())
	}

	y := inset.Top
	contentWidth, contentHeight := 0.0, 0.0
	for i, child := range n.children {
		if child.styleRec.Display == style.DisplayNone {
			if mode == layoutPass {
				child.hideSubtree()
				child.layout.Order = i
			}
			continue
		}
		if child.styleRec.Position == style.PositionAbsolute {
			continue
		}

		cEdges := resolveEdges(child.styleRec, innerWidth)
		cMargin := cEdges.marginOrZero()

		childKnown := geometry.IndefiniteSize()
		if child.styleRec.Size.Width.IsAuto() && !child.styleRec.Margin.Left.IsAuto() && !child.styleRec.Margin.Right.IsAuto() {
			childKnown.Width = innerWidth - cMargin.Horizontal()
		}
		childSize := child.compute(layoutInput{
			known:  childKnown,
			parent: geometry.FloatSizeOf(innerWidth, innerHeight),
			avail: geometry.AvailSize{
				Width:  geometry.Definite(math.Max(0, innerWidth-cMargin.Horizontal())),
				Height: in.avail.Height.Shrink(inset.Vertical()),
			},
		}, mode)

		// Horizontal auto margins absorb leftover space.
		free := innerWidth - childSize.Width - cMargin.Horizontal()
		left, right := cMargin.Left, cMargin.Right
		switch {
		case child.styleRec.Margin.Left.IsAuto() && child.styleRec.Margin.Right.IsAuto():
			if free > 0 {
				left += free / 2
				right += free / 2
			}
		case child.styleRec.Margin.Left.IsAuto():
			if free > 0 {
				left += free
			}
		case child.styleRec.Margin.Right.IsAuto():
			if free > 0 {
				right += free
			}
		}

		y += cMargin.Top
		if mode == layoutPass {
			child.layout.X = inset.Left + left
			child.layout.Y = y
			child.layout.Order = i
			child.layout.Margin = geometry.Edges{Top: cMargin.Top, Right: right, Bottom: cMargin.Bottom, Left: left}
		}
		y += childSize.Height + cMargin.Bottom
		contentWidth = math.Max(contentWidth, inset.Left+left+childSize.Width)
		contentHeight = y
	}

	height := known.Height
	if !geometry.IsDefinite(height) {
		height = y + inset.Bottom
	}
	height = clampAxis(height, minSize.Height, maxSize.Height)
	height = math.Max(height, inset.Vertical())
	size := geometry.FloatSizeOf(width, height)

	if mode == layoutPass {
		n.commitLayout(size, edges, geometry.FloatSizeOf(contentWidth, contentHeight))
		n.layoutAbsoluteChildren(size, edges)
	}
	return size
}

// blockIntrinsicWidth returns the widest child's outer size, measured with
// the container's intrinsic constraint.
func (n *Node) blockIntrinsicWidth(in layoutInput) float64 {
	widest := 0.0
	for _, child := range n.children {
		if child.styleRec.Display == style.DisplayNone || child.styleRec.Position == style.PositionAbsolute {
			continue
		}
		cEdges := resolveEdges(child.styleRec, geometry.Indefinite())
		cMargin := cEdges.marginOrZero()
		size := child.compute(layoutInput{
			known:  geometry.IndefiniteSize(),
			parent: geometry.IndefiniteSize(),
			avail:  geometry.AvailSize{Width: in.avail.Width, Height: geometry.MaxContentSpace()},
		}, sizePass)
		widest = math.Max(widest, size.Width+cMargin.Horizontal())
	}
	return widest + n.styleRec.Padding.ResolveOrZero(geometry.Indefinite()).Horizontal() +
		n.styleRec.Border.ResolveOrZero(geometry.Indefinite()).Horizontal()
}

func clampAxis(v, min, max float64) float64 {
	if !geometry.IsDefinite(v) {
		return v
	}
	if geometry.IsDefinite(max) && v > max {
		v = max
	}
	if geometry.IsDefinite(min) && v < min {
		v = min
	}
	return v
}

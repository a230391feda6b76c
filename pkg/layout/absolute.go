package layout

import (
	"math"

	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/style"
)

// layoutAbsoluteChildren lays out the absolutely positioned children of a
// container after the in-flow layout is done. The containing block is the
// container's padding box. Opposing definite insets derive the size of an
// auto axis; auto margins between definite insets center the child; a fully
// auto axis falls back to the static position at the content-box origin.
func (n *Node) layoutAbsoluteChildren(size geometry.FloatSize, edges boxEdges) {
	cbW := math.Max(0, size.Width-edges.border.Horizontal())
	cbH := math.Max(0, size.Height-edges.border.Vertical())
	cb := geometry.FloatSizeOf(cbW, cbH)

	for i, child := range n.children {
		cs := child.styleRec
		if cs.Display == style.DisplayNone || cs.Position != style.PositionAbsolute {
			continue
		}

		// Horizontal inset percentages resolve against the containing width,
		// vertical ones against its height.
		left := cs.Inset.Left.Resolve(cbW)
		right := cs.Inset.Right.Resolve(cbW)
		top := cs.Inset.Top.Resolve(cbH)
		bottom := cs.Inset.Bottom.Resolve(cbH)

		cEdges := resolveEdges(cs, cbW)
		margin := cEdges.marginOrZero()

		styled := applyAspectRatio(cs.Size.Resolve(cb), cs.AspectRatio)
		minS := cs.MinSize.Resolve(cb)
		maxS := cs.MaxSize.Resolve(cb)

		known := styled
		if !geometry.IsDefinite(known.Width) && geometry.IsDefinite(left) && geometry.IsDefinite(right) {
			known.Width = math.Max(0, cbW-left-right-margin.Horizontal())
		}
		if !geometry.IsDefinite(known.Height) && geometry.IsDefinite(top) && geometry.IsDefinite(bottom) {
			known.Height = math.Max(0, cbH-top-bottom-margin.Vertical())
		}
		known = applyAspectRatio(known, cs.AspectRatio).Clamp(minS, maxS)

		csize := child.compute(layoutInput{
			known:  known,
			parent: cb,
			avail: geometry.DefiniteAvail(
				math.Max(0, cbW-margin.Horizontal()),
				math.Max(0, cbH-margin.Vertical())),
		}, layoutPass)

		x := resolveAbsoluteAxis(left, right, cbW, csize.Width,
			&margin.Left, &margin.Right,
			cs.Margin.Left.IsAuto(), cs.Margin.Right.IsAuto(),
			edges.padding.Left)
		y := resolveAbsoluteAxis(top, bottom, cbH, csize.Height,
			&margin.Top, &margin.Bottom,
			cs.Margin.Top.IsAuto(), cs.Margin.Bottom.IsAuto(),
			edges.padding.Top)

		child.layout.X = edges.border.Left + x
		child.layout.Y = edges.border.Top + y
		child.layout.Order = i
		child.layout.Margin = margin
	}
}

// resolveAbsoluteAxis positions one axis of an absolute child within its
// containing block and returns the border-box offset from the padding-box
// start edge. marginStart/marginEnd are updated in place when auto margins
// absorb slack.
func resolveAbsoluteAxis(start, end, cbSize, childSize float64, marginStart, marginEnd *float64, autoStart, autoEnd bool, staticOffset float64) float64 {
	switch {
	case geometry.IsDefinite(start) && geometry.IsDefinite(end):
		slack := cbSize - start - end - childSize - *marginStart - *marginEnd
		switch {
		case autoStart && autoEnd:
			if slack > 0 {
				*marginStart += slack / 2
				*marginEnd += slack / 2
			}
		case autoStart:
			*marginStart += slack
		case autoEnd:
			*marginEnd += slack
		}
		return start + *marginStart
	case geometry.IsDefinite(start):
		return start + *marginStart
	case geometry.IsDefinite(end):
		return cbSize - end - childSize - *marginEnd
	default:
		return staticOffset + *marginStart
	}
}

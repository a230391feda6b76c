package layout

import (
	"math"

	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/style"
)

const flexEpsilon = 1e-6

// flexItem is the per-child working state of one flex computation. Margins
// and positions are kept in logical main/cross coordinates; the mapping back
// to physical x/y happens when positions are published.
type flexItem struct {
	node  *Node
	sty   *style.Style
	order int

	edges  boxEdges
	styled geometry.FloatSize
	min    geometry.FloatSize
	max    geometry.FloatSize

	// Resolved margins in logical order. Auto edges contribute zero here and
	// are distributed separately via the auto* flags.
	mainStartMargin, mainEndMargin   float64
	crossStartMargin, crossEndMargin float64
	autoMainStart, autoMainEnd       bool
	autoCrossStart, autoCrossEnd     bool

	basis     float64 // flex base size, border-box
	hypo      float64 // hypothetical main size (basis clamped)
	minMain   float64 // main-axis minimum, with the content-based floor
	maxMain   float64
	target    float64 // resolved main size
	frozen    bool
	violation float64

	cross    float64
	mainPos  float64 // from the main-start content edge
	crossPos float64 // from the cross-start content edge
}

func (it *flexItem) mainMargins() float64 {
	return it.mainStartMargin + it.mainEndMargin
}

func (it *flexItem) crossMargins() float64 {
	return it.crossStartMargin + it.crossEndMargin
}

type flexLine struct {
	items []*flexItem
	cross float64
	pos   float64 // from the cross-start content edge
}

// axisSize picks the main-axis component when horizontal is true.
func axisSize(s geometry.FloatSize, horizontal bool) float64 {
	return s.Axis(horizontal)
}

func sizeFromAxes(main, cross float64, horizontal bool) geometry.FloatSize {
	if horizontal {
		return geometry.FloatSizeOf(main, cross)
	}
	return geometry.FloatSizeOf(cross, main)
}

func availFromAxes(main, cross geometry.AvailableSpace, horizontal bool) geometry.AvailSize {
	if horizontal {
		return geometry.AvailSize{Width: main, Height: cross}
	}
	return geometry.AvailSize{Width: cross, Height: main}
}

func pickAvail(a geometry.AvailSize, horizontal bool) geometry.AvailableSpace {
	if horizontal {
		return a.Width
	}
	return a.Height
}

// logicalAlign maps writing-mode-relative start/end onto the flex axis when
// the axis is reversed. flex-start/flex-end already follow the axis.
func logicalAlign(a style.Alignment, reversed bool) style.Alignment {
	if !reversed {
		return a
	}
	switch a {
	case style.AlignStart:
		return style.AlignEnd
	case style.AlignEnd:
		return style.AlignStart
	}
	return a
}

// computeFlex runs the flexbox algorithm: flex base sizes, line partitioning,
// the grow/shrink resolution loop, cross sizing with stretch, and main/cross
// alignment including auto margins.
func (n *Node) computeFlex(in layoutInput, mode passMode) geometry.FloatSize {
	s := n.styleRec
	edges := resolveEdges(s, in.parent.Width)
	inset := edges.contentInset()
	row := s.FlexDirection.IsRow()
	reverse := s.FlexDirection.IsReverse()
	wrap := s.FlexWrap != style.NoWrap
	wrapReverse := s.FlexWrap == style.WrapReverse

	styled := geometry.IndefiniteSize()
	minSize := geometry.IndefiniteSize()
	maxSize := geometry.IndefiniteSize()
	if in.sizing == inherentSizing {
		styled = applyAspectRatio(s.Size.Resolve(in.parent), s.AspectRatio)
		minSize = s.MinSize.Resolve(in.parent)
		maxSize = s.MaxSize.Resolve(in.parent)
	}
	known := applyAspectRatio(in.known.Or(styled), s.AspectRatio)
	known = known.Clamp(minSize, maxSize)

	insetMain := axisSize(inset.Sum(), row)
	insetCross := axisSize(inset.Sum(), !row)

	// Content box of this container, for percentage resolution in children.
	innerParent := geometry.FloatSizeOf(known.Width-inset.Horizontal(), known.Height-inset.Vertical())

	availInner := in.avail.WithDefinite(known)
	availInner.Width = availInner.Width.Shrink(inset.Horizontal())
	availInner.Height = availInner.Height.Shrink(inset.Vertical())
	mainAvail := pickAvail(availInner, row)
	crossAvail := pickAvail(availInner, !row)

	mainGap := axisGap(s, innerParent, row)
	crossGap := axisGap(s, innerParent, !row)

	items := n.collectFlexItems(innerParent, crossAvail, mainAvail, row, reverse, wrapReverse, mode)

	// Partition into lines against the definite line limit, or keep a single
	// line when no-wrap or the limit is indefinite.
	lineLimit := geometry.Indefinite()
	if km := axisSize(known, row); geometry.IsDefinite(km) {
		lineLimit = km - insetMain
	} else if mainAvail.IsDefinite() {
		lineLimit = mainAvail.Value
	}
	lines := partitionLines(items, wrap, lineLimit, mainGap)

	// Container main size: explicit, else the longest line.
	outerMain := axisSize(known, row)
	if !geometry.IsDefinite(outerMain) {
		longest := 0.0
		for _, line := range lines {
			length := mainGap * float64(len(line.items)-1)
			for _, it := range line.items {
				length += it.hypo + it.mainMargins()
			}
			longest = math.Max(longest, length)
		}
		outerMain = longest + insetMain
		outerMain = clampAxis(outerMain, axisSize(minSize, row), axisSize(maxSize, row))
	}
	outerMain = math.Max(outerMain, insetMain)
	innerMain := outerMain - insetMain

	for _, line := range lines {
		n.resolveFlexibleLengths(line, innerMain, innerParent, crossAvail, mainGap, row)
	}

	// Cross sizes: measure every item at its resolved main size.
	for _, line := range lines {
		for _, it := range line.items {
			crossKnown := axisSize(it.styled, !row)
			size := it.node.compute(layoutInput{
				known:  sizeFromAxes(it.target, crossKnown, row),
				parent: innerParent,
				avail:  availFromAxes(geometry.Definite(it.target), crossAvail.Shrink(it.crossMargins()), row),
			}, sizePass)
			it.cross = clampAxis(axisSize(size, !row), axisSize(it.min, !row), axisSize(it.max, !row))
		}
	}

	knownCross := axisSize(known, !row)
	for _, line := range lines {
		line.cross = 0
		for _, it := range line.items {
			line.cross = math.Max(line.cross, it.cross+it.crossMargins())
		}
	}
	// A single-line container's line spans the whole cross axis.
	if len(lines) == 1 && geometry.IsDefinite(knownCross) {
		lines[0].cross = math.Max(lines[0].cross, knownCross-insetCross)
	}

	// Container cross size: explicit, else the stacked lines.
	outerCross := knownCross
	if !geometry.IsDefinite(outerCross) {
		total := crossGap * float64(len(lines)-1)
		if len(lines) == 0 {
			total = 0
		}
		for _, line := range lines {
			total += line.cross
		}
		outerCross = total + insetCross
		outerCross = clampAxis(outerCross, axisSize(minSize, !row), axisSize(maxSize, !row))
	}
	outerCross = math.Max(outerCross, insetCross)
	innerCross := outerCross - insetCross

	size := sizeFromAxes(outerMain, outerCross, row)
	if mode == sizePass {
		return size
	}

	n.positionFlexLines(lines, innerCross, crossGap, wrapReverse)

	contentW, contentH := 0.0, 0.0
	for _, line := range lines {
		n.positionFlexLine(line, innerMain, mainGap, reverse)
		for _, it := range line.items {
			n.placeFlexItem(it, line, inset, innerMain, innerCross, innerParent, crossAvail, row, reverse, wrapReverse)
			contentW = math.Max(contentW, it.node.layout.X+it.node.layout.Width)
			contentH = math.Max(contentH, it.node.layout.Y+it.node.layout.Height)
		}
	}

	n.commitLayout(size, edges, geometry.FloatSizeOf(contentW, contentH))
	n.layoutAbsoluteChildren(size, edges)
	return size
}

// axisGap resolves the gap along one axis. Column gap applies between items
// on the horizontal axis, row gap on the vertical one.
func axisGap(s *style.Style, inner geometry.FloatSize, horizontal bool) float64 {
	if horizontal {
		return s.Gap.Width.ResolveOrZero(inner.Width)
	}
	return s.Gap.Height.ResolveOrZero(inner.Height)
}

// collectFlexItems builds working state for the in-flow children and resolves
// each item's flex base size.
func (n *Node) collectFlexItems(innerParent geometry.FloatSize, crossAvail, mainAvail geometry.AvailableSpace, row, reverse, wrapReverse bool, mode passMode) []*flexItem {
	var items []*flexItem
	for i, child := range n.children {
		cs := child.styleRec
		if cs.Display == style.DisplayNone {
			if mode == layoutPass {
				child.hideSubtree()
				child.layout.Order = i
			}
			continue
		}
		if cs.Position == style.PositionAbsolute {
			continue
		}

		it := &flexItem{node: child, sty: cs, order: i}
		it.edges = resolveEdges(cs, innerParent.Width)
		it.styled = applyAspectRatio(cs.Size.Resolve(innerParent), cs.AspectRatio)
		it.min = cs.MinSize.Resolve(innerParent)
		it.max = cs.MaxSize.Resolve(innerParent)

		margin := it.edges.marginOrZero()
		mStart, mEnd := margin.MainAxis(row)
		cStart, cEnd := margin.MainAxis(!row)
		aMainStart, aMainEnd := marginAutoAxis(cs.Margin, row)
		aCrossStart, aCrossEnd := marginAutoAxis(cs.Margin, !row)
		if reverse {
			mStart, mEnd = mEnd, mStart
			aMainStart, aMainEnd = aMainEnd, aMainStart
		}
		if wrapReverse {
			cStart, cEnd = cEnd, cStart
			aCrossStart, aCrossEnd = aCrossEnd, aCrossStart
		}
		it.mainStartMargin, it.mainEndMargin = mStart, mEnd
		it.crossStartMargin, it.crossEndMargin = cStart, cEnd
		it.autoMainStart, it.autoMainEnd = aMainStart, aMainEnd
		it.autoCrossStart, it.autoCrossEnd = aCrossStart, aCrossEnd

		it.basis = n.flexBasis(it, innerParent, crossAvail, mainAvail, row)
		it.maxMain = axisSize(it.max, row)
		it.minMain = axisSize(it.min, row) // content-based floor added on demand
		it.hypo = clampAxis(it.basis, it.minMain, it.maxMain)
		it.hypo = math.Max(it.hypo, axisSize(it.edges.contentInset().Sum(), row))
		it.target = it.hypo
		items = append(items, it)
	}
	return items
}

func marginAutoAxis(m geometry.Rect, horizontal bool) (start, end bool) {
	if horizontal {
		return m.Left.IsAuto(), m.Right.IsAuto()
	}
	return m.Top.IsAuto(), m.Bottom.IsAuto()
}

// flexBasis resolves an item's flex base size: the flex-basis property, then
// the main-axis style size, then a content measurement.
func (n *Node) flexBasis(it *flexItem, innerParent geometry.FloatSize, crossAvail, mainAvail geometry.AvailableSpace, row bool) float64 {
	mainInner := axisSize(innerParent, row)
	basisLen := it.sty.FlexBasis
	if b := basisLen.Resolve(mainInner); geometry.IsDefinite(b) {
		return b
	}
	if basisLen.IsAuto() {
		if m := axisSize(it.styled, row); geometry.IsDefinite(m) {
			return m
		}
		basisLen = mainSizeLength(it.sty, row)
	}

	probe := mainAvail
	switch basisLen.Unit {
	case geometry.UnitMinContent:
		probe = geometry.MinContentSpace()
	case geometry.UnitMaxContent:
		probe = geometry.MaxContentSpace()
	}
	crossKnown := axisSize(it.styled, !row)
	size := it.node.compute(layoutInput{
		known:  sizeFromAxes(geometry.Indefinite(), crossKnown, row),
		parent: innerParent,
		avail:  availFromAxes(probe.Shrink(it.mainMargins()), crossAvail.Shrink(it.crossMargins()), row),
		sizing: contentSizing,
	}, sizePass)
	return axisSize(size, row)
}

func mainSizeLength(s *style.Style, row bool) geometry.Length {
	if row {
		return s.Size.Width
	}
	return s.Size.Height
}

// partitionLines splits items into flex lines. A break happens before the
// item that would overflow the definite line limit; each line keeps at least
// one item.
func partitionLines(items []*flexItem, wrap bool, limit, gap float64) []*flexLine {
	if len(items) == 0 {
		return nil
	}
	if !wrap || !geometry.IsDefinite(limit) {
		return []*flexLine{{items: items}}
	}
	var lines []*flexLine
	line := &flexLine{}
	used := 0.0
	for _, it := range items {
		outer := it.hypo + it.mainMargins()
		extra := outer
		if len(line.items) > 0 {
			extra += gap
		}
		if len(line.items) > 0 && used+extra > limit+flexEpsilon {
			lines = append(lines, line)
			line = &flexLine{}
			used = 0
			extra = outer
		}
		line.items = append(line.items, it)
		used += extra
	}
	return append(lines, line)
}

// resolveFlexibleLengths runs the iterative grow/shrink loop for one line
// (CSS flexbox §9.7). Targets land clamped to each item's min/max constraints.
func (n *Node) resolveFlexibleLengths(line *flexLine, innerMain float64, innerParent geometry.FloatSize, crossAvail geometry.AvailableSpace, gap float64, row bool) {
	items := line.items
	if len(items) == 0 {
		return
	}
	gaps := gap * float64(len(items)-1)

	used := gaps
	for _, it := range items {
		used += it.hypo + it.mainMargins()
	}
	growing := innerMain-used > 0

	if !growing {
		n.applyContentMinimums(items, innerParent, crossAvail, row)
	}

	for _, it := range items {
		it.target = it.hypo
		switch {
		case growing && (it.sty.FlexGrow == 0 || it.basis > it.hypo):
			it.frozen = true
		case !growing && (it.sty.FlexShrink == 0 || it.basis < it.hypo):
			it.frozen = true
		default:
			it.frozen = false
		}
	}

	for {
		anyUnfrozen := false
		remaining := innerMain - gaps
		sumGrow, sumShrink, sumScaled := 0.0, 0.0, 0.0
		for _, it := range items {
			remaining -= it.mainMargins()
			if it.frozen {
				remaining -= it.target
				continue
			}
			anyUnfrozen = true
			remaining -= it.basis
			sumGrow += it.sty.FlexGrow
			sumShrink += it.sty.FlexShrink
			sumScaled += it.sty.FlexShrink * it.basis
		}
		if !anyUnfrozen {
			break
		}

		total := 0.0
		for _, it := range items {
			if it.frozen {
				continue
			}
			target := it.basis
			switch {
			case growing && sumGrow > 0:
				share := remaining * it.sty.FlexGrow / sumGrow
				if sumGrow < 1 {
					share = remaining * it.sty.FlexGrow
				}
				target += share
			case !growing && sumScaled > 0:
				share := remaining * (it.sty.FlexShrink * it.basis) / sumScaled
				if sumShrink < 1 {
					share *= sumShrink
				}
				target += share
			}
			clamped := clampAxis(target, it.minMain, it.maxMain)
			clamped = math.Max(clamped, axisSize(it.edges.contentInset().Sum(), row))
			it.violation = clamped - target
			it.target = clamped
			total += it.violation
		}

		switch {
		case total > flexEpsilon:
			for _, it := range items {
				if !it.frozen && it.violation > 0 {
					it.frozen = true
				}
			}
		case total < -flexEpsilon:
			for _, it := range items {
				if !it.frozen && it.violation < 0 {
					it.frozen = true
				}
			}
		default:
			for _, it := range items {
				it.frozen = true
			}
		}
	}
}

// applyContentMinimums fills the automatic minimum size of items that are
// about to shrink: an auto main-axis min on a visible-overflow item floors at
// the item's min-content size (capped by any definite preferred size).
func (n *Node) applyContentMinimums(items []*flexItem, innerParent geometry.FloatSize, crossAvail geometry.AvailableSpace, row bool) {
	for _, it := range items {
		if geometry.IsDefinite(it.minMain) || it.sty.Overflow != style.OverflowVisible {
			continue
		}
		crossKnown := axisSize(it.styled, !row)
		size := it.node.compute(layoutInput{
			known:  sizeFromAxes(geometry.Indefinite(), crossKnown, row),
			parent: innerParent,
			avail:  availFromAxes(geometry.MinContentSpace(), crossAvail, row),
			sizing: contentSizing,
		}, sizePass)
		minContent := axisSize(size, row)
		if preferred := axisSize(it.styled, row); geometry.IsDefinite(preferred) {
			minContent = math.Min(minContent, preferred)
		}
		it.minMain = clampAxis(minContent, geometry.Indefinite(), it.maxMain)
		it.hypo = clampAxis(it.basis, it.minMain, it.maxMain)
	}
}

// positionFlexLines assigns each line's cross offset: stretch distributes
// positive leftover space across lines, the other values go through the
// shared content-distribution rules.
func (n *Node) positionFlexLines(lines []*flexLine, innerCross, crossGap float64, wrapReverse bool) {
	if len(lines) == 0 {
		return
	}
	total := crossGap * float64(len(lines)-1)
	for _, line := range lines {
		total += line.cross
	}
	free := innerCross - total

	align := logicalAlign(n.styleRec.AlignContent, wrapReverse)
	offset, spacing := 0.0, 0.0
	switch align {
	case style.AlignDefault, style.AlignStretch:
		if free > 0 {
			grow := free / float64(len(lines))
			for _, line := range lines {
				line.cross += grow
			}
		}
	default:
		offset, spacing = distribute(align, free, len(lines))
	}

	pos := offset
	for _, line := range lines {
		line.pos = pos
		pos += line.cross + spacing + crossGap
	}
}

// positionFlexLine distributes the main axis of one line: auto margins first,
// justify-content only when no auto margin absorbed the space.
func (n *Node) positionFlexLine(line *flexLine, innerMain, gap float64, reverse bool) {
	items := line.items
	used := gap * float64(len(items)-1)
	autoCount := 0
	for _, it := range items {
		used += it.target + it.mainMargins()
		if it.autoMainStart {
			autoCount++
		}
		if it.autoMainEnd {
			autoCount++
		}
	}
	free := innerMain - used

	offset, spacing := 0.0, 0.0
	if autoCount > 0 && free > 0 {
		share := free / float64(autoCount)
		for _, it := range items {
			if it.autoMainStart {
				it.mainStartMargin += share
			}
			if it.autoMainEnd {
				it.mainEndMargin += share
			}
		}
	} else {
		offset, spacing = distribute(logicalAlign(n.styleRec.JustifyContent, reverse), free, len(items))
	}

	pos := offset
	for _, it := range items {
		pos += it.mainStartMargin
		it.mainPos = pos
		pos += it.target + it.mainEndMargin + spacing + gap
	}
}

// placeFlexItem resolves an item's cross position within its line, runs the
// final child layout at the resolved size, and publishes physical geometry.
func (n *Node) placeFlexItem(it *flexItem, line *flexLine, inset geometry.Edges, innerMain, innerCross float64, innerParent geometry.FloatSize, crossAvail geometry.AvailableSpace, row, reverse, wrapReverse bool) {
	align := logicalAlign(style.AlignSelfFor(it.sty, n.styleRec), wrapReverse)

	// Stretch fills the line when the cross size is auto and no cross margin
	// is auto.
	crossAuto := it.sty.Size.Height.IsAuto()
	if !row {
		crossAuto = it.sty.Size.Width.IsAuto()
	}
	if align == style.AlignStretch && crossAuto && !it.autoCrossStart && !it.autoCrossEnd {
		stretched := line.cross - it.crossMargins()
		it.cross = clampAxis(stretched, axisSize(it.min, !row), axisSize(it.max, !row))
	}

	free := line.cross - it.cross - it.crossMargins()
	switch {
	case it.autoCrossStart && it.autoCrossEnd:
		if free > 0 {
			it.crossStartMargin += free / 2
			it.crossEndMargin += free / 2
		}
	case it.autoCrossStart:
		if free > 0 {
			it.crossStartMargin += free
		}
	case it.autoCrossEnd:
		if free > 0 {
			it.crossEndMargin += free
		}
	default:
		switch align {
		case style.AlignEnd, style.AlignFlexEnd:
			it.crossStartMargin += free
		case style.AlignCenter:
			it.crossStartMargin += free / 2
		}
	}
	it.crossPos = line.pos + it.crossStartMargin

	child := it.node
	child.compute(layoutInput{
		known:  sizeFromAxes(it.target, it.cross, row),
		parent: innerParent,
		avail:  availFromAxes(geometry.Definite(it.target), geometry.Definite(it.cross), row),
	}, layoutPass)

	// Map logical positions back to physical coordinates.
	mainPhys := it.mainPos
	if reverse {
		mainPhys = innerMain - it.mainPos - it.target
	}
	crossPhys := it.crossPos
	if wrapReverse {
		crossPhys = innerCross - it.crossPos - it.cross
	}
	if row {
		child.layout.X = inset.Left + mainPhys
		child.layout.Y = inset.Top + crossPhys
	} else {
		child.layout.X = inset.Left + crossPhys
		child.layout.Y = inset.Top + mainPhys
	}
	child.layout.Order = it.order
	child.layout.Margin = physicalMargins(it, row, reverse, wrapReverse)
}

// physicalMargins maps an item's logical margins (with distributed auto
// shares) back onto top/right/bottom/left.
func physicalMargins(it *flexItem, row, reverse, wrapReverse bool) geometry.Edges {
	mStart, mEnd := it.mainStartMargin, it.mainEndMargin
	cStart, cEnd := it.crossStartMargin, it.crossEndMargin
	if reverse {
		mStart, mEnd = mEnd, mStart
	}
	if wrapReverse {
		cStart, cEnd = cEnd, cStart
	}
	if row {
		return geometry.Edges{Top: cStart, Right: mEnd, Bottom: cEnd, Left: mStart}
	}
	return geometry.Edges{Top: mStart, Right: cEnd, Bottom: mEnd, Left: cStart}
}

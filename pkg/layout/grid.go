package layout

import (
	"math"
	"sort"

	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/style"
)

// gridTrack is the working state of one row or column during track sizing.
type gridTrack struct {
	size  style.TrackSize
	base  float64
	limit float64 // growth limit; +Inf when unbounded

	intrinsicMin bool
	intrinsicMax bool
	fcLimit      float64 // fit-content cap; NaN when not fit-content

	contentMin float64
	contentMax float64

	fromAutoFit bool
	collapsed   bool
}

// gridItem is the per-child working state of one grid computation. Track
// ranges are 0-based and end-exclusive, already shifted so the grid starts
// at zero.
type gridItem struct {
	node   *Node
	sty    *style.Style
	order  int
	edges  boxEdges
	margin geometry.Edges

	rowStart, rowEnd int
	colStart, colEnd int
}

func (it *gridItem) span(horizontal bool) int {
	if horizontal {
		return it.colEnd - it.colStart
	}
	return it.rowEnd - it.rowStart
}

func (it *gridItem) trackRange(horizontal bool) (start, end int) {
	if horizontal {
		return it.colStart, it.colEnd
	}
	return it.rowStart, it.rowEnd
}

// computeGrid runs the grid algorithm: template expansion, item placement,
// track sizing (columns before rows, since row heights depend on resolved
// widths), then per-item alignment within the spanned area.
func (n *Node) computeGrid(in layoutInput, mode passMode) geometry.FloatSize {
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
	known = known.Clamp(minSize, maxSize)

	innerParent := geometry.FloatSizeOf(known.Width-inset.Horizontal(), known.Height-inset.Vertical())
	if !geometry.IsDefinite(innerParent.Width) && in.avail.Width.IsDefinite() {
		innerParent.Width = math.Max(0, in.avail.Width.Value-inset.Horizontal())
	}

	colGap := s.Gap.Width.ResolveOrZero(innerParent.Width)
	rowGap := s.Gap.Height.ResolveOrZero(innerParent.Height)

	explicitCols := expandTemplate(s.GridTemplateColumns, innerParent.Width, colGap)
	explicitRows := expandTemplate(s.GridTemplateRows, innerParent.Height, rowGap)

	items := n.collectGridItems(innerParent, mode)
	rowCount, colCount, rowShift, colShift := placeGridItems(items, s.GridAutoFlow, len(explicitRows), len(explicitCols))

	cols := buildAxisTracks(explicitCols, s.GridAutoColumns, colShift, colCount)
	rows := buildAxisTracks(explicitRows, s.GridAutoRows, rowShift, rowCount)
	collapseEmptyAutoFit(cols, items, true)
	collapseEmptyAutoFit(rows, items, false)

	// Column sizing.
	n.sizeTracks(cols, items, true, innerParent.Width, colGap, innerParent, nil, 0, s.JustifyContent)
	outerW := known.Width
	if !geometry.IsDefinite(outerW) {
		outerW = trackTotal(cols, colGap) + inset.Horizontal()
		outerW = clampAxis(outerW, minSize.Width, maxSize.Width)
	}
	outerW = math.Max(outerW, inset.Horizontal())

	// Row sizing, with item heights measured at their resolved widths.
	innerParent.Width = outerW - inset.Horizontal()
	n.sizeTracks(rows, items, false, innerParent.Height, rowGap, innerParent, cols, colGap, s.AlignContent)
	outerH := known.Height
	if !geometry.IsDefinite(outerH) {
		outerH = trackTotal(rows, rowGap) + inset.Vertical()
		outerH = clampAxis(outerH, minSize.Height, maxSize.Height)
	}
	outerH = math.Max(outerH, inset.Vertical())

	size := geometry.FloatSizeOf(outerW, outerH)
	if mode == sizePass {
		return size
	}

	innerW := outerW - inset.Horizontal()
	innerH := outerH - inset.Vertical()
	colPos := trackPositions(cols, colGap, innerW, s.JustifyContent)
	rowPos := trackPositions(rows, rowGap, innerH, s.AlignContent)

	contentW, contentH := 0.0, 0.0
	for _, it := range items {
		n.placeGridItem(it, cols, rows, colPos, rowPos, colGap, rowGap, inset)
		contentW = math.Max(contentW, it.node.layout.X+it.node.layout.Width)
		contentH = math.Max(contentH, it.node.layout.Y+it.node.layout.Height)
	}

	n.commitLayout(size, edges, geometry.FloatSizeOf(contentW, contentH))
	n.layoutAbsoluteChildren(size, edges)
	return size
}

func (n *Node) collectGridItems(innerParent geometry.FloatSize, mode passMode) []*gridItem {
	var items []*gridItem
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
		it := &gridItem{node: child, sty: cs, order: i}
		it.edges = resolveEdges(cs, innerParent.Width)
		it.margin = it.edges.marginOrZero()
		items = append(items, it)
	}
	return items
}

// expandTemplate flattens a track template into concrete track entries.
// auto-fill/auto-fit repetition counts come from the definite inner size; an
// indefinite axis gets a single repetition.
func expandTemplate(list style.TrackList, inner, gap float64) []gridTrack {
	var out []gridTrack
	for _, group := range list {
		switch group.Mode {
		case style.RepeatNone:
			for _, ts := range group.Tracks {
				out = append(out, gridTrack{size: ts})
			}
		case style.RepeatCount:
			for i := 0; i < group.Count; i++ {
				for _, ts := range group.Tracks {
					out = append(out, gridTrack{size: ts})
				}
			}
		case style.RepeatAutoFill, style.RepeatAutoFit:
			count := autoRepeatCount(group.Tracks, inner, gap)
			for i := 0; i < count; i++ {
				for _, ts := range group.Tracks {
					out = append(out, gridTrack{size: ts, fromAutoFit: group.Mode == style.RepeatAutoFit})
				}
			}
		}
	}
	return out
}

// autoRepeatCount returns how many repetitions of the group fit in the inner
// size, flooring at one. Indefinite track sizes within the group stop
// repetition at a single copy.
func autoRepeatCount(tracks []style.TrackSize, inner, gap float64) int {
	if len(tracks) == 0 || !geometry.IsDefinite(inner) {
		return 1
	}
	group := 0.0
	for _, ts := range tracks {
		v := ts.Max.Resolve(inner)
		if !geometry.IsDefinite(v) {
			v = ts.Min.Resolve(inner)
		}
		if !geometry.IsDefinite(v) || v <= 0 {
			return 1
		}
		group += v
	}
	per := float64(len(tracks))
	count := 1
	for {
		next := count + 1
		needed := group*float64(next) + gap*(per*float64(next)-1)
		if needed > inner+flexEpsilon {
			break
		}
		count = next
	}
	return count
}

// gridLineIndex converts a 1-based (possibly negative) line number into a
// 0-based track index. Negative lines count back from the end of the
// explicit grid.
func gridLineIndex(v, explicit int) int {
	if v > 0 {
		return v - 1
	}
	return explicit + v
}

// resolveGridSpan resolves one axis of an item's placement: a start track
// and span when the placement pins a line, or just a span for auto
// placement.
func resolveGridSpan(line style.GridLine, explicit int) (start, span int, definite bool) {
	st, en := line.Start, line.End
	switch {
	case st.Kind == style.PlacementLine && en.Kind == style.PlacementLine:
		a := gridLineIndex(st.Value, explicit)
		b := gridLineIndex(en.Value, explicit)
		if a > b {
			a, b = b, a
		}
		if a == b {
			b = a + 1
		}
		return a, b - a, true
	case st.Kind == style.PlacementLine && en.Kind == style.PlacementSpan:
		return gridLineIndex(st.Value, explicit), minSpanOne(en.Value), true
	case st.Kind == style.PlacementLine:
		return gridLineIndex(st.Value, explicit), 1, true
	case st.Kind == style.PlacementSpan && en.Kind == style.PlacementLine:
		sp := minSpanOne(st.Value)
		return gridLineIndex(en.Value, explicit) - sp, sp, true
	case en.Kind == style.PlacementLine:
		return gridLineIndex(en.Value, explicit) - 1, 1, true
	case st.Kind == style.PlacementSpan:
		return 0, minSpanOne(st.Value), false
	case en.Kind == style.PlacementSpan:
		return 0, minSpanOne(en.Value), false
	default:
		return 0, 1, false
	}
}

func minSpanOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

type cellSet map[[2]int]bool

func (c cellSet) fits(majStart, majSpan, minStart, minSpan int) bool {
	for maj := majStart; maj < majStart+majSpan; maj++ {
		for min := minStart; min < minStart+minSpan; min++ {
			if c[[2]int{maj, min}] {
				return false
			}
		}
	}
	return true
}

func (c cellSet) occupy(majStart, majSpan, minStart, minSpan int) {
	for maj := majStart; maj < majStart+majSpan; maj++ {
		for min := minStart; min < minStart+minSpan; min++ {
			c[[2]int{maj, min}] = true
		}
	}
}

// gridPending holds one item's placement state during auto-placement, in
// flow-relative coordinates (major axis = the grid-auto-flow direction).
type gridPending struct {
	it                *gridItem
	majStart, majSpan int
	minStart, minSpan int
	majDef, minDef    bool
}

// placeGridItems runs auto-placement: fully placed items first, then items
// pinned on the flow axis, then the cursor walk for the rest (dense flow
// restarts the cursor for every item). Returns the final track counts and
// the shift applied to bring negative indices to zero.
func placeGridItems(items []*gridItem, flow style.GridAutoFlow, explicitRows, explicitCols int) (rowCount, colCount, rowShift, colShift int) {
	columnFlow := flow.IsColumn()
	dense := flow.IsDense()

	minorCount := explicitCols
	if columnFlow {
		minorCount = explicitRows
	}
	if minorCount < 1 {
		minorCount = 1
	}

	var all []*gridPending
	for _, it := range items {
		rs, rSpan, rDef := resolveGridSpan(it.sty.GridRow, explicitRows)
		cs, cSpan, cDef := resolveGridSpan(it.sty.GridColumn, explicitCols)
		p := &gridPending{it: it}
		if columnFlow {
			p.majStart, p.majSpan, p.majDef = cs, cSpan, cDef
			p.minStart, p.minSpan, p.minDef = rs, rSpan, rDef
		} else {
			p.majStart, p.majSpan, p.majDef = rs, rSpan, rDef
			p.minStart, p.minSpan, p.minDef = cs, cSpan, cDef
		}
		if p.minSpan > minorCount {
			minorCount = p.minSpan
		}
		if p.minDef && p.minStart+p.minSpan > minorCount {
			minorCount = p.minStart + p.minSpan
		}
		all = append(all, p)
	}

	occupied := make(cellSet)
	for _, p := range all {
		if p.majDef && p.minDef {
			occupied.occupy(p.majStart, p.majSpan, p.minStart, p.minSpan)
		}
	}

	// Items pinned on the major axis take the first fitting minor position.
	for _, p := range all {
		if !p.majDef || p.minDef {
			continue
		}
		placedAt := -1
		for min := 0; min+p.minSpan <= minorCount; min++ {
			if occupied.fits(p.majStart, p.majSpan, min, p.minSpan) {
				placedAt = min
				break
			}
		}
		if placedAt < 0 {
			// Overlap rather than grow the minor axis without bound.
			placedAt = minorCount - p.minSpan
			if placedAt < 0 {
				placedAt = 0
			}
		}
		p.minStart, p.minDef = placedAt, true
		occupied.occupy(p.majStart, p.majSpan, p.minStart, p.minSpan)
	}

	// Cursor walk for the rest.
	curMaj, curMin := 0, 0
	for _, p := range all {
		if p.majDef && p.minDef {
			continue
		}
		if dense {
			curMaj, curMin = 0, 0
		}
		if p.minDef {
			// Pinned minor, free major: scan down the flow axis.
			maj := curMaj
			if dense {
				maj = 0
			}
			for ; ; maj++ {
				if occupied.fits(maj, p.majSpan, p.minStart, p.minSpan) {
					p.majStart = maj
					break
				}
			}
		} else {
			maj, min := curMaj, curMin
			for {
				if min+p.minSpan > minorCount {
					maj, min = maj+1, 0
					continue
				}
				if occupied.fits(maj, p.majSpan, min, p.minSpan) {
					p.majStart, p.minStart = maj, min
					break
				}
				min++
			}
			if !dense {
				curMaj, curMin = p.majStart, p.minStart+p.minSpan
			}
		}
		p.majDef, p.minDef = true, true
		occupied.occupy(p.majStart, p.majSpan, p.minStart, p.minSpan)
	}

	// Shift everything so the grid starts at track zero.
	minMaj, minMin := 0, 0
	maxMaj, maxMin := 0, 0
	for _, p := range all {
		if p.majStart < minMaj {
			minMaj = p.majStart
		}
		if p.minStart < minMin {
			minMin = p.minStart
		}
		if p.majStart+p.majSpan > maxMaj {
			maxMaj = p.majStart + p.majSpan
		}
		if p.minStart+p.minSpan > maxMin {
			maxMin = p.minStart + p.minSpan
		}
	}
	explicitMaj := explicitRows
	if columnFlow {
		explicitMaj = explicitCols
	}
	if explicitMaj > maxMaj {
		maxMaj = explicitMaj
	}
	if minorCount > maxMin {
		maxMin = minorCount
	}

	for _, p := range all {
		majStart := p.majStart - minMaj
		minStart := p.minStart - minMin
		if columnFlow {
			p.it.colStart, p.it.colEnd = majStart, majStart+p.majSpan
			p.it.rowStart, p.it.rowEnd = minStart, minStart+p.minSpan
		} else {
			p.it.rowStart, p.it.rowEnd = majStart, majStart+p.majSpan
			p.it.colStart, p.it.colEnd = minStart, minStart+p.minSpan
		}
	}

	majCount := maxMaj - minMaj
	minCount := maxMin - minMin
	if columnFlow {
		return minCount, majCount, -minMin, -minMaj
	}
	return majCount, minCount, -minMaj, -minMin
}

// buildAxisTracks assembles the full track list for one axis: implicit
// tracks before the explicit grid, the explicit template, implicit tracks
// after. Implicit tracks cycle through the grid-auto-* sizes.
func buildAxisTracks(explicit []gridTrack, auto []style.TrackSize, shift, count int) []*gridTrack {
	tracks := make([]*gridTrack, count)
	for i := range tracks {
		ei := i - shift
		if ei >= 0 && ei < len(explicit) {
			t := explicit[ei]
			tracks[i] = &t
			continue
		}
		ts := style.AutoTrack()
		if len(auto) > 0 {
			idx := ((ei % len(auto)) + len(auto)) % len(auto)
			ts = auto[idx]
		}
		tracks[i] = &gridTrack{size: ts}
	}
	return tracks
}

// collapseEmptyAutoFit collapses auto-fit tracks that no item crosses.
func collapseEmptyAutoFit(tracks []*gridTrack, items []*gridItem, horizontal bool) {
	for i, t := range tracks {
		if !t.fromAutoFit {
			continue
		}
		used := false
		for _, it := range items {
			start, end := it.trackRange(horizontal)
			if i >= start && i < end {
				used = true
				break
			}
		}
		if !used {
			t.collapsed = true
		}
	}
}

// sizeTracks resolves the base sizes of one axis's tracks: fixed sizes, then
// intrinsic contributions from items ordered by span, then free-space
// maximization, stretched auto tracks, and fraction distribution.
// colTracks is non-nil when sizing rows; item heights are then measured at
// their resolved column widths.
func (n *Node) sizeTracks(tracks []*gridTrack, items []*gridItem, horizontal bool, inner, gap float64, innerParent geometry.FloatSize, colTracks []*gridTrack, colGap float64, contentAlign style.Alignment) {
	for _, t := range tracks {
		if t.collapsed {
			t.base, t.limit = 0, 0
			continue
		}
		min := t.size.Min.Resolve(inner)
		if geometry.IsDefinite(min) {
			t.base = min
			t.intrinsicMin = false
		} else {
			t.base = 0
			t.intrinsicMin = true
		}
		t.fcLimit = geometry.Indefinite()
		switch t.size.Max.Unit {
		case geometry.UnitFitContentPoints:
			t.fcLimit = t.size.Max.Value
			t.limit = math.Inf(1)
			t.intrinsicMax = true
		case geometry.UnitFitContentPercent:
			t.fcLimit = geometry.Percent(t.size.Max.Value).Resolve(inner)
			t.limit = math.Inf(1)
			t.intrinsicMax = true
		case geometry.UnitFraction:
			t.limit = t.base
			t.intrinsicMax = false
		default:
			max := t.size.Max.Resolve(inner)
			if geometry.IsDefinite(max) {
				t.limit = max
				t.intrinsicMax = false
			} else {
				t.limit = math.Inf(1)
				t.intrinsicMax = true
			}
		}
		if t.limit < t.base {
			t.limit = t.base
		}
		t.contentMin, t.contentMax = 0, 0
	}

	n.distributeIntrinsic(tracks, items, horizontal, gap, innerParent, colTracks, colGap)

	// Fold content contributions into bases and growth limits.
	for _, t := range tracks {
		if t.collapsed {
			continue
		}
		if t.intrinsicMin {
			t.base = math.Max(t.base, t.contentMin)
		}
		if t.intrinsicMax {
			// Intrinsic growth limits cap at the content size (fit-content
			// additionally at its own limit); only the stretch step may push
			// an auto track beyond it.
			limit := math.Max(t.base, t.contentMax)
			if geometry.IsDefinite(t.fcLimit) {
				limit = math.Min(limit, math.Max(t.fcLimit, t.base))
			}
			t.limit = limit
			t.base = math.Max(t.base, math.Min(t.contentMax, limit))
		}
		if t.limit < t.base {
			t.limit = t.base
		}
	}

	if geometry.IsDefinite(inner) {
		maximizeTracks(tracks, inner, gap)
		if contentAlign == style.AlignDefault || contentAlign == style.AlignStretch {
			stretchAutoTracks(tracks, inner, gap)
		}
		distributeFractions(tracks, inner, gap)
	} else {
		// Indefinite axis: fractions size to their content.
		for _, t := range tracks {
			if t.size.IsFlexible() {
				t.base = math.Max(t.base, t.contentMax)
			}
		}
	}
}

// distributeIntrinsic feeds item content sizes into intrinsic tracks,
// smallest spans first. Items crossing a flexible track only contribute to
// minimums.
func (n *Node) distributeIntrinsic(tracks []*gridTrack, items []*gridItem, horizontal bool, gap float64, innerParent geometry.FloatSize, colTracks []*gridTrack, colGap float64) {
	ordered := make([]*gridItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].span(horizontal) < ordered[j].span(horizontal)
	})

	for _, it := range ordered {
		start, end := it.trackRange(horizontal)
		var spanned []*gridTrack
		intrinsic := 0
		flexible := false
		for i := start; i < end && i < len(tracks); i++ {
			t := tracks[i]
			if t.collapsed {
				continue
			}
			spanned = append(spanned, t)
			if t.intrinsicMin || t.intrinsicMax {
				intrinsic++
			}
			if t.size.IsFlexible() {
				flexible = true
			}
		}
		if len(spanned) == 0 || intrinsic == 0 {
			continue
		}

		minC, maxC := n.gridItemContribution(it, horizontal, innerParent, colTracks, colGap)
		gaps := gap * float64(len(spanned)-1)
		baseSum := gaps
		for _, t := range spanned {
			baseSum += t.base
		}

		if extra := minC - baseSum; extra > 0 {
			var targets []*gridTrack
			for _, t := range spanned {
				if t.intrinsicMin {
					targets = append(targets, t)
				}
			}
			if len(targets) == 0 {
				targets = spanned
			}
			share := extra / float64(len(targets))
			for _, t := range targets {
				t.contentMin = math.Max(t.contentMin, t.base+share)
			}
		}
		if flexible {
			continue
		}
		if extra := maxC - baseSum; extra > 0 {
			var targets []*gridTrack
			for _, t := range spanned {
				if t.intrinsicMax {
					targets = append(targets, t)
				}
			}
			if len(targets) > 0 {
				share := extra / float64(len(targets))
				for _, t := range targets {
					t.contentMax = math.Max(t.contentMax, t.base+share)
				}
			}
		}
	}
}

// gridItemContribution measures one item's min-content and max-content outer
// size along the axis being sized. Row contributions are measured at the
// item's resolved column width.
func (n *Node) gridItemContribution(it *gridItem, horizontal bool, innerParent geometry.FloatSize, colTracks []*gridTrack, colGap float64) (minC, maxC float64) {
	if horizontal {
		if w := it.sty.Size.Width.Resolve(innerParent.Width); geometry.IsDefinite(w) {
			outer := w + it.margin.Horizontal()
			return outer, outer
		}
		minSize := it.node.compute(layoutInput{
			known:  geometry.IndefiniteSize(),
			parent: innerParent,
			avail:  geometry.AvailSize{Width: geometry.MinContentSpace(), Height: geometry.MaxContentSpace()},
		}, sizePass)
		maxSize := it.node.compute(layoutInput{
			known:  geometry.IndefiniteSize(),
			parent: innerParent,
			avail:  geometry.MaxContentAvail(),
		}, sizePass)
		return minSize.Width + it.margin.Horizontal(), maxSize.Width + it.margin.Horizontal()
	}

	if h := it.sty.Size.Height.Resolve(innerParent.Height); geometry.IsDefinite(h) {
		outer := h + it.margin.Vertical()
		return outer, outer
	}
	width := geometry.Indefinite()
	if colTracks != nil {
		width = math.Max(0, spannedExtent(colTracks, it.colStart, it.colEnd, colGap)-it.margin.Horizontal())
	}
	size := it.node.compute(layoutInput{
		known:  geometry.FloatSizeOf(width, geometry.Indefinite()),
		parent: innerParent,
		avail:  geometry.AvailSize{Width: geometry.Definite(width), Height: geometry.MaxContentSpace()},
	}, sizePass)
	outer := size.Height + it.margin.Vertical()
	return outer, outer
}

// spannedExtent returns the total extent of a track range including the gaps
// inside it.
func spannedExtent(tracks []*gridTrack, start, end int, gap float64) float64 {
	total := 0.0
	count := 0
	for i := start; i < end && i < len(tracks); i++ {
		if tracks[i].collapsed {
			continue
		}
		total += tracks[i].base
		count++
	}
	if count > 1 {
		total += gap * float64(count-1)
	}
	return total
}

// maximizeTracks grows track bases toward their growth limits with the free
// space of a definite axis, distributing equally and freezing tracks as they
// hit their limits.
func maximizeTracks(tracks []*gridTrack, inner, gap float64) {
	free := inner - trackTotal(tracks, gap)
	for free > flexEpsilon {
		var open []*gridTrack
		for _, t := range tracks {
			if !t.collapsed && t.base < t.limit {
				open = append(open, t)
			}
		}
		if len(open) == 0 {
			return
		}
		share := free / float64(len(open))
		for _, t := range open {
			grow := math.Min(share, t.limit-t.base)
			t.base += grow
			free -= grow
		}
	}
}

// stretchAutoTracks hands any remaining free space to auto-sized tracks in
// equal parts.
func stretchAutoTracks(tracks []*gridTrack, inner, gap float64) {
	free := inner - trackTotal(tracks, gap)
	if free <= flexEpsilon {
		return
	}
	var auto []*gridTrack
	for _, t := range tracks {
		if !t.collapsed && t.size.Max.IsAuto() {
			auto = append(auto, t)
		}
	}
	if len(auto) == 0 {
		return
	}
	share := free / float64(len(auto))
	for _, t := range auto {
		t.base += share
	}
}

// distributeFractions resolves fr tracks against the leftover space of a
// definite axis. Tracks whose content minimum exceeds their proportional
// share are treated as inflexible, per the standard find-the-fr-size loop.
func distributeFractions(tracks []*gridTrack, inner, gap float64) {
	var flex []*gridTrack
	used := 0.0
	count := 0
	for _, t := range tracks {
		if t.collapsed {
			continue
		}
		count++
		if t.size.IsFlexible() {
			flex = append(flex, t)
		} else {
			used += t.base
		}
	}
	if len(flex) == 0 {
		return
	}
	if count > 1 {
		used += gap * float64(count-1)
	}
	leftover := math.Max(0, inner-used)

	inflexible := make(map[*gridTrack]bool)
	for {
		sumFr := 0.0
		space := leftover
		for _, t := range flex {
			if inflexible[t] {
				space -= t.base
			} else {
				sumFr += t.size.Max.Value
			}
		}
		if sumFr <= 0 {
			break
		}
		if sumFr < 1 {
			sumFr = 1
		}
		unit := space / sumFr
		changed := false
		for _, t := range flex {
			if !inflexible[t] && t.base > unit*t.size.Max.Value+flexEpsilon {
				inflexible[t] = true
				changed = true
			}
		}
		if changed {
			continue
		}
		for _, t := range flex {
			if !inflexible[t] {
				t.base = math.Max(t.base, unit*t.size.Max.Value)
			}
		}
		break
	}
}

func trackTotal(tracks []*gridTrack, gap float64) float64 {
	total := 0.0
	count := 0
	for _, t := range tracks {
		if t.collapsed {
			continue
		}
		total += t.base
		count++
	}
	if count > 1 {
		total += gap * float64(count-1)
	}
	return total
}

// trackPositions lays the tracks out along the axis and returns each track's
// start offset from the content-box origin, applying the container's content
// alignment to any leftover space.
func trackPositions(tracks []*gridTrack, gap, inner float64, align style.Alignment) []float64 {
	free := inner - trackTotal(tracks, gap)
	count := 0
	for _, t := range tracks {
		if !t.collapsed {
			count++
		}
	}
	offset, spacing := 0.0, 0.0
	if align != style.AlignDefault && align != style.AlignStretch {
		offset, spacing = distribute(align, free, count)
	}

	pos := make([]float64, len(tracks))
	cursor := offset
	first := true
	for i, t := range tracks {
		if t.collapsed {
			pos[i] = cursor
			continue
		}
		if !first {
			cursor += gap + spacing
		}
		pos[i] = cursor
		cursor += t.base
		first = false
	}
	return pos
}

// placeGridItem aligns one item inside its spanned area and runs its final
// layout.
func (n *Node) placeGridItem(it *gridItem, cols, rows []*gridTrack, colPos, rowPos []float64, colGap, rowGap float64, inset geometry.Edges) {
	areaX := axisStart(colPos, it.colStart)
	areaY := axisStart(rowPos, it.rowStart)
	areaW := spannedExtent(cols, it.colStart, it.colEnd, colGap)
	areaH := spannedExtent(rows, it.rowStart, it.rowEnd, rowGap)
	areaSize := geometry.FloatSizeOf(areaW, areaH)

	cs := it.sty
	styled := applyAspectRatio(cs.Size.Resolve(areaSize), cs.AspectRatio)
	minS := cs.MinSize.Resolve(areaSize)
	maxS := cs.MaxSize.Resolve(areaSize)

	justify := style.JustifySelfFor(cs, n.styleRec)
	alignSelf := style.AlignSelfFor(cs, n.styleRec)

	hAutoStart, hAutoEnd := cs.Margin.Left.IsAuto(), cs.Margin.Right.IsAuto()
	vAutoStart, vAutoEnd := cs.Margin.Top.IsAuto(), cs.Margin.Bottom.IsAuto()

	known := styled
	if !geometry.IsDefinite(known.Width) && justify == style.AlignStretch && cs.Size.Width.IsAuto() && !hAutoStart && !hAutoEnd {
		known.Width = math.Max(0, areaW-it.margin.Horizontal())
	}
	if !geometry.IsDefinite(known.Height) && alignSelf == style.AlignStretch && cs.Size.Height.IsAuto() && !vAutoStart && !vAutoEnd {
		known.Height = math.Max(0, areaH-it.margin.Vertical())
	}
	known = applyAspectRatio(known, cs.AspectRatio).Clamp(minS, maxS)

	size := it.node.compute(layoutInput{
		known:  known,
		parent: areaSize,
		avail: geometry.DefiniteAvail(
			math.Max(0, areaW-it.margin.Horizontal()),
			math.Max(0, areaH-it.margin.Vertical())),
	}, layoutPass)

	margin := it.margin
	x := alignInArea(areaW, size.Width, &margin.Left, &margin.Right, hAutoStart, hAutoEnd, justify)
	y := alignInArea(areaH, size.Height, &margin.Top, &margin.Bottom, vAutoStart, vAutoEnd, alignSelf)

	it.node.layout.X = inset.Left + areaX + x
	it.node.layout.Y = inset.Top + areaY + y
	it.node.layout.Order = it.order
	it.node.layout.Margin = margin
}

func axisStart(pos []float64, i int) float64 {
	if i >= 0 && i < len(pos) {
		return pos[i]
	}
	return 0
}

// alignInArea returns a child's offset within its grid area along one axis.
// Auto margins absorb free space before the alignment keyword applies.
func alignInArea(area, size float64, marginStart, marginEnd *float64, autoStart, autoEnd bool, align style.Alignment) float64 {
	free := area - size - *marginStart - *marginEnd
	switch {
	case autoStart && autoEnd:
		if free > 0 {
			*marginStart += free / 2
			*marginEnd += free / 2
		}
	case autoStart:
		if free > 0 {
			*marginStart += free
		}
	case autoEnd:
		if free > 0 {
			*marginEnd += free
		}
	default:
		switch align {
		case style.AlignEnd, style.AlignFlexEnd:
			return free + *marginStart
		case style.AlignCenter:
			return free/2 + *marginStart
		}
	}
	return *marginStart
}

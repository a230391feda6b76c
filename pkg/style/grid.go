package style

import (
	"fmt"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

// PlacementKind distinguishes the three forms of a grid placement value.
type PlacementKind uint8

const (
	// PlacementAuto lets the auto-placement algorithm choose the line.
	PlacementAuto PlacementKind = iota
	// PlacementLine is an explicit 1-based grid line index.
	PlacementLine
	// PlacementSpan spans the given number of tracks from the opposite edge.
	PlacementSpan
)

// GridPlacement is one end of a grid item's placement on an axis.
type GridPlacement struct {
	Kind  PlacementKind
	Value int
}

// AutoPlacement returns an automatic placement.
func AutoPlacement() GridPlacement {
	return GridPlacement{Kind: PlacementAuto}
}

// Line returns an explicit 1-based line placement.
func Line(index int) GridPlacement {
	return GridPlacement{Kind: PlacementLine, Value: index}
}

// Span returns a placement spanning n tracks.
func Span(n int) GridPlacement {
	return GridPlacement{Kind: PlacementSpan, Value: n}
}

func (p GridPlacement) String() string {
	switch p.Kind {
	case PlacementAuto:
		return "auto"
	case PlacementLine:
		return fmt.Sprintf("%d", p.Value)
	case PlacementSpan:
		return fmt.Sprintf("span %d", p.Value)
	}
	return "invalid"
}

// GridLine is a start/end placement pair for one axis (grid-row or
// grid-column).
type GridLine struct {
	Start GridPlacement
	End   GridPlacement
}

// IsAuto reports whether both ends are automatic.
func (l GridLine) IsAuto() bool {
	return l.Start.Kind == PlacementAuto && l.End.Kind == PlacementAuto
}

// SpanCount returns the number of tracks the placement covers.
func (l GridLine) SpanCount() int {
	switch {
	case l.Start.Kind == PlacementLine && l.End.Kind == PlacementLine:
		n := l.End.Value - l.Start.Value
		if n < 1 {
			n = 1
		}
		return n
	case l.Start.Kind == PlacementSpan:
		return maxInt(1, l.Start.Value)
	case l.End.Kind == PlacementSpan:
		return maxInt(1, l.End.Value)
	default:
		return 1
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// TrackSize is the sizing function for a single grid track, expressed as a
// min/max pair the way minmax() does. Fixed tracks carry the same length in
// both slots.
type TrackSize struct {
	Min geometry.Length
	Max geometry.Length
}

// FixedTrack returns a track sized by a single points or percent length.
func FixedTrack(l geometry.Length) TrackSize {
	return TrackSize{Min: l, Max: l}
}

// AutoTrack returns an auto-sized track.
func AutoTrack() TrackSize {
	return TrackSize{Min: geometry.Auto(), Max: geometry.Auto()}
}

// FlexTrack returns a fraction-sized track. The minimum is auto, so content
// can still force the track open.
func FlexTrack(fr float64) TrackSize {
	return TrackSize{Min: geometry.Auto(), Max: geometry.Fr(fr)}
}

// MinMaxTrack returns an explicit minmax() track.
func MinMaxTrack(min, max geometry.Length) TrackSize {
	return TrackSize{Min: min, Max: max}
}

// FitContentTrack returns a fit-content() track.
func FitContentTrack(limit geometry.Length) TrackSize {
	return TrackSize{Min: geometry.Auto(), Max: geometry.FitContent(limit)}
}

// IsIntrinsic reports whether the track needs content measurement to size.
func (t TrackSize) IsIntrinsic() bool {
	return t.Max.IsAuto() || t.Max.IsIntrinsic() || t.Min.IsAuto() || t.Min.IsIntrinsic()
}

// IsFlexible reports whether the track participates in fraction
// distribution.
func (t TrackSize) IsFlexible() bool {
	return t.Max.IsFraction()
}

func (t TrackSize) String() string {
	if t.Min == t.Max {
		return t.Min.String()
	}
	return fmt.Sprintf("minmax(%s, %s)", t.Min, t.Max)
}

// RepeatMode distinguishes a plain track entry from the repeat() forms.
type RepeatMode uint8

const (
	RepeatNone RepeatMode = iota
	RepeatCount
	RepeatAutoFill
	RepeatAutoFit
)

// TrackGroup is one entry in a grid template: either a single track or a
// repeated group that expands to N tracks when the template is resolved
// against available space.
type TrackGroup struct {
	Mode   RepeatMode
	Count  int // RepeatCount only
	Tracks []TrackSize
}

// Track wraps a single track size as a template entry.
func Track(ts TrackSize) TrackGroup {
	return TrackGroup{Mode: RepeatNone, Tracks: []TrackSize{ts}}
}

// Repeat returns a counted repeat() template entry.
func Repeat(count int, tracks ...TrackSize) TrackGroup {
	return TrackGroup{Mode: RepeatCount, Count: count, Tracks: tracks}
}

// AutoFill returns a repeat(auto-fill, ...) template entry.
func AutoFill(tracks ...TrackSize) TrackGroup {
	return TrackGroup{Mode: RepeatAutoFill, Tracks: tracks}
}

// AutoFit returns a repeat(auto-fit, ...) template entry.
func AutoFit(tracks ...TrackSize) TrackGroup {
	return TrackGroup{Mode: RepeatAutoFit, Tracks: tracks}
}

// TrackList is an ordered grid template for one axis.
type TrackList []TrackGroup

// TemplateOf builds a template of single fixed entries; a convenience for the
// common "100px 1fr auto" case.
func TemplateOf(tracks ...TrackSize) TrackList {
	out := make(TrackList, len(tracks))
	for i, ts := range tracks {
		out[i] = Track(ts)
	}
	return out
}

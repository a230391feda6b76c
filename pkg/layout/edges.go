package layout

import (
	"github.com/mortencombat/stretchable/pkg/geometry"
	"github.com/mortencombat/stretchable/pkg/style"
)

// boxEdges carries a node's resolved box-model edges for one layout pass.
// Padding and border always resolve to concrete values (percent against an
// indefinite axis falls back to zero, the CSS rule). Margin keeps auto edges
// indefinite so the positioning step can distribute them; use orZero during
// intrinsic measurement.
type boxEdges struct {
	margin  geometry.Edges
	border  geometry.Edges
	padding geometry.Edges
}

// resolveEdges converts a style's margin/border/padding against the
// containing width. Percentages on every edge resolve against the inline
// axis, per CSS.
func resolveEdges(s *style.Style, containerWidth float64) boxEdges {
	return boxEdges{
		margin:  s.Margin.Resolve(containerWidth),
		border:  s.Border.ResolveOrZero(containerWidth),
		padding: s.Padding.ResolveOrZero(containerWidth),
	}
}

// contentInset returns border + padding, the inset from border box to
// content box.
func (e boxEdges) contentInset() geometry.Edges {
	return e.border.Add(e.padding)
}

// marginOrZero returns the margins with auto (and unresolved percent) edges
// collapsed to zero, the value used during intrinsic measurement.
func (e boxEdges) marginOrZero() geometry.Edges {
	z := func(v float64) float64 {
		if geometry.IsDefinite(v) {
			return v
		}
		return 0
	}
	return geometry.Edges{
		Top:    z(e.margin.Top),
		Right:  z(e.margin.Right),
		Bottom: z(e.margin.Bottom),
		Left:   z(e.margin.Left),
	}
}

// applyAspectRatio fills an indefinite axis from the other using the ratio
// (width / height). Sizes are border-box; the ratio applies directly.
func applyAspectRatio(s geometry.FloatSize, ratio float64) geometry.FloatSize {
	if ratio <= 0 {
		return s
	}
	switch {
	case geometry.IsDefinite(s.Width) && !geometry.IsDefinite(s.Height):
		s.Height = s.Width / ratio
	case geometry.IsDefinite(s.Height) && !geometry.IsDefinite(s.Width):
		s.Width = s.Height * ratio
	}
	return s
}

// distribute computes the leading offset and inter-item spacing for a
// content-distribution alignment over free space. count is the number of
// items being distributed. Negative free space falls back to start, except
// for center and end which keep their overflow behavior.
func distribute(align style.Alignment, free float64, count int) (offset, spacing float64) {
	if count <= 0 {
		return 0, 0
	}
	switch align {
	case style.AlignEnd, style.AlignFlexEnd:
		return free, 0
	case style.AlignCenter:
		return free / 2, 0
	case style.AlignSpaceBetween:
		if free <= 0 || count == 1 {
			return 0, 0
		}
		return 0, free / float64(count-1)
	case style.AlignSpaceAround:
		if free <= 0 {
			return free / 2, 0
		}
		spacing = free / float64(count)
		return spacing / 2, spacing
	case style.AlignSpaceEvenly:
		if free <= 0 {
			return free / 2, 0
		}
		spacing = free / float64(count+1)
		return spacing, spacing
	default:
		// Start, FlexStart, Stretch, Baseline and unset all pack at the start.
		return 0, 0
	}
}

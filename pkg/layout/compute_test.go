package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

func approx(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("%s = %g, want %g", what, got, want)
	}
}

func box(t *testing.T, s string, children ...*Node) *Node {
	t.Helper()
	n, err := NewNode(WithStyleString(s))
	if err != nil {
		t.Fatalf("building node: %v", err)
	}
	if err := n.Add(children...); err != nil {
		t.Fatalf("adding children: %v", err)
	}
	return n
}

func mustLayout(t *testing.T, n *Node) Layout {
	t.Helper()
	l, err := n.Layout()
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return l
}

func TestLeafExplicitSize(t *testing.T) {
	n := box(t, "width: 120px; height: 80px")
	if err := n.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	l := mustLayout(t, n)
	approx(t, l.Width, 120, "width")
	approx(t, l.Height, 80, "height")
}

func TestLeafMeasureAddsInset(t *testing.T) {
	n := box(t, "padding: 5px; border: 2px")
	n.SetMeasure(func(known geometry.FloatSize, avail geometry.AvailSize) geometry.FloatSize {
		return geometry.FloatSizeOf(100, 20)
	})
	if err := n.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	l := mustLayout(t, n)
	approx(t, l.Width, 114, "width")
	approx(t, l.Height, 34, "height")
	approx(t, l.ContentWidth, 110, "content width")
	approx(t, l.ContentHeight, 30, "content height")
}

func TestMeasureSeesContentBoxConstraints(t *testing.T) {
	// The zero FloatSize is definite, so start from an indefinite sentinel to
	// tell "never called" apart from a real measurement.
	seen := geometry.IndefiniteSize()
	n := box(t, "width: 100px; height: 60px; padding: 10px")
	n.SetMeasure(func(known geometry.FloatSize, avail geometry.AvailSize) geometry.FloatSize {
		seen = known
		return geometry.FloatSizeOf(10, 10)
	})
	// Both axes definite, so the callback is skipped entirely.
	if err := n.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	if geometry.IsDefinite(seen.Width) || geometry.IsDefinite(seen.Height) {
		t.Fatalf("measure was called with %v despite fully definite size", seen)
	}

	m := box(t, "width: 100px; padding: 10px")
	m.SetMeasure(func(known geometry.FloatSize, avail geometry.AvailSize) geometry.FloatSize {
		seen = known
		return geometry.FloatSizeOf(10, 25)
	})
	if err := m.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, seen.Width, 80, "known content width passed to measure")
	approx(t, mustLayout(t, m).Height, 45, "height from measured content")
}

func TestMeasureUnderMinContentConstraint(t *testing.T) {
	n := box(t, "")
	n.SetMeasure(func(known geometry.FloatSize, avail geometry.AvailSize) geometry.FloatSize {
		if avail.Width.Kind == geometry.SpaceMinContent {
			return geometry.FloatSizeOf(40, 30)
		}
		return geometry.FloatSizeOf(120, 10)
	})
	if err := n.ComputeLayout(geometry.MinContentAvail()); err != nil {
		t.Fatal(err)
	}
	l := mustLayout(t, n)
	approx(t, l.Width, 40, "min-content constraint reaches the callback")
	approx(t, l.Height, 30, "measured height under min-content")
}

func TestPercentAgainstParent(t *testing.T) {
	child := box(t, "width: 50%; height: 25%")
	root := box(t, "width: 200px; height: 100px", child)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	l := mustLayout(t, child)
	approx(t, l.Width, 100, "child width")
	approx(t, l.Height, 25, "child height")
}

func TestRootPercentPaddingResolvesAgainstOwnWidth(t *testing.T) {
	child := box(t, "flex-grow: 1")
	root := box(t, "width: 200px; height: 50px; padding: 10%", child)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	l := mustLayout(t, child)
	approx(t, l.X, 20, "child x inside percent padding")
	approx(t, l.Width, 160, "child width inside percent padding")
}

func TestContainment(t *testing.T) {
	a := box(t, "width: 40px; height: 40px")
	b := box(t, "width: 60px; height: 20px")
	root := box(t, "width: 200px; height: 100px; padding: 8px", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	rl := mustLayout(t, root)
	for _, child := range root.Children() {
		cl := mustLayout(t, child)
		if cl.X < 0 || cl.Y < 0 || cl.X+cl.Width > rl.Width || cl.Y+cl.Height > rl.Height {
			t.Errorf("child %s box (%g,%g %gx%g) escapes container %gx%g",
				child.Address(), cl.X, cl.Y, cl.Width, cl.Height, rl.Width, rl.Height)
		}
	}
}

func TestRoundingKeepsBoxesContiguous(t *testing.T) {
	a := box(t, "flex-grow: 1")
	b := box(t, "flex-grow: 1")
	c := box(t, "flex-grow: 1")
	root := box(t, "width: 100px; height: 10px", a, b, c)
	if err := root.ComputeLayout(geometry.MaxContentAvail(), WithRounding(true)); err != nil {
		t.Fatal(err)
	}

	total := 0.0
	cursor := 0.0
	for _, child := range root.Children() {
		l := mustLayout(t, child)
		if l.Width != math.Trunc(l.Width) || l.X != math.Trunc(l.X) {
			t.Errorf("%s not on whole pixels: x=%g w=%g", child.Address(), l.X, l.Width)
		}
		if l.X != cursor {
			t.Errorf("%s starts at %g, want %g (no gap, no overlap)", child.Address(), l.X, cursor)
		}
		cursor = l.X + l.Width
		total += l.Width
	}
	if total != 100 {
		t.Errorf("rounded widths sum to %g, want exactly 100", total)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	a := box(t, "flex-grow: 1; margin: 3px")
	b := box(t, "width: 33.4px")
	root := box(t, "width: 100px; height: 20px; padding: 2px", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	snapshot := func() []Layout {
		var out []Layout
		var walk func(n *Node)
		walk = func(n *Node) {
			out = append(out, n.layout)
			for _, c := range n.children {
				walk(c)
			}
		}
		walk(root)
		return out
	}
	first := snapshot()
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, snapshot()); diff != "" {
		t.Errorf("second computation differs (-first +second):\n%s", diff)
	}
}

func TestDirtyTracking(t *testing.T) {
	child := box(t, "width: 10px; height: 10px")
	root := box(t, "width: 100px; height: 100px", child)

	if _, err := root.Layout(); !errors.Is(err, ErrNotComputed) {
		t.Fatalf("layout before compute: got %v, want ErrNotComputed", err)
	}
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	if root.Dirty() || child.Dirty() {
		t.Fatal("nodes still dirty after successful compute")
	}

	s := child.Style()
	s.Size = geometry.SizePoints(20, 20)
	if err := child.SetStyle(s); err != nil {
		t.Fatal(err)
	}
	if !root.Dirty() {
		t.Fatal("style change did not propagate dirtiness to the root")
	}
	if _, err := root.Layout(); !errors.Is(err, ErrNotComputed) {
		t.Fatalf("layout after invalidation: got %v, want ErrNotComputed", err)
	}
	if _, err := child.Box(EdgeBorder, true); !errors.Is(err, ErrNotComputed) {
		t.Fatalf("box query after invalidation: got %v, want ErrNotComputed", err)
	}

	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, child).Width, 20, "recomputed child width")
}

func TestFailedComputeLeavesTreeDirty(t *testing.T) {
	child := box(t, "width: 10px; height: 10px")
	root := box(t, "width: 100px; height: 100px", child)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}

	bad := child.Style()
	bad.FlexGrow = -1
	child.styleRec = bad // bypass SetStyle validation to poison the tree
	child.MarkDirty()
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err == nil {
		t.Fatal("expected validation error from negative flex-grow")
	}
	if _, err := root.Layout(); !errors.Is(err, ErrNotComputed) {
		t.Fatalf("failed compute must leave the tree dirty, got %v", err)
	}
}

func TestDisplayNoneOccupiesNoSpace(t *testing.T) {
	hidden := box(t, "display: none; width: 50px; height: 50px")
	shown := box(t, "width: 30px; height: 30px")
	root := box(t, "width: 100px; height: 100px", hidden, shown)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	hl := mustLayout(t, hidden)
	if hl.Width != 0 || hl.Height != 0 {
		t.Errorf("hidden node has size %gx%g, want 0x0", hl.Width, hl.Height)
	}
	approx(t, mustLayout(t, shown).X, 0, "sibling is not displaced by hidden node")

	visible, err := hidden.IsVisible()
	if err != nil || visible {
		t.Errorf("IsVisible on display:none = (%v, %v), want (false, nil)", visible, err)
	}
}

func TestBoxQueryEdges(t *testing.T) {
	child := box(t, "width: 50px; height: 40px; margin: 5px; border: 2px; padding: 3px")
	root := box(t, "width: 200px; height: 100px; padding: 10px", child)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}

	border, err := child.Box(EdgeBorder, true)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, border.X, 15, "border box x")
	approx(t, border.Width, 50, "border box width")

	content, err := child.Box(EdgeContent, true)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, content.X, 20, "content box x")
	approx(t, content.Width, 40, "content box width")

	marginBox, err := child.Box(EdgeMargin, true)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, marginBox.X, 10, "margin box x")
	approx(t, marginBox.Width, 60, "margin box width")

	abs, err := child.Box(EdgeBorder, false)
	if err != nil {
		t.Fatal(err)
	}
	approx(t, abs.X, border.X+mustLayout(t, root).X, "absolute x includes ancestors")

	flipped, err := child.Box(EdgeBorder, true, FlipY())
	if err != nil {
		t.Fatal(err)
	}
	approx(t, flipped.Y, 100-border.Y-border.Height, "flipped y measures from the bottom")
}

func TestAbsolutePositioning(t *testing.T) {
	pinned := box(t, "position: absolute; left: 20px; top: 30px; width: 50px; height: 40px")
	stretchd := box(t, "position: absolute; left: 10px; right: 10px; top: 5px; height: 20px")
	fallback := box(t, "position: absolute; width: 15px; height: 15px")
	root := box(t, "width: 200px; height: 200px; padding: 10px", pinned, stretchd, fallback)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}

	pl := mustLayout(t, pinned)
	approx(t, pl.X, 20, "pinned x")
	approx(t, pl.Y, 30, "pinned y")

	sl := mustLayout(t, stretchd)
	approx(t, sl.Width, 180, "width derived from opposing insets")
	approx(t, sl.X, 10, "stretched x")

	fl := mustLayout(t, fallback)
	approx(t, fl.X, 10, "static-position fallback x")
	approx(t, fl.Y, 10, "static-position fallback y")
}

func TestAbsoluteAutoMarginsCenter(t *testing.T) {
	child := box(t, "position: absolute; left: 0; right: 0; width: 50px; height: 20px; margin: 0 auto")
	root := box(t, "width: 200px; height: 100px", child)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, child).X, 75, "auto margins center between insets")
}

func TestAspectRatioFillsMissingAxis(t *testing.T) {
	n := box(t, "width: 160px; aspect-ratio: 16 / 9")
	if err := n.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, n).Height, 90, "height from aspect ratio")
}

package layout

import (
	"testing"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

func TestFlexGrowConservation(t *testing.T) {
	a := box(t, "flex-grow: 1; flex-basis: 100px")
	b := box(t, "flex-grow: 2; flex-basis: 100px")
	root := box(t, "width: 600px; height: 100px", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}

	al, bl := mustLayout(t, a), mustLayout(t, b)
	approx(t, al.Width, 100+400.0/3, "grow-1 item width")
	approx(t, bl.Width, 100+800.0/3, "grow-2 item width")
	approx(t, al.Width+bl.Width, 600, "distributed widths fill the container")
	approx(t, bl.X, al.Width, "second item starts where the first ends")
}

func TestFlexShrink(t *testing.T) {
	a := box(t, "width: 200px; height: 20px")
	b := box(t, "width: 200px; height: 20px")
	root := box(t, "width: 300px; height: 50px", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).Width, 150, "equal shrink, first item")
	approx(t, mustLayout(t, b).Width, 150, "equal shrink, second item")
}

func TestFlexShrinkFloorsAtContentMinimum(t *testing.T) {
	content := box(t, "width: 150px; height: 10px")
	a := box(t, "width: 200px", content)
	b := box(t, "width: 200px")
	root := box(t, "width: 250px; height: 50px", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	// The automatic minimum is content-based: a stops at its 150px child, the
	// empty item keeps shrinking below its specified width.
	approx(t, mustLayout(t, a).Width, 150, "item shrinks only to its content minimum")
	approx(t, mustLayout(t, b).Width, 100, "remaining shrinkage moves to the empty item")
}

func TestFlexShrinkRespectsMinWidth(t *testing.T) {
	a := box(t, "width: 200px; min-width: 180px")
	b := box(t, "width: 200px")
	root := box(t, "width: 300px; height: 50px", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).Width, 180, "clamped item stops at its minimum")
	approx(t, mustLayout(t, b).Width, 120, "remaining shrinkage moves to the flexible item")
}

func TestFlexGrowRespectsMaxWidth(t *testing.T) {
	a := box(t, "flex-grow: 1; max-width: 80px")
	b := box(t, "flex-grow: 1")
	root := box(t, "width: 300px; height: 50px", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).Width, 80, "capped item")
	approx(t, mustLayout(t, b).Width, 220, "freed space goes to the unfrozen item")
}

func TestFlexPercentBasis(t *testing.T) {
	a := box(t, "flex-basis: 50%; height: 10px")
	root := box(t, "width: 200px; height: 50px", a)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).Width, 100, "percent basis against content box")
}

func TestFlexWrap(t *testing.T) {
	a := box(t, "width: 100px; height: 50px")
	b := box(t, "width: 100px; height: 50px")
	c := box(t, "width: 100px; height: 50px")
	root := box(t, "width: 250px; flex-wrap: wrap", a, b, c)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}

	approx(t, mustLayout(t, a).Y, 0, "first line y")
	approx(t, mustLayout(t, b).X, 100, "second item stays on the first line")
	approx(t, mustLayout(t, c).X, 0, "third item wraps")
	approx(t, mustLayout(t, c).Y, 50, "third item starts the second line")
	approx(t, mustLayout(t, root).Height, 100, "container height covers both lines")
}

func TestJustifyContent(t *testing.T) {
	cases := []struct {
		justify string
		xa, xb  float64
	}{
		{"flex-start", 0, 50},
		{"flex-end", 200, 250},
		{"center", 100, 150},
		{"space-between", 0, 250},
		{"space-around", 50, 200},
		{"space-evenly", 200.0 / 3, 200.0/3*2 + 50},
	}
	for _, tc := range cases {
		t.Run(tc.justify, func(t *testing.T) {
			a := box(t, "width: 50px; height: 20px")
			b := box(t, "width: 50px; height: 20px")
			root := box(t, "width: 300px; height: 50px; justify-content: "+tc.justify, a, b)
			if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
				t.Fatal(err)
			}
			approx(t, mustLayout(t, a).X, tc.xa, "first item x")
			approx(t, mustLayout(t, b).X, tc.xb, "second item x")
		})
	}
}

func TestAutoMarginWinsOverJustifyContent(t *testing.T) {
	a := box(t, "width: 50px; height: 20px; margin-left: auto")
	b := box(t, "width: 50px; height: 20px")
	root := box(t, "width: 300px; height: 50px; justify-content: center", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).X, 200, "auto margin absorbs all free space")
	approx(t, mustLayout(t, b).X, 250, "items packed after the auto margin")
}

func TestAlignItemsCross(t *testing.T) {
	cases := []struct {
		align string
		y     float64
		h     float64
	}{
		{"stretch", 0, 100},
		{"flex-start", 0, 20},
		{"center", 40, 20},
		{"flex-end", 80, 20},
	}
	for _, tc := range cases {
		t.Run(tc.align, func(t *testing.T) {
			style := "width: 50px"
			if tc.align != "stretch" {
				style += "; height: 20px"
			}
			a := box(t, style)
			root := box(t, "width: 200px; height: 100px; align-items: "+tc.align, a)
			if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
				t.Fatal(err)
			}
			l := mustLayout(t, a)
			approx(t, l.Y, tc.y, "item y")
			approx(t, l.Height, tc.h, "item height")
		})
	}
}

func TestColumnDirection(t *testing.T) {
	a := box(t, "width: 80px; height: 100px")
	b := box(t, "width: 60px; height: 50px")
	root := box(t, "flex-direction: column; align-items: flex-start", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).Y, 0, "first item y")
	approx(t, mustLayout(t, b).Y, 100, "second item stacks below")
	rl := mustLayout(t, root)
	approx(t, rl.Height, 150, "container main size from content")
	approx(t, rl.Width, 80, "container cross size from widest item")
}

func TestRowReverse(t *testing.T) {
	a := box(t, "width: 50px; height: 20px")
	b := box(t, "width: 50px; height: 20px")
	root := box(t, "width: 300px; height: 50px; flex-direction: row-reverse", a, b)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).X, 250, "first item sits at the right edge")
	approx(t, mustLayout(t, b).X, 200, "second item grows leftward")
}

func TestWrapReverse(t *testing.T) {
	a := box(t, "width: 100px; height: 50px")
	b := box(t, "width: 100px; height: 50px")
	c := box(t, "width: 100px; height: 50px")
	root := box(t, "width: 250px; height: 200px; flex-wrap: wrap-reverse; align-content: flex-start", a, b, c)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, a).Y, 150, "first line sits at the bottom")
	approx(t, mustLayout(t, c).Y, 100, "second line stacks upward")
}

func TestMainAxisGap(t *testing.T) {
	a := box(t, "width: 50px; height: 20px")
	b := box(t, "width: 50px; height: 20px")
	c := box(t, "width: 50px; height: 20px")
	root := box(t, "column-gap: 10px", a, b, c)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, b).X, 60, "gap between first and second")
	approx(t, mustLayout(t, c).X, 120, "gap between second and third")
	approx(t, mustLayout(t, root).Width, 170, "auto container width includes gaps")
}

func TestNestedFlexPropagation(t *testing.T) {
	leaf := box(t, "flex-grow: 1; height: 10px")
	inner := box(t, "flex-grow: 1", leaf)
	root := box(t, "width: 400px; height: 40px; padding: 10px", inner)
	if err := root.ComputeLayout(geometry.MaxContentAvail()); err != nil {
		t.Fatal(err)
	}
	approx(t, mustLayout(t, inner).Width, 380, "inner container fills padded content box")
	approx(t, mustLayout(t, leaf).Width, 380, "leaf fills the nested container")
}

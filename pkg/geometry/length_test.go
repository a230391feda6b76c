package geometry

import (
	"math"
	"testing"
)

func TestLength_ResolvePoints(t *testing.T) {
	l := Points(42)
	if got := l.Resolve(Indefinite()); got != 42 {
		t.Errorf("points should resolve regardless of container, got %g", got)
	}
	if got := l.Resolve(100); got != 42 {
		t.Errorf("expected 42, got %g", got)
	}
}

func TestLength_ResolvePercent(t *testing.T) {
	l := Percent(0.5)
	if got := l.Resolve(200); got != 100 {
		t.Errorf("expected 100, got %g", got)
	}

	// Indefinite container must propagate, never collapse to zero here.
	if got := l.Resolve(Indefinite()); IsDefinite(got) {
		t.Errorf("expected indefinite result, got %g", got)
	}
}

func TestLength_ResolveOrZero(t *testing.T) {
	if got := Percent(0.25).ResolveOrZero(Indefinite()); got != 0 {
		t.Errorf("expected padding-style fallback to 0, got %g", got)
	}
	if got := Percent(0.25).ResolveOrZero(80); got != 20 {
		t.Errorf("expected 20, got %g", got)
	}
}

func TestLength_ContentKeywordsAreIndefinite(t *testing.T) {
	for _, l := range []Length{Auto(), MinContent(), MaxContent(), Fr(1)} {
		if got := l.Resolve(500); IsDefinite(got) {
			t.Errorf("%s should not resolve by arithmetic, got %g", l, got)
		}
	}
}

func TestLength_String(t *testing.T) {
	cases := []struct {
		l    Length
		want string
	}{
		{Auto(), "auto"},
		{Points(10), "10pt"},
		{Percent(0.5), "50%"},
		{MinContent(), "min-content"},
		{MaxContent(), "max-content"},
		{Fr(2), "2fr"},
		{FitContent(Points(100)), "fit-content(100pt)"},
		{FitContent(Percent(0.3)), "fit-content(30%)"},
	}
	for _, c := range cases {
		if got := c.l.String(); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}

func TestAvailableSpace(t *testing.T) {
	d := Definite(120)
	if !d.IsDefinite() || d.OrIndefinite() != 120 {
		t.Errorf("definite space broken: %+v", d)
	}
	if MaxContentSpace().IsDefinite() {
		t.Error("max-content should not be definite")
	}
	if IsDefinite(MinContentSpace().OrIndefinite()) {
		t.Error("min-content should convert to indefinite")
	}
	if got := d.Shrink(150); got.Value != 0 {
		t.Errorf("shrink should floor at zero, got %g", got.Value)
	}
	if got := MaxContentSpace().Shrink(10); got.Kind != SpaceMaxContent {
		t.Error("shrinking an intrinsic request should be a no-op")
	}
}

func TestFloatSize_Clamp(t *testing.T) {
	s := FloatSizeOf(150, 20)
	min := FloatSizeOf(30, 50)
	max := FloatSizeOf(100, Indefinite())
	got := s.Clamp(min, max)
	if got.Width != 100 || got.Height != 50 {
		t.Errorf("expected (100, 50), got %s", got)
	}

	ind := IndefiniteSize().Clamp(min, max)
	if IsDefinite(ind.Width) || IsDefinite(ind.Height) {
		t.Errorf("clamping an indefinite size must stay indefinite, got %s", ind)
	}
}

func TestMaxDefinite(t *testing.T) {
	got := MaxDefinite(FloatSizeOf(10, Indefinite()), FloatSizeOf(5, 7))
	if got.Width != 10 || got.Height != 7 {
		t.Errorf("expected (10, 7), got %s", got)
	}
}

func TestIndefiniteArithmeticPropagates(t *testing.T) {
	v := Indefinite()
	if IsDefinite(v + 10) {
		t.Error("NaN arithmetic should stay indefinite")
	}
	if !math.IsNaN(Percent(1).Resolve(Indefinite())) {
		t.Error("percent against indefinite container should be NaN")
	}
}

package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

func TestParseInline_Basics(t *testing.T) {
	s, err := ParseInline("display: grid; position: absolute; width: 100px; height: 50%; aspect-ratio: 16 / 9")
	require.NoError(t, err)

	assert.Equal(t, DisplayGrid, s.Display)
	assert.Equal(t, PositionAbsolute, s.Position)
	assert.Equal(t, geometry.Points(100), s.Size.Width)
	assert.Equal(t, geometry.Percent(0.5), s.Size.Height)
	assert.InDelta(t, 16.0/9.0, s.AspectRatio, 1e-9)
}

func TestParseInline_Defaults(t *testing.T) {
	s, err := ParseInline("")
	require.NoError(t, err)

	assert.Equal(t, DisplayFlex, s.Display)
	assert.Equal(t, PositionRelative, s.Position)
	assert.True(t, s.Size.Width.IsAuto())
	assert.True(t, s.Inset.Top.IsAuto())
	assert.Equal(t, 1.0, s.FlexShrink)
	assert.True(t, s.FlexBasis.IsAuto())
}

func TestParseInline_MarginShorthand(t *testing.T) {
	cases := []struct {
		value string
		want  geometry.Rect
	}{
		{"10px", geometry.UniformRect(geometry.Points(10))},
		{"10px 20px", geometry.RectOf(geometry.Points(10), geometry.Points(20), geometry.Points(10), geometry.Points(20))},
		{"10px 20px 30px", geometry.RectOf(geometry.Points(10), geometry.Points(20), geometry.Points(30), geometry.Points(20))},
		{"10px 20px 30px 40px", geometry.RectOf(geometry.Points(10), geometry.Points(20), geometry.Points(30), geometry.Points(40))},
	}
	for _, c := range cases {
		s, err := ParseInline("margin: " + c.value)
		require.NoError(t, err, c.value)
		assert.Equal(t, c.want, s.Margin, c.value)
	}
}

func TestParseInline_SideProperties(t *testing.T) {
	s, err := ParseInline("margin-left: auto; padding-top: 5px; border-right-width: 2px; left: 10%")
	require.NoError(t, err)

	assert.True(t, s.Margin.Left.IsAuto())
	assert.Equal(t, geometry.Points(5), s.Padding.Top)
	assert.Equal(t, geometry.Points(2), s.Border.Right)
	assert.Equal(t, geometry.Percent(0.1), s.Inset.Left)
}

func TestParseInline_FlexProperties(t *testing.T) {
	s, err := ParseInline("flex-direction: column-reverse; flex-wrap: wrap; flex-grow: 2; flex-shrink: 0.5; flex-basis: 30%")
	require.NoError(t, err)

	assert.Equal(t, FlexColumnReverse, s.FlexDirection)
	assert.Equal(t, Wrap, s.FlexWrap)
	assert.Equal(t, 2.0, s.FlexGrow)
	assert.Equal(t, 0.5, s.FlexShrink)
	assert.Equal(t, geometry.Percent(0.3), s.FlexBasis)
}

func TestParseInline_FlexShorthand(t *testing.T) {
	s, err := ParseInline("flex: 1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.FlexGrow)
	assert.Equal(t, 1.0, s.FlexShrink)
	assert.Equal(t, geometry.Points(0), s.FlexBasis)

	s, err = ParseInline("flex: 2 0 100px")
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.FlexGrow)
	assert.Equal(t, 0.0, s.FlexShrink)
	assert.Equal(t, geometry.Points(100), s.FlexBasis)

	s, err = ParseInline("flex: none")
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.FlexGrow)
	assert.Equal(t, 0.0, s.FlexShrink)
	assert.True(t, s.FlexBasis.IsAuto())
}

func TestParseInline_Gap(t *testing.T) {
	s, err := ParseInline("gap: 10px 20px")
	require.NoError(t, err)
	assert.Equal(t, geometry.Points(10), s.Gap.Height, "row gap")
	assert.Equal(t, geometry.Points(20), s.Gap.Width, "column gap")

	s, err = ParseInline("gap: 8px")
	require.NoError(t, err)
	assert.Equal(t, geometry.Points(8), s.Gap.Height)
	assert.Equal(t, geometry.Points(8), s.Gap.Width)
}

func TestParseInline_Alignment(t *testing.T) {
	s, err := ParseInline("align-items: center; justify-content: space-between; align-content: space-evenly; justify-self: end")
	require.NoError(t, err)

	assert.Equal(t, AlignCenter, s.AlignItems)
	assert.Equal(t, AlignSpaceBetween, s.JustifyContent)
	assert.Equal(t, AlignSpaceEvenly, s.AlignContent)
	assert.Equal(t, AlignEnd, s.JustifySelf)
}

func TestParseInline_GridTemplate(t *testing.T) {
	s, err := ParseInline("grid-template-columns: 100px 1fr auto; grid-template-rows: repeat(2, 50px) minmax(10px, 1fr)")
	require.NoError(t, err)

	require.Len(t, s.GridTemplateColumns, 3)
	assert.Equal(t, Track(FixedTrack(geometry.Points(100))), s.GridTemplateColumns[0])
	assert.Equal(t, Track(FlexTrack(1)), s.GridTemplateColumns[1])
	assert.Equal(t, Track(AutoTrack()), s.GridTemplateColumns[2])

	require.Len(t, s.GridTemplateRows, 2)
	assert.Equal(t, Repeat(2, FixedTrack(geometry.Points(50))), s.GridTemplateRows[0])
	assert.Equal(t, Track(MinMaxTrack(geometry.Points(10), geometry.Fr(1))), s.GridTemplateRows[1])
}

func TestParseInline_GridAutoFillAndFit(t *testing.T) {
	s, err := ParseInline("grid-template-columns: repeat(auto-fill, 100px); grid-auto-rows: 40px auto")
	require.NoError(t, err)

	require.Len(t, s.GridTemplateColumns, 1)
	assert.Equal(t, RepeatAutoFill, s.GridTemplateColumns[0].Mode)
	require.Len(t, s.GridAutoRows, 2)
	assert.Equal(t, FixedTrack(geometry.Points(40)), s.GridAutoRows[0])
	assert.Equal(t, AutoTrack(), s.GridAutoRows[1])
}

func TestParseInline_GridPlacement(t *testing.T) {
	s, err := ParseInline("grid-row: 1 / 3; grid-column: span 2")
	require.NoError(t, err)

	assert.Equal(t, GridLine{Start: Line(1), End: Line(3)}, s.GridRow)
	assert.Equal(t, GridLine{Start: Span(2), End: AutoPlacement()}, s.GridColumn)
	assert.Equal(t, 2, s.GridRow.SpanCount())
	assert.Equal(t, 2, s.GridColumn.SpanCount())
}

func TestParseInline_UnknownPropertyIgnored(t *testing.T) {
	s, err := ParseInline("color: red; width: 10px")
	require.NoError(t, err)
	assert.Equal(t, geometry.Points(10), s.Size.Width)
}

func TestParseInline_InvalidValues(t *testing.T) {
	for _, inline := range []string{
		"width: banana",
		"display: inline",
		"padding: -5px",
		"border-width: auto",
		"flex-grow: -1",
		"grid-row: span zero",
	} {
		_, err := ParseInline(inline)
		assert.ErrorIs(t, err, ErrInvalidValue, inline)
	}
}

func TestValidate_RejectsBadStyles(t *testing.T) {
	s := New()
	s.Padding.Left = geometry.Points(-1)
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)

	s = New()
	s.Border.Top = geometry.Auto()
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)

	s = New()
	s.AspectRatio = -2
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)

	s = New()
	s.FlexShrink = -0.1
	assert.ErrorIs(t, s.Validate(), ErrInvalidValue)

	assert.NoError(t, New().Validate())
}

func TestAlignSelfFallback(t *testing.T) {
	container := New()
	child := New()
	assert.Equal(t, AlignStretch, AlignSelfFor(child, container))

	container.AlignItems = AlignCenter
	assert.Equal(t, AlignCenter, AlignSelfFor(child, container))

	child.AlignSelf = AlignFlexEnd
	assert.Equal(t, AlignFlexEnd, AlignSelfFor(child, container))
}

package style

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mortencombat/stretchable/pkg/geometry"
)

// ParseInline parses a CSS-like inline style string into a Style, e.g.
//
//	width: 100px; margin: 10px 20px; display: grid; grid-template-columns: repeat(3, 1fr)
//
// Recognized values are px/pt numbers, bare numbers (points), percentages,
// fr units, auto, min-content, max-content, fit-content(...), minmax(...)
// and repeat(...). Unrecognized properties are logged and ignored; malformed
// values for recognized properties are errors. The resulting style is
// validated before it is returned.
func ParseInline(inline string) (*Style, error) {
	s := New()
	for _, decl := range strings.Split(inline, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, value, found := strings.Cut(decl, ":")
		if !found {
			return nil, fmt.Errorf("%w: declaration %q", ErrInvalidValue, decl)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if err := s.apply(name, value); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Style) apply(name, value string) error {
	var err error
	switch name {
	case "display":
		s.Display, err = parseDisplay(value)
	case "position":
		s.Position, err = parsePosition(value)
	case "overflow":
		s.Overflow, err = parseOverflow(value)
	case "width":
		s.Size.Width, err = parseLength(value)
	case "height":
		s.Size.Height, err = parseLength(value)
	case "size":
		s.Size, err = parseSizeShorthand(value)
	case "min-width":
		s.MinSize.Width, err = parseLength(value)
	case "min-height":
		s.MinSize.Height, err = parseLength(value)
	case "min-size":
		s.MinSize, err = parseSizeShorthand(value)
	case "max-width":
		s.MaxSize.Width, err = parseLength(value)
	case "max-height":
		s.MaxSize.Height, err = parseLength(value)
	case "max-size":
		s.MaxSize, err = parseSizeShorthand(value)
	case "aspect-ratio":
		s.AspectRatio, err = parseRatio(value)
	case "margin":
		s.Margin, err = parseRectShorthand(value)
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		err = applyRectSide(&s.Margin, strings.TrimPrefix(name, "margin-"), value)
	case "padding":
		s.Padding, err = parseRectShorthand(value)
	case "padding-top", "padding-right", "padding-bottom", "padding-left":
		err = applyRectSide(&s.Padding, strings.TrimPrefix(name, "padding-"), value)
	case "border", "border-width":
		s.Border, err = parseRectShorthand(value)
	case "border-top-width", "border-right-width", "border-bottom-width", "border-left-width":
		side := strings.TrimSuffix(strings.TrimPrefix(name, "border-"), "-width")
		err = applyRectSide(&s.Border, side, value)
	case "inset":
		s.Inset, err = parseRectShorthand(value)
	case "top", "right", "bottom", "left":
		err = applyRectSide(&s.Inset, name, value)
	case "gap":
		err = s.applyGap(value)
	case "row-gap":
		s.Gap.Height, err = parseLength(value)
	case "column-gap":
		s.Gap.Width, err = parseLength(value)
	case "align-items":
		s.AlignItems, err = parseAlignment(value)
	case "align-self":
		s.AlignSelf, err = parseAlignment(value)
	case "align-content":
		s.AlignContent, err = parseAlignment(value)
	case "justify-items":
		s.JustifyItems, err = parseAlignment(value)
	case "justify-self":
		s.JustifySelf, err = parseAlignment(value)
	case "justify-content":
		s.JustifyContent, err = parseAlignment(value)
	case "flex-direction":
		s.FlexDirection, err = parseFlexDirection(value)
	case "flex-wrap":
		s.FlexWrap, err = parseFlexWrap(value)
	case "flex-grow":
		s.FlexGrow, err = parseFloat(value)
	case "flex-shrink":
		s.FlexShrink, err = parseFloat(value)
	case "flex-basis":
		s.FlexBasis, err = parseLength(value)
	case "flex":
		err = s.applyFlexShorthand(value)
	case "grid-template-rows":
		s.GridTemplateRows, err = parseTrackList(value)
	case "grid-template-columns":
		s.GridTemplateColumns, err = parseTrackList(value)
	case "grid-auto-rows":
		s.GridAutoRows, err = parseTrackSizes(value)
	case "grid-auto-columns":
		s.GridAutoColumns, err = parseTrackSizes(value)
	case "grid-auto-flow":
		s.GridAutoFlow, err = parseGridAutoFlow(value)
	case "grid-row":
		s.GridRow, err = parseGridLine(value)
	case "grid-column":
		s.GridColumn, err = parseGridLine(value)
	default:
		logger.Warn("ignoring unrecognized style property",
			zap.String("property", name),
			zap.String("value", value))
	}
	if err != nil {
		return fmt.Errorf("property %q: %w", name, err)
	}
	return nil
}

func parseLength(value string) (geometry.Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "auto":
		return geometry.Auto(), nil
	case "min-content":
		return geometry.MinContent(), nil
	case "max-content":
		return geometry.MaxContent(), nil
	}
	if inner, ok := parseFunc(v, "fit-content"); ok {
		limit, err := parseLength(inner)
		if err != nil {
			return geometry.Length{}, err
		}
		switch limit.Unit {
		case geometry.UnitPoints, geometry.UnitPercent:
			return geometry.FitContent(limit), nil
		}
		return geometry.Length{}, fmt.Errorf("%w: fit-content(%s)", ErrInvalidValue, inner)
	}
	switch {
	case strings.HasSuffix(v, "px"):
		n, err := parseFloat(strings.TrimSuffix(v, "px"))
		return geometry.Points(n), err
	case strings.HasSuffix(v, "pt"):
		n, err := parseFloat(strings.TrimSuffix(v, "pt"))
		return geometry.Points(n), err
	case strings.HasSuffix(v, "fr"):
		n, err := parseFloat(strings.TrimSuffix(v, "fr"))
		return geometry.Fr(n), err
	case strings.HasSuffix(v, "%"):
		n, err := parseFloat(strings.TrimSuffix(v, "%"))
		return geometry.Percent(n / 100), err
	}
	n, err := parseFloat(v)
	if err != nil {
		return geometry.Length{}, fmt.Errorf("%w: length %q", ErrInvalidValue, value)
	}
	return geometry.Points(n), nil
}

func parseFloat(v string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: number %q", ErrInvalidValue, v)
	}
	return n, nil
}

func parseRatio(value string) (float64, error) {
	num, den, found := strings.Cut(value, "/")
	if !found {
		return parseFloat(value)
	}
	n, err := parseFloat(num)
	if err != nil {
		return 0, err
	}
	d, err := parseFloat(den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("%w: ratio %q", ErrInvalidValue, value)
	}
	return n / d, nil
}

func parseRectShorthand(value string) (geometry.Rect, error) {
	parts := strings.Fields(value)
	lengths := make([]geometry.Length, 0, len(parts))
	for _, p := range parts {
		l, err := parseLength(p)
		if err != nil {
			return geometry.Rect{}, err
		}
		lengths = append(lengths, l)
	}
	return geometry.RectFromValues(lengths...)
}

func applyRectSide(r *geometry.Rect, side, value string) error {
	l, err := parseLength(value)
	if err != nil {
		return err
	}
	switch side {
	case "top":
		r.Top = l
	case "right":
		r.Right = l
	case "bottom":
		r.Bottom = l
	case "left":
		r.Left = l
	}
	return nil
}

func parseSizeShorthand(value string) (geometry.Size, error) {
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		l, err := parseLength(parts[0])
		return geometry.SizeOf(l, l), err
	case 2:
		w, err := parseLength(parts[0])
		if err != nil {
			return geometry.Size{}, err
		}
		h, err := parseLength(parts[1])
		return geometry.SizeOf(w, h), err
	}
	return geometry.Size{}, fmt.Errorf("%w: size %q", ErrInvalidValue, value)
}

// applyGap handles the gap shorthand: one value sets both gaps, two values
// set row gap then column gap.
func (s *Style) applyGap(value string) error {
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		l, err := parseLength(parts[0])
		if err != nil {
			return err
		}
		s.Gap = geometry.SizeOf(l, l)
		return nil
	case 2:
		row, err := parseLength(parts[0])
		if err != nil {
			return err
		}
		col, err := parseLength(parts[1])
		if err != nil {
			return err
		}
		s.Gap = geometry.SizeOf(col, row)
		return nil
	}
	return fmt.Errorf("%w: gap %q", ErrInvalidValue, value)
}

// applyFlexShorthand handles "flex: <grow> [<shrink>] [<basis>]" plus the
// none keyword.
func (s *Style) applyFlexShorthand(value string) error {
	if strings.TrimSpace(strings.ToLower(value)) == "none" {
		s.FlexGrow, s.FlexShrink, s.FlexBasis = 0, 0, geometry.Auto()
		return nil
	}
	parts := strings.Fields(value)
	if len(parts) == 0 || len(parts) > 3 {
		return fmt.Errorf("%w: flex %q", ErrInvalidValue, value)
	}
	grow, err := parseFloat(parts[0])
	if err != nil {
		return err
	}
	s.FlexGrow, s.FlexShrink, s.FlexBasis = grow, 1, geometry.Points(0)
	if len(parts) > 1 {
		if s.FlexShrink, err = parseFloat(parts[1]); err != nil {
			return err
		}
	}
	if len(parts) > 2 {
		if s.FlexBasis, err = parseLength(parts[2]); err != nil {
			return err
		}
	}
	return nil
}

func parseDisplay(value string) (Display, error) {
	switch strings.ToLower(value) {
	case "flex":
		return DisplayFlex, nil
	case "grid":
		return DisplayGrid, nil
	case "block":
		return DisplayBlock, nil
	case "none":
		return DisplayNone, nil
	}
	return 0, fmt.Errorf("%w: display %q", ErrInvalidValue, value)
}

func parsePosition(value string) (Position, error) {
	switch strings.ToLower(value) {
	case "relative":
		return PositionRelative, nil
	case "absolute":
		return PositionAbsolute, nil
	}
	return 0, fmt.Errorf("%w: position %q", ErrInvalidValue, value)
}

func parseOverflow(value string) (Overflow, error) {
	switch strings.ToLower(value) {
	case "visible":
		return OverflowVisible, nil
	case "hidden":
		return OverflowHidden, nil
	case "scroll":
		return OverflowScroll, nil
	case "clip":
		return OverflowClip, nil
	}
	return 0, fmt.Errorf("%w: overflow %q", ErrInvalidValue, value)
}

func parseAlignment(value string) (Alignment, error) {
	switch strings.ToLower(value) {
	case "start":
		return AlignStart, nil
	case "end":
		return AlignEnd, nil
	case "flex-start":
		return AlignFlexStart, nil
	case "flex-end":
		return AlignFlexEnd, nil
	case "center":
		return AlignCenter, nil
	case "baseline":
		return AlignBaseline, nil
	case "stretch":
		return AlignStretch, nil
	case "space-between":
		return AlignSpaceBetween, nil
	case "space-around":
		return AlignSpaceAround, nil
	case "space-evenly":
		return AlignSpaceEvenly, nil
	}
	return 0, fmt.Errorf("%w: alignment %q", ErrInvalidValue, value)
}

func parseFlexDirection(value string) (FlexDirection, error) {
	switch strings.ToLower(value) {
	case "row":
		return FlexRow, nil
	case "column":
		return FlexColumn, nil
	case "row-reverse":
		return FlexRowReverse, nil
	case "column-reverse":
		return FlexColumnReverse, nil
	}
	return 0, fmt.Errorf("%w: flex-direction %q", ErrInvalidValue, value)
}

func parseFlexWrap(value string) (FlexWrap, error) {
	switch strings.ToLower(value) {
	case "nowrap", "no-wrap":
		return NoWrap, nil
	case "wrap":
		return Wrap, nil
	case "wrap-reverse":
		return WrapReverse, nil
	}
	return 0, fmt.Errorf("%w: flex-wrap %q", ErrInvalidValue, value)
}

func parseGridAutoFlow(value string) (GridAutoFlow, error) {
	v := strings.Join(strings.Fields(strings.ToLower(value)), " ")
	switch v {
	case "row":
		return AutoFlowRow, nil
	case "column":
		return AutoFlowColumn, nil
	case "row dense", "dense":
		return AutoFlowRowDense, nil
	case "column dense":
		return AutoFlowColumnDense, nil
	}
	return 0, fmt.Errorf("%w: grid-auto-flow %q", ErrInvalidValue, value)
}

// parseGridLine handles "3", "span 2", "1 / 3", "1 / span 2" and "auto".
func parseGridLine(value string) (GridLine, error) {
	start, end, found := strings.Cut(value, "/")
	line := GridLine{Start: AutoPlacement(), End: AutoPlacement()}
	var err error
	if line.Start, err = parsePlacement(start); err != nil {
		return line, err
	}
	if found {
		if line.End, err = parsePlacement(end); err != nil {
			return line, err
		}
	}
	return line, nil
}

func parsePlacement(value string) (GridPlacement, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == "auto" {
		return AutoPlacement(), nil
	}
	if rest, ok := strings.CutPrefix(v, "span "); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 {
			return GridPlacement{}, fmt.Errorf("%w: span %q", ErrInvalidValue, value)
		}
		return Span(n), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return GridPlacement{}, fmt.Errorf("%w: grid line %q", ErrInvalidValue, value)
	}
	return Line(n), nil
}

func parseTrackSizes(value string) ([]TrackSize, error) {
	var out []TrackSize
	for _, tok := range splitTopLevel(value) {
		ts, err := parseTrackSize(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

func parseTrackSize(tok string) (TrackSize, error) {
	if inner, ok := parseFunc(tok, "minmax"); ok {
		minStr, maxStr, found := strings.Cut(inner, ",")
		if !found {
			return TrackSize{}, fmt.Errorf("%w: minmax %q", ErrInvalidValue, tok)
		}
		min, err := parseLength(minStr)
		if err != nil {
			return TrackSize{}, err
		}
		max, err := parseLength(maxStr)
		if err != nil {
			return TrackSize{}, err
		}
		return MinMaxTrack(min, max), nil
	}
	l, err := parseLength(tok)
	if err != nil {
		return TrackSize{}, err
	}
	switch l.Unit {
	case geometry.UnitAuto:
		return AutoTrack(), nil
	case geometry.UnitFraction:
		return FlexTrack(l.Value), nil
	case geometry.UnitFitContentPoints:
		return FitContentTrack(geometry.Points(l.Value)), nil
	case geometry.UnitFitContentPercent:
		return FitContentTrack(geometry.Percent(l.Value)), nil
	case geometry.UnitMinContent, geometry.UnitMaxContent:
		return TrackSize{Min: l, Max: l}, nil
	default:
		return FixedTrack(l), nil
	}
}

func parseTrackList(value string) (TrackList, error) {
	var out TrackList
	for _, tok := range splitTopLevel(value) {
		if inner, ok := parseFunc(tok, "repeat"); ok {
			countStr, rest, found := strings.Cut(inner, ",")
			if !found {
				return nil, fmt.Errorf("%w: repeat %q", ErrInvalidValue, tok)
			}
			tracks, err := parseTrackSizes(rest)
			if err != nil {
				return nil, err
			}
			switch strings.ToLower(strings.TrimSpace(countStr)) {
			case "auto-fill":
				out = append(out, AutoFill(tracks...))
			case "auto-fit":
				out = append(out, AutoFit(tracks...))
			default:
				n, err := strconv.Atoi(strings.TrimSpace(countStr))
				if err != nil || n < 1 {
					return nil, fmt.Errorf("%w: repeat count %q", ErrInvalidValue, countStr)
				}
				out = append(out, Repeat(n, tracks...))
			}
			continue
		}
		ts, err := parseTrackSize(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, Track(ts))
	}
	return out, nil
}

// parseFunc matches name(inner) and returns the inner text.
func parseFunc(tok, name string) (string, bool) {
	t := strings.TrimSpace(tok)
	if !strings.HasPrefix(strings.ToLower(t), name+"(") || !strings.HasSuffix(t, ")") {
		return "", false
	}
	return t[len(name)+1 : len(t)-1], true
}

// splitTopLevel splits on whitespace, keeping parenthesized groups such as
// repeat(2, 1fr 100px) together as single tokens.
func splitTopLevel(value string) []string {
	var out []string
	var sb strings.Builder
	depth := 0
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, sb.String())
			sb.Reset()
		}
	}
	for _, r := range value {
		switch {
		case r == '(':
			depth++
			sb.WriteRune(r)
		case r == ')':
			depth--
			sb.WriteRune(r)
		case (r == ' ' || r == '\t') && depth == 0:
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return out
}

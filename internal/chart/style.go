package chart

import (
	"fmt"

	"github.com/spf13/cast"
)

// Style is a resolved series style.
//
// The list form is [type] or [type, mode, symbol, color, width]. Lists with
// at least four elements are Extended: their mode, symbol, colour and width
// are applied. Shorter lists only select the type.
type Style struct {
	Type     ChartType
	Mode     string
	Symbol   string
	Color    string
	Width    float64
	Extended bool
}

// DefaultStyle is used for series without a style entry.
var DefaultStyle = Style{Type: Scatter}

// Styles maps series names (or patterns) to styles.
type Styles map[string]Style

// ParseStyle converts the list form of a style. A bare string is treated as
// a one-element list. Unknown type names resolve to Line.
func ParseStyle(v any) (Style, error) {
	var list []any
	switch val := v.(type) {
	case Style:
		return val, nil
	case string:
		list = []any{val}
	case []string:
		for _, s := range val {
			list = append(list, s)
		}
	case []any:
		list = val
	default:
		return Style{}, fmt.Errorf("style: unsupported value %T", v)
	}
	if len(list) == 0 {
		return Style{}, fmt.Errorf("style: empty list")
	}

	name, err := cast.ToStringE(list[0])
	if err != nil {
		return Style{}, fmt.Errorf("style: chart type: %w", err)
	}
	st := Style{Type: ParseChartType(name, Line)}
	if len(list) < 4 {
		return st, nil
	}
	st.Extended = true
	st.Mode = optString(list[1])
	st.Symbol = optString(list[2])
	st.Color = optString(list[3])
	if len(list) > 4 && list[4] != nil {
		w, err := cast.ToFloat64E(list[4])
		if err != nil {
			return Style{}, fmt.Errorf("style: width: %w", err)
		}
		st.Width = w
	}
	return st, nil
}

// ParseStyles converts a map of list-form styles.
func ParseStyles(m map[string]any) (Styles, error) {
	out := make(Styles, len(m))
	for k, v := range m {
		st, err := ParseStyle(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = st
	}
	return out, nil
}

// List returns the list form of the style.
func (s Style) List() []any {
	if !s.Extended {
		return []any{s.Type.String()}
	}
	return []any{s.Type.String(), s.Mode, s.Symbol, s.Color, s.Width}
}

func optString(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

func lookupColor(colors map[string]string, key string) (string, bool) {
	c, ok := colors[key]
	if !ok || c == "" {
		return "", false
	}
	return c, true
}

// resolveSeries picks the style and colour for column col matched by the
// requested series name req.
//
// The colour table is consulted by column name first. Only when that entry
// exists is it consulted again by series name, and that second lookup is
// the colour used. An extended style's colour fills in when no colour was
// resolved.
func resolveSeries(col, req string, styles Styles, colors map[string]string) (Style, SeriesOptions) {
	st, ok := styles[req]
	if !ok {
		st = DefaultStyle
	}
	clr, found := lookupColor(colors, col)
	if found {
		clr, _ = lookupColor(colors, req)
	}
	if !st.Extended {
		return st, SeriesOptions{Color: clr}
	}
	if clr == "" {
		clr = st.Color
	}
	return st, SeriesOptions{Color: clr, Mode: st.Mode, Symbol: st.Symbol, Width: st.Width}
}

package plot

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// namedColors covers the colour names used by chart styles and table
// defaults. Anything else must be a hex string.
var namedColors = map[string]string{
	"black":          "#000000",
	"white":          "#ffffff",
	"red":            "#ff0000",
	"green":          "#008000",
	"blue":           "#0000ff",
	"yellow":         "#ffff00",
	"orange":         "#ffa500",
	"purple":         "#800080",
	"magenta":        "#ff00ff",
	"cyan":           "#00ffff",
	"brown":          "#a52a2a",
	"pink":           "#ffc0cb",
	"grey":           "#808080",
	"gray":           "#808080",
	"lightgrey":      "#d3d3d3",
	"lightgray":      "#d3d3d3",
	"darkgrey":       "#a9a9a9",
	"darkgray":       "#a9a9a9",
	"darkslategray":  "#2f4f4f",
	"darkslategrey":  "#2f4f4f",
	"lightsteelblue": "#b0c4de",
	"steelblue":      "#4682b4",
	"navy":           "#000080",
	"teal":           "#008080",
	"olive":          "#808000",
	"maroon":         "#800000",
	"gold":           "#ffd700",
	"silver":         "#c0c0c0",
}

// parseColor resolves a colour name or hex string. Unknown or empty
// values yield fallback.
func parseColor(s string, fallback drawing.Color) drawing.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return fallback
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return fallback
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

// seriesColor picks the colour of the idx-th series, falling back to the
// go-chart palette.
func seriesColor(s string, idx int) drawing.Color {
	return parseColor(s, gochart.GetDefaultColor(idx))
}

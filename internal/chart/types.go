package chart

import (
	"fmt"
	"strings"
)

// Kind is the subplot type of a cell.
type Kind string

const (
	KindXY    Kind = "xy"
	KindTable Kind = "table"
)

// ChartType selects how a series is drawn.
type ChartType int

const (
	Line ChartType = iota + 1
	Scatter
	Area
	Dots
	Column
	Bar
)

var chartTypeNames = map[ChartType]string{
	Line:    "Line",
	Scatter: "Scatter",
	Area:    "Area",
	Dots:    "Dots",
	Column:  "Column",
	Bar:     "Bar",
}

func (t ChartType) String() string {
	if n, ok := chartTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("ChartType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t ChartType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ChartTypes returns every chart type name in declaration order.
func ChartTypes() []string {
	return []string{"Line", "Scatter", "Area", "Dots", "Column", "Bar"}
}

// ParseChartType matches s case-insensitively against the chart type names.
// Returns def when nothing matches.
func ParseChartType(s string, def ChartType) ChartType {
	for t, n := range chartTypeNames {
		if strings.EqualFold(n, s) {
			return t
		}
	}
	return def
}

// CellSpec describes one populated grid cell.
type CellSpec struct {
	Kind      Kind `json:"type"`
	Secondary bool `json:"secondary_y,omitempty"`
}

// CellTitle holds the subplot title and axis labels of a cell.
type CellTitle struct {
	Title   string `json:"title"`
	XTitle  string `json:"xt"`
	Y1Title string `json:"y1"`
	Y2Title string `json:"y2"`
}

// Package frame holds tabular data as an ordered set of named columns.
// It is the data source the chart helpers read series from.
package frame

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Column is a named, ordered sequence of values.
type Column struct {
	Name   string
	Values []any
}

// Frame is an ordered collection of equally long columns.
type Frame struct {
	cols  []Column
	index map[string]int
}

// New creates a frame from columns. All columns must have the same length
// and unique names.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int)}
	for _, c := range cols {
		if err := f.Add(c.Name, c.Values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(cols ...Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// Add appends a column.
func (f *Frame) Add(name string, values []any) error {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if _, ok := f.index[name]; ok {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(f.cols) > 0 && len(values) != f.Len() {
		return fmt.Errorf("column %q has %d values, frame has %d rows", name, len(values), f.Len())
	}
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, Column{Name: name, Values: values})
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil || len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0].Values)
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, bool) {
	if f == nil {
		return Column{}, false
	}
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.cols[i], true
}

// Select returns a new frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := &Frame{index: make(map[string]int)}
	for _, n := range names {
		c, ok := f.Column(n)
		if !ok {
			return nil, fmt.Errorf("column %q not found", n)
		}
		if err := out.Add(c.Name, c.Values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Match returns the names of columns whose name contains pattern,
// compared case-insensitively, in column order.
func (f *Frame) Match(pattern string) []string {
	p := strings.ToLower(pattern)
	var out []string
	for _, n := range f.Columns() {
		if strings.Contains(strings.ToLower(n), p) {
			out = append(out, n)
		}
	}
	return out
}

// Floats converts the named column to float64. Values that cannot be
// converted become NaN.
func (f *Frame) Floats(name string) ([]float64, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return ToFloats(c.Values), nil
}

// Times converts the named column to time.Time. Fails on the first value
// that is not a time.
func (f *Frame) Times(name string) ([]time.Time, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]time.Time, len(c.Values))
	for i, v := range c.Values {
		t, err := cast.ToTimeE(v)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		out[i] = t
	}
	return out, nil
}

// ToFloats converts values to float64, mapping failures to NaN.
func ToFloats(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		x, err := cast.ToFloat64E(v)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = x
	}
	return out
}

// ToTimes converts values to time.Time. Values that are not times become
// the zero time.
func ToTimes(values []any) []time.Time {
	out := make([]time.Time, len(values))
	for i, v := range values {
		if t, err := cast.ToTimeE(v); err == nil {
			out[i] = t
		}
	}
	return out
}

// IsTime reports whether every non-nil value is a time.Time.
func IsTime(values []any) bool {
	seen := false
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := v.(time.Time); !ok {
			return false
		}
		seen = true
	}
	return seen
}

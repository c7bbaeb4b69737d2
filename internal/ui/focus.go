package ui

import "slices"

// FocusManager tracks and rotates keyboard focus across widget keys.
type FocusManager struct {
	Current  string   // key of the focused widget
	Order    []string // tab order
	OnChange func(from, to string)
}

// SetOrder replaces the tab order. Focus stays on the current key when it
// is still present, otherwise it moves to the first key.
func (f *FocusManager) SetOrder(order []string) {
	f.Order = order
	if slices.Contains(order, f.Current) {
		return
	}
	next := ""
	if len(order) > 0 {
		next = order[0]
	}
	f.move(next)
}

// Next advances focus and returns the new key.
func (f *FocusManager) Next() string { return f.rotate(1) }

// Prev moves focus back and returns the new key.
func (f *FocusManager) Prev() string { return f.rotate(-1) }

func (f *FocusManager) rotate(step int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+step)%n + n) % n
	}
	f.move(f.Order[idx])
	return f.Current
}

// SetFocus focuses key. Returns false when key is not in the order.
func (f *FocusManager) SetFocus(key string) bool {
	if !slices.Contains(f.Order, key) {
		return false
	}
	f.move(key)
	return true
}

// Focused reports whether key has focus.
func (f *FocusManager) Focused(key string) bool {
	return key != "" && f.Current == key
}

func (f *FocusManager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}

package gui

import (
	"fmt"
	"strings"
)

// WidgetKind tags a widget constructor.
type WidgetKind int

const (
	View WidgetKind = iota + 1
	Text
	Combo
	SelMulti
	DatePicker
	Select
	Checkbox
	Radio
	Button
	Toggle
	Tab
	Accordion
	Upload
	Label
)

var kindNames = []string{
	View:       "view",
	Text:       "text",
	Combo:      "combo",
	SelMulti:   "selMulti",
	DatePicker: "datePicker",
	Select:     "select",
	Checkbox:   "checkbox",
	Radio:      "radio",
	Button:     "button",
	Toggle:     "toggle",
	Tab:        "tab",
	Accordion:  "accordion",
	Upload:     "upload",
	Label:      "label",
}

func (k WidgetKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("WidgetKind(%d)", int(k))
}

// WidgetKinds returns every kind name in declaration order.
func WidgetKinds() []string {
	return append([]string(nil), kindNames[1:]...)
}

// ParseWidgetKind matches s case-insensitively. Returns def when nothing
// matches.
func ParseWidgetKind(s string, def WidgetKind) WidgetKind {
	for i := 1; i < len(kindNames); i++ {
		if strings.EqualFold(kindNames[i], s) {
			return WidgetKind(i)
		}
	}
	return def
}

// UnmarshalText implements encoding.TextUnmarshaler so kinds can be read
// from configuration.
func (k *WidgetKind) UnmarshalText(b []byte) error {
	v := ParseWidgetKind(string(b), 0)
	if v == 0 {
		return fmt.Errorf("unknown widget kind %q", string(b))
	}
	*k = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k WidgetKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

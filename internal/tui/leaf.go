package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cast"

	"dashkit/internal/gui"
	"dashkit/internal/ui"
)

// DateLayout is the format date pickers accept and display.
const DateLayout = "2006-01-02"

const (
	defaultInputWidth = 30
	defaultTextHeight = 3
	defaultPaneHeight = 20
	choiceWindow      = 8
	comboSuggestions  = 5
)

// output is a scrollable pane written by Write, DisplayChart and ShowGrid.
type output struct {
	base
	content   string
	maxHeight int
	vp        viewport.Model
}

func newOutput(b base, s gui.Spec, width int) *output {
	if s.Width > 0 {
		width = s.Width
	}
	h := s.Height
	if h <= 0 {
		h = defaultPaneHeight
	}
	o := &output{base: b, maxHeight: h, vp: viewport.New(width, 1)}
	if s.Default != nil {
		o.write(cast.ToString(s.Default), true)
	}
	return o
}

func (o *output) focusable() bool {
	return o.vp.TotalLineCount() > o.vp.Height
}

func (o *output) write(text string, clear bool) {
	switch {
	case clear:
		o.content = text
	case o.content == "":
		o.content = text
	default:
		o.content += "\n" + text
	}
	o.vp.SetContent(o.content)
	o.vp.Height = min(max(1, o.vp.TotalLineCount()), o.maxHeight)
	o.vp.GotoBottom()
}

func (o *output) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	o.vp, cmd = o.vp.Update(msg)
	return cmd
}

func (o *output) render() string {
	if o.content == "" {
		return ""
	}
	return ui.Frame(o.vp.View(), o.focused, true)
}

func (o *output) value() any { return o.content }

func (o *output) setValue(v any) (bool, error) {
	s := cast.ToString(v)
	if s == o.content {
		return false, nil
	}
	o.write(s, true)
	return true, nil
}

// label is static text.
type label struct {
	base
	text string
}

func newLabel(b base, s gui.Spec) *label {
	l := &label{base: b, text: b.desc}
	if s.Default != nil {
		l.text = cast.ToString(s.Default)
	}
	return l
}

func (l *label) focusable() bool { return false }
func (l *label) render() string  { return ui.Styles.Normal.Render(l.text) }
func (l *label) value() any      { return l.text }

func (l *label) write(text string, clear bool) {
	if clear || l.text == "" {
		l.text = text
		return
	}
	l.text += "\n" + text
}

func (l *label) setValue(v any) (bool, error) {
	s := cast.ToString(v)
	changed := s != l.text
	l.text = s
	return changed, nil
}

// text is a multi-line text area. Every edit reports the new value.
type text struct {
	base
	ta textarea.Model
}

func newText(b base, s gui.Spec) *text {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.Cursor.SetMode(cursor.CursorStatic)
	w, h := s.Width, s.Height
	if w <= 0 {
		w = defaultInputWidth
	}
	if h <= 0 {
		h = defaultTextHeight
	}
	ta.SetWidth(w)
	ta.SetHeight(h)
	ta.SetValue(cast.ToString(s.Default))
	ta.Blur()
	return &text{base: b, ta: ta}
}

func (t *text) capturesText() bool { return true }

func (t *text) setFocus(f bool) {
	t.focused = f
	if f {
		t.ta.Focus()
	} else {
		t.ta.Blur()
	}
}

func (t *text) update(msg tea.KeyMsg) tea.Cmd {
	before := t.ta.Value()
	var cmd tea.Cmd
	t.ta, cmd = t.ta.Update(msg)
	if v := t.ta.Value(); v != before {
		t.notify(v)
	}
	return cmd
}

func (t *text) render() string { return t.frame(t.ta.View()) }
func (t *text) value() any     { return t.ta.Value() }

func (t *text) setValue(v any) (bool, error) {
	s := cast.ToString(v)
	if s == t.ta.Value() {
		return false, nil
	}
	t.ta.SetValue(s)
	return true, nil
}

func newInput(s gui.Spec, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = placeholder
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Width = s.Width
	if in.Width <= 0 {
		in.Width = defaultInputWidth
	}
	return in
}

func focusInput(in *textinput.Model, f bool) {
	if f {
		in.Focus()
	} else {
		in.Blur()
	}
}

// date is an ISO date entry committed with enter. An empty entry clears
// the value.
type date struct {
	base
	in  textinput.Model
	val time.Time
	err string
}

func newDate(b base, s gui.Spec) (*date, error) {
	d := &date{base: b, in: newInput(s, "YYYY-MM-DD")}
	if s.Default != nil {
		if _, err := d.setValue(s.Default); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *date) capturesText() bool { return true }

func (d *date) setFocus(f bool) {
	d.focused = f
	focusInput(&d.in, f)
}

func (d *date) update(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		d.in, cmd = d.in.Update(msg)
		return cmd
	}
	raw := strings.TrimSpace(d.in.Value())
	var t time.Time
	if raw != "" {
		var err error
		if t, err = time.Parse(DateLayout, raw); err != nil {
			d.err = fmt.Sprintf("not a date: %q", raw)
			return nil
		}
	}
	d.err = ""
	if !t.Equal(d.val) {
		d.val = t
		d.notify(d.value())
	}
	return nil
}

func (d *date) render() string {
	out := d.in.View()
	if d.err != "" {
		out += "\n" + ui.Styles.Error.Render(d.err)
	}
	return d.frame(out)
}

func (d *date) value() any {
	if d.val.IsZero() {
		return nil
	}
	return d.val
}

func (d *date) setValue(v any) (bool, error) {
	var t time.Time
	switch v := v.(type) {
	case nil:
	case string:
		if v != "" {
			var err error
			if t, err = time.Parse(DateLayout, v); err != nil {
				return false, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, v)
			}
		}
	default:
		var err error
		if t, err = cast.ToTimeE(v); err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
	}
	d.err = ""
	d.in.SetValue("")
	if !t.IsZero() {
		d.in.SetValue(t.Format(DateLayout))
	}
	if t.Equal(d.val) {
		return false, nil
	}
	d.val = t
	return true, nil
}

// choice renders select, radio, toggle and multi-select widgets.
type choice struct {
	base
	kind     gui.WidgetKind
	options  []string
	cursor   int
	selected []bool
}

func newChoice(b base, s gui.Spec) (*choice, error) {
	c := &choice{base: b, kind: s.Kind}
	c.setOptions(s.Options)
	if s.Default != nil {
		if _, err := c.setValue(s.Default); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *choice) multi() bool      { return c.kind == gui.SelMulti }
func (c *choice) horizontal() bool { return c.kind == gui.Toggle }

func (c *choice) setOptions(options []string) {
	keep := make(map[string]bool)
	for i, sel := range c.selected {
		if sel {
			keep[c.options[i]] = true
		}
	}
	c.options = slices.Clone(options)
	c.selected = make([]bool, len(options))
	for i, o := range c.options {
		c.selected[i] = keep[o]
	}
	c.cursor = min(c.cursor, max(0, len(options)-1))
}

func (c *choice) clearSelected() bool {
	changed := false
	for i := range c.selected {
		changed = changed || c.selected[i]
		c.selected[i] = false
	}
	return changed
}

func (c *choice) update(msg tea.KeyMsg) tea.Cmd {
	if len(c.options) == 0 {
		return nil
	}
	switch msg.String() {
	case "up", "k", "left", "h":
		c.cursor = max(0, c.cursor-1)
	case "down", "j", "right", "l":
		c.cursor = min(len(c.options)-1, c.cursor+1)
	case "enter", " ":
		if c.multi() {
			c.selected[c.cursor] = !c.selected[c.cursor]
			c.notify(c.value())
			return nil
		}
		if c.selected[c.cursor] {
			return nil
		}
		c.clearSelected()
		c.selected[c.cursor] = true
		c.notify(c.value())
	}
	return nil
}

func (c *choice) value() any {
	var vals []string
	for i, sel := range c.selected {
		if sel {
			vals = append(vals, c.options[i])
		}
	}
	if c.multi() {
		if vals == nil {
			return []string{}
		}
		return vals
	}
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}

func (c *choice) setValue(v any) (bool, error) {
	var want []string
	switch v := v.(type) {
	case nil:
	case string:
		want = []string{v}
	default:
		vals, err := cast.ToStringSliceE(v)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		want = vals
	}
	if !c.multi() && len(want) > 1 {
		return false, fmt.Errorf("%w: %q takes one value", ErrInvalidValue, c.key)
	}
	next := make([]bool, len(c.options))
	for _, w := range want {
		i := slices.Index(c.options, w)
		if i < 0 {
			return false, fmt.Errorf("%w: %q is not an option of %q", ErrInvalidValue, w, c.key)
		}
		next[i] = true
		c.cursor = i
	}
	changed := !slices.Equal(next, c.selected)
	c.selected = next
	return changed, nil
}

func (c *choice) item(i int) string {
	opt := c.options[i]
	switch c.kind {
	case gui.Radio:
		if c.selected[i] {
			opt = "◉ " + opt
		} else {
			opt = "○ " + opt
		}
	case gui.SelMulti:
		if c.selected[i] {
			opt = "[x] " + opt
		} else {
			opt = "[ ] " + opt
		}
	}
	switch {
	case c.focused && i == c.cursor:
		return ui.Styles.Cursor.Render(opt)
	case c.selected[i]:
		return ui.Styles.Selected.Render(opt)
	case c.horizontal():
		return ui.Styles.Muted.Render(opt)
	}
	return ui.Styles.Normal.Render(opt)
}

func (c *choice) render() string {
	if len(c.options) == 0 {
		return c.frame(ui.Styles.Empty.Render("no options"))
	}
	if c.horizontal() {
		items := make([]string, len(c.options))
		for i := range c.options {
			items[i] = c.item(i)
		}
		return c.frame(strings.Join(items, " │ "))
	}
	lo := max(0, min(c.cursor-choiceWindow/2, len(c.options)-choiceWindow))
	hi := min(len(c.options), lo+choiceWindow)
	lines := make([]string, 0, hi-lo+2)
	if lo > 0 {
		lines = append(lines, ui.Styles.Muted.Render("↑"))
	}
	for i := lo; i < hi; i++ {
		lines = append(lines, c.item(i))
	}
	if hi < len(c.options) {
		lines = append(lines, ui.Styles.Muted.Render("↓"))
	}
	return c.frame(strings.Join(lines, "\n"))
}

// combo is a free text entry completed against its options on enter.
type combo struct {
	base
	in      textinput.Model
	options []string
	val     string
}

func newCombo(b base, s gui.Spec) *combo {
	c := &combo{base: b, in: newInput(s, ""), options: slices.Clone(s.Options)}
	c.setValue(s.Default)
	return c
}

func (c *combo) capturesText() bool { return true }

func (c *combo) setFocus(f bool) {
	c.focused = f
	focusInput(&c.in, f)
}

func (c *combo) setOptions(options []string) { c.options = slices.Clone(options) }

func (c *combo) clearSelected() bool {
	changed := c.val != ""
	c.val = ""
	c.in.SetValue("")
	return changed
}

// matches returns the options starting with prefix, ignoring case.
func (c *combo) matches(prefix string) []string {
	var out []string
	p := strings.ToLower(prefix)
	for _, o := range c.options {
		if strings.HasPrefix(strings.ToLower(o), p) {
			out = append(out, o)
		}
	}
	return out
}

func (c *combo) update(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		c.in, cmd = c.in.Update(msg)
		return cmd
	}
	v := c.in.Value()
	if m := c.matches(v); v != "" && len(m) == 1 {
		v = m[0]
		c.in.SetValue(v)
		c.in.CursorEnd()
	}
	if v != c.val {
		c.val = v
		c.notify(v)
	}
	return nil
}

func (c *combo) render() string {
	out := c.in.View()
	if c.focused {
		m := c.matches(c.in.Value())
		if len(m) > comboSuggestions {
			m = append(m[:comboSuggestions], "…")
		}
		if len(m) > 0 {
			out += "\n" + ui.Styles.Muted.Render(strings.Join(m, "  "))
		}
	}
	return c.frame(out)
}

func (c *combo) value() any { return c.val }

func (c *combo) setValue(v any) (bool, error) {
	s := cast.ToString(v)
	c.in.SetValue(s)
	if s == c.val {
		return false, nil
	}
	c.val = s
	return true, nil
}

// checkbox toggles a boolean with enter or space.
type checkbox struct {
	base
	val bool
}

func newCheckbox(b base, s gui.Spec) (*checkbox, error) {
	c := &checkbox{base: b}
	if s.Default != nil {
		if _, err := c.setValue(s.Default); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *checkbox) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", " ":
		c.val = !c.val
		c.notify(c.val)
	}
	return nil
}

func (c *checkbox) render() string {
	box := "[ ] "
	if c.val {
		box = "[x] "
	}
	line := box + c.desc
	if c.focused {
		return ui.Styles.Cursor.Render(line)
	}
	return ui.Styles.Normal.Render(line)
}

func (c *checkbox) value() any { return c.val }

func (c *checkbox) setValue(v any) (bool, error) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	changed := b != c.val
	c.val = b
	return changed, nil
}

// button reports its description when pressed.
type button struct {
	base
}

func (b *button) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", " ":
		b.notify(b.desc)
	}
	return nil
}

func (b *button) render() string {
	if b.focused {
		return ui.Styles.FieldFocus.Render(ui.Styles.Selected.Render(b.desc))
	}
	return ui.Styles.Field.Render(b.desc)
}

func (b *button) value() any { return b.desc }

// setValue relabels the button. Relabelling is not a press.
func (b *button) setValue(v any) (bool, error) {
	b.desc = cast.ToString(v)
	return false, nil
}

// upload reads the file at the entered path on enter.
type upload struct {
	base
	in     textinput.Model
	accept []string
	file   *gui.File
	err    string
}

func newUpload(b base, s gui.Spec) *upload {
	u := &upload{base: b, in: newInput(s, "path/to/file")}
	for _, ext := range strings.Split(s.Accept, ",") {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			u.accept = append(u.accept, ext)
		}
	}
	return u
}

func (u *upload) capturesText() bool { return true }

func (u *upload) setFocus(f bool) {
	u.focused = f
	focusInput(&u.in, f)
}

func (u *upload) accepts(path string) bool {
	if len(u.accept) == 0 {
		return true
	}
	return slices.Contains(u.accept, strings.ToLower(filepath.Ext(path)))
}

func (u *upload) update(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		u.in, cmd = u.in.Update(msg)
		return cmd
	}
	path := strings.TrimSpace(u.in.Value())
	if path == "" {
		return nil
	}
	if !u.accepts(path) {
		u.err = "accepts " + strings.Join(u.accept, ", ")
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		u.err = err.Error()
		return nil
	}
	u.err = ""
	u.file = &gui.File{Name: filepath.Base(path), Data: data}
	u.notify(*u.file)
	return nil
}

func (u *upload) render() string {
	out := u.in.View()
	switch {
	case u.err != "":
		out += "\n" + ui.Styles.Error.Render(u.err)
	case u.file != nil:
		out += "\n" + ui.Styles.Muted.Render(fmt.Sprintf("%s (%d bytes)", u.file.Name, len(u.file.Data)))
	}
	return u.frame(out)
}

func (u *upload) value() any {
	if u.file == nil {
		return nil
	}
	return *u.file
}

func (u *upload) setValue(v any) (bool, error) {
	switch v := v.(type) {
	case nil:
		changed := u.file != nil
		u.file = nil
		return changed, nil
	case gui.File:
		u.file = &v
		return true, nil
	}
	return false, fmt.Errorf("%w: upload takes a gui.File", ErrInvalidValue)
}

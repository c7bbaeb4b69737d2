package pages

import (
	"bytes"
	"context"
	"fmt"

	"dashkit/internal/frame"
	"dashkit/internal/gui"
)

// Controls shows one widget of every leaf kind. Changes are written to the
// log pane; an uploaded CSV file is previewed as a grid.
func (p *Pages) Controls(ctx context.Context, g *gui.GUI) error {
	logChange := func(key string, v any) {
		g.Logf("%s = %v", key, v)
	}
	err := addAll(g, []widget{
		{"name", gui.Spec{Kind: gui.Text, Desc: "Name", Height: 2, OnChange: logChange}},
		{"when", gui.Spec{Kind: gui.DatePicker, Desc: "Date", OnChange: logChange}},
		{"fruit", gui.Spec{Kind: gui.Select, Desc: "Fruit", Options: []string{"apple", "banana", "cherry"}, OnChange: logChange}},
		{"city", gui.Spec{Kind: gui.Combo, Desc: "City", Options: []string{"Amsterdam", "Berlin", "Boston"}, OnChange: logChange}},
		{"size", gui.Spec{Kind: gui.Radio, Desc: "Size", Options: []string{"S", "M", "L"}, Default: "M", OnChange: logChange}},
		{"tags", gui.Spec{Kind: gui.SelMulti, Desc: "Tags", Options: []string{"red", "green", "blue"}, OnChange: logChange}},
		{"period", gui.Spec{Kind: gui.Toggle, Desc: "Period", Options: []string{"day", "week", "month"}, Default: "day", OnChange: logChange}},
		{"agree", gui.Spec{Kind: gui.Checkbox, Desc: "I agree", Default: false, OnChange: logChange}},
		{"file", gui.Spec{Kind: gui.Upload, Desc: "CSV file", Accept: ".csv", OnChange: func(_ string, v any) {
			report(g, "upload", previewUpload(g, v))
		}}},
		{"clear", gui.Spec{Kind: gui.Button, Desc: "Clear log", OnChange: func(string, any) {
			g.Log("", true)
		}}},
	})
	if err != nil {
		return err
	}
	if _, err := g.View("preview"); err != nil {
		return err
	}
	_, err = g.Accordion("more", []gui.Entry{
		{Title: "Upload", Key: "file"},
		{Title: "Preview", Key: "preview"},
	}, nil)
	if err != nil {
		return err
	}
	return g.Refresh(gui.Group("",
		gui.Group("h.inputs",
			gui.Leaf("v.left", "name", "when", "fruit", "city"),
			gui.Leaf("v.right", "size", "tags", "period", "agree"),
		),
		gui.Leaf("v.more", "more", "clear", gui.LogKey),
	))
}

func previewUpload(g *gui.GUI, v any) error {
	file, ok := v.(gui.File)
	if !ok {
		return fmt.Errorf("unexpected upload value %T", v)
	}
	g.Logf("file = %s (%d bytes)", file.Name, len(file.Data))
	f, err := frame.FromCSV(bytes.NewReader(file.Data))
	if err != nil {
		return err
	}
	return g.ShowGrid("preview", f)
}

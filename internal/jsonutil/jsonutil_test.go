package jsonutil

import (
	"testing"
)

func TestUnmarshalWithContext(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "valid JSON",
			data:    []byte(`{"stack":true}`),
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			data:    []byte(`not json`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v map[string]any
			err := UnmarshalWithContext(tt.data, &v, "layout options")
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalWithContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !GetBool(v, "stack") {
				t.Errorf("UnmarshalWithContext() stack = %v, want true", v["stack"])
			}
		})
	}
}

func TestMarshalIndentWithContext(t *testing.T) {
	data, err := MarshalIndentWithContext(map[string]int{"rows": 2}, "figure")
	if err != nil {
		t.Fatalf("MarshalIndentWithContext() error = %v", err)
	}
	if string(data) != "{\n  \"rows\": 2\n}" {
		t.Errorf("MarshalIndentWithContext() = %q", data)
	}

	if _, err := MarshalIndentWithContext(make(chan int), "figure"); err == nil {
		t.Error("MarshalIndentWithContext(chan) expected error")
	}
}

func TestHasAll(t *testing.T) {
	m := map[string]any{"orientation": "h", "xanchor": "left", "yanchor": nil}
	if !HasAll(m, "orientation", "xanchor", "yanchor") {
		t.Error("HasAll() = false, want true (nil values still count as present)")
	}
	if HasAll(m, "orientation", "x") {
		t.Error("HasAll() = true, want false for missing key")
	}
	if !HasAll(m) {
		t.Error("HasAll() with no keys should be true")
	}
}

func TestGetString(t *testing.T) {
	m := map[string]any{
		"str":  "value",
		"num":  42.0,
		"bool": true,
		"nil":  nil,
	}

	tests := []struct {
		key  string
		want string
	}{
		{"str", "value"},
		{"num", ""},
		{"bool", ""},
		{"nil", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetString(m, tt.key); got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	m := map[string]any{
		"t":     true,
		"f":     false,
		"one":   1,
		"zero":  0.0,
		"true":  "true",
		"yes":   "yes",
		"off":   "false",
		"zeros": "0",
		"blank": " ",
		"nil":   nil,
		"list":  []any{1},
		"empty": []any{},
		"obj":   map[string]any{"a": 1},
		"chan":  make(chan int),
	}

	tests := []struct {
		key  string
		want bool
	}{
		{"t", true},
		{"f", false},
		{"one", true},
		{"zero", false},
		{"true", true},
		{"yes", true},
		{"off", false},
		{"zeros", false},
		{"blank", false},
		{"nil", false},
		{"list", true},
		{"empty", false},
		{"obj", true},
		{"chan", false},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetBool(m, tt.key); got != tt.want {
				t.Errorf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetFloat(t *testing.T) {
	m := map[string]any{"x": 0.5, "y": "1.1", "bad": "left", "n": 3}

	if v, ok := GetFloat(m, "x"); !ok || v != 0.5 {
		t.Errorf("GetFloat(x) = %v, %v", v, ok)
	}
	if v, ok := GetFloat(m, "y"); !ok || v != 1.1 {
		t.Errorf("GetFloat(y) = %v, %v", v, ok)
	}
	if v, ok := GetFloat(m, "n"); !ok || v != 3 {
		t.Errorf("GetFloat(n) = %v, %v", v, ok)
	}
	if _, ok := GetFloat(m, "bad"); ok {
		t.Error("GetFloat(bad) ok = true, want false")
	}
	if _, ok := GetFloat(m, "missing"); ok {
		t.Error("GetFloat(missing) ok = true, want false")
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"string", "hello", "hello"},
		{"float64 whole", 42.0, "42"},
		{"float64 decimal", 3.14, "3.14"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"nil", nil, ""},
		{"int", 123, "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToString(tt.v); got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

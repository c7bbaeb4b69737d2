package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		w    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"日本語テキスト", 5, "日本…"},
		{"abc", 0, ""},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.w); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	if got := PadRightVisual("ab", 4); got != "ab  " {
		t.Errorf("PadRightVisual = %q", got)
	}
	if got := PadLeftVisual("ab", 4); got != "  ab" {
		t.Errorf("PadLeftVisual = %q", got)
	}
	if got := PadRightVisual("日本", 5); VisualWidth(got) != 5 {
		t.Errorf("PadRightVisual wide = %q (%d cols)", got, VisualWidth(got))
	}
	if got := PadLeftVisual("abcdef", 3); got != "ab…" {
		t.Errorf("PadLeftVisual overflow = %q", got)
	}
}

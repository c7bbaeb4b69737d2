package menu

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashkit/internal/gui"
)

func TestParseLayouts(t *testing.T) {
	data := []byte(`
pages.prices:
  h.1: [a, b]
  v.2: c
pages.volume:
  tab.1: [x, y]
`)
	got, err := ParseLayouts(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	prices := got["pages.prices"]
	require.Len(t, prices.Children, 2)
	assert.Equal(t, "h.1", prices.Children[0].Key)
	assert.Equal(t, []string{"a", "b"}, prices.Children[0].Widgets)
	assert.Equal(t, gui.TabbedNode, got["pages.volume"].Children[0].Kind)
}

func TestParseLayouts_Empty(t *testing.T) {
	got, err := ParseLayouts(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseLayouts_Errors(t *testing.T) {
	_, err := ParseLayouts([]byte("- a\n- b\n"))
	assert.Error(t, err)

	_, err = ParseLayouts([]byte("pages.x:\n  v.1: [[a]]\n"))
	assert.Error(t, err)
}

func TestWatchLayouts_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pages.a:\n  v.1: [x]\n"), 0o644))

	got := make(chan map[string]*gui.Node, 4)
	w, err := WatchLayouts(context.Background(), path, 20*time.Millisecond, nil, func(m map[string]*gui.Node) {
		got <- m
	})
	require.NoError(t, err)
	defer w.Close()

	// unrelated files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("pages.b:\n  v.1: [y]\n"), 0o644))

	select {
	case m := <-got:
		assert.Contains(t, m, "pages.b")
	case <-time.After(5 * time.Second):
		t.Fatal("layouts were not reloaded")
	}
}

func TestWatchLayouts_SkipsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pages.a:\n  v.1: [x]\n"), 0o644))

	got := make(chan map[string]*gui.Node, 4)
	w, err := WatchLayouts(context.Background(), path, 20*time.Millisecond, nil, func(m map[string]*gui.Node) {
		got <- m
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("- not\n- a mapping\n"), 0o644))
	select {
	case <-got:
		t.Fatal("invalid layouts delivered")
	case <-time.After(300 * time.Millisecond):
	}
}

package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guiWithViews(keys ...string) (*GUI, *fakeToolkit) {
	g, tk := newTestGUI()
	for _, k := range keys {
		if _, err := g.View(k); err != nil {
			panic(err)
		}
	}
	return g, tk
}

func TestSetView_Composition(t *testing.T) {
	tests := []struct {
		name   string
		layout *Node
		top    string
		want   string
	}{
		{
			name:   "menu bar",
			layout: Group("", Group("h.1", Tabbed("tab.1", Entry{"A", "a"}, Entry{"B", "b"}))),
			want:   "V[H[T:tab.1(A=a B=b)]]",
		},
		{
			name:   "horizontal hint puts leaves side by side",
			layout: Group("", Leaf("h.controls", "a", "b"), Leaf("v.out", "c")),
			top:    "h.top",
			want:   "H[H[a b] V[c]]",
		},
		{
			name:   "leaf orientation follows its own key",
			layout: Group("", Leaf("h.controls", "a", "b"), Leaf("v.out", "c")),
			want:   "V[H[a b] V[c]]",
		},
		{
			name:   "tab and vertical leaf share a box",
			layout: Group("", Tabbed("tab.x", Entry{"A", "a"}), Leaf("v.1", "b")),
			want:   "B[H[T:tab.x(A=a)] V[V[b]]]",
		},
		{
			name:   "group recurses with its own key as hint",
			layout: Group("", Group("h.row", Leaf("v.l", "a"), Leaf("h.r", "b", "c"))),
			want:   "V[H[V[a] H[b c]]]",
		},
		{
			name:   "named root is composed as a child",
			layout: Group("h.row", Leaf("v.l", "a")),
			want:   "V[H[V[a]]]",
		},
		{
			name:   "empty layout",
			layout: Group(""),
			want:   "H[]",
		},
		{
			name:   "unknown widgets are skipped",
			layout: Group("", Leaf("v.1", "a", "missing")),
			want:   "V[V[a]]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := guiWithViews("a", "b", "c")
			h, err := g.SetView(tt.layout, tt.top)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.(*fakeWidget).String())
		})
	}
}

func TestSetView_TabRegistersKey(t *testing.T) {
	g, _ := guiWithViews("a")
	layout := Group("", Tabbed("tab.1", Entry{"A", "a"}))

	_, err := g.SetView(layout, "")
	require.NoError(t, err)
	_, ok := g.Get("tab.1")
	assert.True(t, ok)

	_, err = g.SetView(layout, "")
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestRefresh_RebuildsTabs(t *testing.T) {
	g, tk := guiWithViews("a", "b")
	layout := Group("", Group("h.1", Tabbed("tab.1", Entry{"A", "a"})))

	require.NoError(t, g.Refresh(layout))
	first := tk.displayed
	require.NoError(t, g.Refresh(nil))
	assert.NotSame(t, first, tk.displayed)
	assert.Equal(t, "V[H[T:tab.1(A=a)]]", tk.displayed.String())

	require.NoError(t, g.Refresh(Group("", Leaf("v.1", "b"))))
	_, ok := g.Get("tab.1")
	assert.False(t, ok, "tabs of a replaced layout are dropped")
	assert.Same(t, tk.displayed, g.Root().(*fakeWidget))
}

func TestRefresh_NoLayout(t *testing.T) {
	g, _ := newTestGUI()
	assert.Error(t, g.Refresh(nil))
}

func TestParseLayout(t *testing.T) {
	src := []byte(`
h.1:
  tab.1:
    Markets: markets
    Rates: rates
v.main:
  - out
  - log
h.buttons: go
tab.list: [x, y]
v.empty:
`)
	root, err := ParseLayout(src)
	require.NoError(t, err)
	require.Equal(t, GroupNode, root.Kind)
	require.Len(t, root.Children, 5)

	h1 := root.Children[0]
	assert.Equal(t, GroupNode, h1.Kind)
	require.Len(t, h1.Children, 1)
	assert.Equal(t, Tabbed("tab.1", Entry{"Markets", "markets"}, Entry{"Rates", "rates"}), h1.Children[0])

	assert.Equal(t, Leaf("v.main", "out", "log"), root.Children[1])
	assert.Equal(t, Leaf("h.buttons", "go"), root.Children[2])
	assert.Equal(t, Tabbed("tab.list", Entry{"x", "x"}, Entry{"y", "y"}), root.Children[3])
	assert.Equal(t, Leaf("v.empty"), root.Children[4])
}

func TestParseLayout_Errors(t *testing.T) {
	tests := map[string]string{
		"top level list":     "- a\n- b\n",
		"nested map in list": "v.1:\n  - a\n  - b: c\n",
		"tab of maps":        "tab.1:\n  A:\n    b: c\n",
		"bad yaml":           "a: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLayout([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestParseLayout_Empty(t *testing.T) {
	root, err := ParseLayout(nil)
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}

func TestNodeString(t *testing.T) {
	root := Group("", Group("h.1", Tabbed("tab.1", Entry{"A", "a"})), Leaf("v.2", "b", "c"))
	want := "<root>:\n" +
		"  h.1:\n" +
		"    tab.1: tabs [A=a]\n" +
		"  v.2: vertical [b, c]\n"
	assert.Equal(t, want, root.String())
}

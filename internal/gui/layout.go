package gui

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Key prefixes of the layout naming convention.
const (
	HorizontalPrefix = "h."
	TabPrefix        = "tab."
	// DefaultHint is the orientation hint of the top level.
	DefaultHint = "v.>>"
)

// NodeKind is the variant of a layout node.
type NodeKind int

const (
	// LeafNode groups widget keys in one box.
	LeafNode NodeKind = iota + 1
	// GroupNode nests further nodes.
	GroupNode
	// TabbedNode is a tab container of titled widgets.
	TabbedNode
)

func (k NodeKind) String() string {
	switch k {
	case LeafNode:
		return "leaf"
	case GroupNode:
		return "group"
	case TabbedNode:
		return "tabbed"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is one named entry of a layout tree. Keys starting with "h." lay
// out horizontally, everything else vertically.
type Node struct {
	Key  string
	Kind NodeKind
	// Widgets holds the widget keys of a leaf.
	Widgets []string
	// Tabs holds the entries of a tabbed node.
	Tabs []Entry
	// Children holds the nodes of a group.
	Children []*Node
}

// Leaf returns a node boxing the named widgets.
func Leaf(key string, widgets ...string) *Node {
	return &Node{Key: key, Kind: LeafNode, Widgets: widgets}
}

// Group returns a node nesting children. Its key is the orientation hint
// of the children.
func Group(key string, children ...*Node) *Node {
	return &Node{Key: key, Kind: GroupNode, Children: children}
}

// Tabbed returns a tab container node.
func Tabbed(key string, tabs ...Entry) *Node {
	return &Node{Key: key, Kind: TabbedNode, Tabs: tabs}
}

// Horizontal reports whether key selects horizontal layout.
func Horizontal(key string) bool {
	return strings.HasPrefix(key, HorizontalPrefix)
}

// ParseLayout reads a YAML mapping into a layout tree rooted at an unnamed
// group. Key order is preserved. Keys starting with "tab." become tabbed
// nodes (a mapping of title to widget key, or a list of widget keys titled
// by themselves). Scalars and lists of scalars become leaves. Mappings
// become groups.
func ParseLayout(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if doc.Kind == 0 {
		return Group(""), nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("parse layout: expected a single document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse layout: line %d: top level must be a mapping", root.Line)
	}
	children, err := parseMapping(root)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Group("", children...), nil
}

func parseMapping(m *yaml.Node) ([]*Node, error) {
	var out []*Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i].Value, m.Content[i+1]
		n, err := parseNode(key, val)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseNode(key string, val *yaml.Node) (*Node, error) {
	if strings.HasPrefix(key, TabPrefix) {
		tabs, err := parseTabs(key, val)
		if err != nil {
			return nil, err
		}
		return Tabbed(key, tabs...), nil
	}
	switch val.Kind {
	case yaml.ScalarNode:
		if val.Tag == "!!null" {
			return Leaf(key), nil
		}
		return Leaf(key, val.Value), nil
	case yaml.SequenceNode:
		keys, err := scalars(key, val)
		if err != nil {
			return nil, err
		}
		return Leaf(key, keys...), nil
	case yaml.MappingNode:
		children, err := parseMapping(val)
		if err != nil {
			return nil, err
		}
		return Group(key, children...), nil
	}
	return nil, fmt.Errorf("line %d: %q: unsupported value", val.Line, key)
}

func parseTabs(key string, val *yaml.Node) ([]Entry, error) {
	switch val.Kind {
	case yaml.MappingNode:
		var tabs []Entry
		for i := 0; i+1 < len(val.Content); i += 2 {
			t, v := val.Content[i], val.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: %q: tab %q must name a widget", v.Line, key, t.Value)
			}
			tabs = append(tabs, Entry{Title: t.Value, Key: v.Value})
		}
		return tabs, nil
	case yaml.SequenceNode:
		keys, err := scalars(key, val)
		if err != nil {
			return nil, err
		}
		tabs := make([]Entry, len(keys))
		for i, k := range keys {
			tabs[i] = Entry{Title: k, Key: k}
		}
		return tabs, nil
	case yaml.ScalarNode:
		if val.Tag == "!!null" {
			return nil, nil
		}
		return []Entry{{Title: val.Value, Key: val.Value}}, nil
	}
	return nil, fmt.Errorf("line %d: %q: unsupported tab value", val.Line, key)
}

func scalars(key string, seq *yaml.Node) ([]string, error) {
	out := make([]string, 0, len(seq.Content))
	for _, item := range seq.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %q: list items must be widget keys", item.Line, key)
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// String renders the tree one node per line, indented by depth.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	name := n.Key
	if name == "" {
		name = "<root>"
	}
	switch n.Kind {
	case LeafNode:
		fmt.Fprintf(b, "%s%s: %s [%s]\n", indent, name, orientation(n.Key), strings.Join(n.Widgets, ", "))
	case TabbedNode:
		titles := make([]string, len(n.Tabs))
		for i, t := range n.Tabs {
			titles[i] = t.Title + "=" + t.Key
		}
		fmt.Fprintf(b, "%s%s: tabs [%s]\n", indent, name, strings.Join(titles, ", "))
	case GroupNode:
		fmt.Fprintf(b, "%s%s:\n", indent, name)
		for _, c := range n.Children {
			c.write(b, depth+1)
		}
	}
}

func orientation(key string) string {
	if Horizontal(key) {
		return "horizontal"
	}
	return "vertical"
}

// SetView composes layout into nested boxes and returns the root handle.
// top is the orientation hint of the top level; empty means DefaultHint.
//
// Tabbed nodes always join the horizontal group. A leaf is boxed
// horizontally when its own key starts with "h.", and joins the horizontal
// group when the enclosing hint does. Groups recurse with their own key as
// the hint. When both groups are non-empty the result holds them side by
// side; otherwise it is whichever group is non-empty.
func (g *GUI) SetView(layout *Node, top string) (Handle, error) {
	if top == "" {
		top = DefaultHint
	}
	if layout.Kind == GroupNode && layout.Key == "" {
		return g.compose(layout.Children, top)
	}
	return g.compose([]*Node{layout}, top)
}

func (g *GUI) compose(nodes []*Node, hint string) (Handle, error) {
	var hs, vs []Handle
	for _, n := range nodes {
		var h Handle
		switch n.Kind {
		case TabbedNode:
			t, err := g.Tab(n.Key, n.Tabs, nil)
			if err != nil {
				return nil, err
			}
			g.tabsMade = append(g.tabsMade, n.Key)
			hs = append(hs, t)
			continue
		case LeafNode:
			if Horizontal(n.Key) {
				h = g.HBox(n.Widgets...)
			} else {
				h = g.VBox(n.Widgets...)
			}
		case GroupNode:
			var err error
			if h, err = g.compose(n.Children, n.Key); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("layout %q: unknown node kind %s", n.Key, n.Kind)
		}
		if Horizontal(hint) {
			hs = append(hs, h)
		} else {
			vs = append(vs, h)
		}
	}
	switch {
	case len(hs) > 0 && len(vs) > 0:
		return g.tk.Box([]Handle{g.tk.HBox(hs), g.tk.VBox(vs)}), nil
	case len(vs) > 0:
		return g.tk.VBox(vs), nil
	default:
		return g.tk.HBox(hs), nil
	}
}

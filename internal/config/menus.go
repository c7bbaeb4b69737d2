package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Menu is a top menu with its ordered sub menus.
type Menu struct {
	Name  string
	Items []MenuItem
}

// MenuItem names the page builder run for a sub menu.
type MenuItem struct {
	Name     string
	Module   string `yaml:"module"`
	Function string `yaml:"function"`
}

// Page returns the page registry key, "module.function".
func (i MenuItem) Page() string { return i.Module + "." + i.Function }

// Item returns the sub menu named name.
func (m Menu) Item(name string) (MenuItem, bool) {
	for _, it := range m.Items {
		if it.Name == name {
			return it, true
		}
	}
	return MenuItem{}, false
}

// ItemNames returns the sub menu names in order.
func (m Menu) ItemNames() []string {
	out := make([]string, len(m.Items))
	for i, it := range m.Items {
		out[i] = it.Name
	}
	return out
}

// parseMenus reads the ordered menus mapping of a config file. An env
// section with its own menus replaces the base menus.
func parseMenus(data []byte, env string) ([]Menu, error) {
	var doc struct {
		Menus yaml.Node            `yaml:"menus"`
		Envs  map[string]yaml.Node `yaml:"envs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menus: %w", err)
	}
	node := &doc.Menus
	if sec, ok := doc.Envs[env]; ok && env != "" {
		var envDoc struct {
			Menus yaml.Node `yaml:"menus"`
		}
		if err := sec.Decode(&envDoc); err != nil {
			return nil, fmt.Errorf("parse menus of env %q: %w", env, err)
		}
		if envDoc.Menus.Kind != 0 {
			node = &envDoc.Menus
		}
	}
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("menus: line %d: expected a mapping", node.Line)
	}

	var menus []Menu
	for i := 0; i+1 < len(node.Content); i += 2 {
		top, items := node.Content[i], node.Content[i+1]
		if items.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("menu %q: line %d: expected a mapping of sub menus", top.Value, items.Line)
		}
		m := Menu{Name: top.Value}
		for j := 0; j+1 < len(items.Content); j += 2 {
			var it MenuItem
			if err := items.Content[j+1].Decode(&it); err != nil {
				return nil, fmt.Errorf("menu %q/%q: %w", top.Value, items.Content[j].Value, err)
			}
			it.Name = items.Content[j].Value
			m.Items = append(m.Items, it)
		}
		menus = append(menus, m)
	}
	return menus, nil
}

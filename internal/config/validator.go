package config

import (
	"fmt"
	"slices"
	"strings"

	"dashkit/internal/logging"
)

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// UITypes lists the built-in toolkits.
func UITypes() []string { return []string{"tui"} }

// Validate returns every invalid setting of c.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	if !slices.Contains(UITypes(), c.UI.Type) {
		errs = append(errs, ValidationError{"ui.type", c.UI.Type, "must be one of " + strings.Join(UITypes(), ", ")})
	}
	if c.UI.Width < 20 {
		errs = append(errs, ValidationError{"ui.width", c.UI.Width, "must be at least 20"})
	}
	if !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errs = append(errs, ValidationError{"logging.level", c.Logging.Level, "must be one of " + strings.Join(logging.ValidLevels(), ", ")})
	}
	if c.Chart.Width <= 0 {
		errs = append(errs, ValidationError{"chart.width", c.Chart.Width, "must be positive"})
	}
	if c.Chart.Height <= 0 {
		errs = append(errs, ValidationError{"chart.height", c.Chart.Height, "must be positive"})
	}
	seen := make(map[string]bool)
	for _, m := range c.Menus {
		if seen[m.Name] {
			errs = append(errs, ValidationError{"menus", m.Name, "duplicate top menu"})
		}
		seen[m.Name] = true
		if len(m.Items) == 0 {
			errs = append(errs, ValidationError{"menus." + m.Name, nil, "has no sub menus"})
		}
		for _, it := range m.Items {
			if it.Module == "" || it.Function == "" {
				errs = append(errs, ValidationError{"menus." + m.Name + "." + it.Name, it.Page(), "needs module and function"})
			}
		}
	}
	return errs
}

// Package ui provides the shared terminal primitives of the dashkit
// toolkit: focus rotation, leader-key bindings with a help bar, and the
// lipgloss theme.
package ui

// Package chart assembles drawable traces into a subplot grid descriptor.
//
// A Chart accumulates traces keyed by 1-indexed (row, col) cells. Each cell
// remembers its kind (xy or table) from its first trace and whether any of
// its traces uses the secondary y axis. Final turns the accumulated cells
// into a Figure: per-row cell specs, row-major subplot titles, spacing and
// per-cell axis settings. Rendering the Figure is left to collaborators
// (see internal/plot and internal/tui).
package chart

package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key sequences to commands.
// Sequences use spacemacs-style notation: "SPC" for space, "SPC m n" for
// SPC then m then n. Single keys: "esc", "ctrl+c", "enter".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	groups       map[string]string // first key after SPC -> group label
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		groups:       make(map[string]string),
	}
}

// Bind registers a key sequence, overwriting any previous binding.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers a key sequence with a help description.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
}

// Group labels a leader prefix that opens further bindings, e.g.
// Group("m", "Menu") shows "Menu" for "SPC m".
func (r *KeybindRegistry) Group(key, label string) {
	r.groups[key] = label
}

// Lookup returns the command bound to seq, or nil.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)]
}

// HasPrefix reports whether a longer binding starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// LeaderHints returns the next keys after currentSeq with their labels.
// An empty currentSeq means "SPC". Keys opening further bindings show
// their group label.
func (r *KeybindRegistry) LeaderHints(currentSeq string) map[string]string {
	out := make(map[string]string)
	prefix := "SPC "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) {
			continue
		}
		rest := strings.Fields(strings.TrimPrefix(seq, prefix))
		if len(rest) == 0 {
			continue
		}
		k := rest[0]
		if len(rest) > 1 {
			if label, ok := r.groups[k]; ok {
				out[k] = label
			} else {
				out[k] = k + "…"
			}
			continue
		}
		if d, ok := r.descriptions[seq]; ok {
			out[k] = d
		} else {
			out[k] = seq
		}
	}
	return out
}

func normalizeSeq(seq string) string {
	if seq == " " {
		return "SPC"
	}
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler tracks leader-key state and dispatches to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string // tea.KeyMsg.String() of the leader, " " for space
	LeaderWaiting bool
	Buffer        []string
}

// NewKeyHandler creates a handler with space as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg, LeaderKey: " "}
}

// Reset leaves leader mode.
func (h *KeyHandler) Reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// Sequence returns the keys typed since the leader.
func (h *KeyHandler) Sequence() string {
	return strings.Join(h.Buffer, " ")
}

// Handle processes a key. consumed reports whether the key belonged to
// the keybind system; cmd is the bound command, if any.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if s == "esc" {
		if h.LeaderWaiting {
			h.Reset()
			return true, nil
		}
		return false, nil
	}

	if !h.LeaderWaiting {
		if s == h.LeaderKey {
			h.LeaderWaiting = true
			h.Buffer = []string{"SPC"}
			return true, nil
		}
		if c := h.Registry.Lookup(keyToSeqPart(s)); c != nil {
			return true, c
		}
		return false, nil
	}

	h.Buffer = append(h.Buffer, keyToSeqPart(s))
	seq := h.Sequence()
	if c := h.Registry.Lookup(seq); c != nil {
		h.Reset()
		return true, c
	}
	if !h.Registry.HasPrefix(seq) {
		h.Reset()
	}
	return true, nil
}

// KeyMap adapts the leader hints to bubbles/help.
type KeyMap struct {
	handler *KeyHandler
}

// NewKeyMap creates a help.KeyMap over the handler's current sequence.
func NewKeyMap(h *KeyHandler) help.KeyMap {
	return &KeyMap{handler: h}
}

// ShortHelp returns one binding per next key, sorted, plus esc.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.handler == nil || km.handler.Registry == nil {
		return nil
	}
	seq := ""
	if len(km.handler.Buffer) > 0 {
		seq = km.handler.Sequence()
	}
	hints := km.handler.Registry.LeaderHints(seq)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp returns the short help as a single column.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}

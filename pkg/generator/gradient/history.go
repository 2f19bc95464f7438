package gradient

import "math/rand/v2"

// HistoryLimit is the number of gradients kept by a History.
const HistoryLimit = 20

// History remembers the most recent gradients, newest first. Only
// randomize and preset actions are recorded, not individual edits.
type History struct {
	entries []*Gradient
}

// Push records a snapshot of g at the front, evicting the oldest entry once
// the history holds HistoryLimit gradients.
func (h *History) Push(g *Gradient) {
	h.entries = append([]*Gradient{g.Clone()}, h.entries...)
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[:HistoryLimit]
	}
}

// Len returns the number of remembered gradients.
func (h *History) Len() int { return len(h.entries) }

// At returns a copy of the i-th most recent gradient.
func (h *History) At(i int) (*Gradient, bool) {
	if i < 0 || i >= len(h.entries) {
		return nil, false
	}
	return h.entries[i].Clone(), true
}

// Entries returns copies of all remembered gradients, newest first.
func (h *History) Entries() []*Gradient {
	out := make([]*Gradient, len(h.entries))
	for i, g := range h.entries {
		out[i] = g.Clone()
	}
	return out
}

// Editor couples a gradient with its history so randomize and preset
// actions are recorded automatically.
type Editor struct {
	Gradient *Gradient
	History  History
}

// NewEditor starts an editor on g.
func NewEditor(g *Gradient) *Editor {
	return &Editor{Gradient: g}
}

// Randomize randomizes the gradient and records the result.
func (e *Editor) Randomize(rng *rand.Rand) {
	e.Gradient.Randomize(rng)
	e.History.Push(e.Gradient)
}

// ApplyPreset applies the named preset and records the result.
func (e *Editor) ApplyPreset(name string) error {
	if err := e.Gradient.ApplyPreset(name); err != nil {
		return err
	}
	e.History.Push(e.Gradient)
	return nil
}

// Restore makes the i-th history entry current without recording it again.
func (e *Editor) Restore(i int) bool {
	g, ok := e.History.At(i)
	if ok {
		e.Gradient = g
	}
	return ok
}

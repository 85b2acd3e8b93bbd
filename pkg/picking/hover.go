package picking

import "github.com/ludex/constel/pkg/buffers"

// Hover tracks which node is under the pointer and applies the visual
// emphasis by scaling that node's size entry in place. The original
// size is preserved here, not in the buffers, so restoration is exact
// and the effect fully reversible.
type Hover struct {
	index    int
	original float32
}

// NewHover returns a hover state with nothing hovered.
func NewHover() *Hover {
	return &Hover{index: -1}
}

// Index returns the hovered node index, or ok=false when nothing is
// hovered.
func (h *Hover) Index() (int, bool) {
	return h.index, h.index >= 0
}

// Set moves the hover to node i (or clears it for i < 0): the previous
// target's size is restored first, then the new target's is scaled by
// HoverScale. Setting the current target again is a no-op, so repeated
// pointer events over the same node never double-scale. The return
// value reports whether the hover target actually changed.
func (h *Hover) Set(b *buffers.Buffers, i int) bool {
	if i == h.index {
		return false
	}
	if h.index >= 0 {
		b.SetSize(h.index, h.original)
	}
	if i >= 0 {
		h.original = b.Size(i)
		b.SetSize(i, h.original*HoverScale)
	}
	h.index = i
	return true
}

// Clear removes any hover emphasis, restoring the previous size.
func (h *Hover) Clear(b *buffers.Buffers) bool {
	return h.Set(b, -1)
}

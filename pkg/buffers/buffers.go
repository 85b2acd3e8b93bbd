// Package buffers flattens a scene collection into renderer-friendly
// parallel arrays. Buffers are rebuilt in full whenever the dataset is
// replaced; the only in-place mutation supported is the per-node size
// scalar, used for hover emphasis, which is tracked through a dirty
// range so backends can re-upload just the affected region.
package buffers

import "github.com/ludex/constel/pkg/scene"

// Palette maps a node type to its base RGB color. Decoupled from the
// shading package so this package stays a pure data-layout concern.
type Palette func(scene.NodeType) [3]float32

// Buffers holds the flattened arrays, indexed identically to the node
// collection they were built from: Positions and Colors carry three
// floats per node, Sizes and TypeCodes one entry per node. Each
// connection emits one line segment: six floats of endpoint positions
// and a single midpoint-blended RGB color.
type Buffers struct {
	Positions []float32
	Sizes     []float32
	Colors    []float32
	TypeCodes []uint8

	LinkPositions []float32
	LinkColors    []float32

	dirtyLo, dirtyHi int // half-open range of modified Sizes entries
}

// Build flattens nodes into a fresh set of buffers. It is a pure
// function of the collection: deterministic, O(n) in nodes plus O(e)
// in connections, with no side effects beyond the output allocation.
// An empty collection yields empty (zero-length) buffers.
func Build(nodes scene.Collection, palette Palette) *Buffers {
	n := len(nodes)
	b := &Buffers{
		Positions: make([]float32, 0, 3*n),
		Sizes:     make([]float32, 0, n),
		Colors:    make([]float32, 0, 3*n),
		TypeCodes: make([]uint8, 0, n),
		dirtyLo:   -1,
		dirtyHi:   -1,
	}

	for _, node := range nodes {
		b.Positions = append(b.Positions, float32(node.Position.X), float32(node.Position.Y), float32(node.Position.Z))
		b.Sizes = append(b.Sizes, float32(node.Size))
		c := palette(node.Type)
		b.Colors = append(b.Colors, c[0], c[1], c[2])
		b.TypeCodes = append(b.TypeCodes, uint8(node.Type))
	}

	for i, node := range nodes {
		for _, target := range node.Connections {
			a, z := nodes[i].Position, nodes[target].Position
			b.LinkPositions = append(b.LinkPositions,
				float32(a.X), float32(a.Y), float32(a.Z),
				float32(z.X), float32(z.Y), float32(z.Z))
			ca := palette(node.Type)
			cb := palette(nodes[target].Type)
			b.LinkColors = append(b.LinkColors,
				(ca[0]+cb[0])/2, (ca[1]+cb[1])/2, (ca[2]+cb[2])/2)
		}
	}

	return b
}

// NodeCount returns the number of nodes the buffers were built from.
func (b *Buffers) NodeCount() int { return len(b.Sizes) }

// LinkCount returns the number of line segments.
func (b *Buffers) LinkCount() int { return len(b.LinkColors) / 3 }

// Position returns node i's position as a vector.
func (b *Buffers) Position(i int) scene.Vec3 {
	return scene.Vec3{
		X: float64(b.Positions[3*i]),
		Y: float64(b.Positions[3*i+1]),
		Z: float64(b.Positions[3*i+2]),
	}
}

// Size returns node i's current visual radius.
func (b *Buffers) Size(i int) float32 { return b.Sizes[i] }

// SetSize overwrites node i's visual radius and extends the dirty
// range. This is the hover-emphasis path: no reallocation, only the
// affected scalar entry changes.
func (b *Buffers) SetSize(i int, v float32) {
	b.Sizes[i] = v
	if b.dirtyLo < 0 || i < b.dirtyLo {
		b.dirtyLo = i
	}
	if i+1 > b.dirtyHi {
		b.dirtyHi = i + 1
	}
}

// TakeDirty returns the half-open range of Sizes entries modified since
// the last call and resets it. ok is false when nothing changed.
func (b *Buffers) TakeDirty() (lo, hi int, ok bool) {
	if b.dirtyLo < 0 {
		return 0, 0, false
	}
	lo, hi = b.dirtyLo, b.dirtyHi
	b.dirtyLo, b.dirtyHi = -1, -1
	return lo, hi, true
}

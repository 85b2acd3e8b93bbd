// Package picking determines which rendered node, if any, lies under
// the pointer. Points have no geometric surface, so a literal
// ray/point intersection would almost never hit; instead the hit test
// accepts the nearest point whose perpendicular distance from the
// pointer ray stays within a fixed screen-space threshold. The
// threshold is a tunable constant, not a geometric truth.
package picking

import (
	"math"

	"github.com/ludex/constel/pkg/buffers"
	"github.com/ludex/constel/pkg/camera"
)

// DefaultThresholdPx is the default pick radius in screen pixels.
const DefaultThresholdPx = 12.0

// HoverScale is the size multiplier applied to the hovered node.
const HoverScale = 2.0

// Pick casts a ray from the camera through the pointer position and
// returns the index of the closest node within thresholdPx pixels.
// When several nodes fall inside the threshold, the one nearest the
// camera (smallest ray parameter) wins. Nodes at or behind the near
// plane never hit. It runs at pointer-move frequency: no allocation,
// O(n) over the position buffer.
func Pick(b *buffers.Buffers, cam *camera.Camera, px, py, thresholdPx float64) (int, bool) {
	ray := cam.PixelRay(px, py)

	best := -1
	bestAlong := math.Inf(1)

	for i := 0; i < b.NodeCount(); i++ {
		p := b.Position(i)
		v := p.Sub(ray.Origin)
		along := v.Dot(ray.Dir)
		if along <= cam.Near || along >= bestAlong {
			continue
		}

		perp := v.Sub(ray.Dir.Scale(along)).Length()
		if perp*cam.PixelScale(along) > thresholdPx {
			continue
		}

		best = i
		bestAlong = along
	}

	return best, best >= 0
}

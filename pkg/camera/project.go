package camera

import (
	"math"

	"github.com/ludex/constel/pkg/scene"
)

// Ray is a world-space ray from the camera eye.
type Ray struct {
	Origin scene.Vec3
	Dir    scene.Vec3 // unit length
}

// worldUp is +Z, matching the dome's vertical axis. Phi clamping keeps
// the view direction off this axis so the basis below never collapses.
var worldUp = scene.Vec3{Z: 1}

// basis returns the camera's orthonormal view basis.
func (c *Camera) basis() (forward, right, up scene.Vec3) {
	eye := c.Eye()
	forward = c.Target.Sub(eye).Normalize()
	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// PixelRay casts a ray from the eye through the given pixel of the
// viewport. Pointer coordinates are converted to normalized device
// coordinates using the current viewport and aspect, so a resize is
// reflected in the very next call.
func (c *Camera) PixelRay(px, py float64) Ray {
	forward, right, up := c.basis()

	ndcX := 2*px/c.width - 1
	ndcY := 1 - 2*py/c.height
	tanHalf := math.Tan(c.FOV / 2)

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * c.Aspect)).
		Add(up.Scale(ndcY * tanHalf)).
		Normalize()

	return Ray{Origin: c.Eye(), Dir: dir}
}

// Project maps a world point to pixel coordinates. depth is the view-
// space distance along the forward axis; ok is false for points at or
// behind the near plane, which must not be drawn or picked.
func (c *Camera) Project(p scene.Vec3) (x, y, depth float64, ok bool) {
	forward, right, up := c.basis()
	v := p.Sub(c.Eye())

	depth = v.Dot(forward)
	if depth <= c.Near {
		return 0, 0, depth, false
	}

	tanHalf := math.Tan(c.FOV / 2)
	ndcX := v.Dot(right) / (depth * tanHalf * c.Aspect)
	ndcY := v.Dot(up) / (depth * tanHalf)

	x = (ndcX + 1) / 2 * c.width
	y = (1 - ndcY) / 2 * c.height
	return x, y, depth, true
}

// PixelScale returns the multiplier that converts a world-space extent
// at the given view depth into screen pixels.
func (c *Camera) PixelScale(depth float64) float64 {
	return (c.height / 2) / (depth * math.Tan(c.FOV/2))
}

// Package camera implements the orbit camera for the constellation:
// pointer-driven orbit with inertial damping, clamped zoom, idle
// auto-rotation, and the projection/ray math used by picking and the
// render backends. Panning is absent by design; the camera always
// orbits a single pivot.
package camera

import (
	"math"

	"github.com/ludex/constel/pkg/scene"
)

// Default tuning. All rates are per second; Step scales by dt so the
// feel is frame-rate independent.
const (
	DefaultFOV             = 60 * math.Pi / 180
	DefaultNear            = 0.5
	DefaultFar             = 5000.0
	DefaultMinDistance     = 100.0
	DefaultMaxDistance     = 1000.0
	DefaultDamping         = 0.05
	DefaultAutoRotateSpeed = 0.15 // radians/s when idle
	DefaultIdleRearmDelay  = 4.0  // seconds without interaction

	rotateSpeed = 0.005 // radians per pixel of drag
	zoomSpeed   = 0.1   // relative radius change per wheel notch

	// Phi is kept off the poles so the view basis never degenerates.
	minPhi = 0.05
	maxPhi = math.Pi - 0.05
)

// Camera is the orbit camera state. The eye position is derived from
// spherical coordinates (Theta, Phi, Radius) around Target with +Z up,
// matching the dome distribution of the default scene.
type Camera struct {
	Target scene.Vec3
	Theta  float64
	Phi    float64
	Radius float64

	FOV    float64
	Aspect float64
	Near   float64
	Far    float64

	MinDistance   float64
	MaxDistance   float64
	DampingFactor float64

	AutoRotate      bool
	AutoRotateSpeed float64
	IdleRearmDelay  float64

	width, height float64

	velTheta, velPhi float64
	dragging         bool
	suspended        bool    // auto-rotation suspended by a focus activation
	idleFor          float64 // seconds since the last interaction
}

// New returns a camera with default tuning looking at the origin from
// a mid-dome vantage point.
func New() *Camera {
	c := &Camera{
		Theta:           math.Pi / 4,
		Phi:             math.Pi / 3,
		Radius:          500,
		FOV:             DefaultFOV,
		Aspect:          1,
		Near:            DefaultNear,
		Far:             DefaultFar,
		MinDistance:     DefaultMinDistance,
		MaxDistance:     DefaultMaxDistance,
		DampingFactor:   DefaultDamping,
		AutoRotate:      true,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
		IdleRearmDelay:  DefaultIdleRearmDelay,
	}
	c.clamp()
	return c
}

// Eye returns the camera position derived from the orbit state.
func (c *Camera) Eye() scene.Vec3 {
	sp, cp := math.Sincos(c.Phi)
	st, ct := math.Sincos(c.Theta)
	return c.Target.Add(scene.Vec3{
		X: c.Radius * sp * ct,
		Y: c.Radius * sp * st,
		Z: c.Radius * cp,
	})
}

// Distance returns the eye-to-target distance.
func (c *Camera) Distance() float64 { return c.Radius }

// SetViewport records the output surface dimensions and recomputes the
// projection aspect ratio. Camera position and target are untouched;
// this is the only state a resize changes.
func (c *Camera) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.width = float64(w)
	c.height = float64(h)
	c.Aspect = c.width / c.height
}

// Viewport returns the recorded surface dimensions in pixels.
func (c *Camera) Viewport() (w, h float64) { return c.width, c.height }

// BeginDrag enters orbit-drag mode, which overrides auto-rotation for
// its duration.
func (c *Camera) BeginDrag() {
	c.dragging = true
	c.velTheta, c.velPhi = 0, 0
	c.idleFor = 0
}

// EndDrag leaves orbit-drag mode; residual velocity decays through
// damping so release feels like inertia.
func (c *Camera) EndDrag() {
	c.dragging = false
	c.idleFor = 0
}

// Dragging reports whether an orbit drag is in progress.
func (c *Camera) Dragging() bool { return c.dragging }

// Rotate applies a pointer drag of (dx, dy) pixels to the orbit angles
// and records the velocity that damping will decay after release.
func (c *Camera) Rotate(dx, dy float64) {
	c.velTheta = -dx * rotateSpeed
	c.velPhi = -dy * rotateSpeed
	c.Theta += c.velTheta
	c.Phi += c.velPhi
	c.idleFor = 0
	c.clamp()
}

// Zoom adjusts the orbit radius by delta wheel notches. The radius is
// clamped to [MinDistance, MaxDistance] after every update.
func (c *Camera) Zoom(delta float64) {
	c.Radius *= 1 - delta*zoomSpeed
	c.idleFor = 0
	c.clamp()
}

// SuspendAutoRotate turns auto-rotation off until a new idle period
// begins (IdleRearmDelay seconds without interaction). Called on node
// activation; drag-orbit remains possible while suspended.
func (c *Camera) SuspendAutoRotate() {
	c.AutoRotate = false
	c.suspended = true
	c.idleFor = 0
}

// Step advances the camera by dt seconds: inertial velocity with
// damping decay, idle auto-rotation, and re-arming after suspension.
// It runs every frame regardless of input.
func (c *Camera) Step(dt float64) {
	if !c.dragging && (c.velTheta != 0 || c.velPhi != 0) {
		c.Theta += c.velTheta
		c.Phi += c.velPhi
		// Exponential decay toward zero, normalized to a 60 Hz frame
		// so damping feel does not depend on refresh rate.
		decay := math.Pow(1-c.DampingFactor, dt*60)
		c.velTheta *= decay
		c.velPhi *= decay
		if math.Abs(c.velTheta) < 1e-6 {
			c.velTheta = 0
		}
		if math.Abs(c.velPhi) < 1e-6 {
			c.velPhi = 0
		}
	}

	if c.AutoRotate && !c.dragging {
		c.Theta += c.AutoRotateSpeed * dt
	}

	c.idleFor += dt
	if c.suspended && c.idleFor >= c.IdleRearmDelay {
		c.suspended = false
		c.AutoRotate = true
	}

	c.clamp()
}

func (c *Camera) clamp() {
	if c.Radius < c.MinDistance {
		c.Radius = c.MinDistance
	}
	if c.Radius > c.MaxDistance {
		c.Radius = c.MaxDistance
	}
	if c.Phi < minPhi {
		c.Phi = minPhi
	}
	if c.Phi > maxPhi {
		c.Phi = maxPhi
	}
}

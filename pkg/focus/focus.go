// Package focus implements the eased camera-target transition that
// runs when a node is activated. The state machine is pure and
// decoupled from any scheduling primitive so the easing math is
// testable without a rendering context.
package focus

import "github.com/ludex/constel/pkg/scene"

// DefaultRate advances progress by ~0.02 per 1/60 s frame, giving a
// roughly 50-frame approach independent of refresh rate.
const DefaultRate = 0.02 * 60

// targetBlend is the per-frame blend factor applied on top of the ease
// curve. The double damping keeps large jumps from feeling abrupt.
const targetBlend = 0.1

// Transition is the focus animator state: inactive, or approaching a
// target point with progress in [0, 1].
type Transition struct {
	TargetPoint scene.Vec3
	Progress    float64
	Active      bool
	Rate        float64 // progress units per second
}

// New returns an inactive transition with the default rate.
func New() *Transition {
	return &Transition{Rate: DefaultRate}
}

// Start activates the transition toward point. Starting while already
// active simply overwrites the target and resets progress; there is no
// queuing and no cancellation callback.
func (tr *Transition) Start(point scene.Vec3) {
	tr.TargetPoint = point
	tr.Progress = 0
	tr.Active = true
}

// Step advances the transition by dt seconds and returns the new
// camera orbit target derived from current. Progress is non-decreasing
// and reaches exactly 1 in a bounded number of steps for any positive
// rate; at that point the target snaps to TargetPoint and the
// transition deactivates. When inactive, current is returned unchanged.
func (tr *Transition) Step(current scene.Vec3, dt float64) scene.Vec3 {
	if !tr.Active {
		return current
	}

	tr.Progress += tr.Rate * dt
	if tr.Progress >= 1 {
		tr.Progress = 1
		tr.Active = false
		return tr.TargetPoint
	}

	// Cubic ease-out so the approach decelerates instead of overshooting.
	p := tr.Progress
	eased := 1 - (1-p)*(1-p)*(1-p)
	return current.Lerp(tr.TargetPoint, eased*targetBlend)
}

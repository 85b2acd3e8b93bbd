// Package shading describes the per-node-type visual contract for the
// constellation as data plus pure functions. Render backends interpret
// the rule table however suits them (fragment shader, sprite splatting,
// software rasterizer); nothing here depends on a rendering API.
//
// Backend contract: points are circular (fragments beyond half the
// screen-space extent are discarded), blending is additive so overlap
// brightens, and depth writes are disabled. Ordering artifacts are an
// accepted tradeoff for aesthetic density.
package shading

import (
	"math"

	"github.com/ludex/constel/pkg/scene"
)

// Rule is the per-type appearance description. Brightness over time is
// PulseBase + PulseAmp*sin(PulseFreq*t + SizePhase*size), layered onto
// the radial glow falloff.
type Rule struct {
	Color     [3]float32 // base RGB in [0,1]
	PulseBase float64
	PulseAmp  float64
	PulseFreq float64
	SizePhase float64 // de-synchronizes pulses across nodes of different sizes
	Ring      *RingRule
}

// RingRule is a thin ring layered onto the glow, expressed as two
// smoothstep bands of the point radius with its own time modulation.
type RingRule struct {
	InnerStart, InnerEnd float64
	OuterStart, OuterEnd float64
	PulseBase            float64
	PulseAmp             float64
	PulseFreq            float64
}

var rules = [...]Rule{
	// Games twinkle subtly.
	scene.NodeGame: {
		Color:     rgb(0x4A, 0x90, 0xD9),
		PulseBase: 0.85, PulseAmp: 0.15, PulseFreq: 1.5, SizePhase: 8,
	},
	// Creators pulse more broadly.
	scene.NodeCreator: {
		Color:     rgb(0xE6, 0x7E, 0x22),
		PulseBase: 0.7, PulseAmp: 0.3, PulseFreq: 2, SizePhase: 5,
	},
	// Developers hold a steady glow and carry a modulated ring.
	scene.NodeDeveloper: {
		Color:     rgb(0x2E, 0xCC, 0x71),
		PulseBase: 1, PulseAmp: 0, PulseFreq: 0, SizePhase: 0,
		Ring: &RingRule{
			InnerStart: 0.30, InnerEnd: 0.35,
			OuterStart: 0.40, OuterEnd: 0.45,
			PulseBase: 0.8, PulseAmp: 0.2, PulseFreq: 3,
		},
	},
}

// RuleFor returns the appearance rule for a node type. Unknown types
// fall back to the game rule rather than panicking, consistent with
// the no-per-frame-validation precondition on external datasets.
func RuleFor(t scene.NodeType) Rule {
	if int(t) < 0 || int(t) >= len(rules) {
		return rules[scene.NodeGame]
	}
	return rules[t]
}

// Glow returns the base intensity for a fragment at dist from the point
// center, where dist is in [0, 0.5] point-radius units. Fragments with
// dist > 0.5 are outside the circular point and contribute nothing.
func Glow(dist float64) float64 {
	if dist > 0.5 {
		return 0
	}
	s := Smoothstep(0.5, 0.0, dist)
	return s * s * 0.9
}

// Modulation returns the temporal brightness factor for the rule at
// time t for a point of the given base size.
func (r Rule) Modulation(t, size float64) float64 {
	if r.PulseAmp == 0 {
		return r.PulseBase
	}
	return r.PulseBase + r.PulseAmp*math.Sin(r.PulseFreq*t+r.SizePhase*size)
}

// Band returns the ring coverage for a fragment at dist from the point
// center: 0 outside the ring, rising to 1 inside the band.
func (r *RingRule) Band(dist float64) float64 {
	return Smoothstep(r.InnerStart, r.InnerEnd, dist) * (1 - Smoothstep(r.OuterStart, r.OuterEnd, dist))
}

// Modulation returns the ring's temporal brightness factor at time t.
func (r *RingRule) Modulation(t float64) float64 {
	return r.PulseBase + r.PulseAmp*math.Sin(r.PulseFreq*t)
}

// Smoothstep is the standard Hermite interpolation clamped to [0,1].
// edge0 > edge1 is allowed and inverts the ramp.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func rgb(r, g, b uint8) [3]float32 {
	return [3]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

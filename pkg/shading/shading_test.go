package shading

import (
	"math"
	"testing"

	"github.com/ludex/constel/pkg/scene"
)

func TestGlowFalloff(t *testing.T) {
	if got := Glow(0); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("Glow(0) = %v, want 0.9", got)
	}
	if got := Glow(0.5); got != 0 {
		t.Errorf("Glow(0.5) = %v, want 0", got)
	}
	if got := Glow(0.6); got != 0 {
		t.Errorf("Glow outside the point = %v, want 0", got)
	}
	// Monotonically decreasing toward the edge.
	prev := Glow(0)
	for d := 0.05; d <= 0.5; d += 0.05 {
		g := Glow(d)
		if g > prev {
			t.Fatalf("glow increased at dist %v", d)
		}
		prev = g
	}
}

func TestModulationBounds(t *testing.T) {
	for _, typ := range []scene.NodeType{scene.NodeGame, scene.NodeCreator, scene.NodeDeveloper} {
		r := RuleFor(typ)
		lo, hi := r.PulseBase-r.PulseAmp, r.PulseBase+r.PulseAmp
		for tt := 0.0; tt < 10; tt += 0.37 {
			m := r.Modulation(tt, 3)
			if m < lo-1e-9 || m > hi+1e-9 {
				t.Fatalf("type %v: modulation %v outside [%v, %v]", typ, m, lo, hi)
			}
		}
	}
}

func TestDeveloperRing(t *testing.T) {
	ring := RuleFor(scene.NodeDeveloper).Ring
	if ring == nil {
		t.Fatal("developer rule has no ring")
	}
	if got := ring.Band(0.1); got != 0 {
		t.Errorf("band inside inner edge = %v, want 0", got)
	}
	if got := ring.Band(0.375); got != 1 {
		t.Errorf("band at ring center = %v, want 1", got)
	}
	if got := ring.Band(0.49); got != 0 {
		t.Errorf("band outside outer edge = %v, want 0", got)
	}

	for tt := 0.0; tt < 5; tt += 0.21 {
		m := ring.Modulation(tt)
		if m < 0.6-1e-9 || m > 1.0+1e-9 {
			t.Fatalf("ring modulation %v outside [0.6, 1.0]", m)
		}
	}
}

func TestRuleForUnknownType(t *testing.T) {
	got := RuleFor(scene.NodeType(42))
	want := RuleFor(scene.NodeGame)
	if got.Color != want.Color {
		t.Errorf("unknown type did not fall back to the game rule")
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0, 1, -1); got != 0 {
		t.Errorf("below edge0 = %v", got)
	}
	if got := Smoothstep(0, 1, 2); got != 1 {
		t.Errorf("above edge1 = %v", got)
	}
	if got := Smoothstep(0, 1, 0.5); got != 0.5 {
		t.Errorf("midpoint = %v, want 0.5", got)
	}
	// Inverted edges ramp downward.
	if got := Smoothstep(1, 0, 1); got != 0 {
		t.Errorf("inverted at edge = %v, want 0", got)
	}
}

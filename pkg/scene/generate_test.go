package scene

import (
	"math"
	"testing"
)

func TestGenerateSeededInvariants(t *testing.T) {
	nodes := GenerateSeeded(500, 42)
	if len(nodes) != 500 {
		t.Fatalf("node count = %d, want 500", len(nodes))
	}

	for i, n := range nodes {
		if n.Type != NodeGame && n.Type != NodeCreator && n.Type != NodeDeveloper {
			t.Errorf("node %d: unexpected type %v", i, n.Type)
		}
		if n.Size <= 0 {
			t.Errorf("node %d: size = %v, want > 0", i, n.Size)
		}
		if n.Size < BaseSize(n.Type) || n.Size > BaseSize(n.Type)+sizeSpread {
			t.Errorf("node %d: size %v outside [%v, %v]", i, n.Size, BaseSize(n.Type), BaseSize(n.Type)+sizeSpread)
		}
		for _, c := range n.Connections {
			if c < 0 || c >= len(nodes) {
				t.Errorf("node %d: connection %d out of range", i, c)
			}
			if c == i {
				t.Errorf("node %d: self connection", i)
			}
		}
	}
}

func TestGenerateSeededDomeDistribution(t *testing.T) {
	nodes := GenerateSeeded(1000, 7)

	for i, n := range nodes {
		// Radius from the dome origin (undo the z offset first).
		p := n.Position
		p.Z -= domeZOffset
		r := p.Length()
		if r < domeBaseRadius-1e-9 || r > domeBaseRadius+domeRadiusSpread+1e-9 {
			t.Fatalf("node %d: dome radius %v outside [%v, %v]", i, r, domeBaseRadius, domeBaseRadius+domeRadiusSpread)
		}
		// phi < pi/2 means the pre-offset z component is non-negative.
		if p.Z < -1e-9 {
			t.Fatalf("node %d: position below the dome equator (z=%v)", i, p.Z)
		}
	}
}

func TestGenerateSeededDeterminism(t *testing.T) {
	a := GenerateSeeded(1000, 99)
	b := GenerateSeeded(1000, 99)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Size != b[i].Size || a[i].Position != b[i].Position {
			t.Fatalf("node %d differs between identically seeded generations", i)
		}
		if len(a[i].Connections) != len(b[i].Connections) {
			t.Fatalf("node %d: connection counts differ", i)
		}
		for j := range a[i].Connections {
			if a[i].Connections[j] != b[i].Connections[j] {
				t.Fatalf("node %d: connection %d differs", i, j)
			}
		}
	}
}

func TestGenerateSeededTypeWeights(t *testing.T) {
	nodes := GenerateSeeded(10000, 3)

	var counts [nodeTypeCount]int
	for _, n := range nodes {
		counts[n.Type]++
	}

	// 60/25/15 with generous tolerance for sampling noise.
	checks := []struct {
		t    NodeType
		want float64
	}{
		{NodeGame, 0.60},
		{NodeCreator, 0.25},
		{NodeDeveloper, 0.15},
	}
	for _, c := range checks {
		got := float64(counts[c.t]) / float64(len(nodes))
		if math.Abs(got-c.want) > 0.03 {
			t.Errorf("type %v share = %.3f, want about %.2f", c.t, got, c.want)
		}
	}
}

func TestGenerateEmptyAndNegative(t *testing.T) {
	if n := Generate(0); len(n) != 0 {
		t.Errorf("Generate(0) returned %d nodes, want 0", len(n))
	}
	if n := Generate(-5); len(n) != 0 {
		t.Errorf("Generate(-5) returned %d nodes, want 0", len(n))
	}
}

func TestGeneratedCollectionValidates(t *testing.T) {
	nodes := GenerateSeeded(300, 11)
	if errs := Validate(nodes); len(errs) != 0 {
		t.Fatalf("generated collection failed validation: %v", errs[0])
	}
}

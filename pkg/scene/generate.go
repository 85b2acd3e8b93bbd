package scene

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Generation constants for the default "starfield ceiling" distribution.
// Positions sample a downward-biased dome rather than a full sphere so the
// cloud reads as a ceiling above the camera pivot instead of surrounding it.
const (
	domeBaseRadius   = 300.0
	domeRadiusSpread = 200.0
	domeZOffset      = -200.0

	// Cumulative type weights: 60% games, 25% creators, 15% developers.
	gameWeight    = 0.60
	creatorWeight = 0.85

	sizeSpread = 1.5

	// Per-node connection attempts are drawn from {0, 1, 2}.
	maxConnectionAttempts = 3
)

// BaseSize returns the base visual radius for a node type.
func BaseSize(t NodeType) float64 {
	switch t {
	case NodeGame:
		return 3.0
	case NodeCreator:
		return 2.5
	default:
		return 2.0
	}
}

// Generate produces a default collection of count nodes using an
// unseeded (time-seeded) source. Results differ between runs; use
// GenerateSeeded when reproducibility matters.
func Generate(count int) Collection {
	return GenerateSeeded(count, time.Now().UnixNano())
}

// GenerateSeeded produces a default collection of count nodes from a
// deterministic source. Two calls with the same count and seed yield
// identical collections. A count of zero or less yields an empty
// collection, not an error.
func GenerateSeeded(count int, seed int64) Collection {
	if count <= 0 {
		return Collection{}
	}

	rng := rand.New(rand.NewSource(seed))
	nodes := make(Collection, count)

	for i := range nodes {
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi / 2
		radius := domeBaseRadius + rng.Float64()*domeRadiusSpread

		pos := Vec3{
			X: math.Sin(phi) * math.Cos(theta) * radius,
			Y: math.Sin(phi) * math.Sin(theta) * radius,
			Z: math.Cos(phi)*radius + domeZOffset,
		}

		t := drawType(rng)

		nodes[i] = Node{
			ID:       fmt.Sprintf("node-%d", i),
			Type:     t,
			Position: pos,
			Size:     BaseSize(t) + rng.Float64()*sizeSpread,
		}
	}

	// Connections are drawn after all nodes exist so targets can land
	// anywhere in the collection. Self references and duplicate draws
	// are silently dropped, so realized out-degree can be less than k.
	for i := range nodes {
		k := rng.Intn(maxConnectionAttempts)
		for a := 0; a < k; a++ {
			target := rng.Intn(count)
			if target == i || contains(nodes[i].Connections, target) {
				continue
			}
			nodes[i].Connections = append(nodes[i].Connections, target)
		}
	}

	return nodes
}

// drawType picks a node type with the fixed 60/25/15 weighting.
func drawType(rng *rand.Rand) NodeType {
	r := rng.Float64()
	switch {
	case r < gameWeight:
		return NodeGame
	case r < creatorWeight:
		return NodeCreator
	default:
		return NodeDeveloper
	}
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

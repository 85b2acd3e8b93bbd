package scene

import (
	"fmt"
	"math"
)

// ValidationError describes a single invariant violation in a collection.
type ValidationError struct {
	Index   int    // which node has the problem, -1 for collection-level
	Message string // human-readable description
}

func (e ValidationError) Error() string {
	if e.Index < 0 {
		return e.Message
	}
	return fmt.Sprintf("node %d: %s", e.Index, e.Message)
}

// Validate checks the model invariants on an externally supplied
// collection: finite positions, positive sizes, known types, and
// connection indices that are in range, non-self, and free of
// duplicates. An empty result means the collection is valid.
//
// The picking and buffer-building layers do not run these checks;
// they treat a conforming collection as a caller precondition. Call
// Validate at load time (scripts, imported datasets), never per frame.
func Validate(nodes Collection) []ValidationError {
	var errs []ValidationError

	for i, n := range nodes {
		if n.Type < 0 || n.Type >= nodeTypeCount {
			errs = append(errs, ValidationError{i, fmt.Sprintf("unknown node type %d", n.Type)})
		}
		if !n.Position.IsFinite() {
			errs = append(errs, ValidationError{i, "position is not finite"})
		}
		if n.Size <= 0 || math.IsNaN(n.Size) || math.IsInf(n.Size, 0) {
			errs = append(errs, ValidationError{i, fmt.Sprintf("size %v is not positive and finite", n.Size)})
		}

		seen := make(map[int]bool, len(n.Connections))
		for _, c := range n.Connections {
			if c < 0 || c >= len(nodes) {
				errs = append(errs, ValidationError{i, fmt.Sprintf("connection index %d out of range [0, %d)", c, len(nodes))})
				continue
			}
			if c == i {
				errs = append(errs, ValidationError{i, "connection references the node itself"})
			}
			if seen[c] {
				errs = append(errs, ValidationError{i, fmt.Sprintf("duplicate connection to %d", c)})
			}
			seen[c] = true
		}
	}

	return errs
}

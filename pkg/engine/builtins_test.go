package engine

import (
	"testing"

	"github.com/ludex/constel/pkg/scene"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(node :id "portal")`,
			expect: `(node "__kw_id" "portal")`,
		},
		{
			name:   "multiple keywords",
			input:  `(scatter :count 50 :seed 7)`,
			expect: `(scatter "__kw_count" 50 "__kw_seed" 7)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(my-helper :some-arg ref)`,
			expect: `(my_helper "__kw_some-arg" ref)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// node builtin
// ---------------------------------------------------------------------------

func TestNodeBuiltin(t *testing.T) {
	eng := NewEngine()

	source := `(node :type :creator :at (vec3 10 -20 50) :size 3.5 :id "studio")`
	nodes, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}

	n := nodes[0]
	if n.ID != "studio" {
		t.Errorf("expected ID %q, got %q", "studio", n.ID)
	}
	if n.Type != scene.NodeCreator {
		t.Errorf("expected NodeCreator, got %v", n.Type)
	}
	if n.Position != (scene.Vec3{X: 10, Y: -20, Z: 50}) {
		t.Errorf("unexpected position %+v", n.Position)
	}
	if n.Size != 3.5 {
		t.Errorf("expected size 3.5, got %v", n.Size)
	}
}

func TestNodeDefaults(t *testing.T) {
	eng := NewEngine()

	nodes, evalErrs, err := eng.Evaluate(`(node)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}

	n := nodes[0]
	if n.Type != scene.NodeGame {
		t.Errorf("default type should be NodeGame, got %v", n.Type)
	}
	if n.Size != scene.BaseSize(scene.NodeGame) {
		t.Errorf("default size should be base size, got %v", n.Size)
	}
	if n.ID != "node-0" {
		t.Errorf("default ID should be node-0, got %q", n.ID)
	}
}

func TestNodeInvalidType(t *testing.T) {
	eng := NewEngine()

	nodes, evalErrs, err := eng.Evaluate(`(node :type :spaceship)`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if nodes != nil {
		t.Fatal("expected nil collection")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for unknown node type")
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	eng := NewEngine()

	source := `
(node :id "twin")
(node :id "twin")
`
	nodes, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if nodes != nil {
		t.Fatal("expected nil collection")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for duplicate node id")
	}
}

// ---------------------------------------------------------------------------
// link builtin
// ---------------------------------------------------------------------------

func TestLinkBuiltin(t *testing.T) {
	eng := NewEngine()

	source := `
(def a (node :id "a"))
(def b (node :id "b" :at (vec3 30 0 0)))
(link a b)
`
	nodes, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	if len(nodes[0].Connections) != 1 || nodes[0].Connections[0] != 1 {
		t.Errorf("expected node 0 to link to node 1, got %v", nodes[0].Connections)
	}
	if len(nodes[1].Connections) != 0 {
		t.Errorf("links are stored once, got %v on node 1", nodes[1].Connections)
	}
}

func TestLinkDuplicateCollapses(t *testing.T) {
	eng := NewEngine()

	source := `
(def a (node :id "a"))
(def b (node :id "b" :at (vec3 30 0 0)))
(link a b)
(link b a)
(link a b)
`
	nodes, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(nodes[0].Connections) != 1 {
		t.Errorf("expected a single connection, got %v", nodes[0].Connections)
	}
}

func TestLinkSelfRejected(t *testing.T) {
	eng := NewEngine()

	source := `
(def a (node :id "a"))
(link a a)
`
	nodes, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if nodes != nil {
		t.Fatal("expected nil collection")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for self link")
	}
}

// ---------------------------------------------------------------------------
// scatter builtin
// ---------------------------------------------------------------------------

func TestScatterBuiltin(t *testing.T) {
	eng := NewEngine()

	nodes, evalErrs, err := eng.Evaluate(`(scatter :count 30 :seed 9)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(nodes) != 30 {
		t.Fatalf("expected 30 nodes, got %d", len(nodes))
	}
	if verrs := scene.Validate(nodes); len(verrs) > 0 {
		t.Fatalf("scattered collection invalid: %v", verrs)
	}
}

func TestScatterAfterExplicitNodes(t *testing.T) {
	eng := NewEngine()

	source := `
(node :id "anchor")
(scatter :count 10 :seed 3)
`
	nodes, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(nodes) != 11 {
		t.Fatalf("expected 11 nodes, got %d", len(nodes))
	}

	// Batch connections must have been remapped past the anchor node.
	for i := 1; i < len(nodes); i++ {
		for _, c := range nodes[i].Connections {
			if c == 0 {
				t.Fatalf("node %d links into the anchor; scatter indices were not remapped", i)
			}
		}
	}
	if verrs := scene.Validate(nodes); len(verrs) > 0 {
		t.Fatalf("combined collection invalid: %v", verrs)
	}
}

func TestScatterRequiresCount(t *testing.T) {
	eng := NewEngine()

	nodes, evalErrs, err := eng.Evaluate(`(scatter :seed 3)`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if nodes != nil {
		t.Fatal("expected nil collection")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error when :count is missing")
	}
}

// ---------------------------------------------------------------------------
// Post-evaluation validation
// ---------------------------------------------------------------------------

func TestInvalidSizeRejectedByValidation(t *testing.T) {
	eng := NewEngine()

	nodes, evalErrs, err := eng.Evaluate(`(node :size -1)`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if nodes != nil {
		t.Fatal("expected nil collection")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected validation error for non-positive size")
	}
}

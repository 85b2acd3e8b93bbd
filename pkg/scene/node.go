package scene

// NodeType enumerates the kinds of library entities a node can represent.
type NodeType int

const (
	NodeGame      NodeType = iota // a game in the library
	NodeCreator                   // a content creator
	NodeDeveloper                 // a game developer/studio
)

// nodeTypeCount is the number of NodeType values.
const nodeTypeCount = 3

func (t NodeType) String() string {
	switch t {
	case NodeGame:
		return "game"
	case NodeCreator:
		return "creator"
	case NodeDeveloper:
		return "developer"
	default:
		return "unknown"
	}
}

// Node is a single discovery node: one typed, positioned point in the
// constellation. Position and Size are fixed after creation; Connections
// holds indices of linked nodes within the owning collection.
type Node struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	Position    Vec3     `json:"position"`
	Size        float64  `json:"size"`
	Connections []int    `json:"connections,omitempty"`
}

// Collection is an ordered set of discovery nodes. Once built it is
// treated as read-only; a new dataset replaces the old one wholesale.
type Collection []Node

// Count returns the number of nodes in the collection.
func (c Collection) Count() int { return len(c) }

package vda5050

// Order is a plan of nodes and edges sent from master control to a vehicle.
// Nodes carry even sequence ids (0, 2, 4, ...), edges the odd ids between
// the nodes they connect. Released elements form the base, unreleased ones
// the horizon.
type Order struct {
	Header

	OrderID string
	// OrderUpdateID identifies a revision of OrderID. A vehicle discards
	// updates lower than the one it already accepted.
	OrderUpdateID uint32
	ZoneSetID     *string
	Nodes         []Node
	Edges         []Edge
}

// Node of an order graph.
type Node struct {
	NodeID          string
	SequenceID      uint32
	NodeDescription *string
	Released        bool
	NodePosition    *NodePosition
	Actions         []Action
}

// Edge connects two consecutive nodes of an order.
type Edge struct {
	EdgeID          string
	SequenceID      uint32
	EdgeDescription *string
	Released        bool
	StartNodeID     string
	EndNodeID       string
	// MaxSpeed in m/s.
	MaxSpeed    *float64
	MaxHeight   *float64
	MinHeight   *float64
	Orientation *float64
	// Direction is a free-text hint for junctions (e.g. "left").
	Direction        *string
	RotationAllowed  *bool
	MaxRotationSpeed *float64
	Trajectory       *Trajectory
	Length           *float64
	Actions          []Action
}

// ActionIDs returns the ids of all node and edge actions in order.
func (o *Order) ActionIDs() []string {
	var ids []string
	for _, n := range o.Nodes {
		for _, a := range n.Actions {
			ids = append(ids, a.ActionID)
		}
	}
	for _, e := range o.Edges {
		for _, a := range e.Actions {
			ids = append(ids, a.ActionID)
		}
	}
	return ids
}

// NodeBySequence returns the node with the given sequence id.
func (o *Order) NodeBySequence(sequenceID uint32) (Node, bool) {
	for _, n := range o.Nodes {
		if n.SequenceID == sequenceID {
			return n, true
		}
	}
	return Node{}, false
}

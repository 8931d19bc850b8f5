package validation

import (
	"math"
	"strconv"

	"vda5050-bridge/internal/vda5050"
)

// ValidateState checks s on its own and, given WithActiveOrder, against the
// order it reports progress for.
func ValidateState(s *vda5050.State, opts ...Option) Violations {
	o := newOptions(opts)
	c := &collector{}
	checkHeader(c, s.Header)

	for i, n := range s.NodeStates {
		if n.SequenceID%2 != 0 {
			c.addf(KindNodeSequenceParity, field(index("nodeStates", i), "sequenceId"), []string{n.NodeID},
				"node sequence id %d is odd", n.SequenceID)
		}
	}
	for i, e := range s.EdgeStates {
		path := index("edgeStates", i)
		if e.SequenceID%2 != 1 {
			c.addf(KindEdgeSequenceParity, field(path, "sequenceId"), []string{e.EdgeID},
				"edge sequence id %d is even", e.SequenceID)
		}
		checkTrajectory(c, field(path, "trajectory"), e.Trajectory)
	}

	for i, l := range s.Loads {
		if l.Weight != nil && *l.Weight < 0 {
			var entities []string
			if l.LoadID != nil {
				entities = []string{*l.LoadID}
			}
			c.addf(KindNegativeValue, field(index("loads", i), "weight"), entities,
				"load weight must not be negative, got %g", *l.Weight)
		}
	}

	if b := s.BatteryState; b != nil {
		if math.IsNaN(b.BatteryCharge) || b.BatteryCharge < 0 || b.BatteryCharge > 100 {
			c.addf(KindBatteryRange, "batteryState.batteryCharge", nil,
				"battery charge %g is outside [0, 100]", b.BatteryCharge)
		}
	}

	if o.activeOrder != nil {
		checkLastNode(c, s, o.activeOrder)
	}
	return c.vs
}

// checkLastNode requires lastNodeId, and lastNodeSequenceId when present, to
// name a node of the active order. A state reporting a different orderId is
// not checked against it, and an empty lastNodeId means no node was reached
// yet.
func checkLastNode(c *collector, s *vda5050.State, active *vda5050.Order) {
	if s.OrderID != nil && *s.OrderID != active.OrderID {
		return
	}
	if s.LastNodeID == nil || *s.LastNodeID == "" {
		return
	}
	id := *s.LastNodeID
	if s.LastNodeSequenceID != nil {
		if n, ok := active.NodeBySequence(*s.LastNodeSequenceID); ok && n.NodeID == id {
			return
		}
	} else {
		for _, n := range active.Nodes {
			if n.NodeID == id {
				return
			}
		}
	}
	msg := "last node " + strconv.Quote(id)
	if s.LastNodeSequenceID != nil {
		msg += " with sequence id " + strconv.FormatUint(uint64(*s.LastNodeSequenceID), 10)
	}
	c.add(KindLastNodeReference, "lastNodeId", msg+" is not a node of order "+strconv.Quote(active.OrderID), id, active.OrderID)
}

package validation

import (
	"sort"
	"strconv"

	"vda5050-bridge/internal/vda5050"
)

// graphElement is a node or an edge placed on the shared sequence axis.
type graphElement struct {
	id       string
	path     string
	sequence uint32
	released bool
}

// ValidateOrder checks the node/edge graph of o, its action ids and the
// base/horizon split.
func ValidateOrder(o *vda5050.Order) Violations {
	c := &collector{}
	checkHeader(c, o.Header)

	nodeSeqs := make(map[string][]uint32, len(o.Nodes))
	for i, n := range o.Nodes {
		path := index("nodes", i)
		nodeSeqs[n.NodeID] = append(nodeSeqs[n.NodeID], n.SequenceID)
		if n.SequenceID%2 != 0 {
			c.addf(KindNodeSequenceParity, field(path, "sequenceId"), []string{n.NodeID},
				"node sequence id %d is odd", n.SequenceID)
		}
		if i > 0 && n.SequenceID <= o.Nodes[i-1].SequenceID {
			c.addf(KindSequenceOrder, field(path, "sequenceId"), []string{o.Nodes[i-1].NodeID, n.NodeID},
				"node sequence id %d does not follow %d", n.SequenceID, o.Nodes[i-1].SequenceID)
		}
	}

	if len(o.Nodes) > 0 && !o.Nodes[0].Released {
		c.add(KindBaseNotReleased, "nodes[0].released", "first node must be released", o.Nodes[0].NodeID)
	}
	if len(o.Nodes) > 0 && len(o.Edges) > len(o.Nodes)-1 {
		c.addf(KindEdgeCount, "edges", nil, "%d nodes allow at most %d edges, got %d",
			len(o.Nodes), len(o.Nodes)-1, len(o.Edges))
	}

	sorted := make([]vda5050.Node, len(o.Nodes))
	copy(sorted, o.Nodes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SequenceID < sorted[j].SequenceID })

	for i, e := range o.Edges {
		checkEdge(c, index("edges", i), e, nodeSeqs, sorted)
	}

	checkHorizon(c, o)
	checkOrderActions(c, o)
	return c.vs
}

func checkEdge(c *collector, path string, e vda5050.Edge, nodeSeqs map[string][]uint32, sorted []vda5050.Node) {
	entities := []string{e.EdgeID}
	if e.SequenceID%2 != 1 {
		c.addf(KindEdgeSequenceParity, field(path, "sequenceId"), entities,
			"edge sequence id %d is even", e.SequenceID)
	}

	checkTrajectory(c, field(path, "trajectory"), e.Trajectory)

	startSeqs, startKnown := nodeSeqs[e.StartNodeID]
	endSeqs, endKnown := nodeSeqs[e.EndNodeID]
	if !startKnown {
		c.add(KindUnknownNodeReference, field(path, "startNodeId"),
			"start node "+strconv.Quote(e.StartNodeID)+" is not part of the order", e.EdgeID, e.StartNodeID)
	}
	if !endKnown {
		c.add(KindUnknownNodeReference, field(path, "endNodeId"),
			"end node "+strconv.Quote(e.EndNodeID)+" is not part of the order", e.EdgeID, e.EndNodeID)
	}
	if !startKnown || !endKnown {
		return
	}

	// Node ids may repeat in a looping order, so any occurrence before and
	// after the edge satisfies the interval.
	if !anyBefore(startSeqs, e.SequenceID) || !anyAfter(endSeqs, e.SequenceID) {
		c.addf(KindSequenceOrder, field(path, "sequenceId"), []string{e.EdgeID, e.StartNodeID, e.EndNodeID},
			"edge sequence id %d does not lie between its start and end nodes", e.SequenceID)
	}

	prev, next := neighbours(sorted, e.SequenceID)
	if prev == nil || prev.NodeID != e.StartNodeID || next == nil || next.NodeID != e.EndNodeID {
		c.addf(KindEdgeAdjacency, path, []string{e.EdgeID, e.StartNodeID, e.EndNodeID},
			"edge %s must connect the nodes immediately around sequence id %d", e.EdgeID, e.SequenceID)
	}
}

func anyBefore(seqs []uint32, seq uint32) bool {
	for _, s := range seqs {
		if s < seq {
			return true
		}
	}
	return false
}

func anyAfter(seqs []uint32, seq uint32) bool {
	for _, s := range seqs {
		if s > seq {
			return true
		}
	}
	return false
}

// neighbours returns the nodes directly before and after seq in sequence
// order.
func neighbours(sorted []vda5050.Node, seq uint32) (prev, next *vda5050.Node) {
	for i := range sorted {
		switch {
		case sorted[i].SequenceID < seq:
			prev = &sorted[i]
		case sorted[i].SequenceID > seq && next == nil:
			next = &sorted[i]
		}
	}
	return prev, next
}

// checkHorizon reports released elements that follow an unreleased one on
// the sequence axis.
func checkHorizon(c *collector, o *vda5050.Order) {
	elems := make([]graphElement, 0, len(o.Nodes)+len(o.Edges))
	for i, n := range o.Nodes {
		elems = append(elems, graphElement{id: n.NodeID, path: index("nodes", i), sequence: n.SequenceID, released: n.Released})
	}
	for i, e := range o.Edges {
		elems = append(elems, graphElement{id: e.EdgeID, path: index("edges", i), sequence: e.SequenceID, released: e.Released})
	}
	sort.SliceStable(elems, func(i, j int) bool { return elems[i].sequence < elems[j].sequence })

	var horizonStart *graphElement
	for i := range elems {
		el := &elems[i]
		if !el.released {
			if horizonStart == nil {
				horizonStart = el
			}
			continue
		}
		if horizonStart != nil {
			c.addf(KindHorizonOrder, field(el.path, "released"), []string{horizonStart.id, el.id},
				"released element %s follows unreleased %s", el.id, horizonStart.id)
		}
	}
}

func checkOrderActions(c *collector, o *vda5050.Order) {
	seen := make(map[string]string)
	check := func(path string, actions []vda5050.Action) {
		for i, a := range actions {
			p := index(field(path, "actions"), i)
			if first, dup := seen[a.ActionID]; dup {
				c.add(KindDuplicateActionID, field(p, "actionId"),
					"action id "+strconv.Quote(a.ActionID)+" already used at "+first, a.ActionID)
				continue
			}
			seen[a.ActionID] = p
		}
	}
	for i, n := range o.Nodes {
		check(index("nodes", i), n.Actions)
	}
	for i, e := range o.Edges {
		check(index("edges", i), e.Actions)
	}
}

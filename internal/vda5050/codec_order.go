package vda5050

// EncodeOrder renders o as a flat wire document.
func EncodeOrder(o *Order) ([]byte, error) {
	return encodeMessage(o.Header, func(w *objectWriter) {
		field(w, "orderId", o.OrderID)
		field(w, "orderUpdateId", o.OrderUpdateID)
		optionalField(w, "zoneSetId", o.ZoneSetID)
		listField(w, "nodes", o.Nodes, writeNode)
		listField(w, "edges", o.Edges, writeEdge)
	})
}

// DecodeOrder parses an order document.
func DecodeOrder(data []byte, opts ...DecodeOption) (*Order, error) {
	return decodeMessage(data, opts, func(ob *object, h Header) (Order, error) {
		o := Order{Header: h}
		var err error
		if err = required(ob, "orderId", &o.OrderID); err != nil {
			return o, err
		}
		if err = required(ob, "orderUpdateId", &o.OrderUpdateID); err != nil {
			return o, err
		}
		if err = optional(ob, "zoneSetId", &o.ZoneSetID); err != nil {
			return o, err
		}
		if o.Nodes, err = requiredList(ob, "nodes", objectElem(decodeNode)); err != nil {
			return o, err
		}
		o.Edges, err = requiredList(ob, "edges", objectElem(decodeEdge))
		return o, err
	})
}

func (o Order) MarshalJSON() ([]byte, error) {
	return EncodeOrder(&o)
}

func (o *Order) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeOrder(data)
	if err != nil {
		return err
	}
	*o = *decoded
	return nil
}

func decodeNode(o *object) (Node, error) {
	var n Node
	var err error
	if err = required(o, "nodeId", &n.NodeID); err != nil {
		return n, err
	}
	if err = required(o, "sequenceId", &n.SequenceID); err != nil {
		return n, err
	}
	if err = optional(o, "nodeDescription", &n.NodeDescription); err != nil {
		return n, err
	}
	if err = required(o, "released", &n.Released); err != nil {
		return n, err
	}
	if n.NodePosition, err = optionalObject(o, "nodePosition", decodeNodePosition); err != nil {
		return n, err
	}
	n.Actions, err = requiredList(o, "actions", objectElem(decodeAction))
	return n, err
}

func writeNode(e *encoder, path string, n Node) {
	e.object(path, func(w *objectWriter) {
		field(w, "nodeId", n.NodeID)
		field(w, "sequenceId", n.SequenceID)
		optionalField(w, "nodeDescription", n.NodeDescription)
		field(w, "released", n.Released)
		optionalObjectField(w, "nodePosition", n.NodePosition, writeNodePosition)
		listField(w, "actions", n.Actions, writeAction)
	})
}

func decodeEdge(o *object) (Edge, error) {
	var ed Edge
	var err error
	if err = required(o, "edgeId", &ed.EdgeID); err != nil {
		return ed, err
	}
	if err = required(o, "sequenceId", &ed.SequenceID); err != nil {
		return ed, err
	}
	if err = optional(o, "edgeDescription", &ed.EdgeDescription); err != nil {
		return ed, err
	}
	if err = required(o, "released", &ed.Released); err != nil {
		return ed, err
	}
	if err = required(o, "startNodeId", &ed.StartNodeID); err != nil {
		return ed, err
	}
	if err = required(o, "endNodeId", &ed.EndNodeID); err != nil {
		return ed, err
	}
	limits := []struct {
		name string
		dst  **float64
	}{
		{"maxSpeed", &ed.MaxSpeed},
		{"maxHeight", &ed.MaxHeight},
		{"minHeight", &ed.MinHeight},
		{"orientation", &ed.Orientation},
		{"maxRotationSpeed", &ed.MaxRotationSpeed},
		{"length", &ed.Length},
	}
	for _, l := range limits {
		if err = optional(o, l.name, l.dst); err != nil {
			return ed, err
		}
	}
	if err = optional(o, "direction", &ed.Direction); err != nil {
		return ed, err
	}
	if err = optional(o, "rotationAllowed", &ed.RotationAllowed); err != nil {
		return ed, err
	}
	if ed.Trajectory, err = optionalObject(o, "trajectory", decodeTrajectory); err != nil {
		return ed, err
	}
	ed.Actions, err = requiredList(o, "actions", objectElem(decodeAction))
	return ed, err
}

func writeEdge(e *encoder, path string, ed Edge) {
	e.object(path, func(w *objectWriter) {
		field(w, "edgeId", ed.EdgeID)
		field(w, "sequenceId", ed.SequenceID)
		optionalField(w, "edgeDescription", ed.EdgeDescription)
		field(w, "released", ed.Released)
		field(w, "startNodeId", ed.StartNodeID)
		field(w, "endNodeId", ed.EndNodeID)
		optionalField(w, "maxSpeed", ed.MaxSpeed)
		optionalField(w, "maxHeight", ed.MaxHeight)
		optionalField(w, "minHeight", ed.MinHeight)
		optionalField(w, "orientation", ed.Orientation)
		optionalField(w, "direction", ed.Direction)
		optionalField(w, "rotationAllowed", ed.RotationAllowed)
		optionalField(w, "maxRotationSpeed", ed.MaxRotationSpeed)
		optionalObjectField(w, "trajectory", ed.Trajectory, writeTrajectory)
		optionalField(w, "length", ed.Length)
		listField(w, "actions", ed.Actions, writeAction)
	})
}

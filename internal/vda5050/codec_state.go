package vda5050

// EncodeState renders s as a flat wire document.
func EncodeState(s *State) ([]byte, error) {
	return encodeMessage(s.Header, func(w *objectWriter) {
		optionalField(w, "orderId", s.OrderID)
		optionalField(w, "orderUpdateId", s.OrderUpdateID)
		optionalField(w, "zoneSetId", s.ZoneSetID)
		optionalField(w, "lastNodeId", s.LastNodeID)
		optionalField(w, "lastNodeSequenceId", s.LastNodeSequenceID)
		listField(w, "nodeStates", s.NodeStates, writeNodeState)
		listField(w, "edgeStates", s.EdgeStates, writeEdgeState)
		optionalObjectField(w, "agvPosition", s.AgvPosition, writeAgvPosition)
		optionalObjectField(w, "velocity", s.Velocity, writeVelocity)
		optionalListField(w, "loads", s.Loads, writeLoad)
		field(w, "driving", s.Driving)
		optionalField(w, "paused", s.Paused)
		optionalField(w, "newBaseRequest", s.NewBaseRequest)
		optionalField(w, "distanceSinceLastNode", s.DistanceSinceLastNode)
		enumField(w, "operatingMode", operatingModes, s.OperatingMode)
		optionalListField(w, "actionStates", s.ActionStates, writeActionState)
		listField(w, "errors", s.Errors, writeError)
		optionalListField(w, "information", s.Information, writeInfo)
		optionalObjectField(w, "batteryState", s.BatteryState, writeBatteryState)
		optionalObjectField(w, "safetyState", s.SafetyState, writeSafetyState)
	})
}

// DecodeState parses a state document.
func DecodeState(data []byte, opts ...DecodeOption) (*State, error) {
	return decodeMessage(data, opts, func(o *object, h Header) (State, error) {
		s := State{Header: h}
		var err error
		if err = optional(o, "orderId", &s.OrderID); err != nil {
			return s, err
		}
		if err = optional(o, "orderUpdateId", &s.OrderUpdateID); err != nil {
			return s, err
		}
		if err = optional(o, "zoneSetId", &s.ZoneSetID); err != nil {
			return s, err
		}
		if err = optional(o, "lastNodeId", &s.LastNodeID); err != nil {
			return s, err
		}
		if err = optional(o, "lastNodeSequenceId", &s.LastNodeSequenceID); err != nil {
			return s, err
		}
		if s.NodeStates, err = requiredList(o, "nodeStates", objectElem(decodeNodeState)); err != nil {
			return s, err
		}
		if s.EdgeStates, err = requiredList(o, "edgeStates", objectElem(decodeEdgeState)); err != nil {
			return s, err
		}
		if s.AgvPosition, err = optionalObject(o, "agvPosition", decodeAgvPosition); err != nil {
			return s, err
		}
		if s.Velocity, err = optionalObject(o, "velocity", decodeVelocity); err != nil {
			return s, err
		}
		if s.Loads, err = optionalList(o, "loads", objectElem(decodeLoad)); err != nil {
			return s, err
		}
		if err = required(o, "driving", &s.Driving); err != nil {
			return s, err
		}
		if err = optional(o, "paused", &s.Paused); err != nil {
			return s, err
		}
		if err = optional(o, "newBaseRequest", &s.NewBaseRequest); err != nil {
			return s, err
		}
		if err = optional(o, "distanceSinceLastNode", &s.DistanceSinceLastNode); err != nil {
			return s, err
		}
		if err = requiredEnum(o, "operatingMode", operatingModes, &s.OperatingMode); err != nil {
			return s, err
		}
		if s.ActionStates, err = optionalList(o, "actionStates", objectElem(decodeActionState)); err != nil {
			return s, err
		}
		if s.Errors, err = requiredList(o, "errors", objectElem(decodeError)); err != nil {
			return s, err
		}
		if s.Information, err = optionalList(o, "information", objectElem(decodeInfo)); err != nil {
			return s, err
		}
		if s.BatteryState, err = optionalObject(o, "batteryState", decodeBatteryState); err != nil {
			return s, err
		}
		s.SafetyState, err = optionalObject(o, "safetyState", decodeSafetyState)
		return s, err
	})
}

func (s State) MarshalJSON() ([]byte, error) {
	return EncodeState(&s)
}

func (s *State) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeState(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func decodeNodeState(o *object) (NodeState, error) {
	var n NodeState
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

func writeNodeState(e *encoder, path string, n NodeState) {
	e.object(path, func(w *objectWriter) {
		field(w, "nodeId", n.NodeID)
		field(w, "sequenceId", n.SequenceID)
		optionalField(w, "nodeDescription", n.NodeDescription)
		field(w, "released", n.Released)
		optionalObjectField(w, "nodePosition", n.NodePosition, writeNodePosition)
		listField(w, "actions", n.Actions, writeAction)
	})
}

func decodeEdgeState(o *object) (EdgeState, error) {
	var ed EdgeState
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
	if ed.Trajectory, err = optionalObject(o, "trajectory", decodeTrajectory); err != nil {
		return ed, err
	}
	ed.Actions, err = requiredList(o, "actions", objectElem(decodeAction))
	return ed, err
}

func writeEdgeState(e *encoder, path string, ed EdgeState) {
	e.object(path, func(w *objectWriter) {
		field(w, "edgeId", ed.EdgeID)
		field(w, "sequenceId", ed.SequenceID)
		optionalField(w, "edgeDescription", ed.EdgeDescription)
		field(w, "released", ed.Released)
		optionalObjectField(w, "trajectory", ed.Trajectory, writeTrajectory)
		listField(w, "actions", ed.Actions, writeAction)
	})
}

func decodeActionState(o *object) (ActionState, error) {
	var a ActionState
	if err := required(o, "actionId", &a.ActionID); err != nil {
		return a, err
	}
	if err := optional(o, "actionType", &a.ActionType); err != nil {
		return a, err
	}
	if err := optional(o, "actionDescription", &a.ActionDescription); err != nil {
		return a, err
	}
	if err := requiredEnum(o, "actionStatus", actionStatuses, &a.ActionStatus); err != nil {
		return a, err
	}
	err := optional(o, "resultDescription", &a.ResultDescription)
	return a, err
}

func writeActionState(e *encoder, path string, a ActionState) {
	e.object(path, func(w *objectWriter) {
		field(w, "actionId", a.ActionID)
		optionalField(w, "actionType", a.ActionType)
		optionalField(w, "actionDescription", a.ActionDescription)
		enumField(w, "actionStatus", actionStatuses, a.ActionStatus)
		optionalField(w, "resultDescription", a.ResultDescription)
	})
}

func decodeLoad(o *object) (Load, error) {
	var l Load
	var err error
	if err = optional(o, "loadId", &l.LoadID); err != nil {
		return l, err
	}
	if err = optional(o, "loadType", &l.LoadType); err != nil {
		return l, err
	}
	if err = optional(o, "loadPosition", &l.LoadPosition); err != nil {
		return l, err
	}
	if err = optional(o, "weight", &l.Weight); err != nil {
		return l, err
	}
	if l.BoundingBoxReference, err = optionalObject(o, "boundingBoxReference", decodeBoundingBoxReference); err != nil {
		return l, err
	}
	if l.LoadDimensions, err = optionalObject(o, "loadDimensions", decodeDimensions); err != nil {
		return l, err
	}
	l.BoundingBox, err = optionalList(o, "boundingBox", objectElem(decodePoint))
	return l, err
}

func writeLoad(e *encoder, path string, l Load) {
	e.object(path, func(w *objectWriter) {
		optionalField(w, "loadId", l.LoadID)
		optionalField(w, "loadType", l.LoadType)
		optionalField(w, "loadPosition", l.LoadPosition)
		optionalField(w, "weight", l.Weight)
		optionalObjectField(w, "boundingBoxReference", l.BoundingBoxReference, writeBoundingBoxReference)
		optionalObjectField(w, "loadDimensions", l.LoadDimensions, writeDimensions)
		optionalListField(w, "boundingBox", l.BoundingBox, writePoint)
	})
}

func decodeError(o *object) (Error, error) {
	var er Error
	var err error
	if err = required(o, "errorType", &er.ErrorType); err != nil {
		return er, err
	}
	if err = optional(o, "errorDescription", &er.ErrorDescription); err != nil {
		return er, err
	}
	if err = requiredEnum(o, "errorLevel", errorLevels, &er.ErrorLevel); err != nil {
		return er, err
	}
	er.ErrorReferences, err = requiredList(o, "errorReferences", objectElem(func(o *object) (ErrorReference, error) {
		var r ErrorReference
		if err := required(o, "referenceKey", &r.ReferenceKey); err != nil {
			return r, err
		}
		err := required(o, "referenceValue", &r.ReferenceValue)
		return r, err
	}))
	return er, err
}

func writeError(e *encoder, path string, er Error) {
	e.object(path, func(w *objectWriter) {
		field(w, "errorType", er.ErrorType)
		optionalField(w, "errorDescription", er.ErrorDescription)
		enumField(w, "errorLevel", errorLevels, er.ErrorLevel)
		listField(w, "errorReferences", er.ErrorReferences, func(e *encoder, path string, r ErrorReference) {
			e.object(path, func(w *objectWriter) {
				field(w, "referenceKey", r.ReferenceKey)
				field(w, "referenceValue", r.ReferenceValue)
			})
		})
	})
}

func decodeInfo(o *object) (Info, error) {
	var in Info
	var err error
	if err = required(o, "infoType", &in.InfoType); err != nil {
		return in, err
	}
	if err = optional(o, "infoDescription", &in.InfoDescription); err != nil {
		return in, err
	}
	if err = requiredEnum(o, "infoLevel", infoLevels, &in.InfoLevel); err != nil {
		return in, err
	}
	in.InfoReferences, err = optionalList(o, "infoReferences", objectElem(func(o *object) (InfoReference, error) {
		var r InfoReference
		if err := required(o, "referenceKey", &r.ReferenceKey); err != nil {
			return r, err
		}
		err := required(o, "referenceValue", &r.ReferenceValue)
		return r, err
	}))
	return in, err
}

func writeInfo(e *encoder, path string, in Info) {
	e.object(path, func(w *objectWriter) {
		field(w, "infoType", in.InfoType)
		optionalField(w, "infoDescription", in.InfoDescription)
		enumField(w, "infoLevel", infoLevels, in.InfoLevel)
		optionalListField(w, "infoReferences", in.InfoReferences, func(e *encoder, path string, r InfoReference) {
			e.object(path, func(w *objectWriter) {
				field(w, "referenceKey", r.ReferenceKey)
				field(w, "referenceValue", r.ReferenceValue)
			})
		})
	})
}

func decodeBatteryState(o *object) (BatteryState, error) {
	var b BatteryState
	if err := required(o, "batteryCharge", &b.BatteryCharge); err != nil {
		return b, err
	}
	if err := optional(o, "batteryVoltage", &b.BatteryVoltage); err != nil {
		return b, err
	}
	if err := optional(o, "batteryCurrent", &b.BatteryCurrent); err != nil {
		return b, err
	}
	if err := optional(o, "batteryHealth", &b.BatteryHealth); err != nil {
		return b, err
	}
	if err := optional(o, "charging", &b.Charging); err != nil {
		return b, err
	}
	err := optional(o, "reach", &b.Reach)
	return b, err
}

func writeBatteryState(e *encoder, path string, b BatteryState) {
	e.object(path, func(w *objectWriter) {
		field(w, "batteryCharge", b.BatteryCharge)
		optionalField(w, "batteryVoltage", b.BatteryVoltage)
		optionalField(w, "batteryCurrent", b.BatteryCurrent)
		optionalField(w, "batteryHealth", b.BatteryHealth)
		optionalField(w, "charging", b.Charging)
		optionalField(w, "reach", b.Reach)
	})
}

func decodeSafetyState(o *object) (SafetyState, error) {
	var s SafetyState
	if err := requiredEnum(o, "eStop", eStops, &s.EStop); err != nil {
		return s, err
	}
	err := required(o, "fieldViolation", &s.FieldViolation)
	return s, err
}

func writeSafetyState(e *encoder, path string, s SafetyState) {
	e.object(path, func(w *objectWriter) {
		enumField(w, "eStop", eStops, s.EStop)
		field(w, "fieldViolation", s.FieldViolation)
	})
}

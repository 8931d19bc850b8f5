package vda5050

import "encoding/json"

// Wire names of the flattened header.
const (
	keyHeaderID     = "headerId"
	keyTimestamp    = "timestamp"
	keyVersion      = "version"
	keyManufacturer = "manufacturer"
	keySerialNumber = "serialNumber"
)

// decodeMessage decodes the flat top-level object: the header first, so the
// protocol version is known before any enum literal is read, then the
// message's own fields.
func decodeMessage[T any](data []byte, opts []DecodeOption, fn func(o *object, h Header) (T, error)) (*T, error) {
	d := newDecodeState(opts)
	o, err := d.object("", json.RawMessage(data))
	if err != nil {
		return nil, err
	}
	h, err := decodeHeader(o)
	if err != nil {
		return nil, err
	}
	d.legacy = isLegacyVersion(h.Version)
	v, err := fn(o, h)
	if err != nil {
		return nil, err
	}
	if err := o.done(); err != nil {
		return nil, err
	}
	return &v, nil
}

func encodeMessage(h Header, fn func(w *objectWriter)) ([]byte, error) {
	e := &encoder{}
	e.object("", func(w *objectWriter) {
		writeHeader(w, h)
		fn(w)
	})
	return e.bytes()
}

func decodeHeader(o *object) (Header, error) {
	var h Header
	if err := required(o, keyHeaderID, &h.HeaderID); err != nil {
		return h, err
	}
	if err := required(o, keyTimestamp, &h.Timestamp); err != nil {
		return h, err
	}
	if err := required(o, keyVersion, &h.Version); err != nil {
		return h, err
	}
	if err := required(o, keyManufacturer, &h.Manufacturer); err != nil {
		return h, err
	}
	if err := required(o, keySerialNumber, &h.SerialNumber); err != nil {
		return h, err
	}
	return h, nil
}

func writeHeader(w *objectWriter, h Header) {
	field(w, keyHeaderID, h.HeaderID)
	field(w, keyTimestamp, h.Timestamp)
	field(w, keyVersion, h.Version)
	field(w, keyManufacturer, h.Manufacturer)
	field(w, keySerialNumber, h.SerialNumber)
}

func decodeAction(o *object) (Action, error) {
	var a Action
	var err error
	if err = required(o, "actionId", &a.ActionID); err != nil {
		return a, err
	}
	if err = required(o, "actionType", &a.ActionType); err != nil {
		return a, err
	}
	if err = requiredEnum(o, "blockingType", blockingTypes, &a.BlockingType); err != nil {
		return a, err
	}
	if err = optional(o, "actionDescription", &a.ActionDescription); err != nil {
		return a, err
	}
	a.ActionParameters, err = optionalDocument(o, "actionParameters")
	return a, err
}

func writeAction(e *encoder, path string, a Action) {
	e.object(path, func(w *objectWriter) {
		field(w, "actionId", a.ActionID)
		field(w, "actionType", a.ActionType)
		enumField(w, "blockingType", blockingTypes, a.BlockingType)
		optionalField(w, "actionDescription", a.ActionDescription)
		optionalDocumentField(w, "actionParameters", a.ActionParameters)
	})
}

func decodeNodePosition(o *object) (NodePosition, error) {
	var p NodePosition
	if err := required(o, "x", &p.X); err != nil {
		return p, err
	}
	if err := required(o, "y", &p.Y); err != nil {
		return p, err
	}
	if err := required(o, "mapId", &p.MapID); err != nil {
		return p, err
	}
	if err := optional(o, "theta", &p.Theta); err != nil {
		return p, err
	}
	if err := optional(o, "allowedDeviationXY", &p.AllowedDeviationXY); err != nil {
		return p, err
	}
	if err := optional(o, "allowedDeviationTheta", &p.AllowedDeviationTheta); err != nil {
		return p, err
	}
	err := optional(o, "mapDescription", &p.MapDescription)
	return p, err
}

func writeNodePosition(e *encoder, path string, p NodePosition) {
	e.object(path, func(w *objectWriter) {
		field(w, "x", p.X)
		field(w, "y", p.Y)
		field(w, "mapId", p.MapID)
		optionalField(w, "theta", p.Theta)
		optionalField(w, "allowedDeviationXY", p.AllowedDeviationXY)
		optionalField(w, "allowedDeviationTheta", p.AllowedDeviationTheta)
		optionalField(w, "mapDescription", p.MapDescription)
	})
}

func decodeAgvPosition(o *object) (AgvPosition, error) {
	var p AgvPosition
	if err := required(o, "x", &p.X); err != nil {
		return p, err
	}
	if err := required(o, "y", &p.Y); err != nil {
		return p, err
	}
	if err := optional(o, "theta", &p.Theta); err != nil {
		return p, err
	}
	if err := required(o, "mapId", &p.MapID); err != nil {
		return p, err
	}
	if err := optional(o, "mapDescription", &p.MapDescription); err != nil {
		return p, err
	}
	if err := optional(o, "positionInitialized", &p.PositionInitialized); err != nil {
		return p, err
	}
	if err := optional(o, "localizationScore", &p.LocalizationScore); err != nil {
		return p, err
	}
	err := optional(o, "deviationRange", &p.DeviationRange)
	return p, err
}

func writeAgvPosition(e *encoder, path string, p AgvPosition) {
	e.object(path, func(w *objectWriter) {
		field(w, "x", p.X)
		field(w, "y", p.Y)
		optionalField(w, "theta", p.Theta)
		field(w, "mapId", p.MapID)
		optionalField(w, "mapDescription", p.MapDescription)
		optionalField(w, "positionInitialized", p.PositionInitialized)
		optionalField(w, "localizationScore", p.LocalizationScore)
		optionalField(w, "deviationRange", p.DeviationRange)
	})
}

func decodeVelocity(o *object) (Velocity, error) {
	var v Velocity
	if err := optional(o, "vx", &v.Vx); err != nil {
		return v, err
	}
	if err := optional(o, "vy", &v.Vy); err != nil {
		return v, err
	}
	err := optional(o, "omega", &v.Omega)
	return v, err
}

func writeVelocity(e *encoder, path string, v Velocity) {
	e.object(path, func(w *objectWriter) {
		optionalField(w, "vx", v.Vx)
		optionalField(w, "vy", v.Vy)
		optionalField(w, "omega", v.Omega)
	})
}

func decodePoint(o *object) (Point, error) {
	var p Point
	if err := required(o, "x", &p.X); err != nil {
		return p, err
	}
	if err := required(o, "y", &p.Y); err != nil {
		return p, err
	}
	err := optional(o, "z", &p.Z)
	return p, err
}

func writePoint(e *encoder, path string, p Point) {
	e.object(path, func(w *objectWriter) {
		field(w, "x", p.X)
		field(w, "y", p.Y)
		optionalField(w, "z", p.Z)
	})
}

func decodeControlPoint(o *object) (ControlPoint, error) {
	var p ControlPoint
	if err := required(o, "x", &p.X); err != nil {
		return p, err
	}
	if err := required(o, "y", &p.Y); err != nil {
		return p, err
	}
	err := optional(o, "weight", &p.Weight)
	return p, err
}

func writeControlPoint(e *encoder, path string, p ControlPoint) {
	e.object(path, func(w *objectWriter) {
		field(w, "x", p.X)
		field(w, "y", p.Y)
		optionalField(w, "weight", p.Weight)
	})
}

func decodeTrajectory(o *object) (Trajectory, error) {
	var t Trajectory
	var err error
	if err = required(o, "degree", &t.Degree); err != nil {
		return t, err
	}
	if t.KnotVector, err = requiredList(o, "knotVector", scalarElem[float64]()); err != nil {
		return t, err
	}
	t.ControlPoints, err = requiredList(o, "controlPoints", objectElem(decodeControlPoint))
	return t, err
}

func writeTrajectory(e *encoder, path string, t Trajectory) {
	e.object(path, func(w *objectWriter) {
		field(w, "degree", t.Degree)
		listField(w, "knotVector", t.KnotVector, scalarEncoder[float64]())
		listField(w, "controlPoints", t.ControlPoints, writeControlPoint)
	})
}

func decodeBoundingBoxReference(o *object) (BoundingBoxReference, error) {
	var b BoundingBoxReference
	if err := required(o, "x", &b.X); err != nil {
		return b, err
	}
	if err := required(o, "y", &b.Y); err != nil {
		return b, err
	}
	if err := required(o, "z", &b.Z); err != nil {
		return b, err
	}
	err := optional(o, "orientation", &b.Orientation)
	return b, err
}

func writeBoundingBoxReference(e *encoder, path string, b BoundingBoxReference) {
	e.object(path, func(w *objectWriter) {
		field(w, "x", b.X)
		field(w, "y", b.Y)
		field(w, "z", b.Z)
		optionalField(w, "orientation", b.Orientation)
	})
}

func decodeDimensions(o *object) (Dimensions, error) {
	var d Dimensions
	if err := required(o, "length", &d.Length); err != nil {
		return d, err
	}
	if err := required(o, "width", &d.Width); err != nil {
		return d, err
	}
	err := optional(o, "height", &d.Height)
	return d, err
}

func writeDimensions(e *encoder, path string, d Dimensions) {
	e.object(path, func(w *objectWriter) {
		field(w, "length", d.Length)
		field(w, "width", d.Width)
		optionalField(w, "height", d.Height)
	})
}

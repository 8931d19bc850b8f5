package vda5050

// Point is a bare coordinate in meters. Z is only set for 3D outlines.
type Point struct {
	X float64
	Y float64
	Z *float64
}

// Velocity of the vehicle in its own frame (m/s, rad/s).
type Velocity struct {
	Vx    *float64
	Vy    *float64
	Omega *float64
}

// ControlPoint of a NURBS trajectory. A nil Weight means weight 1.
type ControlPoint struct {
	X      float64
	Y      float64
	Weight *float64
}

// Trajectory is a NURBS curve. len(KnotVector) must equal
// len(ControlPoints) + Degree + 1.
type Trajectory struct {
	Degree        uint8
	KnotVector    []float64
	ControlPoints []ControlPoint
}

// NodePosition places an order node on a map.
type NodePosition struct {
	X     float64
	Y     float64
	MapID string
	// Theta is the required orientation at the node in radians.
	Theta                 *float64
	AllowedDeviationXY    *float64
	AllowedDeviationTheta *float64
	MapDescription        *string
}

// AgvPosition is the localized vehicle pose reported by the vehicle.
type AgvPosition struct {
	X                   float64
	Y                   float64
	Theta               *float64
	MapID               string
	MapDescription      *string
	PositionInitialized *bool
	// LocalizationScore is in [0, 1].
	LocalizationScore *float64
	DeviationRange    *float64
}

// BoundingBoxReference anchors a load's bounding box in the vehicle frame.
type BoundingBoxReference struct {
	X           float64
	Y           float64
	Z           float64
	Orientation *float64
}

// Dimensions in meters.
type Dimensions struct {
	Length float64
	Width  float64
	Height *float64
}

package vda5050

// State is the periodic progress report of a vehicle. It correlates to the
// last accepted Order through OrderID and OrderUpdateID only.
type State struct {
	Header

	OrderID            *string
	OrderUpdateID      *uint32
	ZoneSetID          *string
	LastNodeID         *string
	LastNodeSequenceID *uint32
	NodeStates         []NodeState
	EdgeStates         []EdgeState
	AgvPosition        *AgvPosition
	Velocity           *Velocity
	Loads              []Load
	Driving            bool
	Paused             *bool
	NewBaseRequest     *bool
	// DistanceSinceLastNode in meters.
	DistanceSinceLastNode *float64
	OperatingMode         OperatingMode
	ActionStates          []ActionState
	Errors                []Error
	Information           []Info
	BatteryState          *BatteryState
	SafetyState           *SafetyState
}

// NodeState mirrors a node the vehicle still has to traverse.
type NodeState struct {
	NodeID          string
	SequenceID      uint32
	NodeDescription *string
	Released        bool
	NodePosition    *NodePosition
	Actions         []Action
}

// EdgeState mirrors an edge the vehicle still has to traverse.
type EdgeState struct {
	EdgeID          string
	SequenceID      uint32
	EdgeDescription *string
	Released        bool
	Trajectory      *Trajectory
	Actions         []Action
}

// ActionState reports the progress of one action.
type ActionState struct {
	ActionID          string
	ActionType        *string
	ActionDescription *string
	ActionStatus      ActionStatus
	ResultDescription *string
}

type Load struct {
	LoadID               *string
	LoadType             *string
	LoadPosition         *string
	Weight               *float64
	BoundingBoxReference *BoundingBoxReference
	LoadDimensions       *Dimensions
	BoundingBox          []Point
}

// Error is an error entry of a State.
type Error struct {
	ErrorType        string
	ErrorDescription *string
	ErrorLevel       ErrorLevel
	ErrorReferences  []ErrorReference
}

type ErrorReference struct {
	ReferenceKey   string
	ReferenceValue string
}

// Info is an informational entry of a State.
type Info struct {
	InfoType        string
	InfoDescription *string
	InfoLevel       InfoLevel
	InfoReferences  []InfoReference
}

type InfoReference struct {
	ReferenceKey   string
	ReferenceValue string
}

// BatteryState. BatteryCharge is a percentage in [0, 100].
type BatteryState struct {
	BatteryCharge  float64
	BatteryVoltage *float64
	BatteryCurrent *float64
	BatteryHealth  *float64
	Charging       *bool
	// Reach in meters.
	Reach *float64
}

type SafetyState struct {
	EStop          EStop
	FieldViolation bool
}

// HasFatalError reports whether any error entry is FATAL.
func (s *State) HasFatalError() bool {
	for _, e := range s.Errors {
		if e.ErrorLevel == ErrorLevelFatal {
			return true
		}
	}
	return false
}

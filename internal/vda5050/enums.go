package vda5050

import "strings"

// BlockingType states whether an action blocks driving or other actions.
type BlockingType string

const (
	BlockingTypeNone BlockingType = "NONE"
	BlockingTypeSoft BlockingType = "SOFT"
	BlockingTypeHard BlockingType = "HARD"
)

// ConnectionState is the session state reported on the connection topic.
type ConnectionState string

const (
	ConnectionStateOnline           ConnectionState = "ONLINE"
	ConnectionStateOffline          ConnectionState = "OFFLINE"
	ConnectionStateConnectionBroken ConnectionState = "CONNECTIONBROKEN"
)

// OperatingMode of the vehicle.
type OperatingMode string

const (
	OperatingModeAutomatic     OperatingMode = "AUTOMATIC"
	OperatingModeSemiautomatic OperatingMode = "SEMIAUTOMATIC"
	OperatingModeManual        OperatingMode = "MANUAL"
	OperatingModeService       OperatingMode = "SERVICE"
	OperatingModeTeachIn       OperatingMode = "TEACHIN"
)

// ErrorLevel of a State error entry. WARNING keeps the vehicle operable,
// FATAL requires human intervention.
type ErrorLevel string

const (
	ErrorLevelWarning ErrorLevel = "WARNING"
	ErrorLevelFatal   ErrorLevel = "FATAL"
)

// InfoLevel of a State information entry.
type InfoLevel string

const (
	InfoLevelInfo  InfoLevel = "INFO"
	InfoLevelDebug InfoLevel = "DEBUG"
)

// ActionStatus is the lifecycle position of an action.
type ActionStatus string

const (
	ActionStatusWaiting      ActionStatus = "WAITING"
	ActionStatusInitializing ActionStatus = "INITIALIZING"
	ActionStatusRunning      ActionStatus = "RUNNING"
	ActionStatusPaused       ActionStatus = "PAUSED"
	ActionStatusFinished     ActionStatus = "FINISHED"
	ActionStatusFailed       ActionStatus = "FAILED"
)

// EStop is the acknowledge type of an emergency stop.
type EStop string

const (
	EStopAutoAck EStop = "AUTOACK"
	EStopManual  EStop = "MANUAL"
	EStopRemote  EStop = "REMOTE"
	EStopNone    EStop = "NONE"
)

// AgvKinematic is the drive kinematic declared in a factsheet.
type AgvKinematic string

const (
	AgvKinematicDifferential AgvKinematic = "DIFFERENTIAL"
	AgvKinematicTricycle     AgvKinematic = "TRICYCLE"
	AgvKinematicOmnidrive    AgvKinematic = "OMNIDRIVE"
)

// ActionScope names where an action may be placed.
type ActionScope string

const (
	ActionScopeNode    ActionScope = "NODE"
	ActionScopeEdge    ActionScope = "EDGE"
	ActionScopeInstant ActionScope = "INSTANT"
)

// ValueDataType of an action parameter declared in a factsheet.
type ValueDataType string

const (
	ValueDataTypeBool    ValueDataType = "BOOL"
	ValueDataTypeNumber  ValueDataType = "NUMBER"
	ValueDataTypeInteger ValueDataType = "INTEGER"
	ValueDataTypeFloat   ValueDataType = "FLOAT"
	ValueDataTypeString  ValueDataType = "STRING"
	ValueDataTypeObject  ValueDataType = "OBJECT"
	ValueDataTypeArray   ValueDataType = "ARRAY"
)

// enumSpec describes the closed literal set of one enumeration.
type enumSpec[E ~string] struct {
	name   string
	values []E
	// aliases are accepted only for pre-2.0 documents.
	aliases map[string]E
}

func (s enumSpec[E]) valid(v E) bool {
	for _, known := range s.values {
		if v == known {
			return true
		}
	}
	return false
}

// parse maps a wire literal onto the enum. Legacy mode tolerates case and
// surrounding whitespace and resolves historic aliases.
func (s enumSpec[E]) parse(literal string, legacy bool) (E, bool) {
	if s.valid(E(literal)) {
		return E(literal), true
	}
	if !legacy {
		return "", false
	}
	folded := strings.ToUpper(strings.TrimSpace(literal))
	if s.valid(E(folded)) {
		return E(folded), true
	}
	if alias, ok := s.aliases[folded]; ok {
		return alias, true
	}
	return "", false
}

var (
	blockingTypes = enumSpec[BlockingType]{
		name:   "BlockingType",
		values: []BlockingType{BlockingTypeNone, BlockingTypeSoft, BlockingTypeHard},
	}
	connectionStates = enumSpec[ConnectionState]{
		name:   "ConnectionState",
		values: []ConnectionState{ConnectionStateOnline, ConnectionStateOffline, ConnectionStateConnectionBroken},
		aliases: map[string]ConnectionState{
			"CONNECTION_BROKEN": ConnectionStateConnectionBroken,
		},
	}
	operatingModes = enumSpec[OperatingMode]{
		name: "OperatingMode",
		values: []OperatingMode{
			OperatingModeAutomatic, OperatingModeSemiautomatic, OperatingModeManual,
			OperatingModeService, OperatingModeTeachIn,
		},
		aliases: map[string]OperatingMode{
			"TEACH":    OperatingModeTeachIn,
			"TEACH_IN": OperatingModeTeachIn,
		},
	}
	errorLevels = enumSpec[ErrorLevel]{
		name:   "ErrorLevel",
		values: []ErrorLevel{ErrorLevelWarning, ErrorLevelFatal},
	}
	infoLevels = enumSpec[InfoLevel]{
		name:   "InfoLevel",
		values: []InfoLevel{InfoLevelInfo, InfoLevelDebug},
	}
	actionStatuses = enumSpec[ActionStatus]{
		name: "ActionStatus",
		values: []ActionStatus{
			ActionStatusWaiting, ActionStatusInitializing, ActionStatusRunning,
			ActionStatusPaused, ActionStatusFinished, ActionStatusFailed,
		},
	}
	eStops = enumSpec[EStop]{
		name:   "EStop",
		values: []EStop{EStopAutoAck, EStopManual, EStopRemote, EStopNone},
		aliases: map[string]EStop{
			"MANUALACK": EStopManual,
		},
	}
	agvKinematics = enumSpec[AgvKinematic]{
		name:   "AgvKinematic",
		values: []AgvKinematic{AgvKinematicDifferential, AgvKinematicTricycle, AgvKinematicOmnidrive},
		aliases: map[string]AgvKinematic{
			"DIFF":       AgvKinematicDifferential,
			"OMNI":       AgvKinematicOmnidrive,
			"THREEWHEEL": AgvKinematicTricycle,
		},
	}
	actionScopes = enumSpec[ActionScope]{
		name:   "ActionScope",
		values: []ActionScope{ActionScopeNode, ActionScopeEdge, ActionScopeInstant},
	}
	valueDataTypes = enumSpec[ValueDataType]{
		name: "ValueDataType",
		values: []ValueDataType{
			ValueDataTypeBool, ValueDataTypeNumber, ValueDataTypeInteger, ValueDataTypeFloat,
			ValueDataTypeString, ValueDataTypeObject, ValueDataTypeArray,
		},
	}
)

func (b BlockingType) IsValid() bool    { return blockingTypes.valid(b) }
func (c ConnectionState) IsValid() bool { return connectionStates.valid(c) }
func (m OperatingMode) IsValid() bool   { return operatingModes.valid(m) }
func (l ErrorLevel) IsValid() bool      { return errorLevels.valid(l) }
func (l InfoLevel) IsValid() bool       { return infoLevels.valid(l) }
func (s ActionStatus) IsValid() bool    { return actionStatuses.valid(s) }
func (e EStop) IsValid() bool           { return eStops.valid(e) }
func (k AgvKinematic) IsValid() bool    { return agvKinematics.valid(k) }
func (s ActionScope) IsValid() bool     { return actionScopes.valid(s) }
func (t ValueDataType) IsValid() bool   { return valueDataTypes.valid(t) }

func (b BlockingType) String() string    { return string(b) }
func (c ConnectionState) String() string { return string(c) }
func (m OperatingMode) String() string   { return string(m) }
func (l ErrorLevel) String() string      { return string(l) }
func (l InfoLevel) String() string       { return string(l) }
func (s ActionStatus) String() string    { return string(s) }
func (e EStop) String() string           { return string(e) }
func (k AgvKinematic) String() string    { return string(k) }
func (s ActionScope) String() string     { return string(s) }
func (t ValueDataType) String() string   { return string(t) }

package vda5050

// Action is a capability invocation attached to a node, an edge or sent as
// an instant action.
type Action struct {
	// ActionID is unique within the owning message.
	ActionID     string
	ActionType   string
	BlockingType BlockingType
	// ActionDescription is free text for humans.
	ActionDescription *string
	// ActionParameters is interpreted by the handler for ActionType.
	ActionParameters Document
}

package validation

import (
	"fmt"

	"vda5050-bridge/internal/vda5050"
)

// Validate dispatches on the concrete message type. Pointers and values are
// both accepted; any other type yields a single unsupportedMessage violation.
func Validate(msg any, opts ...Option) Violations {
	switch m := msg.(type) {
	case *vda5050.Order:
		return ValidateOrder(m)
	case vda5050.Order:
		return ValidateOrder(&m)
	case *vda5050.State:
		return ValidateState(m, opts...)
	case vda5050.State:
		return ValidateState(&m, opts...)
	case *vda5050.InstantActions:
		return ValidateInstantActions(m, opts...)
	case vda5050.InstantActions:
		return ValidateInstantActions(&m, opts...)
	case *vda5050.Connection:
		return ValidateConnection(m)
	case vda5050.Connection:
		return ValidateConnection(&m)
	case *vda5050.Visualization:
		return ValidateVisualization(m)
	case vda5050.Visualization:
		return ValidateVisualization(&m)
	case *vda5050.Factsheet:
		return ValidateFactsheet(m)
	case vda5050.Factsheet:
		return ValidateFactsheet(&m)
	default:
		return Violations{{
			Kind:    KindUnsupportedMessage,
			Message: fmt.Sprintf("no validator for %T", msg),
		}}
	}
}

package vda5050

// Factsheet describes the static capabilities of a vehicle type.
type Factsheet struct {
	Header

	Type           string
	TypeVersion    string
	AgvKinematic   AgvKinematic
	MaxLoad        *float64
	LoadDimensions *Dimensions
	AgvDimensions  Dimensions
	Actions        []ActionDefinition
}

// ActionDefinition declares one action type the vehicle supports.
type ActionDefinition struct {
	ActionType        string
	ActionDescription string
	ActionScopes      []ActionScope
	ActionParameters  []ActionParameterDefinition
	ResultDescription Document
}

type ActionParameterDefinition struct {
	Key           string
	ValueDataType ValueDataType
	Description   *string
	IsOptional    *bool
}

// Supports reports whether actionType is declared for scope.
func (f *Factsheet) Supports(actionType string, scope ActionScope) bool {
	for _, def := range f.Actions {
		if def.ActionType != actionType {
			continue
		}
		for _, s := range def.ActionScopes {
			if s == scope {
				return true
			}
		}
	}
	return false
}

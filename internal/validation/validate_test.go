package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vda5050-bridge/internal/validation"
	"vda5050-bridge/internal/vda5050"
)

func TestInstantActions(t *testing.T) {
	active := threeNodeOrder(edge("e1", 1, "n0", "n2", true))
	active.Nodes[0] = node("n0", 0, true, "pick-1")

	ia := &vda5050.InstantActions{
		Header: header(),
		Actions: []vda5050.Action{
			{ActionID: "i1", ActionType: "pause", BlockingType: vda5050.BlockingTypeHard},
			{ActionID: "i1", ActionType: "resume", BlockingType: vda5050.BlockingTypeHard},
			{ActionID: "pick-1", ActionType: "cancelOrder", BlockingType: vda5050.BlockingTypeNone},
		},
	}

	vs := validation.ValidateInstantActions(ia)
	assert.Equal(t, []validation.Kind{validation.KindDuplicateActionID}, vs.Kinds())

	vs = validation.ValidateInstantActions(ia, validation.WithActiveOrder(active))
	require.Len(t, vs, 2)
	assert.Equal(t, validation.KindActionIDCollision, vs[1].Kind)
	assert.Equal(t, "actions[2].actionId", vs[1].Path)
}

func TestConnection(t *testing.T) {
	c := &vda5050.Connection{
		Header:          header(),
		ConnectionState: vda5050.ConnectionStateOnline,
		LastStateChange: "2024-01-01T00:00:00.000Z",
	}
	assert.Empty(t, validation.ValidateConnection(c))

	c.LastStateChange = "01/01/2024"
	vs := validation.ValidateConnection(c)
	require.Len(t, vs, 1)
	assert.Equal(t, "lastStateChange", vs[0].Path)
}

func TestFactsheet(t *testing.T) {
	f := &vda5050.Factsheet{
		Header:         header(),
		Type:           "forklift",
		TypeVersion:    "1",
		AgvKinematic:   vda5050.AgvKinematicDifferential,
		MaxLoad:        vda5050.Ptr(-1.0),
		AgvDimensions:  vda5050.Dimensions{Length: 1, Width: -0.5},
		LoadDimensions: &vda5050.Dimensions{Length: 1, Width: 1, Height: vda5050.Ptr(-2.0)},
		Actions: []vda5050.ActionDefinition{
			{ActionType: "pick", ActionDescription: "pick", ActionScopes: []vda5050.ActionScope{vda5050.ActionScopeNode}},
			{ActionType: "drop", ActionDescription: "drop", ActionScopes: []vda5050.ActionScope{}},
		},
	}

	vs := validation.ValidateFactsheet(f)
	require.Len(t, vs, 4)
	assert.Equal(t, "agvDimensions.width", vs[0].Path)
	assert.Equal(t, "loadDimensions.height", vs[1].Path)
	assert.Equal(t, "maxLoad", vs[2].Path)
	assert.Equal(t, validation.KindEmptyActionScopes, vs[3].Kind)
	assert.Equal(t, []string{"drop"}, vs[3].Entities)
}

func TestValidateDispatch(t *testing.T) {
	o := threeNodeOrder(edge("e1", 3, "n0", "n2", true))
	assert.Equal(t, validation.ValidateOrder(o), validation.Validate(o))
	assert.Equal(t, validation.ValidateOrder(o), validation.Validate(*o))

	v := &vda5050.Visualization{Header: header()}
	assert.Empty(t, validation.Validate(v))

	vs := validation.Validate("not a message")
	require.Len(t, vs, 1)
	assert.Equal(t, validation.KindUnsupportedMessage, vs[0].Kind)
}

func TestViolationsErr(t *testing.T) {
	var none validation.Violations
	assert.NoError(t, none.Err())

	vs := validation.ValidateOrder(threeNodeOrder(edge("e1", 3, "n0", "n2", true)))
	err := vs.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrViolation)

	var v validation.Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, vs[0], v)
	assert.Contains(t, err.Error(), "sequenceOrder")
}

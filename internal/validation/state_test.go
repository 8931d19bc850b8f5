package validation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vda5050-bridge/internal/validation"
	"vda5050-bridge/internal/vda5050"
)

func state() *vda5050.State {
	return &vda5050.State{
		Header:        header(),
		NodeStates:    []vda5050.NodeState{},
		EdgeStates:    []vda5050.EdgeState{},
		OperatingMode: vda5050.OperatingModeAutomatic,
		Errors:        []vda5050.Error{},
	}
}

func TestBatteryRange(t *testing.T) {
	for _, tc := range []struct {
		charge float64
		valid  bool
	}{
		{42.5, true},
		{0, true},
		{100, true},
		{150, false},
		{-1, false},
		{math.NaN(), false},
	} {
		s := state()
		s.BatteryState = &vda5050.BatteryState{BatteryCharge: tc.charge}
		vs := validation.ValidateState(s)
		if tc.valid {
			assert.Empty(t, vs, "charge %v", tc.charge)
		} else {
			assert.True(t, vs.HasKind(validation.KindBatteryRange), "charge %v", tc.charge)
		}
	}
}

func TestLastNodeReference(t *testing.T) {
	active := threeNodeOrder(edge("e1", 1, "n0", "n2", true))

	t.Run("Skipped without active order", func(t *testing.T) {
		s := state()
		s.LastNodeID = vda5050.Ptr("nowhere")
		assert.Empty(t, validation.ValidateState(s))
	})

	t.Run("Known node passes", func(t *testing.T) {
		s := state()
		s.OrderID = vda5050.Ptr("O1")
		s.LastNodeID = vda5050.Ptr("n2")
		s.LastNodeSequenceID = vda5050.Ptr(uint32(2))
		assert.Empty(t, validation.ValidateState(s, validation.WithActiveOrder(active)))
	})

	t.Run("Unknown node fails", func(t *testing.T) {
		s := state()
		s.LastNodeID = vda5050.Ptr("n7")
		vs := validation.ValidateState(s, validation.WithActiveOrder(active))
		require.Len(t, vs, 1)
		assert.Equal(t, validation.KindLastNodeReference, vs[0].Kind)
		assert.Equal(t, []string{"n7", "O1"}, vs[0].Entities)
	})

	t.Run("Sequence id mismatch fails", func(t *testing.T) {
		s := state()
		s.LastNodeID = vda5050.Ptr("n2")
		s.LastNodeSequenceID = vda5050.Ptr(uint32(4))
		vs := validation.ValidateState(s, validation.WithActiveOrder(active))
		assert.True(t, vs.HasKind(validation.KindLastNodeReference))
	})

	t.Run("Sequence id of another node fails", func(t *testing.T) {
		s := state()
		s.LastNodeID = vda5050.Ptr("n2")
		s.LastNodeSequenceID = vda5050.Ptr(uint32(0))
		vs := validation.ValidateState(s, validation.WithActiveOrder(active))
		assert.True(t, vs.HasKind(validation.KindLastNodeReference))
	})

	t.Run("Other order is not checked", func(t *testing.T) {
		s := state()
		s.OrderID = vda5050.Ptr("O2")
		s.LastNodeID = vda5050.Ptr("x")
		assert.Empty(t, validation.ValidateState(s, validation.WithActiveOrder(active)))
	})
}

func TestStateStructure(t *testing.T) {
	s := state()
	s.NodeStates = []vda5050.NodeState{{NodeID: "n1", SequenceID: 1, Actions: []vda5050.Action{}}}
	s.EdgeStates = []vda5050.EdgeState{{
		EdgeID:     "e2",
		SequenceID: 2,
		Actions:    []vda5050.Action{},
		Trajectory: &vda5050.Trajectory{Degree: 1, KnotVector: []float64{0, 1}, ControlPoints: []vda5050.ControlPoint{{}, {}}},
	}}
	s.Loads = []vda5050.Load{{LoadID: vda5050.Ptr("L1"), Weight: vda5050.Ptr(-5.0)}}

	vs := validation.ValidateState(s)
	assert.Equal(t, []validation.Kind{
		validation.KindNodeSequenceParity,
		validation.KindEdgeSequenceParity,
		validation.KindKnotVectorLength,
		validation.KindNegativeValue,
	}, vs.Kinds())
	assert.Equal(t, "edgeStates[0].trajectory.knotVector", vs[2].Path)
}

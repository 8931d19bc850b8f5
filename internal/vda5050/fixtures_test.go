package vda5050_test

import (
	"encoding/json"

	"vda5050-bridge/internal/vda5050"
)

func testHeader() vda5050.Header {
	return vda5050.Header{
		HeaderID:     7,
		Timestamp:    "2024-01-01T00:00:00.000Z",
		Version:      "2.0.0",
		Manufacturer: "ACME",
		SerialNumber: "AGV1",
	}
}

func fullAction(id string) vda5050.Action {
	return vda5050.Action{
		ActionID:          id,
		ActionType:        "pick",
		BlockingType:      vda5050.BlockingTypeHard,
		ActionDescription: vda5050.Ptr("pick up pallet"),
		ActionParameters: []any{
			map[string]any{"key": "stationType", "value": "floor"},
			map[string]any{"key": "height", "value": json.Number("0.25")},
		},
	}
}

func minimalAction(id string) vda5050.Action {
	return vda5050.Action{
		ActionID:     id,
		ActionType:   "beep",
		BlockingType: vda5050.BlockingTypeNone,
	}
}

func fullTrajectory() *vda5050.Trajectory {
	return &vda5050.Trajectory{
		Degree:     2,
		KnotVector: []float64{0, 0, 0, 0.5, 1, 1, 1},
		ControlPoints: []vda5050.ControlPoint{
			{X: 0, Y: 0, Weight: vda5050.Ptr(1.0)},
			{X: 1, Y: 0.5},
			{X: 2, Y: 1.5, Weight: vda5050.Ptr(0.8)},
			{X: 3, Y: 2},
		},
	}
}

func fullNodePosition() *vda5050.NodePosition {
	return &vda5050.NodePosition{
		X:                     1.5,
		Y:                     -2.25,
		MapID:                 "hall-1",
		Theta:                 vda5050.Ptr(3.14),
		AllowedDeviationXY:    vda5050.Ptr(0.1),
		AllowedDeviationTheta: vda5050.Ptr(0.05),
		MapDescription:        vda5050.Ptr("ground floor"),
	}
}

func fullOrder() *vda5050.Order {
	return &vda5050.Order{
		Header:        testHeader(),
		OrderID:       "O1",
		OrderUpdateID: 3,
		ZoneSetID:     vda5050.Ptr("zones-a"),
		Nodes: []vda5050.Node{
			{
				NodeID:          "n0",
				SequenceID:      0,
				NodeDescription: vda5050.Ptr("start"),
				Released:        true,
				NodePosition:    fullNodePosition(),
				Actions:         []vda5050.Action{fullAction("a1")},
			},
			{
				NodeID:     "n2",
				SequenceID: 2,
				Released:   true,
				Actions:    []vda5050.Action{},
			},
		},
		Edges: []vda5050.Edge{
			{
				EdgeID:           "e1",
				SequenceID:       1,
				EdgeDescription:  vda5050.Ptr("aisle"),
				Released:         true,
				StartNodeID:      "n0",
				EndNodeID:        "n2",
				MaxSpeed:         vda5050.Ptr(1.2),
				MaxHeight:        vda5050.Ptr(2.0),
				MinHeight:        vda5050.Ptr(0.1),
				Orientation:      vda5050.Ptr(0.0),
				Direction:        vda5050.Ptr("left"),
				RotationAllowed:  vda5050.Ptr(false),
				MaxRotationSpeed: vda5050.Ptr(0.5),
				Trajectory:       fullTrajectory(),
				Length:           vda5050.Ptr(12.5),
				Actions:          []vda5050.Action{minimalAction("a2")},
			},
		},
	}
}

func minimalOrder() *vda5050.Order {
	return &vda5050.Order{
		Header:  testHeader(),
		OrderID: "O1",
		Nodes: []vda5050.Node{
			{NodeID: "n0", SequenceID: 0, Released: true, Actions: []vda5050.Action{}},
		},
		Edges: []vda5050.Edge{},
	}
}

func fullState() *vda5050.State {
	return &vda5050.State{
		Header:             testHeader(),
		OrderID:            vda5050.Ptr("O1"),
		OrderUpdateID:      vda5050.Ptr(uint32(3)),
		ZoneSetID:          vda5050.Ptr("zones-a"),
		LastNodeID:         vda5050.Ptr("n0"),
		LastNodeSequenceID: vda5050.Ptr(uint32(0)),
		NodeStates: []vda5050.NodeState{
			{
				NodeID:          "n2",
				SequenceID:      2,
				NodeDescription: vda5050.Ptr("goal"),
				Released:        true,
				NodePosition:    fullNodePosition(),
				Actions:         []vda5050.Action{minimalAction("a3")},
			},
		},
		EdgeStates: []vda5050.EdgeState{
			{
				EdgeID:          "e1",
				SequenceID:      1,
				EdgeDescription: vda5050.Ptr("aisle"),
				Released:        true,
				Trajectory:      fullTrajectory(),
				Actions:         []vda5050.Action{},
			},
		},
		AgvPosition: &vda5050.AgvPosition{
			X:                   1,
			Y:                   2,
			Theta:               vda5050.Ptr(0.5),
			MapID:               "hall-1",
			MapDescription:      vda5050.Ptr("ground floor"),
			PositionInitialized: vda5050.Ptr(true),
			LocalizationScore:   vda5050.Ptr(0.97),
			DeviationRange:      vda5050.Ptr(0.02),
		},
		Velocity: &vda5050.Velocity{Vx: vda5050.Ptr(0.8), Vy: vda5050.Ptr(0.0), Omega: vda5050.Ptr(-0.1)},
		Loads: []vda5050.Load{
			{
				LoadID:       vda5050.Ptr("L1"),
				LoadType:     vda5050.Ptr("EPAL"),
				LoadPosition: vda5050.Ptr("front"),
				Weight:       vda5050.Ptr(420.0),
				BoundingBoxReference: &vda5050.BoundingBoxReference{
					X: 0, Y: 0, Z: 0.1, Orientation: vda5050.Ptr(1.57),
				},
				LoadDimensions: &vda5050.Dimensions{Length: 1.2, Width: 0.8, Height: vda5050.Ptr(1.0)},
				BoundingBox: []vda5050.Point{
					{X: 0, Y: 0, Z: vda5050.Ptr(0.0)},
					{X: 1.2, Y: 0.8},
				},
			},
		},
		Driving:               true,
		Paused:                vda5050.Ptr(false),
		NewBaseRequest:        vda5050.Ptr(true),
		DistanceSinceLastNode: vda5050.Ptr(3.75),
		OperatingMode:         vda5050.OperatingModeAutomatic,
		ActionStates: []vda5050.ActionState{
			{
				ActionID:          "a1",
				ActionType:        vda5050.Ptr("pick"),
				ActionDescription: vda5050.Ptr("pick up pallet"),
				ActionStatus:      vda5050.ActionStatusFinished,
				ResultDescription: vda5050.Ptr("ok"),
			},
		},
		Errors: []vda5050.Error{
			{
				ErrorType:        "orderError",
				ErrorDescription: vda5050.Ptr("node unreachable"),
				ErrorLevel:       vda5050.ErrorLevelWarning,
				ErrorReferences: []vda5050.ErrorReference{
					{ReferenceKey: "nodeId", ReferenceValue: "n2"},
				},
			},
		},
		Information: []vda5050.Info{
			{
				InfoType:        "mapLoaded",
				InfoDescription: vda5050.Ptr("hall-1"),
				InfoLevel:       vda5050.InfoLevelDebug,
				InfoReferences:  []vda5050.InfoReference{{ReferenceKey: "mapId", ReferenceValue: "hall-1"}},
			},
		},
		BatteryState: &vda5050.BatteryState{
			BatteryCharge:  42.5,
			BatteryVoltage: vda5050.Ptr(48.1),
			BatteryCurrent: vda5050.Ptr(-3.2),
			BatteryHealth:  vda5050.Ptr(97.0),
			Charging:       vda5050.Ptr(false),
			Reach:          vda5050.Ptr(15000.0),
		},
		SafetyState: &vda5050.SafetyState{EStop: vda5050.EStopNone, FieldViolation: false},
	}
}

func minimalState() *vda5050.State {
	return &vda5050.State{
		Header:        testHeader(),
		NodeStates:    []vda5050.NodeState{},
		EdgeStates:    []vda5050.EdgeState{},
		OperatingMode: vda5050.OperatingModeManual,
		Errors:        []vda5050.Error{},
	}
}

func fullFactsheet() *vda5050.Factsheet {
	return &vda5050.Factsheet{
		Header:         testHeader(),
		Type:           "forklift",
		TypeVersion:    "1.4",
		AgvKinematic:   vda5050.AgvKinematicTricycle,
		MaxLoad:        vda5050.Ptr(1000.0),
		LoadDimensions: &vda5050.Dimensions{Length: 1.2, Width: 0.8},
		AgvDimensions:  vda5050.Dimensions{Length: 2.1, Width: 1.1, Height: vda5050.Ptr(2.4)},
		Actions: []vda5050.ActionDefinition{
			{
				ActionType:        "pick",
				ActionDescription: "pick up a load",
				ActionScopes:      []vda5050.ActionScope{vda5050.ActionScopeNode, vda5050.ActionScopeInstant},
				ActionParameters: []vda5050.ActionParameterDefinition{
					{
						Key:           "stationType",
						ValueDataType: vda5050.ValueDataTypeString,
						Description:   vda5050.Ptr("station kind"),
						IsOptional:    vda5050.Ptr(true),
					},
				},
				ResultDescription: map[string]any{
					"type":       "object",
					"properties": map[string]any{"loadId": map[string]any{"type": "string"}},
				},
			},
			{
				ActionType:        "beep",
				ActionDescription: "acoustic signal",
				ActionScopes:      []vda5050.ActionScope{vda5050.ActionScopeEdge},
			},
		},
	}
}

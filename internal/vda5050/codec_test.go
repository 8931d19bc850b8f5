package vda5050_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vda5050-bridge/internal/vda5050"
)

func wireKeys(t *testing.T, data []byte) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestOrderRoundTrip(t *testing.T) {
	for name, order := range map[string]*vda5050.Order{
		"all optionals present": fullOrder(),
		"all optionals absent":  minimalOrder(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := vda5050.EncodeOrder(order)
			require.NoError(t, err)

			decoded, err := vda5050.DecodeOrder(data)
			require.NoError(t, err)
			assert.Equal(t, order, decoded)

			again, err := vda5050.EncodeOrder(decoded)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	for name, state := range map[string]*vda5050.State{
		"all optionals present": fullState(),
		"all optionals absent":  minimalState(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := vda5050.EncodeState(state)
			require.NoError(t, err)

			decoded, err := vda5050.DecodeState(data)
			require.NoError(t, err)
			assert.Equal(t, state, decoded)
		})
	}
}

func TestStateEnumVariants(t *testing.T) {
	modes := []vda5050.OperatingMode{
		vda5050.OperatingModeAutomatic, vda5050.OperatingModeSemiautomatic, vda5050.OperatingModeManual,
		vda5050.OperatingModeService, vda5050.OperatingModeTeachIn,
	}
	statuses := []vda5050.ActionStatus{
		vda5050.ActionStatusWaiting, vda5050.ActionStatusInitializing, vda5050.ActionStatusRunning,
		vda5050.ActionStatusPaused, vda5050.ActionStatusFinished, vda5050.ActionStatusFailed,
	}
	stops := []vda5050.EStop{vda5050.EStopAutoAck, vda5050.EStopManual, vda5050.EStopRemote, vda5050.EStopNone}
	levels := []vda5050.ErrorLevel{vda5050.ErrorLevelWarning, vda5050.ErrorLevelFatal}
	infos := []vda5050.InfoLevel{vda5050.InfoLevelInfo, vda5050.InfoLevelDebug}

	for _, mode := range modes {
		state := fullState()
		state.OperatingMode = mode
		for _, status := range statuses {
			state.ActionStates = append(state.ActionStates, vda5050.ActionState{ActionID: string(status), ActionStatus: status})
		}
		for i, stop := range stops {
			state.SafetyState = &vda5050.SafetyState{EStop: stop, FieldViolation: i%2 == 0}
			for _, level := range levels {
				state.Errors[0].ErrorLevel = level
				for _, info := range infos {
					state.Information[0].InfoLevel = info

					data, err := vda5050.EncodeState(state)
					require.NoError(t, err)
					decoded, err := vda5050.DecodeState(data)
					require.NoError(t, err)
					assert.Equal(t, state, decoded)
				}
			}
		}
	}
}

func TestConnectionRoundTrip(t *testing.T) {
	for _, cs := range []vda5050.ConnectionState{
		vda5050.ConnectionStateOnline, vda5050.ConnectionStateOffline, vda5050.ConnectionStateConnectionBroken,
	} {
		t.Run(string(cs), func(t *testing.T) {
			conn := &vda5050.Connection{
				Header:          testHeader(),
				ConnectionState: cs,
				LastStateChange: "2024-01-01T00:00:00.000Z",
			}
			data, err := vda5050.EncodeConnection(conn)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"connectionState":"`+string(cs)+`"`)

			decoded, err := vda5050.DecodeConnection(data)
			require.NoError(t, err)
			assert.Equal(t, conn, decoded)
		})
	}
}

func TestInstantActionsRoundTrip(t *testing.T) {
	t.Run("Current protocol uses actions key", func(t *testing.T) {
		ia := &vda5050.InstantActions{
			Header: testHeader(),
			Actions: []vda5050.Action{
				fullAction("i1"),
				minimalAction("i2"),
				{ActionID: "i3", ActionType: "pause", BlockingType: vda5050.BlockingTypeSoft},
			},
		}
		data, err := vda5050.EncodeInstantActions(ia)
		require.NoError(t, err)
		keys := wireKeys(t, data)
		assert.Contains(t, keys, "actions")
		assert.NotContains(t, keys, "instantActions")

		decoded, err := vda5050.DecodeInstantActions(data)
		require.NoError(t, err)
		assert.Equal(t, ia, decoded)
	})

	t.Run("Legacy protocol uses instantActions key", func(t *testing.T) {
		ia := &vda5050.InstantActions{Header: testHeader(), Actions: []vda5050.Action{minimalAction("i1")}}
		ia.Version = "1.1.0"
		data, err := vda5050.EncodeInstantActions(ia)
		require.NoError(t, err)
		keys := wireKeys(t, data)
		assert.Contains(t, keys, "instantActions")
		assert.NotContains(t, keys, "actions")

		decoded, err := vda5050.DecodeInstantActions(data)
		require.NoError(t, err)
		assert.Equal(t, ia, decoded)
	})

	t.Run("Other spelling is accepted on decode", func(t *testing.T) {
		doc := `{"headerId":1,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s",
			"instantActions":[{"actionId":"x","actionType":"beep","blockingType":"NONE"}]}`
		decoded, err := vda5050.DecodeInstantActions([]byte(doc))
		require.NoError(t, err)
		require.Len(t, decoded.Actions, 1)
		assert.Equal(t, "x", decoded.Actions[0].ActionID)
	})
}

func TestVisualizationRoundTrip(t *testing.T) {
	t.Run("With objects", func(t *testing.T) {
		v := &vda5050.Visualization{
			Header:      testHeader(),
			AgvPosition: &vda5050.AgvPosition{X: 1, Y: 2, MapID: "hall-1"},
			AgvVelocity: &vda5050.Velocity{Vx: vda5050.Ptr(0.5)},
			AgvOutline:  []vda5050.Point{{X: 0, Y: 0}, {X: 1, Y: 0, Z: vda5050.Ptr(0.2)}},
			Visualizations: []vda5050.VisualizationObject{
				{Type: "path", ID: "p1", Data: []any{json.Number("1"), json.Number("2.5"), "x", true}},
				{Type: "marker", ID: "m1", Data: map[string]any{"color": "red", "size": json.Number("3")}},
				{Type: "empty", ID: "e1", Data: nil},
			},
		}
		data, err := vda5050.EncodeVisualization(v)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"data":null`)

		decoded, err := vda5050.DecodeVisualization(data)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	})

	t.Run("Header only", func(t *testing.T) {
		v := &vda5050.Visualization{Header: testHeader()}
		data, err := vda5050.EncodeVisualization(v)
		require.NoError(t, err)
		assert.Len(t, wireKeys(t, data), 5)

		decoded, err := vda5050.DecodeVisualization(data)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	})

	t.Run("Present empty list stays present", func(t *testing.T) {
		v := &vda5050.Visualization{Header: testHeader(), AgvOutline: []vda5050.Point{}}
		data, err := vda5050.EncodeVisualization(v)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"agvOutline":[]`)

		decoded, err := vda5050.DecodeVisualization(data)
		require.NoError(t, err)
		assert.NotNil(t, decoded.AgvOutline)
		assert.Empty(t, decoded.AgvOutline)
	})
}

func TestFactsheetRoundTrip(t *testing.T) {
	for _, k := range []vda5050.AgvKinematic{
		vda5050.AgvKinematicDifferential, vda5050.AgvKinematicTricycle, vda5050.AgvKinematicOmnidrive,
	} {
		t.Run(string(k), func(t *testing.T) {
			f := fullFactsheet()
			f.AgvKinematic = k
			for _, vdt := range []vda5050.ValueDataType{
				vda5050.ValueDataTypeBool, vda5050.ValueDataTypeNumber, vda5050.ValueDataTypeInteger,
				vda5050.ValueDataTypeFloat, vda5050.ValueDataTypeString, vda5050.ValueDataTypeObject,
				vda5050.ValueDataTypeArray,
			} {
				f.Actions[0].ActionParameters = append(f.Actions[0].ActionParameters,
					vda5050.ActionParameterDefinition{Key: string(vdt), ValueDataType: vdt})
			}

			data, err := vda5050.EncodeFactsheet(f)
			require.NoError(t, err)
			decoded, err := vda5050.DecodeFactsheet(data)
			require.NoError(t, err)
			assert.Equal(t, f, decoded)
		})
	}
}

func TestHeaderFlattening(t *testing.T) {
	conn := &vda5050.Connection{
		Header: vda5050.Header{
			HeaderID:     7,
			Timestamp:    "2024-01-01T00:00:00.000Z",
			Version:      "2.0.0",
			Manufacturer: "ACME",
			SerialNumber: "AGV1",
		},
		ConnectionState: vda5050.ConnectionStateOnline,
		LastStateChange: "2024-01-01T00:00:00.000Z",
	}
	data, err := vda5050.EncodeConnection(conn)
	require.NoError(t, err)

	keys := wireKeys(t, data)
	assert.Len(t, keys, 7)
	assert.NotContains(t, keys, "header")
	for _, k := range []string{"headerId", "timestamp", "version", "manufacturer", "serialNumber"} {
		assert.Contains(t, keys, k)
	}
	assert.Equal(t, `{"headerId":7,"timestamp":"2024-01-01T00:00:00.000Z","version":"2.0.0","manufacturer":"ACME","serialNumber":"AGV1","connectionState":"ONLINE","lastStateChange":"2024-01-01T00:00:00.000Z"}`, string(data))
}

func TestOrderExampleDocument(t *testing.T) {
	doc := `{"headerId":7,"timestamp":"2024-01-01T00:00:00.000Z","version":"2.0.0",
		"manufacturer":"ACME","serialNumber":"AGV1","orderId":"O1","orderUpdateId":0,
		"nodes":[{"nodeId":"n0","sequenceId":0,"released":true,"actions":[]}],"edges":[]}`

	order, err := vda5050.DecodeOrder([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, uint32(7), order.HeaderID)
	assert.Equal(t, "ACME", order.Manufacturer)
	assert.Nil(t, order.ZoneSetID)
	require.Len(t, order.Nodes, 1)
	assert.Nil(t, order.Nodes[0].NodePosition)
	assert.NotNil(t, order.Edges)

	data, err := vda5050.EncodeOrder(order)
	require.NoError(t, err)
	keys := wireKeys(t, data)
	assert.Len(t, keys, 9)
	assert.NotContains(t, keys, "zoneSetId")
}

func TestOptionalOmission(t *testing.T) {
	order := minimalOrder()
	order.Nodes[0].NodePosition = &vda5050.NodePosition{X: 1, Y: 2, MapID: "m"}

	data, err := vda5050.EncodeOrder(order)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "theta")
	assert.NotContains(t, string(data), "null")

	order.Nodes[0].NodePosition.Theta = vda5050.Ptr(0.0)
	data, err = vda5050.EncodeOrder(order)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theta":0`)
}

func TestNilRequiredListEncodesEmpty(t *testing.T) {
	order := &vda5050.Order{Header: testHeader(), OrderID: "O1"}
	data, err := vda5050.EncodeOrder(order)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nodes":[]`)
	assert.Contains(t, string(data), `"edges":[]`)

	decoded, err := vda5050.DecodeOrder(data)
	require.NoError(t, err)
	assert.NotNil(t, decoded.Nodes)
	assert.Empty(t, decoded.Nodes)
}

func TestEnumFidelity(t *testing.T) {
	state := minimalState()
	state.Errors = []vda5050.Error{{
		ErrorType:       "e",
		ErrorLevel:      vda5050.ErrorLevelFatal,
		ErrorReferences: []vda5050.ErrorReference{},
	}}
	data, err := vda5050.EncodeState(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"errorLevel":"FATAL"`)

	bad := []byte(`{"headerId":1,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s",
		"nodeStates":[],"edgeStates":[],"driving":false,"operatingMode":"AUTOMATIC",
		"errors":[{"errorType":"e","errorLevel":"CRITICAL","errorReferences":[]}]}`)
	_, err = vda5050.DecodeState(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, vda5050.ErrUnknownEnumVariant)

	var enumErr *vda5050.UnknownEnumVariantError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, "errors[0].errorLevel", enumErr.Path)
	assert.Equal(t, "CRITICAL", enumErr.Literal)
	assert.Equal(t, "ErrorLevel", enumErr.Enum)
}

func TestEnumCaseSensitivity(t *testing.T) {
	doc := func(version string) []byte {
		return []byte(`{"headerId":1,"timestamp":"t","version":"` + version + `","manufacturer":"m","serialNumber":"s",
			"connectionState":"connection_broken","lastStateChange":"t"}`)
	}

	_, err := vda5050.DecodeConnection(doc("2.0.0"))
	assert.ErrorIs(t, err, vda5050.ErrUnknownEnumVariant)

	conn, err := vda5050.DecodeConnection(doc("1.1.0"))
	require.NoError(t, err)
	assert.Equal(t, vda5050.ConnectionStateConnectionBroken, conn.ConnectionState)
}

func TestLegacyAliases(t *testing.T) {
	doc := func(version, kinematic string) []byte {
		return []byte(`{"headerId":1,"timestamp":"t","version":"` + version + `","manufacturer":"m","serialNumber":"s",
			"type":"t","typeVersion":"1","agvKinematic":"` + kinematic + `",
			"agvDimensions":{"length":1,"width":1},"actions":[]}`)
	}

	f, err := vda5050.DecodeFactsheet(doc("1.1.0", "diff"))
	require.NoError(t, err)
	assert.Equal(t, vda5050.AgvKinematicDifferential, f.AgvKinematic)

	f, err = vda5050.DecodeFactsheet(doc("1.1.0", "Omni"))
	require.NoError(t, err)
	assert.Equal(t, vda5050.AgvKinematicOmnidrive, f.AgvKinematic)

	_, err = vda5050.DecodeFactsheet(doc("2.0.0", "diff"))
	assert.ErrorIs(t, err, vda5050.ErrUnknownEnumVariant)

	_, err = vda5050.DecodeFactsheet(doc("not-a-version", "diff"))
	assert.ErrorIs(t, err, vda5050.ErrUnknownEnumVariant)
}

func TestMalformedOptional(t *testing.T) {
	doc := []byte(`{"headerId":1,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s",
		"orderId":"O1","orderUpdateId":0,
		"nodes":[{"nodeId":"n0","sequenceId":0,"released":true,"actions":[],
			"nodePosition":{"x":1,"y":2,"mapId":"m","theta":null}}],"edges":[]}`)

	_, err := vda5050.DecodeOrder(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, vda5050.ErrMalformedOptional)
	assert.NotErrorIs(t, err, vda5050.ErrDecode)

	var malformed *vda5050.MalformedOptionalError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "nodes[0].nodePosition.theta", malformed.Path)

	top := []byte(`{"headerId":1,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s",
		"orderId":"O1","orderUpdateId":0,"zoneSetId":null,"nodes":[],"edges":[]}`)
	_, err = vda5050.DecodeOrder(top)
	assert.ErrorIs(t, err, vda5050.ErrMalformedOptional)
}

func TestDecodeErrors(t *testing.T) {
	header := `"headerId":1,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s"`
	cases := []struct {
		name string
		doc  string
		path string
	}{
		{"Missing required field", `{` + header + `,"orderUpdateId":0,"nodes":[],"edges":[]}`, "orderId"},
		{"Null required field", `{` + header + `,"orderId":null,"orderUpdateId":0,"nodes":[],"edges":[]}`, "orderId"},
		{"Wrong type", `{` + header + `,"orderId":"O1","orderUpdateId":"zero","nodes":[],"edges":[]}`, "orderUpdateId"},
		{"Negative unsigned", `{` + header + `,"orderId":"O1","orderUpdateId":-1,"nodes":[],"edges":[]}`, "orderUpdateId"},
		{"Overflowing header id", `{"headerId":4294967296,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s","orderId":"O1","orderUpdateId":0,"nodes":[],"edges":[]}`, "headerId"},
		{"Nested missing field", `{` + header + `,"orderId":"O1","orderUpdateId":0,"nodes":[{"nodeId":"n0","released":true,"actions":[]}],"edges":[]}`, "nodes[0].sequenceId"},
		{"List is not an array", `{` + header + `,"orderId":"O1","orderUpdateId":0,"nodes":{},"edges":[]}`, "nodes"},
		{"Document is not an object", `[1,2,3]`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := vda5050.DecodeOrder([]byte(tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, vda5050.ErrDecode)

			var decodeErr *vda5050.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tc.path, decodeErr.Path)
		})
	}

	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := vda5050.DecodeState([]byte(`{"headerId":`))
		assert.ErrorIs(t, err, vda5050.ErrDecode)
	})
}

func TestStrictUnknownFields(t *testing.T) {
	doc := []byte(`{"headerId":1,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s",
		"connectionState":"ONLINE","lastStateChange":"t","zExtra":1,"aExtra":2}`)

	conn, err := vda5050.DecodeConnection(doc)
	require.NoError(t, err)
	assert.Equal(t, vda5050.ConnectionStateOnline, conn.ConnectionState)

	_, err = vda5050.DecodeConnection(doc, vda5050.Strict())
	require.Error(t, err)
	assert.ErrorIs(t, err, vda5050.ErrUnknownField)

	var unknown *vda5050.UnknownFieldError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "aExtra", unknown.Path)

	nested := []byte(`{"headerId":1,"timestamp":"t","version":"2.0.0","manufacturer":"m","serialNumber":"s",
		"actions":[{"actionId":"a","actionType":"beep","blockingType":"NONE","priority":1}]}`)
	_, err = vda5050.DecodeInstantActions(nested, vda5050.Strict())
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "actions[0].priority", unknown.Path)
}

func TestEncodeErrors(t *testing.T) {
	t.Run("Unknown enum literal", func(t *testing.T) {
		state := minimalState()
		state.OperatingMode = "HOVERING"
		_, err := vda5050.EncodeState(state)
		require.Error(t, err)
		assert.ErrorIs(t, err, vda5050.ErrEncode)
		assert.ErrorIs(t, err, vda5050.ErrUnknownEnumVariant)

		var encodeErr *vda5050.EncodeError
		require.True(t, errors.As(err, &encodeErr))
		assert.Equal(t, "operatingMode", encodeErr.Path)
	})

	t.Run("Non-finite float", func(t *testing.T) {
		order := fullOrder()
		order.Edges[0].MaxSpeed = vda5050.Ptr(math.NaN())
		_, err := vda5050.EncodeOrder(order)
		require.Error(t, err)
		assert.ErrorIs(t, err, vda5050.ErrEncode)

		var encodeErr *vda5050.EncodeError
		require.True(t, errors.As(err, &encodeErr))
		assert.Equal(t, "edges[0].maxSpeed", encodeErr.Path)
	})

	t.Run("Infinite knot", func(t *testing.T) {
		order := fullOrder()
		order.Edges[0].Trajectory.KnotVector[3] = math.Inf(1)
		_, err := vda5050.EncodeOrder(order)
		assert.ErrorIs(t, err, vda5050.ErrEncode)
	})
}

func TestDeterministicEncoding(t *testing.T) {
	first, err := vda5050.EncodeFactsheet(fullFactsheet())
	require.NoError(t, err)
	second, err := vda5050.EncodeFactsheet(fullFactsheet())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	decoded, err := vda5050.DecodeFactsheet(first)
	require.NoError(t, err)
	third, err := vda5050.EncodeFactsheet(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(third))
}

func TestStandardLibraryInterop(t *testing.T) {
	order := fullOrder()
	data, err := json.Marshal(order)
	require.NoError(t, err)
	assert.NotContains(t, wireKeys(t, data), "Header")

	var decoded vda5050.Order
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *order, decoded)

	var bad vda5050.State
	err = json.Unmarshal([]byte(`{"headerId":1}`), &bad)
	assert.ErrorIs(t, err, vda5050.ErrDecode)
}

func TestDecodeDoesNotMutateOnError(t *testing.T) {
	conn := vda5050.Connection{Header: testHeader(), ConnectionState: vda5050.ConnectionStateOnline, LastStateChange: "x"}
	before := conn
	err := conn.UnmarshalJSON([]byte(`{"headerId":2}`))
	require.Error(t, err)
	assert.Equal(t, before, conn)
}

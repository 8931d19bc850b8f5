package vda5050_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vda5050-bridge/internal/vda5050"
)

func TestTimestamps(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 123456789, time.FixedZone("KST", 9*3600))
	assert.Equal(t, "2024-01-01T00:00:00.123Z", vda5050.FormatTimestamp(ts))

	parsed, err := vda5050.ParseTimestamp("2024-01-01T00:00:00.000Z")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	_, err = vda5050.ParseTimestamp("2024-01-01 00:00")
	assert.Error(t, err)
}

func TestMajorVersion(t *testing.T) {
	major, err := vda5050.MajorVersion("2.0.0")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), major)

	major, err = vda5050.MajorVersion("1.1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), major)

	_, err = vda5050.MajorVersion("latest")
	assert.Error(t, err)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, vda5050.ErrorLevelFatal.IsValid())
	assert.False(t, vda5050.ErrorLevel("CRITICAL").IsValid())
	assert.True(t, vda5050.ConnectionStateConnectionBroken.IsValid())
	assert.False(t, vda5050.ConnectionState("CONNECTION_BROKEN").IsValid())
	assert.Equal(t, "ONLINE", vda5050.ConnectionStateOnline.String())
}

func TestOrderHelpers(t *testing.T) {
	o := fullOrder()
	assert.Equal(t, []string{"a1", "a2"}, o.ActionIDs())

	n, ok := o.NodeBySequence(2)
	require.True(t, ok)
	assert.Equal(t, "n2", n.NodeID)
	_, ok = o.NodeBySequence(1)
	assert.False(t, ok)
}

func TestStateHasFatalError(t *testing.T) {
	s := fullState()
	assert.False(t, s.HasFatalError())
	s.Errors = append(s.Errors, vda5050.Error{ErrorType: "e", ErrorLevel: vda5050.ErrorLevelFatal})
	assert.True(t, s.HasFatalError())
}

func TestFactsheetSupports(t *testing.T) {
	f := fullFactsheet()
	assert.True(t, f.Supports("pick", vda5050.ActionScopeInstant))
	assert.False(t, f.Supports("pick", vda5050.ActionScopeEdge))
	assert.False(t, f.Supports("drop", vda5050.ActionScopeNode))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1.5", vda5050.Number(1.5).String())
	assert.Equal(t, "-2", vda5050.Number(-2).String())
	assert.Equal(t, "1e+21", vda5050.Number(1e21).String())

	ia := &vda5050.InstantActions{
		Header: testHeader(),
		Actions: []vda5050.Action{{
			ActionID:         "a1",
			ActionType:       "lift",
			BlockingType:     vda5050.BlockingTypeHard,
			ActionParameters: map[string]any{"height": vda5050.Number(1.5)},
		}},
	}
	data, err := vda5050.EncodeInstantActions(ia)
	require.NoError(t, err)
	decoded, err := vda5050.DecodeInstantActions(data)
	require.NoError(t, err)
	assert.Equal(t, ia, decoded)
}

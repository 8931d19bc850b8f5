// Package vda5050 holds the message set exchanged between a master control
// and AGVs, together with its JSON wire codec.
//
// Every top-level message embeds a Header by value. On the wire the header
// fields are flattened into the message object. Optional fields are pointers
// (or nil slices for optional lists); nil always means "absent".
package vda5050

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ProtocolVersion is the version written into headers produced by this module.
const ProtocolVersion = "2.0.0"

// TimestampLayout is the fixed textual form used for produced timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Header is the envelope shared by every message.
type Header struct {
	// HeaderID is a per-sender counter. It wraps at math.MaxUint32.
	HeaderID     uint32
	Timestamp    string
	Version      string
	Manufacturer string
	SerialNumber string
}

// Document is an opaque JSON payload: nil, bool, json.Number, string,
// []any or map[string]any. Its contents are not interpreted by this package.
// Decoded numbers are always json.Number, so producers must build numbers
// with Number (or json.Number) for a message to survive a round trip.
type Document = any

// Number renders f as the json.Number the decoder would produce for it.
func Number(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Ptr returns a pointer to v, used to fill optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// FormatTimestamp renders t in TimestampLayout (UTC, millisecond precision).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an RFC 3339 timestamp with optional sub-second part.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

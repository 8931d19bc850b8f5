// Package validation checks the cross-field and cross-entity invariants of
// VDA5050 messages that the type system cannot express. Validators are pure:
// they never modify their input and collect every violation in one pass.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"vda5050-bridge/internal/vda5050"
)

// ErrViolation matches every Violation with errors.Is.
var ErrViolation = errors.New("validation: structural violation")

// Kind names the invariant a Violation breaks. The values double as metric
// labels.
type Kind string

const (
	KindTimestampFormat Kind = "timestampFormat"
	KindVersionFormat   Kind = "versionFormat"

	KindNodeSequenceParity   Kind = "nodeSequenceParity"
	KindEdgeSequenceParity   Kind = "edgeSequenceParity"
	KindSequenceOrder        Kind = "sequenceOrder"
	KindEdgeAdjacency        Kind = "edgeAdjacency"
	KindUnknownNodeReference Kind = "unknownNodeReference"
	KindEdgeCount            Kind = "edgeCount"
	KindDuplicateActionID    Kind = "duplicateActionId"
	KindBaseNotReleased      Kind = "baseNotReleased"
	KindHorizonOrder         Kind = "horizonOrder"

	KindBatteryRange      Kind = "batteryRange"
	KindLastNodeReference Kind = "lastNodeReference"
	KindNegativeValue     Kind = "negativeValue"

	KindActionIDCollision Kind = "actionIdCollision"

	KindKnotVectorLength   Kind = "knotVectorLength"
	KindKnotVectorOrder    Kind = "knotVectorOrder"
	KindControlPointWeight Kind = "controlPointWeight"

	KindNegativeDimension Kind = "negativeDimension"
	KindEmptyActionScopes Kind = "emptyActionScopes"

	KindUnsupportedMessage Kind = "unsupportedMessage"
)

// Violation is one failed invariant. Path uses the wire field names of the
// decoder's error paths; Entities lists the identifiers involved.
type Violation struct {
	Kind     Kind     `json:"kind"`
	Path     string   `json:"path"`
	Entities []string `json:"entities,omitempty"`
	Message  string   `json:"message"`
}

func (v Violation) Error() string {
	if v.Path == "" {
		return fmt.Sprintf("validation: %s: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("validation: %s at %s: %s", v.Kind, v.Path, v.Message)
}

func (v Violation) Is(target error) bool { return target == ErrViolation }

// Violations is the result of a validator run. An empty result means valid.
type Violations []Violation

// Err joins the violations into one error, or returns nil when there are
// none.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	errs := make([]error, len(vs))
	for i, v := range vs {
		errs[i] = v
	}
	return errors.Join(errs...)
}

func (vs Violations) HasKind(k Kind) bool {
	for _, v := range vs {
		if v.Kind == k {
			return true
		}
	}
	return false
}

// Kinds returns the distinct kinds in order of first appearance.
func (vs Violations) Kinds() []Kind {
	seen := make(map[Kind]bool, len(vs))
	var kinds []Kind
	for _, v := range vs {
		if !seen[v.Kind] {
			seen[v.Kind] = true
			kinds = append(kinds, v.Kind)
		}
	}
	return kinds
}

func (vs Violations) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Error()
	}
	return strings.Join(parts, "; ")
}

// Option supplies context a validator cannot derive from the message itself.
type Option func(*options)

type options struct {
	activeOrder *vda5050.Order
}

// WithActiveOrder gives the validator the order the vehicle is currently
// executing. State.lastNodeId and instant action id collisions are only
// checked when it is supplied.
func WithActiveOrder(o *vda5050.Order) Option {
	return func(opts *options) { opts.activeOrder = o }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type collector struct {
	vs Violations
}

func (c *collector) add(kind Kind, path, msg string, entities ...string) {
	c.vs = append(c.vs, Violation{Kind: kind, Path: path, Entities: entities, Message: msg})
}

func (c *collector) addf(kind Kind, path string, entities []string, format string, args ...any) {
	c.add(kind, path, fmt.Sprintf(format, args...), entities...)
}

func (c *collector) merge(vs Violations) {
	c.vs = append(c.vs, vs...)
}

func field(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

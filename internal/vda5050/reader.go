package vda5050

import (
	"bytes"
	"encoding/json"
	"sort"
)

// DecodeOption configures a decode call.
type DecodeOption func(*decodeState)

// Strict makes decoding fail with UnknownFieldError on keys the schema does
// not know. The default tolerates and discards them.
func Strict() DecodeOption {
	return func(d *decodeState) { d.strict = true }
}

type decodeState struct {
	strict bool
	legacy bool
}

func newDecodeState(opts []DecodeOption) *decodeState {
	d := &decodeState{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// object is one JSON object being consumed field by field. Every accessor
// marks its key as seen so that done can report leftovers in strict mode.
type object struct {
	d      *decodeState
	path   string
	fields map[string]json.RawMessage
	seen   map[string]bool
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (d *decodeState) object(path string, raw json.RawMessage) (*object, error) {
	if isNull(raw) {
		return nil, &DecodeError{Path: path, Reason: "expected object, got null"}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &DecodeError{Path: path, Reason: "expected object", Err: err}
	}
	return &object{d: d, path: path, fields: fields, seen: make(map[string]bool, len(fields))}, nil
}

func (o *object) take(name string) (json.RawMessage, bool) {
	o.seen[name] = true
	raw, ok := o.fields[name]
	return raw, ok
}

func (o *object) has(name string) bool {
	_, ok := o.fields[name]
	return ok
}

func (o *object) at(name string) string {
	return joinPath(o.path, name)
}

func (o *object) done() error {
	if !o.d.strict {
		return nil
	}
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		if !o.seen[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	return &UnknownFieldError{Path: o.at(keys[0])}
}

// requiredRaw returns the raw value of a required, non-null field.
func (o *object) requiredRaw(name string) (json.RawMessage, error) {
	raw, ok := o.take(name)
	if !ok {
		return nil, &DecodeError{Path: o.at(name), Reason: "missing required field"}
	}
	if isNull(raw) {
		return nil, &DecodeError{Path: o.at(name), Reason: "null value for required field"}
	}
	return raw, nil
}

// optionalRaw returns the raw value of an optional field, or nil when the
// key is absent. A present null is rejected.
func (o *object) optionalRaw(name string) (json.RawMessage, error) {
	raw, ok := o.take(name)
	if !ok {
		return nil, nil
	}
	if isNull(raw) {
		return nil, &MalformedOptionalError{Path: o.at(name)}
	}
	return raw, nil
}

func decodeScalar[T any](path string, raw json.RawMessage, dst *T) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &DecodeError{Path: path, Reason: "wrong value type", Err: err}
	}
	return nil
}

func required[T any](o *object, name string, dst *T) error {
	raw, err := o.requiredRaw(name)
	if err != nil {
		return err
	}
	return decodeScalar(o.at(name), raw, dst)
}

func optional[T any](o *object, name string, dst **T) error {
	raw, err := o.optionalRaw(name)
	if err != nil || raw == nil {
		return err
	}
	var v T
	if err := decodeScalar(o.at(name), raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

func resolveEnum[E ~string](d *decodeState, path, literal string, variants enumSpec[E]) (E, error) {
	v, ok := variants.parse(literal, d.legacy)
	if !ok {
		return "", &UnknownEnumVariantError{Path: path, Enum: variants.name, Literal: literal}
	}
	return v, nil
}

func requiredEnum[E ~string](o *object, name string, variants enumSpec[E], dst *E) error {
	var literal string
	if err := required(o, name, &literal); err != nil {
		return err
	}
	v, err := resolveEnum(o.d, o.at(name), literal, variants)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// elemDecoder decodes one array element found at path.
type elemDecoder[T any] func(d *decodeState, path string, raw json.RawMessage) (T, error)

func decodeList[T any](d *decodeState, path string, raw json.RawMessage, elem elemDecoder[T]) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &DecodeError{Path: path, Reason: "expected array", Err: err}
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := elem(d, indexPath(path, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// requiredList always yields a non-nil slice.
func requiredList[T any](o *object, name string, elem elemDecoder[T]) ([]T, error) {
	raw, err := o.requiredRaw(name)
	if err != nil {
		return nil, err
	}
	return decodeList(o.d, o.at(name), raw, elem)
}

// optionalList yields nil when the key is absent and a non-nil slice when
// it is present, even if empty.
func optionalList[T any](o *object, name string, elem elemDecoder[T]) ([]T, error) {
	raw, err := o.optionalRaw(name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeList(o.d, o.at(name), raw, elem)
}

func objectElem[T any](fn func(o *object) (T, error)) elemDecoder[T] {
	return func(d *decodeState, path string, raw json.RawMessage) (T, error) {
		var zero T
		o, err := d.object(path, raw)
		if err != nil {
			return zero, err
		}
		v, err := fn(o)
		if err != nil {
			return zero, err
		}
		if err := o.done(); err != nil {
			return zero, err
		}
		return v, nil
	}
}

func scalarElem[T any]() elemDecoder[T] {
	return func(_ *decodeState, path string, raw json.RawMessage) (T, error) {
		var v T
		if isNull(raw) {
			return v, &DecodeError{Path: path, Reason: "null array element"}
		}
		err := decodeScalar(path, raw, &v)
		return v, err
	}
}

func enumElem[E ~string](variants enumSpec[E]) elemDecoder[E] {
	return func(d *decodeState, path string, raw json.RawMessage) (E, error) {
		literal, err := scalarElem[string]()(d, path, raw)
		if err != nil {
			return "", err
		}
		return resolveEnum(d, path, literal, variants)
	}
}

func requiredObject[T any](o *object, name string, fn func(o *object) (T, error)) (T, error) {
	var zero T
	raw, err := o.requiredRaw(name)
	if err != nil {
		return zero, err
	}
	return objectElem(fn)(o.d, o.at(name), raw)
}

func optionalObject[T any](o *object, name string, fn func(o *object) (T, error)) (*T, error) {
	raw, err := o.optionalRaw(name)
	if err != nil || raw == nil {
		return nil, err
	}
	v, err := objectElem(fn)(o.d, o.at(name), raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeDocument(path string, raw json.RawMessage) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Path: path, Reason: "malformed document value", Err: err}
	}
	return v, nil
}

// anyDocument decodes a required opaque value; null is a legal document.
func anyDocument(o *object, name string) (Document, error) {
	raw, ok := o.take(name)
	if !ok {
		return nil, &DecodeError{Path: o.at(name), Reason: "missing required field"}
	}
	return decodeDocument(o.at(name), raw)
}

func optionalDocument(o *object, name string) (Document, error) {
	raw, err := o.optionalRaw(name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeDocument(o.at(name), raw)
}

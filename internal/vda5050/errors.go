package vda5050

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every error returned by the codec matches exactly
// one of them.
var (
	ErrDecode             = errors.New("vda5050: decode error")
	ErrUnknownEnumVariant = errors.New("vda5050: unknown enum variant")
	ErrMalformedOptional  = errors.New("vda5050: malformed optional field")
	ErrUnknownField       = errors.New("vda5050: unknown field")
	ErrEncode             = errors.New("vda5050: encode error")
)

// DecodeError reports a malformed document, a missing or null required
// field, or a value of the wrong JSON type.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vda5050: decode %s: %s: %v", displayPath(e.Path), e.Reason, e.Err)
	}
	return fmt.Sprintf("vda5050: decode %s: %s", displayPath(e.Path), e.Reason)
}

func (e *DecodeError) Unwrap() error        { return e.Err }
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// UnknownEnumVariantError reports a literal outside the closed set of Enum.
type UnknownEnumVariantError struct {
	Path    string
	Enum    string
	Literal string
}

func (e *UnknownEnumVariantError) Error() string {
	return fmt.Sprintf("vda5050: %s: unknown %s literal %q", displayPath(e.Path), e.Enum, e.Literal)
}

func (e *UnknownEnumVariantError) Is(target error) bool { return target == ErrUnknownEnumVariant }

// MalformedOptionalError reports an optional field sent as null instead of
// being omitted.
type MalformedOptionalError struct {
	Path string
}

func (e *MalformedOptionalError) Error() string {
	return fmt.Sprintf("vda5050: %s: optional field present with null value", displayPath(e.Path))
}

func (e *MalformedOptionalError) Is(target error) bool { return target == ErrMalformedOptional }

// UnknownFieldError is only produced by strict decoding.
type UnknownFieldError struct {
	Path string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("vda5050: unknown field %s", displayPath(e.Path))
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// EncodeError reports a value that has no wire form, such as an unknown
// enum literal or a non-finite float.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("vda5050: encode %s: %v", displayPath(e.Path), e.Err)
}

func (e *EncodeError) Unwrap() error        { return e.Err }
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }

func displayPath(path string) string {
	if path == "" {
		return "<document>"
	}
	return path
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// ErrorKind classifies a codec error by its sentinel. It returns "" for
// errors the codec did not produce.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedOptional):
		return "malformedOptional"
	case errors.Is(err, ErrUnknownField):
		return "unknownField"
	case errors.Is(err, ErrEncode):
		return "encode"
	case errors.Is(err, ErrUnknownEnumVariant):
		return "unknownEnumVariant"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return ""
	}
}

// ErrorPath returns the field path carried by a codec error.
func ErrorPath(err error) (string, bool) {
	var (
		decodeErr    *DecodeError
		enumErr      *UnknownEnumVariantError
		malformedErr *MalformedOptionalError
		unknownErr   *UnknownFieldError
		encodeErr    *EncodeError
	)
	switch {
	case errors.As(err, &encodeErr):
		return encodeErr.Path, true
	case errors.As(err, &decodeErr):
		return decodeErr.Path, true
	case errors.As(err, &enumErr):
		return enumErr.Path, true
	case errors.As(err, &malformedErr):
		return malformedErr.Path, true
	case errors.As(err, &unknownErr):
		return unknownErr.Path, true
	}
	return "", false
}

package vda5050

import (
	"bytes"
	"encoding/json"
)

// encoder writes one wire document. The first failure is kept and every
// later write becomes a no-op.
type encoder struct {
	buf bytes.Buffer
	err error
}

func (e *encoder) fail(path string, err error) {
	if e.err == nil {
		e.err = &EncodeError{Path: path, Err: err}
	}
}

func (e *encoder) value(path string, v any) {
	if e.err != nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		e.fail(path, err)
		return
	}
	e.buf.Write(b)
}

func (e *encoder) object(path string, fn func(w *objectWriter)) {
	e.buf.WriteByte('{')
	fn(&objectWriter{e: e, path: path})
	e.buf.WriteByte('}')
}

func (e *encoder) bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

type objectWriter struct {
	e     *encoder
	path  string
	count int
}

// key writes the member name and returns the member's path.
func (w *objectWriter) key(name string) string {
	if w.count > 0 {
		w.e.buf.WriteByte(',')
	}
	w.count++
	w.e.buf.WriteByte('"')
	w.e.buf.WriteString(name)
	w.e.buf.WriteString(`":`)
	return joinPath(w.path, name)
}

func field[T any](w *objectWriter, name string, v T) {
	path := w.key(name)
	w.e.value(path, v)
}

func optionalField[T any](w *objectWriter, name string, v *T) {
	if v != nil {
		field(w, name, *v)
	}
}

func enumValue[E ~string](e *encoder, path string, variants enumSpec[E], v E) {
	if !variants.valid(v) {
		e.fail(path, &UnknownEnumVariantError{Path: path, Enum: variants.name, Literal: string(v)})
		return
	}
	e.value(path, string(v))
}

func enumField[E ~string](w *objectWriter, name string, variants enumSpec[E], v E) {
	path := w.key(name)
	enumValue(w.e, path, variants, v)
}

// elemEncoder writes one array element at path.
type elemEncoder[T any] func(e *encoder, path string, v T)

// listField writes items as an array; a nil slice is written as [].
func listField[T any](w *objectWriter, name string, items []T, elem elemEncoder[T]) {
	path := w.key(name)
	w.e.buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			w.e.buf.WriteByte(',')
		}
		elem(w.e, indexPath(path, i), item)
	}
	w.e.buf.WriteByte(']')
}

// optionalListField omits the key only for a nil slice.
func optionalListField[T any](w *objectWriter, name string, items []T, elem elemEncoder[T]) {
	if items != nil {
		listField(w, name, items, elem)
	}
}

func objectField[T any](w *objectWriter, name string, v T, fn elemEncoder[T]) {
	path := w.key(name)
	fn(w.e, path, v)
}

func optionalObjectField[T any](w *objectWriter, name string, v *T, fn elemEncoder[T]) {
	if v != nil {
		objectField(w, name, *v, fn)
	}
}

func documentField(w *objectWriter, name string, doc Document) {
	path := w.key(name)
	w.e.value(path, doc)
}

func optionalDocumentField(w *objectWriter, name string, doc Document) {
	if doc != nil {
		documentField(w, name, doc)
	}
}

func scalarEncoder[T any]() elemEncoder[T] {
	return func(e *encoder, path string, v T) { e.value(path, v) }
}

func enumEncoder[E ~string](variants enumSpec[E]) elemEncoder[E] {
	return func(e *encoder, path string, v E) { enumValue(e, path, variants, v) }
}

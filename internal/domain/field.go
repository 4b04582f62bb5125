package domain

import (
	"bytes"
	"encoding/json"
)

// Field representa um campo de atualização parcial que distingue três estados:
// ausente do payload, enviado como null e enviado com valor.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func NewField[T any](value T) Field[T] {
	return Field[T]{Set: true, Value: value}
}

func NullField[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		return nil
	}

	return json.Unmarshal(data, &f.Value)
}

// Ptr retorna nil quando o campo foi enviado como null.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

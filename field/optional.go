package field

import "encoding/json"

// Optional holds a value which may be absent on the wire. Absence and the
// zero value are distinct.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsSet() bool {
	return o.ok
}

// Value returns the value, or the zero value of T when absent.
func (o Optional[T]) Value() T {
	return o.value
}

func (o Optional[T]) OrElse(v T) T {
	if o.ok {
		return o.value
	}

	return v
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}

	return json.Marshal(o.value)
}

package fieldwrap

import (
	"fmt"
	"reflect"
)

// Typed is a Wrapper narrowed to fields whose declared type is exactly T.
type Typed[T any] struct {
	w *Wrapper
}

// NewTyped binds a Typed accessor to d. Returns ErrInvalidArgument for a nil
// descriptor and ErrTypeMismatch when the field is not declared as T.
func NewTyped[T any](d *Descriptor) (*Typed[T], error) {
	w, err := New(d)
	if err != nil {
		return nil, err
	}
	if want := reflect.TypeFor[T](); d.Type() != want {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, d, d.Type(), want)
	}
	return &Typed[T]{w: w}, nil
}

// Wrapper returns the untyped accessor underneath.
func (t *Typed[T]) Wrapper() *Wrapper { return t.w }

// Get returns the field value of instance as T.
func (t *Typed[T]) Get(instance any) (T, error) {
	var zero T
	v, err := t.w.GetValue(instance)
	if err != nil || v == nil {
		return zero, err
	}
	return v.(T), nil
}

// Set stores v in the field of instance.
func (t *Typed[T]) Set(instance any, v T) error {
	return t.w.SetValue(instance, v)
}

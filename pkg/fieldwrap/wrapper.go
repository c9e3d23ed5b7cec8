package fieldwrap

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Wrapper reads and writes the field identified by one Descriptor. The
// binding is fixed at construction. A Wrapper never retains an instance past
// a single call.
type Wrapper struct {
	desc *Descriptor
}

// New binds a Wrapper to d. A nil descriptor, or one not produced by Lookup,
// is rejected here rather than on first use.
func New(d *Descriptor) (*Wrapper, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: descriptor is nil", ErrInvalidArgument)
	}
	if d.owner == nil {
		return nil, fmt.Errorf("%w: descriptor is not bound to a field", ErrInvalidArgument)
	}
	return &Wrapper{desc: d}, nil
}

// Descriptor returns the descriptor the wrapper is bound to.
func (w *Wrapper) Descriptor() *Descriptor { return w.desc }

// GetValue returns the current value of the field in instance, which must be
// a pointer to the owner type or an owner value. Interface-typed fields yield
// their stored dynamic value.
// Returns ErrInvalidArgument if instance is nil, ErrTypeMismatch if it is of
// another type, and ErrNilEmbedded if the field sits behind a nil embedded
// pointer.
func (w *Wrapper) GetValue(instance any) (any, error) {
	v, err := w.target(instance, false)
	if err != nil {
		return nil, err
	}
	f, err := w.field(v, false)
	if err != nil {
		return nil, err
	}
	return f.Interface(), nil
}

// SetValue stores value in the field of instance, which must be a pointer to
// the owner type. value must be assignable to the field type; nil is accepted
// for pointer, interface, map, slice, chan and func fields and stores the zero
// value. Nil embedded pointers on the way to a promoted field are allocated.
// Returns ErrInvalidArgument if instance is nil and ErrTypeMismatch if the
// instance or value has the wrong type. On error the instance is unchanged.
func (w *Wrapper) SetValue(instance any, value any) error {
	v, err := w.target(instance, true)
	if err != nil {
		return err
	}
	nv, err := w.assignable(value)
	if err != nil {
		return err
	}
	f, err := w.field(v, true)
	if err != nil {
		return err
	}
	f.Set(nv)
	return nil
}

// target validates instance and returns an addressable owner value. For
// reads of an owner value the result is an addressable copy.
func (w *Wrapper) target(instance any, write bool) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, fmt.Errorf("%w: instance is nil", ErrInvalidArgument)
	}
	v := reflect.ValueOf(instance)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: instance is a nil %s", ErrInvalidArgument, v.Type())
	}

	owner := w.desc.owner
	switch {
	case v.Kind() == reflect.Pointer && v.Type().Elem() == owner:
		return v.Elem(), nil
	case v.Type() == owner && !write:
		c := reflect.New(owner).Elem()
		c.Set(v)
		return c, nil
	case v.Type() == owner:
		return reflect.Value{}, fmt.Errorf("%w: %s value is not addressable, pass *%s", ErrTypeMismatch, owner, owner)
	default:
		return reflect.Value{}, fmt.Errorf("%w: instance is %s, want *%s", ErrTypeMismatch, v.Type(), owner)
	}
}

// field walks the index path from the addressable owner value v. With alloc
// set, nil embedded pointers are replaced by new zero values.
func (w *Wrapper) field(v reflect.Value, alloc bool) (reflect.Value, error) {
	for i, x := range w.desc.field.Index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc {
					return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilEmbedded, w.desc)
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = expose(v.Field(x))
	}
	return v, nil
}

// assignable returns value as a reflect.Value that can be stored in the field.
func (w *Wrapper) assignable(value any) (reflect.Value, error) {
	ft := w.desc.field.Type
	if value == nil {
		if nilable(ft.Kind()) {
			return reflect.Zero(ft), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not assignable to %s (%s)", ErrTypeMismatch, w.desc, ft)
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(ft) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s (%s)", ErrTypeMismatch, rv.Type(), w.desc, ft)
	}
	return rv, nil
}

// expose lifts the read-only flag reflect puts on unexported fields. v must
// be addressable.
func expose(v reflect.Value) reflect.Value {
	if v.CanSet() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

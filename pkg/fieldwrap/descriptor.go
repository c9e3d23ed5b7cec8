package fieldwrap

import (
	"fmt"
	"reflect"
)

// Descriptor identifies one field of one struct type. It is immutable once
// resolved.
type Descriptor struct {
	owner reflect.Type
	field reflect.StructField
}

// Lookup resolves the field called name on owner. owner may be a struct type
// or a pointer to one. Fields promoted from embedded structs resolve the same
// way reflect.Type.FieldByName resolves them; ambiguous names do not resolve.
// Returns ErrInvalidArgument for a nil owner or empty name, ErrTypeMismatch
// when owner is not a struct, and ErrFieldNotFound when no such field exists.
func Lookup(owner reflect.Type, name string) (*Descriptor, error) {
	if owner == nil {
		return nil, fmt.Errorf("%w: owner type is nil", ErrInvalidArgument)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: field name is empty", ErrInvalidArgument)
	}
	if owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
	}
	if owner.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrTypeMismatch, owner)
	}
	f, ok := owner.FieldByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, owner, name)
	}
	return &Descriptor{owner: owner, field: f}, nil
}

// LookupOf resolves name on the dynamic type of instance.
func LookupOf(instance any, name string) (*Descriptor, error) {
	if instance == nil {
		return nil, fmt.Errorf("%w: instance is nil", ErrInvalidArgument)
	}
	return Lookup(reflect.TypeOf(instance), name)
}

// Owner returns the declaring struct type. It is never a pointer type.
func (d *Descriptor) Owner() reflect.Type { return d.owner }

// Name returns the field name.
func (d *Descriptor) Name() string { return d.field.Name }

// Type returns the declared type of the field.
func (d *Descriptor) Type() reflect.Type { return d.field.Type }

// Index returns a copy of the field's index path from the owner. Promoted
// fields have paths longer than one.
func (d *Descriptor) Index() []int {
	out := make([]int, len(d.field.Index))
	copy(out, d.field.Index)
	return out
}

// Exported reports whether the field is exported.
func (d *Descriptor) Exported() bool { return d.field.IsExported() }

func (d *Descriptor) String() string {
	if d.owner == nil {
		return "<unbound>." + d.field.Name
	}
	return d.owner.String() + "." + d.field.Name
}

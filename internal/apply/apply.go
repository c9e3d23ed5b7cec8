// Package apply writes and reads sets of named field values on a target
// object through cached field wrappers. Values must already be native Go
// values of the field's type; no text conversion happens here.
package apply

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/mesh-intelligence/fishbones/internal/registry"
	"github.com/mesh-intelligence/fishbones/pkg/fieldwrap"
)

// FieldError reports which field an operation failed on.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Applier applies and captures field values using the wrappers cached in
// its Registry.
type Applier struct {
	reg *registry.Registry
}

// NewApplier returns an Applier backed by r. A nil r uses registry.Default.
func NewApplier(r *registry.Registry) *Applier {
	if r == nil {
		r = registry.Default
	}
	return &Applier{reg: r}
}

// Apply writes each value in values to the field of the same name on target.
// Fields are written in sorted name order and Apply stops at the first
// failure, which is returned as a *FieldError. Fields written before the
// failure keep their new values.
func (a *Applier) Apply(target any, values map[string]any) error {
	if target == nil {
		return fmt.Errorf("%w: target is nil", fieldwrap.ErrInvalidArgument)
	}
	for _, name := range sortedKeys(values) {
		w, err := a.reg.WrapperOf(target, name)
		if err != nil {
			return &FieldError{Field: name, Err: err}
		}
		if err := w.SetValue(target, values[name]); err != nil {
			return &FieldError{Field: name, Err: err}
		}
	}
	return nil
}

// Capture reads the named fields of target.
func (a *Applier) Capture(target any, names []string) (map[string]any, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: target is nil", fieldwrap.ErrInvalidArgument)
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		w, err := a.reg.WrapperOf(target, name)
		if err != nil {
			return nil, &FieldError{Field: name, Err: err}
		}
		v, err := w.GetValue(target)
		if err != nil {
			return nil, &FieldError{Field: name, Err: err}
		}
		out[name] = v
	}
	return out, nil
}

// Restore decodes each raw JSON value into the declared type of the field of
// the same name and writes it to target. It is the inverse of Encode over a
// Capture result.
func (a *Applier) Restore(target any, raw map[string]json.RawMessage) error {
	if target == nil {
		return fmt.Errorf("%w: target is nil", fieldwrap.ErrInvalidArgument)
	}
	for _, name := range sortedKeys(raw) {
		w, err := a.reg.WrapperOf(target, name)
		if err != nil {
			return &FieldError{Field: name, Err: err}
		}
		v, err := Decode(w.Descriptor(), raw[name])
		if err != nil {
			return &FieldError{Field: name, Err: err}
		}
		if err := w.SetValue(target, v); err != nil {
			return &FieldError{Field: name, Err: err}
		}
	}
	return nil
}

// Decode unmarshals data into a new value of the type d declares.
func Decode(d *fieldwrap.Descriptor, data json.RawMessage) (any, error) {
	ptr := reflect.New(d.Type())
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", fieldwrap.ErrTypeMismatch, d, err)
	}
	return ptr.Elem().Interface(), nil
}

// Encode marshals each value to JSON.
func Encode(values map[string]any) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(values))
	for name, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, &FieldError{Field: name, Err: err}
		}
		out[name] = data
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

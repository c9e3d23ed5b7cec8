// Package registry resolves (type, field name) pairs to field wrappers and
// caches the result, so the lookup runs once per pair no matter how many
// instances are read or written afterwards.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/mesh-intelligence/fishbones/pkg/fieldwrap"
)

// key identifies one field of one struct type.
type key struct {
	owner reflect.Type
	name  string
}

// Registry caches wrappers. The zero value is ready to use and safe for
// concurrent use.
type Registry struct {
	wrappers sync.Map // key -> *fieldwrap.Wrapper
}

// Default is the process-wide registry.
var Default = New()

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Wrapper returns the wrapper for the field called name on owner. Pointer
// owners share entries with their element type. Lookup failures are returned
// unchanged from fieldwrap.Lookup and are not cached.
func (r *Registry) Wrapper(owner reflect.Type, name string) (*fieldwrap.Wrapper, error) {
	if owner != nil && owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
	}
	k := key{owner: owner, name: name}
	if w, ok := r.wrappers.Load(k); ok {
		return w.(*fieldwrap.Wrapper), nil
	}

	d, err := fieldwrap.Lookup(owner, name)
	if err != nil {
		return nil, err
	}
	w, err := fieldwrap.New(d)
	if err != nil {
		return nil, err
	}
	actual, _ := r.wrappers.LoadOrStore(k, w)
	return actual.(*fieldwrap.Wrapper), nil
}

// WrapperOf returns the wrapper for name on the dynamic type of instance.
func (r *Registry) WrapperOf(instance any, name string) (*fieldwrap.Wrapper, error) {
	if instance == nil {
		return nil, fmt.Errorf("%w: instance is nil", fieldwrap.ErrInvalidArgument)
	}
	return r.Wrapper(reflect.TypeOf(instance), name)
}

// Len returns the number of cached wrappers.
func (r *Registry) Len() int {
	n := 0
	r.wrappers.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Reset drops every cached wrapper.
func (r *Registry) Reset() {
	r.wrappers.Clear()
}

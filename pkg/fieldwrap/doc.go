// Package fieldwrap provides null-safe read and write access to a named
// struct field without the caller knowing the field's declared type or the
// owner's concrete type at compile time.
//
// A Descriptor is resolved once per (owner type, field name) pair with Lookup.
// A Wrapper is built from a Descriptor once and then reused against any number
// of instances of the owner type. Wrappers hold no instance and no mutable
// state, so one Wrapper may be shared between goroutines as long as callers
// synchronize access to any instance they share.
//
//	d, err := fieldwrap.Lookup(reflect.TypeFor[Subtype](), "Enabled")
//	w, err := fieldwrap.New(d)
//	err = w.SetValue(&subtype, true)
//	v, err := w.GetValue(&subtype) // v == true
//
// Typed narrows a Wrapper to a single Go type for callers that know it ahead
// of time.
package fieldwrap

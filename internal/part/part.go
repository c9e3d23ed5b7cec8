// Package part defines the object kinds fishbones can configure. Each kind
// names the fields it exposes; fields are written and read through
// fieldwrap wrappers, never by the kind itself.
package part

import (
	"errors"
	"sort"
)

// ErrUnknownKind is returned by LookupKind for unregistered kind names.
var ErrUnknownKind = errors.New("unknown kind")

// Subtype is one switchable configuration of a part.
type Subtype struct {
	Name        string
	Title       string
	Description string
	AddedMass   float64
	AddedCost   float64
	Enabled     bool
	Priority    int

	// techRequired gates the subtype behind a research node.
	techRequired string
}

// TechRequired returns the research node that unlocks the subtype.
func (s *Subtype) TechRequired() string { return s.techRequired }

// Resource is a resource a tank subtype can hold.
type Resource struct {
	Name           string
	UnitsPerVolume float64
	Tank           bool
}

// Kind describes a configurable object type.
type Kind struct {
	Name   string
	New    func() any // returns a pointer to a zero value
	Fields []string   // field names exposed for apply and capture
}

var kinds = map[string]Kind{
	"subtype": {
		Name:   "subtype",
		New:    func() any { return &Subtype{} },
		Fields: []string{"Name", "Title", "Description", "AddedMass", "AddedCost", "Enabled", "Priority", "techRequired"},
	},
	"resource": {
		Name:   "resource",
		New:    func() any { return &Resource{} },
		Fields: []string{"Name", "UnitsPerVolume", "Tank"},
	},
}

// KindNames returns the registered kind names in sorted order.
func KindNames() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupKind returns the kind registered under name.
func LookupKind(name string) (Kind, error) {
	k, ok := kinds[name]
	if !ok {
		return Kind{}, ErrUnknownKind
	}
	return k, nil
}

// HasField reports whether the kind exposes the named field.
func (k Kind) HasField(name string) bool {
	for _, f := range k.Fields {
		if f == name {
			return true
		}
	}
	return false
}

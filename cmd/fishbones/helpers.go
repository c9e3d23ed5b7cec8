// Shared helpers for fishbones CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/fishbones/internal/apply"
	"github.com/mesh-intelligence/fishbones/internal/part"
	"github.com/mesh-intelligence/fishbones/internal/store"
)

// attachStore resolves the data directory and attaches a snapshot store.
// The caller must defer Detach.
func (a *app) attachStore() (*store.Store, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysErr("resolve data dir: %w", err)
	}
	s := store.NewStore()
	if err := s.Attach(store.Config{DataDir: dataDir}); err != nil {
		return nil, sysErr("attach store: %w", err)
	}
	return s, nil
}

// lookupKind wraps part.LookupKind with a user-facing error.
func lookupKind(name string) (part.Kind, error) {
	k, err := part.LookupKind(name)
	if err != nil {
		return part.Kind{}, userErr("unknown kind %q (valid: %s)", name, strings.Join(part.KindNames(), ", "))
	}
	return k, nil
}

// loadSnapshot fetches snapshot id and restores it into a new object of its
// kind.
func (a *app) loadSnapshot(s *store.Store, id string) (*store.Snapshot, part.Kind, any, error) {
	snap, err := s.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			return nil, part.Kind{}, nil, userErr("snapshot %q not found", id)
		}
		return nil, part.Kind{}, nil, sysErr("get snapshot: %w", err)
	}
	k, err := lookupKind(snap.Kind)
	if err != nil {
		return nil, part.Kind{}, nil, err
	}
	obj := k.New()
	if err := a.applier.Restore(obj, snap.Fields); err != nil {
		return nil, part.Kind{}, nil, sysErr("restore snapshot %s: %w", id, err)
	}
	return snap, k, obj, nil
}

// saveObject captures the exposed fields of obj and saves them under id
// (a new ID when empty).
func (a *app) saveObject(s *store.Store, id string, k part.Kind, obj any) (*store.Snapshot, error) {
	captured, err := a.applier.Capture(obj, k.Fields)
	if err != nil {
		return nil, sysErr("capture: %w", err)
	}
	raw, err := apply.Encode(captured)
	if err != nil {
		return nil, sysErr("encode: %w", err)
	}
	snap := &store.Snapshot{SnapshotID: id, Kind: k.Name, Fields: raw}
	if _, err := s.Save(snap); err != nil {
		return nil, sysErr("save snapshot: %w", err)
	}
	return snap, nil
}

// resolveField maps a user-supplied field name to the kind's exposed field,
// ignoring case.
func resolveField(k part.Kind, name string) (string, error) {
	for _, f := range k.Fields {
		if strings.EqualFold(f, name) {
			return f, nil
		}
	}
	return "", userErr("kind %q has no field %q (valid: %s)", k.Name, name, strings.Join(k.Fields, ", "))
}

// snapshotView is the JSON shape printed for a snapshot.
type snapshotView struct {
	SnapshotID string         `json:"snapshot_id"`
	Kind       string         `json:"kind"`
	Fields     map[string]any `json:"fields"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysErr("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeFields prints captured fields one per line in the kind's order.
func writeFields(w io.Writer, k part.Kind, fields map[string]any) error {
	for _, name := range k.Fields {
		out, err := json.Marshal(fields[name])
		if err != nil {
			return sysErr("marshal field %s: %w", name, err)
		}
		fmt.Fprintf(w, "%s = %s\n", name, out)
	}
	return nil
}

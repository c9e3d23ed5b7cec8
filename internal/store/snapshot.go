package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Snapshot is the captured field state of one object.
type Snapshot struct {
	SnapshotID string                     `json:"snapshot_id"`
	Kind       string                     `json:"kind"`
	Fields     map[string]json.RawMessage `json:"fields"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// Save creates or replaces a snapshot. When SnapshotID is empty a new UUID v7
// is generated and written back to snap. The stored field set is replaced
// wholesale. An existing snapshot keeps its creation time; a new one takes
// snap.CreatedAt when set, otherwise the current time. Returns the ID used.
func (s *Store) Save(snap *Snapshot) (string, error) {
	if snap == nil || snap.Kind == "" {
		return "", ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return "", ErrDetached
	}

	id := snap.SnapshotID
	if id == "" {
		id = newID()
	}
	now := time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	created := now
	if !snap.CreatedAt.IsZero() {
		created = snap.CreatedAt.UTC().Truncate(time.Second)
	}
	var createdAt string
	err = tx.QueryRow("SELECT created_at FROM snapshots WHERE snapshot_id = ?", id).Scan(&createdAt)
	switch {
	case err == nil:
		if created, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return "", fmt.Errorf("parsing snapshot created_at: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return "", fmt.Errorf("reading snapshot: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO snapshots (snapshot_id, kind, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, snap.Kind, created.Format(time.RFC3339), now.Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshot_fields WHERE snapshot_id = ?", id); err != nil {
		return "", fmt.Errorf("clearing snapshot fields: %w", err)
	}
	for name, value := range snap.Fields {
		if !json.Valid(value) {
			return "", fmt.Errorf("field %q: value is not valid JSON", name)
		}
		if _, err := tx.Exec(
			"INSERT INTO snapshot_fields (snapshot_id, field_name, value) VALUES (?, ?, ?)",
			id, name, string(value)); err != nil {
			return "", fmt.Errorf("writing field %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	snap.SnapshotID = id
	snap.CreatedAt = created
	snap.UpdatedAt = now
	return id, nil
}

// Get returns the snapshot with the given ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if it does not exist.
func (s *Store) Get(id string) (*Snapshot, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, ErrDetached
	}

	row := s.db.QueryRow(
		"SELECT snapshot_id, kind, created_at, updated_at FROM snapshots WHERE snapshot_id = ?", id)
	snap, err := scanSnapshot(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadFields(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// List returns all snapshots of the given kind, or every snapshot when kind
// is empty, ordered by creation time then ID.
func (s *Store) List(kind string) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, ErrDetached
	}

	query := "SELECT snapshot_id, kind, created_at, updated_at FROM snapshots"
	var args []any
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at, snapshot_id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []*Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, snap := range snaps {
		if err := s.loadFields(snap); err != nil {
			return nil, err
		}
	}
	return snaps, nil
}

// Delete removes the snapshot and its fields.
// Returns ErrInvalidID if id is empty, ErrNotFound if it does not exist.
func (s *Store) Delete(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return ErrDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM snapshots WHERE snapshot_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM snapshot_fields WHERE snapshot_id = ?", id); err != nil {
		return fmt.Errorf("deleting snapshot fields: %w", err)
	}
	return tx.Commit()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var snap Snapshot
	var createdAt, updatedAt string
	err := row.Scan(&snap.SnapshotID, &snap.Kind, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	if snap.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing snapshot created_at: %w", err)
	}
	if snap.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing snapshot updated_at: %w", err)
	}
	snap.Fields = make(map[string]json.RawMessage)
	return &snap, nil
}

func (s *Store) loadFields(snap *Snapshot) error {
	rows, err := s.db.Query(
		"SELECT field_name, value FROM snapshot_fields WHERE snapshot_id = ?", snap.SnapshotID)
	if err != nil {
		return fmt.Errorf("loading snapshot fields: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return fmt.Errorf("scanning snapshot field: %w", err)
		}
		snap.Fields[name] = json.RawMessage(value)
	}
	return rows.Err()
}

package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Export writes every snapshot to path as JSONL, one snapshot per line,
// ordered like List. The file is replaced atomically. Returns the number of
// snapshots written.
func (s *Store) Export(path string) (int, error) {
	snaps, err := s.List("")
	if err != nil {
		return 0, err
	}
	records := make([]json.RawMessage, 0, len(snaps))
	for _, snap := range snaps {
		rec, err := json.Marshal(snap)
		if err != nil {
			return 0, fmt.Errorf("encoding snapshot %s: %w", snap.SnapshotID, err)
		}
		records = append(records, rec)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ImportResult counts the records seen by Import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import reads a JSONL file written by Export and saves each snapshot,
// replacing any existing snapshot with the same ID. Blank and malformed
// lines are ignored; records without an ID or kind, and records accept
// rejects, are skipped and counted. A nil accept admits every well-formed
// record. Records are validated before any is saved, so a file that fails
// to read leaves the store unchanged.
func (s *Store) Import(path string, accept func(*Snapshot) error) (ImportResult, error) {
	var res ImportResult
	records, err := readJSONL(path)
	if err != nil {
		return res, err
	}

	snaps := make([]*Snapshot, 0, len(records))
	for _, rec := range records {
		var snap Snapshot
		if err := json.Unmarshal(rec, &snap); err != nil || snap.SnapshotID == "" || snap.Kind == "" {
			res.Skipped++
			continue
		}
		if accept != nil && accept(&snap) != nil {
			res.Skipped++
			continue
		}
		snaps = append(snaps, &snap)
	}

	for _, snap := range snaps {
		if _, err := s.Save(snap); err != nil {
			return res, fmt.Errorf("importing snapshot %s: %w", snap.SnapshotID, err)
		}
		res.Imported++
	}
	return res, nil
}

// readJSONL returns each non-empty, well-formed line of path.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL writes records to path through a temp file, fsync and rename.
func writeJSONL(path string, records []json.RawMessage) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail(fmt.Errorf("writing record: %w", err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(fmt.Errorf("writing newline: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

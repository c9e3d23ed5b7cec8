package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attachedStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s := NewStore()
	require.NoError(t, s.Attach(Config{DataDir: dir}))
	t.Cleanup(func() { s.Detach() })
	return s, dir
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrDataDirEmpty)
	assert.NoError(t, Config{DataDir: "/tmp/data"}.Validate())
}

func TestStoreAttach(t *testing.T) {
	s, dir := attachedStore(t)

	_, err := os.Stat(filepath.Join(dir, DBFileName))
	assert.NoError(t, err, "database file should exist")
	assert.True(t, s.Attached())

	assert.ErrorIs(t, s.Attach(Config{DataDir: dir}), ErrAlreadyAttached)
}

func TestStoreAttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewStore()
	require.NoError(t, s.Attach(Config{DataDir: dir}))
	defer s.Detach()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStoreDetach(t *testing.T) {
	s, _ := attachedStore(t)

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach(), "Detach is idempotent")
	assert.False(t, s.Attached())

	_, err := s.Get("x")
	assert.ErrorIs(t, err, ErrDetached)
	_, err = s.Save(&Snapshot{Kind: "subtype"})
	assert.ErrorIs(t, err, ErrDetached)
	_, err = s.List("")
	assert.ErrorIs(t, err, ErrDetached)
	assert.ErrorIs(t, s.Delete("x"), ErrDetached)
}

func TestSaveAndGet(t *testing.T) {
	s, _ := attachedStore(t)

	snap := &Snapshot{
		Kind: "subtype",
		Fields: map[string]json.RawMessage{
			"Name":      json.RawMessage(`"tank"`),
			"AddedMass": json.RawMessage(`0.25`),
		},
	}
	id, err := s.Save(snap)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, snap.SnapshotID)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "subtype", got.Kind)
	assert.JSONEq(t, `"tank"`, string(got.Fields["Name"]))
	assert.JSONEq(t, `0.25`, string(got.Fields["AddedMass"]))
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveReplacesFieldsAndKeepsCreatedAt(t *testing.T) {
	s, _ := attachedStore(t)

	snap := &Snapshot{Kind: "subtype", Fields: map[string]json.RawMessage{
		"Name":  json.RawMessage(`"a"`),
		"Title": json.RawMessage(`"A"`),
	}}
	id, err := s.Save(snap)
	require.NoError(t, err)
	created := snap.CreatedAt

	_, err = s.Save(&Snapshot{SnapshotID: id, Kind: "subtype", Fields: map[string]json.RawMessage{
		"Name": json.RawMessage(`"b"`),
	}})
	require.NoError(t, err)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Len(t, got.Fields, 1)
	assert.JSONEq(t, `"b"`, string(got.Fields["Name"]))
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestSaveErrors(t *testing.T) {
	s, _ := attachedStore(t)

	_, err := s.Save(nil)
	assert.ErrorIs(t, err, ErrInvalidKind)
	_, err = s.Save(&Snapshot{})
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = s.Save(&Snapshot{Kind: "subtype", Fields: map[string]json.RawMessage{
		"Name": json.RawMessage(`{not json`),
	}})
	assert.Error(t, err)

	all, err := s.List("")
	require.NoError(t, err)
	assert.Empty(t, all, "failed save must not leave a row behind")
}

func TestGetErrors(t *testing.T) {
	s, _ := attachedStore(t)

	_, err := s.Get("")
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s, _ := attachedStore(t)

	ids := make([]string, 0, 3)
	for _, kind := range []string{"subtype", "resource", "subtype"} {
		id, err := s.Save(&Snapshot{Kind: kind, Fields: map[string]json.RawMessage{"Name": json.RawMessage(`"x"`)}})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	subtypes, err := s.List("subtype")
	require.NoError(t, err)
	require.Len(t, subtypes, 2)
	assert.Equal(t, ids[0], subtypes[0].SnapshotID)
	assert.Equal(t, ids[2], subtypes[1].SnapshotID)
	assert.JSONEq(t, `"x"`, string(subtypes[0].Fields["Name"]))

	none, err := s.List("engine")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	s, _ := attachedStore(t)

	id, err := s.Save(&Snapshot{Kind: "resource", Fields: map[string]json.RawMessage{"Tank": json.RawMessage(`true`)}})
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
	assert.ErrorIs(t, s.Delete(""), ErrInvalidID)
}

func TestSnapshotsSurviveReattach(t *testing.T) {
	dir := t.TempDir()

	s := NewStore()
	require.NoError(t, s.Attach(Config{DataDir: dir}))
	id, err := s.Save(&Snapshot{Kind: "subtype", Fields: map[string]json.RawMessage{"Enabled": json.RawMessage(`true`)}})
	require.NoError(t, err)
	require.NoError(t, s.Detach())

	require.NoError(t, s.Attach(Config{DataDir: dir}))
	defer s.Detach()
	got, err := s.Get(id)
	require.NoError(t, err)
	assert.JSONEq(t, `true`, string(got.Fields["Enabled"]))
}

func TestExportImport(t *testing.T) {
	src, dir := attachedStore(t)

	first := &Snapshot{Kind: "subtype", Fields: map[string]json.RawMessage{
		"Name": json.RawMessage(`"lfo-tank"`),
	}}
	second := &Snapshot{Kind: "resource", Fields: map[string]json.RawMessage{
		"Tank": json.RawMessage(`true`),
	}}
	_, err := src.Save(first)
	require.NoError(t, err)
	_, err = src.Save(second)
	require.NoError(t, err)

	path := filepath.Join(dir, "snapshots.jsonl")
	n, err := src.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dst, _ := attachedStore(t)
	res, err := dst.Import(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 2}, res)

	got, err := dst.Get(first.SnapshotID)
	require.NoError(t, err)
	assert.Equal(t, "subtype", got.Kind)
	assert.JSONEq(t, `"lfo-tank"`, string(got.Fields["Name"]))
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt), "created_at survives the round trip")

	got, err = dst.Get(second.SnapshotID)
	require.NoError(t, err)
	assert.JSONEq(t, `true`, string(got.Fields["Tank"]))
}

func TestImportSkipsMalformedLines(t *testing.T) {
	s, dir := attachedStore(t)

	path := filepath.Join(dir, "in.jsonl")
	content := "\n{not json\n" +
		`{"snapshot_id":"a1","kind":"resource","fields":{"Name":"xenon"}}` + "\n" +
		`{"kind":"resource"}` + "\n" +
		`{"snapshot_id":"b1","kind":"","fields":{"Name":"argon"}}` + "\n" +
		`{"snapshot_id":"c1","kind":"resource","fields":{"Name":"krypton"}}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	res, err := s.Import(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 2, Skipped: 2}, res)

	got, err := s.Get("a1")
	require.NoError(t, err)
	assert.JSONEq(t, `"xenon"`, string(got.Fields["Name"]))

	_, err = s.Get("b1")
	assert.ErrorIs(t, err, ErrNotFound, "records without a kind are skipped")

	got, err = s.Get("c1")
	require.NoError(t, err, "records after a skipped one are still imported")
	assert.JSONEq(t, `"krypton"`, string(got.Fields["Name"]))
}

func TestImportAcceptRejectsRecords(t *testing.T) {
	s, dir := attachedStore(t)

	path := filepath.Join(dir, "in.jsonl")
	content := `{"snapshot_id":"a1","kind":"subtype","fields":{"Bogus":"1"}}` + "\n" +
		`{"snapshot_id":"c1","kind":"subtype","fields":{"Name":"tank"}}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var seen []string
	accept := func(snap *Snapshot) error {
		seen = append(seen, snap.SnapshotID)
		if _, ok := snap.Fields["Bogus"]; ok {
			return assert.AnError
		}
		return nil
	}

	res, err := s.Import(path, accept)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 1, Skipped: 1}, res)
	assert.Equal(t, []string{"a1", "c1"}, seen)

	_, err = s.Get("a1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get("c1")
	assert.NoError(t, err)
}

func TestExportEmptyStore(t *testing.T) {
	s, dir := attachedStore(t)

	path := filepath.Join(dir, "empty.jsonl")
	n, err := s.Export(path)
	require.NoError(t, err)
	assert.Zero(t, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestImportMissingFile(t *testing.T) {
	s, dir := attachedStore(t)
	_, err := s.Import(filepath.Join(dir, "missing.jsonl"), nil)
	assert.Error(t, err)
}

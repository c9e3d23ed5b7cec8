package store

// schema holds the DDL executed on Attach.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`,
	`CREATE TABLE IF NOT EXISTS snapshot_fields (
    snapshot_id TEXT NOT NULL,
    field_name TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (snapshot_id, field_name)
);`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_kind ON snapshots(kind);`,
}

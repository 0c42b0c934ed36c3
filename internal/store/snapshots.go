package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest"
)

// Snapshot is one persisted ingest run.
type Snapshot struct {
	ID       int64                `json:"id"`
	TakenAt  time.Time            `json:"takenAt"`
	Jobs     int                  `json:"jobs"`
	GroupsOK int                  `json:"groupsOk"`
	Groups   []ingest.GroupStatus `json:"groups"`
}

// Migrate brings the schema to the current version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  taken_at TEXT NOT NULL,
  jobs INTEGER NOT NULL,
  groups_ok INTEGER NOT NULL,
  groups TEXT NOT NULL DEFAULT '[]',
  payload TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveSnapshot records one ingest result. Best-effort at the call site:
// a full history is nice to have, never load-bearing.
func SaveSnapshot(ctx context.Context, db *sql.DB, res ingest.Result) (int64, error) {
	ok := 0
	for _, g := range res.Groups {
		if g.OK() {
			ok++
		}
	}
	groupsB, _ := json.Marshal(res.Groups)
	payloadB, _ := json.Marshal(res.Jobs)

	r, err := db.ExecContext(ctx, `
INSERT INTO snapshots(taken_at, jobs, groups_ok, groups, payload)
VALUES(?,?,?,?,?);`,
		time.Now().UTC().Format(time.RFC3339),
		len(res.Jobs),
		ok,
		string(groupsB),
		string(payloadB),
	)
	if err != nil {
		return 0, err
	}
	id, _ := r.LastInsertId()
	return id, nil
}

// ListSnapshots returns the most recent runs, newest first, without the
// row payloads.
func ListSnapshots(ctx context.Context, db *sql.DB, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, taken_at, jobs, groups_ok, groups
FROM snapshots
ORDER BY taken_at DESC, id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var s Snapshot
		var takenAt, groupsJSON string
		if err := rows.Scan(&s.ID, &takenAt, &s.Jobs, &s.GroupsOK, &groupsJSON); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		_ = json.Unmarshal([]byte(groupsJSON), &s.Groups)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Prune keeps only the newest keep snapshots.
func Prune(ctx context.Context, db *sql.DB, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, `
DELETE FROM snapshots
WHERE id NOT IN (SELECT id FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?);`, keep)
	return err
}

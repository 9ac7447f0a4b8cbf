// Package journal keeps an append-only audit trail of successful ledger
// operations in SQLite. Rows are informational, like the platform counters:
// the engine records them best-effort and nothing reads them to gate behavior.
package journal

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Entry is one recorded operation.
type Entry struct {
	ID        string
	Op        string
	Actor     string
	EntityKey string
	Amount    uint64
	CreatedAt time.Time
}

// Journal wraps the SQLite handle.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at path.
// Use ":memory:" for an ephemeral journal in tests.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "journal: open sqlite")
	}
	db.SetMaxOpenConns(1) // SQLite：单连接更稳定
	db.SetMaxIdleConns(1)

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) migrate() error {
	_, err := j.db.Exec(`
CREATE TABLE IF NOT EXISTS ledger_ops (
  id TEXT PRIMARY KEY,
  op TEXT NOT NULL,
  actor TEXT NOT NULL,
  entity_key TEXT NOT NULL,
  amount INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);`)
	return errors.Wrap(err, "journal: migrate")
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one entry.
func (j *Journal) Record(op, actor, entityKey string, amount uint64) error {
	_, err := j.db.Exec(
		`INSERT INTO ledger_ops (id, op, actor, entity_key, amount, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), op, actor, entityKey, int64(amount), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return errors.Wrap(err, "journal: insert")
}

// ByOp returns all entries for one operation name, oldest first.
func (j *Journal) ByOp(op string) ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, op, actor, entity_key, amount, created_at FROM ledger_ops WHERE op = ? ORDER BY created_at ASC`,
		op,
	)
	if err != nil {
		return nil, errors.Wrap(err, "journal: query")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var amount int64
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Op, &e.Actor, &e.EntityKey, &amount, &createdAt); err != nil {
			return nil, errors.Wrap(err, "journal: scan")
		}
		e.Amount = uint64(amount)
		if ts, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			e.CreatedAt = ts
		}
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "journal: rows")
}

// Count returns the total number of recorded operations.
func (j *Journal) Count() (int, error) {
	var n int
	err := j.db.QueryRow(`SELECT COUNT(*) FROM ledger_ops`).Scan(&n)
	return n, errors.Wrap(err, "journal: count")
}

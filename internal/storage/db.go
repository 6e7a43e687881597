package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"regmap/internal"
)

var ErrNotFound = errors.New("not found")

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS register_maps (
  source TEXT PRIMARY KEY,
  pages TEXT NOT NULL,
  extractor TEXT NOT NULL,
  entryCount INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS registers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  decimal INTEGER NOT NULL,
  address INTEGER NOT NULL,
  name TEXT NOT NULL,
  UNIQUE(source, decimal),
  FOREIGN KEY(source) REFERENCES register_maps(source)
);
CREATE INDEX IF NOT EXISTS idx_registers_address ON registers(source, address);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  source TEXT,
  pages TEXT,
  extractor TEXT,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceRegisterMap stores the canonical table of one source document,
// replacing whatever was stored for it before.
func (d *DB) ReplaceRegisterMap(source, pages, extractor string, entries []internal.RegisterEntry) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO register_maps (source, pages, extractor, entryCount)
VALUES (?, ?, ?, ?)
ON CONFLICT(source) DO UPDATE SET
  pages=excluded.pages,
  extractor=excluded.extractor,
  entryCount=excluded.entryCount,
  updatedAt=CURRENT_TIMESTAMP
`, source, pages, extractor, len(entries)); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM registers WHERE source = ?`, source); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO registers (source, decimal, address, name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(source, e.Decimal, int(e.Address), e.Name); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListRegisters(source string) ([]internal.RegisterEntry, error) {
	rows, err := d.conn.Query(`
SELECT decimal, address, name
FROM registers WHERE source = ? ORDER BY decimal ASC
`, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RegisterEntry
	for rows.Next() {
		var e internal.RegisterEntry
		var address int
		if err := rows.Scan(&e.Decimal, &address, &e.Name); err != nil {
			return nil, err
		}
		e.Address = uint16(address)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LookupAddress returns the lowest-decimal entry of source with the given
// address, or nil when there is none.
func (d *DB) LookupAddress(source string, address uint16) (*internal.RegisterEntry, error) {
	var e internal.RegisterEntry
	var addr int
	err := d.conn.QueryRow(`
SELECT decimal, address, name
FROM registers WHERE source = ? AND address = ?
ORDER BY decimal ASC LIMIT 1
`, source, int(address)).Scan(&e.Decimal, &addr, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Address = uint16(addr)
	return &e, nil
}

func (d *DB) GetRegisterMap(source string) (*internal.RegisterMapRow, error) {
	var row internal.RegisterMapRow
	err := d.conn.QueryRow(`
SELECT source, pages, extractor, entryCount, updatedAt
FROM register_maps WHERE source = ?
`, source).Scan(&row.Source, &row.Pages, &row.Extractor, &row.EntryCount, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) MustRegisterMap(source string) (internal.RegisterMapRow, error) {
	row, err := d.GetRegisterMap(source)
	if err != nil {
		return internal.RegisterMapRow{}, err
	}
	if row == nil {
		return internal.RegisterMapRow{}, fmt.Errorf("register map %s: %w", source, ErrNotFound)
	}
	return *row, nil
}

func (d *DB) ListSources() ([]internal.RegisterMapRow, error) {
	rows, err := d.conn.Query(`
SELECT source, pages, extractor, entryCount, updatedAt
FROM register_maps ORDER BY updatedAt DESC, source ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RegisterMapRow
	for rows.Next() {
		var row internal.RegisterMapRow
		if err := rows.Scan(&row.Source, &row.Pages, &row.Extractor, &row.EntryCount, &row.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(s internal.RunSummary) error {
	timingsJSON, _ := json.Marshal(map[string]int64{"totalMs": s.DurationMs})
	countsJSON, _ := json.Marshal(map[string]int{
		"lines":        s.Lines,
		"raw":          s.RawEntries,
		"entries":      s.Entries,
		"placeholders": s.Placeholders,
	})
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, source, pages, extractor, timingsJson, countsJson)
VALUES (?, ?, ?, ?, ?, ?)
`, s.TraceID, s.Source, s.Pages, s.Extractor, string(timingsJSON), string(countsJSON))
	return err
}

func (d *DB) CountRuns(source string) (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM runs WHERE source = ?`, source).Scan(&n)
	return n, err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ponto/analysis"
	"ponto/punch"
)

// SQLiteStore caches the most recently loaded input rows. It holds at most
// one snapshot; derived results are never stored.
type SQLiteStore struct {
	db *sql.DB
}

var ErrNoSnapshot = errors.New("no snapshot cached")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	loaded_at TEXT NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS punch_rows (
	snapshot_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	source_row INTEGER NOT NULL,
	source TEXT NOT NULL,
	employee TEXT NOT NULL,
	work_date TEXT NOT NULL,
	actual_in TEXT NOT NULL,
	actual_out TEXT NOT NULL,
	scheduled_in TEXT NOT NULL,
	scheduled_out TEXT NOT NULL,
	supervisor TEXT NOT NULL,
	numeric_cells INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY(snapshot_id, position)
);`,
	}
	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return s.ensureNumericCellsColumn()
}

// ensureNumericCellsColumn upgrades caches written before cell types were kept.
func (s *SQLiteStore) ensureNumericCellsColumn() error {
	rows, err := s.db.Query(`PRAGMA table_info(punch_rows);`)
	if err != nil {
		return fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if strings.EqualFold(name, "numeric_cells") {
			found = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate table info: %w", err)
	}
	if found {
		return nil
	}

	if _, err := s.db.Exec(`ALTER TABLE punch_rows ADD COLUMN numeric_cells INTEGER NOT NULL DEFAULT 0;`); err != nil {
		return fmt.Errorf("add numeric_cells column: %w", err)
	}
	return nil
}

// ReplaceSnapshot swaps the cached snapshot for the given one in a single
// transaction.
func (s *SQLiteStore) ReplaceSnapshot(snapshot analysis.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM punch_rows;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear punch rows: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM snapshots;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear snapshots: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO snapshots (id, source, loaded_at) VALUES (?, ?, ?);`,
		snapshot.ID.String(),
		snapshot.Source,
		snapshot.LoadedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert snapshot: %w", err)
	}

	const insertStmt = `
INSERT INTO punch_rows (
	snapshot_id,
	position,
	source_row,
	source,
	employee,
	work_date,
	actual_in,
	actual_out,
	scheduled_in,
	scheduled_out,
	supervisor,
	numeric_cells
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for position, row := range snapshot.Rows {
		if _, err := stmt.Exec(
			snapshot.ID.String(),
			position,
			row.RowNumber,
			row.Source,
			row.Employee,
			row.Date,
			row.ActualIn,
			row.ActualOut,
			row.ScheduledIn,
			row.ScheduledOut,
			row.Supervisor,
			int(row.NumericCells),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert punch row %d: %w", row.RowNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// LatestSnapshot returns the cached snapshot or ErrNoSnapshot.
func (s *SQLiteStore) LatestSnapshot() (analysis.Snapshot, error) {
	var (
		idRaw       string
		loadedAtRaw string
		snapshot    analysis.Snapshot
	)

	err := s.db.QueryRow(`SELECT id, source, loaded_at FROM snapshots ORDER BY loaded_at DESC LIMIT 1;`).
		Scan(&idRaw, &snapshot.Source, &loadedAtRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return analysis.Snapshot{}, ErrNoSnapshot
		}
		return analysis.Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}

	snapshot.ID, err = uuid.Parse(idRaw)
	if err != nil {
		return analysis.Snapshot{}, fmt.Errorf("parse snapshot id %q: %w", idRaw, err)
	}
	snapshot.LoadedAt, err = time.Parse(time.RFC3339Nano, loadedAtRaw)
	if err != nil {
		return analysis.Snapshot{}, fmt.Errorf("parse snapshot time %q: %w", loadedAtRaw, err)
	}

	const query = `
SELECT
	source_row,
	source,
	employee,
	work_date,
	actual_in,
	actual_out,
	scheduled_in,
	scheduled_out,
	supervisor,
	numeric_cells
FROM punch_rows
WHERE snapshot_id = ?
ORDER BY position;
`
	rows, err := s.db.Query(query, idRaw)
	if err != nil {
		return analysis.Snapshot{}, fmt.Errorf("query punch rows: %w", err)
	}
	defer rows.Close()

	snapshot.Rows = make([]punch.RawRow, 0, 256)
	for rows.Next() {
		var (
			row     punch.RawRow
			numeric int
		)
		if err := rows.Scan(
			&row.RowNumber,
			&row.Source,
			&row.Employee,
			&row.Date,
			&row.ActualIn,
			&row.ActualOut,
			&row.ScheduledIn,
			&row.ScheduledOut,
			&row.Supervisor,
			&numeric,
		); err != nil {
			return analysis.Snapshot{}, fmt.Errorf("scan punch row: %w", err)
		}
		row.NumericCells = punch.Field(numeric)
		snapshot.Rows = append(snapshot.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return analysis.Snapshot{}, fmt.Errorf("iterate punch rows: %w", err)
	}

	return snapshot, nil
}

// DeleteAll empties the cache and keeps the database file.
func (s *SQLiteStore) DeleteAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	for _, table := range []string{"punch_rows", "snapshots"} {
		if _, err := tx.Exec(`DELETE FROM ` + table + `;`); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// SQLite is an embedded database — it lives inside the Go binary as a single
// file, so there is no separate database server to install or manage. We use
// modernc.org/sqlite, a pure Go translation of the SQLite C code: no CGo, no
// C compiler, works everywhere Go works.
//
// Access goes through Go's standard database/sql:
//   - sql.DB   — a connection pool (NOT a single connection)
//   - db.QueryRowContext / QueryContext / ExecContext — run queries
//   - rows.Scan(&a, &b) — read a row into Go variables
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	// Side-effect import: the driver's init() registers itself with
	// database/sql under the name "sqlite". The typed import below is
	// separate — we need sqlite3.Error to recognise constraint violations.
	sqlite3 "modernc.org/sqlite"
)

// sqliteConstraint is the low byte of every SQLITE_CONSTRAINT_* result code
// (19). The extended code for a UNIQUE violation is 2067, but masking keeps
// the check valid for any constraint class.
const sqliteConstraint = 19

// DB wraps a sql.DB connection pool and provides repository methods.
//
// One DB value serves both repositories — users and posts live in the same
// database file, so they share the pool. *DB implements both
// repository.UsuarioRepository and repository.PostagemRepository.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/blogpessoal.db" → file-based database (persistent)
//   - ":memory:"            → in-memory database (great for tests, lost on close)
//
// sql.Open() does not actually connect — it just creates a pool manager.
// We Ping() to force an immediate connection so a bad path or permissions
// problem surfaces here, not on the first query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each pooled connection to ":memory:" would get its OWN empty database.
	// Capping the pool at one connection keeps every query on the same DB.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// important for a web server where many requests hit the DB at once.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite (backwards compatibility).
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Callers should defer this right
// after New() so the file lock is released even on a panic.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the tables. CREATE TABLE IF NOT EXISTS is idempotent, so
// this is safe to run on every startup.
//
// The UNIQUE constraint on tb_usuarios.usuario is load-bearing: it is what
// makes duplicate registration race-safe. Two concurrent INSERTs with the
// same email cannot both succeed, no matter how the requests interleave —
// the store, not the application, is the arbiter.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS tb_usuarios (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			nome    TEXT NOT NULL,
			usuario TEXT NOT NULL UNIQUE,
			senha   TEXT NOT NULL,
			foto    TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("creating tb_usuarios: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS tb_postagens (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			titulo TEXT NOT NULL,
			texto  TEXT NOT NULL,
			data   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_postagens_data ON tb_postagens(data);
	`)
	if err != nil {
		return fmt.Errorf("creating tb_postagens: %w", err)
	}

	return nil
}

// isConstraintViolation reports whether err is a SQLite constraint error
// (UNIQUE, NOT NULL, ...). Used to translate driver errors into domain
// errors — callers shouldn't have to know SQLite result codes.
func isConstraintViolation(err error) bool {
	var se *sqlite3.Error
	return errors.As(err, &se) && se.Code()&0xff == sqliteConstraint
}

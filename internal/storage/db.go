package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations. Any migration
// failure is fatal: the caller gets an error and no usable handle.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// One connection: the database is a local file (or an in-memory
	// database, which exists per connection).
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

// migrations is an ordered list of schema steps. The database's
// PRAGMA user_version records how many have been applied, so each step
// runs exactly once per database file and old single-user files upgrade
// in place on the next start.
var migrations = []func(tx *sql.Tx) error{
	createUsersTable,
	createExpensesTable,
	addExpenseOwnerColumn,
	resolveOrphanedExpenses,
}

func (db *DB) migrate() error {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.conn.Begin()
		if err != nil {
			return err
		}
		if err := migrations[i](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}

	return nil
}

func createUsersTable(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func createExpensesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		amount REAL NOT NULL CHECK(amount >= 0),
		date TEXT NOT NULL,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func addExpenseOwnerColumn(tx *sql.Tx) error {
	// Tolerate database files where an earlier build already added the
	// column; sqlite has no ADD COLUMN IF NOT EXISTS.
	_, err := tx.Exec(`ALTER TABLE expenses ADD COLUMN user_id INTEGER REFERENCES users(id)`)
	if err != nil && strings.Contains(err.Error(), "duplicate column name") {
		return nil
	}
	return err
}

// resolveOrphanedExpenses assigns ownerless rows left behind by the
// single-user schema. If user 1 exists the rows become theirs, otherwise
// they are deleted: a row no one can read would violate per-user isolation.
func resolveOrphanedExpenses(tx *sql.Tx) error {
	var id int64
	err := tx.QueryRow("SELECT id FROM users WHERE id = 1").Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec("DELETE FROM expenses WHERE user_id IS NULL")
		return err
	case err != nil:
		return err
	default:
		_, err = tx.Exec("UPDATE expenses SET user_id = 1 WHERE user_id IS NULL")
		return err
	}
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

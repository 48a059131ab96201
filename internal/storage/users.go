package storage

import (
	"database/sql"
	"errors"

	"smartspend/internal/auth"
	"smartspend/internal/models"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// CreateUser creates a new user with the given username and password hash.
func (db *DB) CreateUser(username, passwordHash, email string) (*models.User, error) {
	result, err := db.conn.Exec(
		"INSERT INTO users (username, password_hash, email) VALUES (?, ?, ?)",
		username, passwordHash, email,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(id)
}

// RegisterUser hashes the password and creates the account. A duplicate
// username yields (false, nil) rather than an error; the UNIQUE constraint
// on users.username is the only arbiter. Field validation (non-empty
// values, password length, confirmation) is the caller's job.
func (db *DB) RegisterUser(username, password, email string) (bool, error) {
	_, err := db.CreateUser(username, auth.HashPassword(password), email)
	if err != nil {
		var serr *sqlite.Error
		if errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Authenticate returns the user's id when the credentials match. An unknown
// username and a wrong password are deliberately indistinguishable: both
// return (0, false, nil).
func (db *DB) Authenticate(username, password string) (int64, bool, error) {
	user, err := db.GetUserByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return 0, false, nil
	}
	return user.ID, true, nil
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(id int64) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, COALESCE(email, ''), created_at FROM users WHERE id = ?",
		id,
	)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, COALESCE(email, ''), created_at FROM users WHERE username = ?",
		username,
	)
	return scanUser(row)
}

// UserCount returns the number of users in the database.
func (db *DB) UserCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

package storage

import (
	"database/sql"
	"strings"
	"time"

	"smartspend/internal/models"
)

// DateLayout is the on-disk encoding of expense dates: day granularity,
// ISO-8601.
const DateLayout = "2006-01-02"

// AddExpense inserts a new expense for the given owner. Category and
// description are trimmed before storage; the amount >= 0 CHECK lives in
// the schema.
func (db *DB) AddExpense(category string, amount float64, date time.Time, description string, userID int64) error {
	_, err := db.conn.Exec(
		"INSERT INTO expenses (category, amount, date, description, user_id) VALUES (?, ?, ?, ?, ?)",
		strings.TrimSpace(category), amount, date.Format(DateLayout), strings.TrimSpace(description), userID,
	)
	return err
}

// ListExpenses retrieves all expenses owned by userID, newest date first.
// Rows sharing a date come back in insertion order.
func (db *DB) ListExpenses(userID int64) ([]models.Expense, error) {
	rows, err := db.conn.Query(
		`SELECT id, category, amount, date, COALESCE(description, ''), user_id, created_at
		FROM expenses WHERE user_id = ? ORDER BY date DESC, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var dateStr string
		var owner sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &dateStr, &e.Description, &owner, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.Date, err = time.Parse(DateLayout, dateStr); err != nil {
			return nil, err
		}
		if owner.Valid {
			e.UserID = &owner.Int64
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// DeleteExpense removes an expense only when both the id and the owner
// match, and reports whether a row was actually removed. A miss never says
// whether the id exists under another owner.
func (db *DB) DeleteExpense(expenseID, userID int64) (bool, error) {
	result, err := db.conn.Exec(
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

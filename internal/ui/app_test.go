package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartspend/internal/report"
	"smartspend/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { db.Close() })
	return New(db, t.TempDir())
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(m Model, key string) Model {
	updated, _ := m.Update(keyMsg(key))
	return updated.(Model)
}

func register(t *testing.T, m Model, username, password string) {
	t.Helper()
	created, err := m.db.RegisterUser(username, password, "")
	require.NoError(t, err)
	require.True(t, created)
}

func login(t *testing.T, m Model, username, password string) Model {
	t.Helper()
	require.Equal(t, PageLogin, m.page)
	m.inputs[0].SetValue(username)
	m.inputs[1].SetValue(password)
	m = press(m, "enter") // advance focus past the username field
	m = press(m, "enter") // submit
	return m
}

func TestStartsAtLoginPage(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, PageLogin, m.page)
	assert.Zero(t, m.session)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")

	got := login(t, m, "alice", "wrong_password")
	assert.Equal(t, PageLogin, got.page)
	assert.Equal(t, "Invalid username or password", got.errMsg)
	assert.Zero(t, got.session)

	got = login(t, newTestModelWithDB(t, m), "ghost", "anything")
	assert.Equal(t, "Invalid username or password", got.errMsg, "unknown user reads the same as wrong password")
}

// newTestModelWithDB builds a fresh model over an existing database so a
// test can run several independent sessions.
func newTestModelWithDB(t *testing.T, m Model) Model {
	t.Helper()
	return New(m.db, t.TempDir())
}

func TestLoginSuccessShowsDashboard(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")

	got := login(t, m, "alice", "secret1")
	assert.Equal(t, PageDashboard, got.page)
	assert.Equal(t, "alice", got.session.Username)
	assert.NotZero(t, got.session.UserID)
	assert.Contains(t, got.View(), "Welcome back, alice")
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantErr  string
	}{
		{"missing fields", "", "", "", "Please fill in all required fields"},
		{"mismatch", "carol", "secret1", "secret2", "Passwords do not match"},
		{"too short", "carol", "abc", "abc", "Password must be at least 6 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.gotoPage(PageRegister)
			m.inputs[0].SetValue(tt.username)
			m.inputs[2].SetValue(tt.password)
			m.inputs[3].SetValue(tt.confirm)
			m.focus = len(m.inputs) - 1
			m = press(m, "enter")

			assert.Equal(t, PageRegister, m.page)
			assert.Equal(t, tt.wantErr, m.errMsg)

			count, err := m.db.UserCount()
			require.NoError(t, err)
			assert.Zero(t, count, "no partial write on validation failure")
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")

	m.gotoPage(PageRegister)
	m.inputs[0].SetValue("alice")
	m.inputs[2].SetValue("secret2")
	m.inputs[3].SetValue("secret2")
	m.focus = len(m.inputs) - 1
	m = press(m, "enter")

	assert.Equal(t, "Username already exists", m.errMsg)
	assert.Equal(t, PageRegister, m.page)
}

func TestRegisterSuccessReturnsToLogin(t *testing.T) {
	m := newTestModel(t)
	m.gotoPage(PageRegister)
	m.inputs[0].SetValue("alice")
	m.inputs[2].SetValue("secret1")
	m.inputs[3].SetValue("secret1")
	m.focus = len(m.inputs) - 1
	m = press(m, "enter")

	assert.Equal(t, PageLogin, m.page)
	assert.Equal(t, "Account created successfully! Please login.", m.statusMsg)
}

func TestAddExpense(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")
	m = login(t, m, "alice", "secret1")

	m = press(m, "2")
	require.Equal(t, PageAdd, m.page)
	assert.Equal(t, "Food", m.inputs[0].Value(), "category defaults to the first suggestion")

	m.inputs[1].SetValue("45.50")
	m.inputs[3].SetValue("lunch")
	m.focus = len(m.inputs) - 1
	m = press(m, "enter")

	assert.Equal(t, "Expense added successfully!", m.statusMsg)
	assert.Empty(t, m.errMsg)

	expenses, err := m.db.ListExpenses(m.session.UserID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Food", expenses[0].Category)
	assert.Equal(t, 45.50, expenses[0].Amount)
	assert.Equal(t, "lunch", expenses[0].Description)
}

func TestAddExpenseValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *Model)
		wantErr string
	}{
		{"empty category", func(m *Model) {
			m.inputs[0].SetValue("")
			m.inputs[1].SetValue("10")
		}, "Category is required"},
		{"bad amount", func(m *Model) {
			m.inputs[1].SetValue("abc")
		}, "Amount must be a number greater than zero"},
		{"zero amount", func(m *Model) {
			m.inputs[1].SetValue("0")
		}, "Amount must be a number greater than zero"},
		{"bad date", func(m *Model) {
			m.inputs[1].SetValue("10")
			m.inputs[2].SetValue("15/06/2025")
		}, "Date must be in YYYY-MM-DD format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			register(t, m, "alice", "secret1")
			m = login(t, m, "alice", "secret1")
			m = press(m, "2")

			tt.mutate(&m)
			m.focus = len(m.inputs) - 1
			m = press(m, "enter")

			assert.Equal(t, tt.wantErr, m.errMsg)
			expenses, err := m.db.ListExpenses(m.session.UserID)
			require.NoError(t, err)
			assert.Empty(t, expenses, "no write on validation failure")
		})
	}
}

func TestCategorySuggestionCycling(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")
	m = login(t, m, "alice", "secret1")
	m = press(m, "2")

	m = press(m, "right")
	assert.Equal(t, "Transport", m.inputs[0].Value())
	m = press(m, "left")
	assert.Equal(t, "Food", m.inputs[0].Value())
	m = press(m, "left")
	assert.Equal(t, "Other", m.inputs[0].Value(), "cycling wraps")
}

func TestDeleteSelectedExpense(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")
	m = login(t, m, "alice", "secret1")

	now := time.Now()
	require.NoError(t, m.db.AddExpense("Food", 10, now, "keep", m.session.UserID))
	require.NoError(t, m.db.AddExpense("Bills", 20, now, "drop", m.session.UserID))

	m = press(m, "4")
	require.Equal(t, PageDelete, m.page)
	require.Len(t, m.expenses, 2)

	target := m.expenses[0].ID
	m = press(m, "enter")

	assert.Equal(t, "Expense deleted successfully!", m.statusMsg)
	require.Len(t, m.expenses, 1)
	assert.NotEqual(t, target, m.expenses[0].ID)
}

func TestExportCSV(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	exportDir := t.TempDir()
	m := New(db, exportDir)
	register(t, m, "alice", "secret1")
	m = login(t, m, "alice", "secret1")
	require.NoError(t, m.db.AddExpense("Food", 45.5, time.Now(), "lunch", m.session.UserID))

	m = press(m, "3")
	require.Equal(t, PageList, m.page)
	m = press(m, "e")

	path := filepath.Join(exportDir, report.ExportFilename(time.Now()))
	assert.FileExists(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Food")
	assert.Contains(t, m.statusMsg, "Exported 1 expenses")
}

func TestLogoutClearsSession(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")
	m = login(t, m, "alice", "secret1")

	m = press(m, "l")
	assert.Equal(t, PageLogin, m.page)
	assert.Zero(t, m.session)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := newTestModel(t)
	register(t, m, "alice", "secret1")
	register(t, m, "bob", "secret2")

	aliceUI := login(t, newTestModelWithDB(t, m), "alice", "secret1")
	bobUI := login(t, newTestModelWithDB(t, m), "bob", "secret2")

	require.NoError(t, m.db.AddExpense("Food", 10, time.Now(), "", aliceUI.session.UserID))
	aliceUI = press(aliceUI, "3")
	bobUI = press(bobUI, "3")

	assert.Len(t, aliceUI.expenses, 1)
	assert.Empty(t, bobUI.expenses, "one session's data never leaks into another")
}

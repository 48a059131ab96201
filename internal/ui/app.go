package ui

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"smartspend/internal/models"
	"smartspend/internal/report"
	"smartspend/internal/storage"
)

// Page identifies the view currently on screen.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageDashboard
	PageAdd
	PageList
	PageDelete
)

// Categories offered by the add form. Free-form typing is still allowed;
// the list is a suggestion, not an enumeration.
var Categories = []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Healthcare", "Other"}

// Session holds the logged-in identity for one running UI. It lives on the
// Model; there is no process-wide session state.
type Session struct {
	UserID   int64
	Username string
}

// Model is the bubbletea model for the whole application: current page,
// session, form inputs and the loaded expense set.
type Model struct {
	db        *storage.DB
	now       func() time.Time
	exportDir string

	page    Page
	session Session

	inputs      []textinput.Model
	focus       int
	categoryIdx int

	expenses []models.Expense
	cursor   int

	errMsg    string
	statusMsg string

	width  int
	height int
}

// New builds the application model starting at the login page. CSV exports
// land in exportDir.
func New(db *storage.DB, exportDir string) Model {
	m := Model{
		db:        db,
		now:       time.Now,
		exportDir: exportDir,
		page:      PageLogin,
	}
	m.inputs = loginInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.page {
		case PageLogin:
			return m.updateLogin(msg)
		case PageRegister:
			return m.updateRegister(msg)
		case PageAdd:
			return m.updateAdd(msg)
		case PageDashboard, PageList, PageDelete:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func loginInputs() []textinput.Model {
	username := newInput("Username", 0)
	password := newInput("Password", 1)
	password.EchoMode = textinput.EchoPassword
	return []textinput.Model{username, password}
}

func registerInputs() []textinput.Model {
	username := newInput("Username", 0)
	email := newInput("Email (optional)", 1)
	password := newInput("Password", 2)
	password.EchoMode = textinput.EchoPassword
	confirm := newInput("Confirm Password", 3)
	confirm.EchoMode = textinput.EchoPassword
	return []textinput.Model{username, email, password, confirm}
}

func (m *Model) addInputs() []textinput.Model {
	category := newInput("Category", 0)
	category.SetValue(Categories[0])
	amount := newInput("Amount (₹)", 1)
	date := newInput("Date (YYYY-MM-DD)", 2)
	date.SetValue(m.now().Format(storage.DateLayout))
	description := newInput("Description (optional)", 3)
	return []textinput.Model{category, amount, date, description}
}

func newInput(placeholder string, index int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 32
	ti.Prompt = "> "
	if index == 0 {
		ti.Focus()
	}
	return ti
}

// gotoPage switches views, rebuilding form state and reloading the
// expense set for the pages that show it.
func (m *Model) gotoPage(p Page) {
	m.page = p
	m.errMsg = ""
	m.focus = 0
	m.cursor = 0

	switch p {
	case PageLogin:
		m.inputs = loginInputs()
	case PageRegister:
		m.inputs = registerInputs()
	case PageAdd:
		m.inputs = m.addInputs()
		m.categoryIdx = 0
	case PageDashboard, PageList, PageDelete:
		m.inputs = nil
		m.loadExpenses()
	}
}

// loadExpenses refreshes the owner's expense set. A storage failure is
// logged and leaves the page in its empty state rather than crashing.
func (m *Model) loadExpenses() {
	expenses, err := m.db.ListExpenses(m.session.UserID)
	if err != nil {
		log.Printf("ListExpenses error: %v", err)
		m.expenses = nil
		m.errMsg = "Could not load expenses"
		return
	}
	m.expenses = expenses
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		m.gotoPage(PageRegister)
		return m, nil
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.cycleFocus(1)
			return m, nil
		}
		return m.submitLogin()
	}
	return m.updateFocusedInput(msg)
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()

	if username == "" || password == "" {
		m.errMsg = "Please fill in all fields"
		return m, nil
	}

	userID, ok, err := m.db.Authenticate(username, password)
	if err != nil {
		log.Printf("Authenticate error: %v", err)
		m.errMsg = "An error occurred. Please try again."
		return m, nil
	}
	if !ok {
		m.errMsg = "Invalid username or password"
		return m, nil
	}

	m.session = Session{UserID: userID, Username: username}
	m.statusMsg = ""
	m.gotoPage(PageDashboard)
	return m, nil
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.gotoPage(PageLogin)
		return m, nil
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.cycleFocus(1)
			return m, nil
		}
		return m.submitRegister()
	}
	return m.updateFocusedInput(msg)
}

func (m Model) submitRegister() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[0].Value())
	email := strings.TrimSpace(m.inputs[1].Value())
	password := m.inputs[2].Value()
	confirm := m.inputs[3].Value()

	switch {
	case username == "" || password == "":
		m.errMsg = "Please fill in all required fields"
		return m, nil
	case password != confirm:
		m.errMsg = "Passwords do not match"
		return m, nil
	case len(password) < 6:
		m.errMsg = "Password must be at least 6 characters long"
		return m, nil
	}

	created, err := m.db.RegisterUser(username, password, email)
	if err != nil {
		log.Printf("RegisterUser error: %v", err)
		m.errMsg = "An error occurred. Please try again."
		return m, nil
	}
	if !created {
		m.errMsg = "Username already exists"
		return m, nil
	}

	m.statusMsg = "Account created successfully! Please login."
	m.gotoPage(PageLogin)
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.gotoPage(PageDashboard)
		return m, nil
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil
	case "left", "right":
		// Cycle the suggestion list while the category field is focused.
		if m.focus == 0 {
			step := 1
			if msg.String() == "left" {
				step = len(Categories) - 1
			}
			m.categoryIdx = (m.categoryIdx + step) % len(Categories)
			m.inputs[0].SetValue(Categories[m.categoryIdx])
			return m, nil
		}
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.cycleFocus(1)
			return m, nil
		}
		return m.submitAdd()
	}
	return m.updateFocusedInput(msg)
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	category := strings.TrimSpace(m.inputs[0].Value())
	amountStr := strings.TrimSpace(m.inputs[1].Value())
	dateStr := strings.TrimSpace(m.inputs[2].Value())
	description := m.inputs[3].Value()

	if category == "" {
		m.errMsg = "Category is required"
		return m, nil
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		m.errMsg = "Amount must be a number greater than zero"
		return m, nil
	}
	date, err := time.Parse(storage.DateLayout, dateStr)
	if err != nil {
		m.errMsg = "Date must be in YYYY-MM-DD format"
		return m, nil
	}

	if err := m.db.AddExpense(category, amount, date, description, m.session.UserID); err != nil {
		log.Printf("AddExpense error: %v", err)
		m.errMsg = "Could not save expense"
		return m, nil
	}

	m.statusMsg = "Expense added successfully!"
	m.gotoPage(PageAdd)
	return m, nil
}

// updateBrowse handles the pages without text inputs: dashboard, view all
// and delete.
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.gotoPage(PageDashboard)
	case "2":
		m.gotoPage(PageAdd)
	case "3":
		m.gotoPage(PageList)
	case "4":
		m.gotoPage(PageDelete)
	case "l":
		m.session = Session{}
		m.statusMsg = ""
		m.gotoPage(PageLogin)
	case "j", "down":
		if m.page == PageList || m.page == PageDelete {
			m.cursor = clampCursor(m.cursor+1, len(m.expenses))
		}
	case "k", "up":
		if m.page == PageList || m.page == PageDelete {
			m.cursor = clampCursor(m.cursor-1, len(m.expenses))
		}
	case "e":
		if m.page == PageList {
			m.exportCSV()
		}
	case "enter":
		if m.page == PageDelete {
			m.deleteSelected()
		}
	}
	return m, nil
}

func (m *Model) exportCSV() {
	if len(m.expenses) == 0 {
		m.errMsg = "No expenses to export"
		return
	}

	path := filepath.Join(m.exportDir, report.ExportFilename(m.now()))
	f, err := os.Create(path)
	if err != nil {
		log.Printf("export create error: %v", err)
		m.errMsg = "Could not write export file"
		return
	}
	defer f.Close()

	if err := report.WriteCSV(f, m.expenses); err != nil {
		log.Printf("export write error: %v", err)
		m.errMsg = "Could not write export file"
		return
	}
	m.errMsg = ""
	m.statusMsg = "Exported " + strconv.Itoa(len(m.expenses)) + " expenses to " + path
}

func (m *Model) deleteSelected() {
	if len(m.expenses) == 0 || m.cursor >= len(m.expenses) {
		return
	}

	expense := m.expenses[m.cursor]
	removed, err := m.db.DeleteExpense(expense.ID, m.session.UserID)
	if err != nil {
		log.Printf("DeleteExpense error: %v", err)
		m.errMsg = "Failed to delete expense. Please try again."
		return
	}
	if !removed {
		m.errMsg = "Expense not found"
		return
	}

	m.statusMsg = "Expense deleted successfully!"
	m.loadExpenses()
	m.errMsg = ""
	m.cursor = clampCursor(m.cursor, len(m.expenses))
}

func (m *Model) cycleFocus(step int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m Model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func clampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	return cursor
}

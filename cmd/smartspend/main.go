package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"smartspend/internal/storage"
	"smartspend/internal/ui"
)

const defaultDBPath = "expenses.db"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("smartspend", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dbPath := fs.String("db", defaultDBPath, "Path to database file")
	envFile := fs.String("env", ".env", "Path to optional .env file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	path := resolveDBPath(*dbPath)

	db, err := storage.NewDB(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// The TUI owns stdout, so logs go to a file beside the database.
	logPath := filepath.Join(filepath.Dir(path), "smartspend.log")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		defer f.Close()
		log.SetOutput(f)
	}

	app := ui.New(db, filepath.Dir(path))
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

// resolveDBPath lets DB_PATH override the database location when the -db
// flag was left at its default.
func resolveDBPath(flagPath string) string {
	if path := os.Getenv("DB_PATH"); path != "" && flagPath == defaultDBPath {
		return path
	}
	return flagPath
}

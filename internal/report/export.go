package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"smartspend/internal/models"
)

// WriteCSV dumps the expense set as CSV, one row per expense, amounts at
// full precision.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "category", "description", "amount"}); err != nil {
		return err
	}
	for _, e := range expenses {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.Format("2006-01-02"),
			e.Category,
			e.Description,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename names the dump after the day it was taken.
func ExportFilename(now time.Time) string {
	return "expenses_" + now.Format("2006-01-02") + ".csv"
}

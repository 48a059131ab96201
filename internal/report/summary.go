package report

import (
	"time"

	"smartspend/internal/models"
)

// Summary holds the aggregate statistics for one owner's expense set.
type Summary struct {
	Total             float64
	Average           float64
	Count             int
	TopCategory       string
	Largest           float64
	CurrentMonthTotal float64
	Last30DaysTotal   float64
	Last7DaysTotal    float64
	DailyAverage      float64
}

// Summarize computes the dashboard statistics over the full expense set.
// Returns nil when there is nothing to summarize. The trailing windows use
// date-only comparison with an inclusive lower bound of now minus N days;
// DailyAverage is Last30DaysTotal over a fixed divisor of 30, not a mean of
// days with actual spending.
func Summarize(expenses []models.Expense, now time.Time) *Summary {
	if len(expenses) == 0 {
		return nil
	}

	today := dateOnly(now)
	since30 := today.AddDate(0, 0, -30)
	since7 := today.AddDate(0, 0, -7)

	s := &Summary{Count: len(expenses)}
	counts := make(map[string]int)
	for _, e := range expenses {
		s.Total += e.Amount
		if e.Amount > s.Largest {
			s.Largest = e.Amount
		}
		counts[e.Category]++

		d := dateOnly(e.Date)
		if d.Year() == now.Year() && d.Month() == now.Month() {
			s.CurrentMonthTotal += e.Amount
		}
		if !d.Before(since30) {
			s.Last30DaysTotal += e.Amount
		}
		if !d.Before(since7) {
			s.Last7DaysTotal += e.Amount
		}
	}

	s.Average = s.Total / float64(s.Count)
	s.DailyAverage = s.Last30DaysTotal / 30
	s.TopCategory = topCategory(counts)
	return s
}

// topCategory returns the most frequent category; equal counts resolve to
// the lexicographically smallest name so the result is order-independent.
func topCategory(counts map[string]int) string {
	var best string
	bestCount := -1
	for category, n := range counts {
		if n > bestCount || (n == bestCount && category < best) {
			best = category
			bestCount = n
		}
	}
	return best
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

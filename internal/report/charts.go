package report

import (
	"sort"
	"time"

	"smartspend/internal/models"
)

// Chart builders are read-only projections of an owner's expense set into
// structures a presentation layer can render directly. Every builder
// returns nil (no chart) for an empty or non-qualifying input.

// TrendPoint is one calendar month on the monthly trend chart.
type TrendPoint struct {
	Month string // YYYY-MM
	Total float64
	Count int
	Label string
}

// MonthlyTrend aggregates sum and transaction count per calendar month,
// oldest month first.
func MonthlyTrend(expenses []models.Expense) []TrendPoint {
	if len(expenses) == 0 {
		return nil
	}

	totals := make(map[string]*TrendPoint)
	for _, e := range expenses {
		month := e.Date.Format("2006-01")
		p, ok := totals[month]
		if !ok {
			p = &TrendPoint{Month: month}
			totals[month] = p
		}
		p.Total += e.Amount
		p.Count++
	}

	points := make([]TrendPoint, 0, len(totals))
	for _, p := range totals {
		p.Label = FormatCurrency(p.Total)
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}

// CategoryShare is one slice of the category distribution chart.
type CategoryShare struct {
	Category string
	Total    float64
	Share    float64 // fraction of the overall total, 0..1
	Label    string
}

// CategoryDistribution computes each category's share of total spend,
// largest first.
func CategoryDistribution(expenses []models.Expense) []CategoryShare {
	totals, overall := categoryTotals(expenses)
	if totals == nil {
		return nil
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, total := range totals {
		share := 0.0
		if overall > 0 {
			share = total / overall
		}
		shares = append(shares, CategoryShare{
			Category: category,
			Total:    total,
			Share:    share,
			Label:    FormatCurrency(total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Total != shares[j].Total {
			return shares[i].Total > shares[j].Total
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// DailyPoint is one day on the trailing-30-days chart.
type DailyPoint struct {
	Date  time.Time
	Total float64
	Label string
}

// DailyTotals sums spending per day over the trailing 30 days, oldest day
// first. Days without activity are absent; a window with no activity at
// all yields no chart.
func DailyTotals(expenses []models.Expense, now time.Time) []DailyPoint {
	if len(expenses) == 0 {
		return nil
	}

	since := dateOnly(now).AddDate(0, 0, -30)
	totals := make(map[time.Time]float64)
	for _, e := range expenses {
		d := dateOnly(e.Date)
		if d.Before(since) {
			continue
		}
		totals[d] += e.Amount
	}
	if len(totals) == 0 {
		return nil
	}

	points := make([]DailyPoint, 0, len(totals))
	for d, total := range totals {
		points = append(points, DailyPoint{Date: d, Total: total, Label: FormatCurrency(total)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// CategoryTotal is one bar of the category ranking chart.
type CategoryTotal struct {
	Category string
	Total    float64
	Label    string
}

// CategoryRanking totals each category, smallest first.
func CategoryRanking(expenses []models.Expense) []CategoryTotal {
	totals, _ := categoryTotals(expenses)
	if totals == nil {
		return nil
	}

	ranking := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		ranking = append(ranking, CategoryTotal{Category: category, Total: total, Label: FormatCurrency(total)})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Total != ranking[j].Total {
			return ranking[i].Total < ranking[j].Total
		}
		return ranking[i].Category < ranking[j].Category
	})
	return ranking
}

// Heatmap is a day-of-week by month density matrix of spending totals.
// Rows are calendar months (January first), columns weekdays starting
// Monday.
type Heatmap struct {
	Totals [12][7]float64
	Max    float64
}

// WeekdayMonthHeatmap accumulates per-day totals into the weekday/month
// matrix, across all years in the set.
func WeekdayMonthHeatmap(expenses []models.Expense) *Heatmap {
	if len(expenses) == 0 {
		return nil
	}

	var h Heatmap
	for _, e := range expenses {
		m := int(e.Date.Month()) - 1
		w := mondayIndex(e.Date.Weekday())
		h.Totals[m][w] += e.Amount
		if h.Totals[m][w] > h.Max {
			h.Max = h.Totals[m][w]
		}
	}
	return &h
}

func mondayIndex(d time.Weekday) int {
	// time.Weekday counts from Sunday; the chart reads Monday..Sunday.
	return (int(d) + 6) % 7
}

// TimelinePoint pairs one transaction with the running total at that point.
type TimelinePoint struct {
	Date            time.Time
	Amount          float64
	Cumulative      float64
	Label           string
	CumulativeLabel string
}

// SpendingTimeline orders the set by date ascending and accumulates a
// running total, keeping the per-transaction amounts for the scatter
// overlay. Same-date transactions stay in their original relative order.
func SpendingTimeline(expenses []models.Expense) []TimelinePoint {
	if len(expenses) == 0 {
		return nil
	}

	ordered := make([]models.Expense, len(expenses))
	copy(ordered, expenses)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	points := make([]TimelinePoint, 0, len(ordered))
	var running float64
	for _, e := range ordered {
		running += e.Amount
		points = append(points, TimelinePoint{
			Date:            e.Date,
			Amount:          e.Amount,
			Cumulative:      running,
			Label:           FormatCurrency(e.Amount),
			CumulativeLabel: FormatCurrency(running),
		})
	}
	return points
}

func categoryTotals(expenses []models.Expense) (map[string]float64, float64) {
	if len(expenses) == 0 {
		return nil, 0
	}
	totals := make(map[string]float64)
	var overall float64
	for _, e := range expenses {
		totals[e.Category] += e.Amount
		overall += e.Amount
	}
	return totals, overall
}

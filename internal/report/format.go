package report

import "github.com/dustin/go-humanize"

// FormatCurrency renders an amount in Indian Rupees with thousands
// grouping and two decimals, e.g. 1234.5 -> "₹1,234.50".
func FormatCurrency(amount float64) string {
	return "₹" + humanize.FormatFloat("#,###.##", amount)
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"smartspend/internal/report"
	"smartspend/internal/storage"
)

const chartBarWidth = 24

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SmartSpend") + "\n")

	switch m.page {
	case PageLogin:
		b.WriteString(m.viewForm("Login", "enter submit  tab next field  ctrl+r create account  ctrl+c quit"))
	case PageRegister:
		b.WriteString(m.viewForm("Create Account", "enter submit  tab next field  esc back to login"))
	case PageAdd:
		b.WriteString(m.viewAdd())
	case PageDashboard:
		b.WriteString(m.viewDashboard())
	case PageList:
		b.WriteString(m.viewList(false))
	case PageDelete:
		b.WriteString(m.viewList(true))
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	} else if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewForm(title, help string) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title) + "\n\n")
	for _, input := range m.inputs {
		b.WriteString(input.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

func (m Model) viewAdd() string {
	var b strings.Builder
	b.WriteString(m.navBar())
	b.WriteString(sectionStyle.Render("Add New Expense") + "\n\n")
	labels := []string{"Category", "Amount (₹)", "Date", "Description"}
	for i, input := range m.inputs {
		b.WriteString(cardLabelStyle.Render(labels[i]) + "\n" + input.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("←/→ cycle category  enter submit  esc dashboard"))
	return b.String()
}

func (m Model) navBar() string {
	greeting := mutedStyle.Render("Welcome back, " + m.session.Username + "!")
	nav := helpStyle.Render("1 Dashboard  2 Add Expense  3 View All  4 Delete  l Logout  q Quit")
	return greeting + "\n" + nav + "\n"
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(m.navBar())

	summary := report.Summarize(m.expenses, m.now())
	if summary == nil {
		b.WriteString("\n" + mutedStyle.Render("No expenses recorded yet. Start by adding your first expense!"))
		return b.String()
	}

	b.WriteString(sectionStyle.Render("Key Metrics") + "\n")
	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Total Spent", report.FormatCurrency(summary.Total)),
		metricCard("This Month", report.FormatCurrency(summary.CurrentMonthTotal)),
		metricCard("Transactions", fmt.Sprintf("%d", summary.Count)),
		metricCard("Daily Average", report.FormatCurrency(summary.DailyAverage)),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Last 7 Days", report.FormatCurrency(summary.Last7DaysTotal)),
		metricCard("Last 30 Days", report.FormatCurrency(summary.Last30DaysTotal)),
		metricCard("Average Expense", report.FormatCurrency(summary.Average)),
		metricCard("Top Category", summary.TopCategory),
	)
	b.WriteString(row1 + "\n" + row2 + "\n")

	b.WriteString(renderMonthlyTrend(report.MonthlyTrend(m.expenses)))
	b.WriteString(renderDistribution(report.CategoryDistribution(m.expenses)))
	b.WriteString(renderDailyTotals(report.DailyTotals(m.expenses, m.now())))
	b.WriteString(renderRanking(report.CategoryRanking(m.expenses)))
	b.WriteString(renderHeatmap(report.WeekdayMonthHeatmap(m.expenses)))
	b.WriteString(renderTimeline(report.SpendingTimeline(m.expenses)))
	return b.String()
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func renderMonthlyTrend(points []report.TrendPoint) string {
	if points == nil {
		return ""
	}
	var max float64
	for _, p := range points {
		if p.Total > max {
			max = p.Total
		}
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Monthly Expense Trends") + "\n")
	for _, p := range points {
		b.WriteString(fmt.Sprintf("%s %s %s (%d txns)\n",
			p.Month, bar(p.Total, max), p.Label, p.Count))
	}
	return b.String()
}

func renderDistribution(shares []report.CategoryShare) string {
	if shares == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Expense Distribution by Category") + "\n")
	for _, s := range shares {
		b.WriteString(fmt.Sprintf("%-14s %5.1f%%  %s\n",
			ansi.Truncate(s.Category, 14, "…"), s.Share*100, s.Label))
	}
	return b.String()
}

func renderDailyTotals(points []report.DailyPoint) string {
	if points == nil {
		return ""
	}
	var max float64
	for _, p := range points {
		if p.Total > max {
			max = p.Total
		}
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Daily Expenses (Last 30 Days)") + "\n")
	for _, p := range points {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			p.Date.Format(storage.DateLayout), bar(p.Total, max), p.Label))
	}
	return b.String()
}

func renderRanking(ranking []report.CategoryTotal) string {
	if ranking == nil {
		return ""
	}
	max := ranking[len(ranking)-1].Total
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Expenses by Category") + "\n")
	for _, r := range ranking {
		b.WriteString(fmt.Sprintf("%-14s %s %s\n",
			ansi.Truncate(r.Category, 14, "…"), bar(r.Total, max), r.Label))
	}
	return b.String()
}

var heatmapShades = []rune{' ', '░', '▒', '▓', '█'}

func renderHeatmap(h *report.Heatmap) string {
	if h == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Expense Calendar Heatmap") + "\n")
	b.WriteString(helpStyle.Render("          Mo Tu We Th Fr Sa Su") + "\n")
	for monthIdx, row := range h.Totals {
		empty := true
		for _, v := range row {
			if v > 0 {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		b.WriteString(fmt.Sprintf("%-9s ", time.Month(monthIdx+1).String()[:3]))
		for _, v := range row {
			b.WriteString(string(shade(v, h.Max)) + "  ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderTimeline(points []report.TimelinePoint) string {
	if points == nil {
		return ""
	}
	// The full series can be long; the last ten entries carry the story.
	start := 0
	if len(points) > 10 {
		start = len(points) - 10
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Cumulative Spending Timeline") + "\n")
	for _, p := range points[start:] {
		b.WriteString(fmt.Sprintf("%s  %10s  cumulative %s\n",
			p.Date.Format(storage.DateLayout), p.Label, p.CumulativeLabel))
	}
	return b.String()
}

func (m Model) viewList(deleteMode bool) string {
	var b strings.Builder
	b.WriteString(m.navBar())

	if deleteMode {
		b.WriteString(sectionStyle.Render("Delete Expense") + "\n")
	} else {
		b.WriteString(sectionStyle.Render("All Expenses") + "\n")
	}

	if len(m.expenses) == 0 {
		b.WriteString(mutedStyle.Render("No expenses found.") + "\n")
		return b.String()
	}

	header := fmt.Sprintf("  %4s  %-10s  %-14s  %-24s  %10s", "ID", "Date", "Category", "Description", "Amount")
	b.WriteString(helpStyle.Render(header) + "\n")

	var total float64
	for i, e := range m.expenses {
		total += e.Amount
		line := fmt.Sprintf("%4d  %-10s  %-14s  %-24s  %10s",
			e.ID,
			e.Date.Format(storage.DateLayout),
			ansi.Truncate(e.Category, 14, "…"),
			ansi.Truncate(e.Description, 24, "…"),
			report.FormatCurrency(e.Amount),
		)
		if (deleteMode || m.page == PageList) && i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Total: %s", report.FormatCurrency(total))) + "\n")

	if deleteMode {
		b.WriteString("\n" + helpStyle.Render("j/k move  enter delete selected"))
	} else {
		b.WriteString("\n" + helpStyle.Render("j/k move  e export CSV"))
	}
	return b.String()
}

func bar(value, max float64) string {
	if max <= 0 {
		return ""
	}
	n := int(value / max * chartBarWidth)
	if n < 1 {
		n = 1
	}
	return barStyle.Render(strings.Repeat("█", n))
}

func shade(value, max float64) rune {
	if value <= 0 || max <= 0 {
		return heatmapShades[0]
	}
	idx := 1 + int(value/max*float64(len(heatmapShades)-2))
	if idx >= len(heatmapShades) {
		idx = len(heatmapShades) - 1
	}
	return heatmapShades[idx]
}

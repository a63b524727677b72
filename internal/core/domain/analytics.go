package domain

import (
	"github.com/shopspring/decimal"
)

// DashboardTotals carries the headline figures for the analytics dashboard.
type DashboardTotals struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"` // Revenue minus Expenses
}

// MonthlyBucket accumulates revenue and expense sums for one calendar month.
// The chart series holds one bucket per month from January through the
// current month of the current year.
type MonthlyBucket struct {
	MonthLabel string          `json:"monthLabel"`
	RevenueSum decimal.Decimal `json:"revenueSum"`
	ExpenseSum decimal.Decimal `json:"expenseSum"`
}

// DashboardSummary is the aggregated view consumed by the dashboard charts.
type DashboardSummary struct {
	Totals        DashboardTotals `json:"totals"`
	MonthlySeries []MonthlyBucket `json:"monthlySeries"`
	// SkippedInvalidDates counts entries excluded from the aggregates because
	// their date could not be parsed.
	SkippedInvalidDates int `json:"skippedInvalidDates"`
}

// ABCClass is the Pareto tier assigned to a client by revenue contribution.
type ABCClass string

const (
	ClassA ABCClass = "A"
	ClassB ABCClass = "B"
	ClassC ABCClass = "C"
)

// ClassificationRow is one client's entry in the ABC revenue analysis.
// Rows are ordered by TotalRevenue descending; CumulativeRevenuePercentage is
// non-decreasing across the ordered sequence.
type ClassificationRow struct {
	ClientID                    string          `json:"clientID"`
	ClientName                  string          `json:"clientName"`
	TotalRevenue                decimal.Decimal `json:"totalRevenue"`
	RevenuePercentage           float64         `json:"revenuePercentage"`
	CumulativeRevenuePercentage float64         `json:"cumulativeRevenuePercentage"`
	Classification              ABCClass        `json:"classification"`
}

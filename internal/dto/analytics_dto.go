package dto

import (
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodQuery carries the reporting period selector from query parameters.
// Value format depends on PeriodType: YYYY-MM-DD (day), YYYY-MM (month),
// YYYY (year).
type PeriodQuery struct {
	PeriodType string `form:"periodType" binding:"omitempty,periodtype"`
	Value      string `form:"value"`
}

// Period converts the query to the domain selector. Returns nil when no
// period was supplied (callers then aggregate the full snapshot).
func (q PeriodQuery) Period() *domain.Period {
	if q.PeriodType == "" {
		return nil
	}
	return &domain.Period{Type: domain.PeriodType(q.PeriodType), Value: q.Value}
}

// MonthlyBucketResponse is one month of the dashboard chart series
type MonthlyBucketResponse struct {
	MonthLabel string          `json:"monthLabel"`
	RevenueSum decimal.Decimal `json:"revenueSum"`
	ExpenseSum decimal.Decimal `json:"expenseSum"`
}

// DashboardSummaryResponse is the aggregated dashboard payload
type DashboardSummaryResponse struct {
	Totals struct {
		Revenue  decimal.Decimal `json:"revenue"`
		Expenses decimal.Decimal `json:"expenses"`
		Profit   decimal.Decimal `json:"profit"`
	} `json:"totals"`
	MonthlySeries       []MonthlyBucketResponse `json:"monthlySeries"`
	SkippedInvalidDates int                     `json:"skippedInvalidDates"`
}

// ToDashboardSummaryResponse converts the domain summary to a DTO response
func ToDashboardSummaryResponse(summary *domain.DashboardSummary) DashboardSummaryResponse {
	response := DashboardSummaryResponse{
		MonthlySeries:       make([]MonthlyBucketResponse, len(summary.MonthlySeries)),
		SkippedInvalidDates: summary.SkippedInvalidDates,
	}
	response.Totals.Revenue = summary.Totals.Revenue
	response.Totals.Expenses = summary.Totals.Expenses
	response.Totals.Profit = summary.Totals.Profit

	for i, bucket := range summary.MonthlySeries {
		response.MonthlySeries[i] = MonthlyBucketResponse{
			MonthLabel: bucket.MonthLabel,
			RevenueSum: bucket.RevenueSum,
			ExpenseSum: bucket.ExpenseSum,
		}
	}
	return response
}

// ClassificationRowResponse is one client's row in the ABC analysis table
type ClassificationRowResponse struct {
	ClientID                    string          `json:"clientID"`
	ClientName                  string          `json:"clientName"`
	TotalRevenue                decimal.Decimal `json:"totalRevenue"`
	RevenuePercentage           float64         `json:"revenuePercentage"`
	CumulativeRevenuePercentage float64         `json:"cumulativeRevenuePercentage"`
	Classification              string          `json:"classification"`
}

// ClassificationChartPoint feeds the cumulative percentage line chart
type ClassificationChartPoint struct {
	ClientName                  string  `json:"clientName"`
	CumulativeRevenuePercentage float64 `json:"cumulativeRevenuePercentage"`
}

// ClassificationResponse is the ABC analysis payload: a detail table plus the
// chart series in the same sorted order
type ClassificationResponse struct {
	Rows  []ClassificationRowResponse `json:"rows"`
	Chart []ClassificationChartPoint  `json:"chart"`
}

// ToClassificationResponse converts domain classification rows to a DTO response
func ToClassificationResponse(rows []domain.ClassificationRow) ClassificationResponse {
	response := ClassificationResponse{
		Rows:  make([]ClassificationRowResponse, len(rows)),
		Chart: make([]ClassificationChartPoint, len(rows)),
	}
	for i, row := range rows {
		response.Rows[i] = ClassificationRowResponse{
			ClientID:                    row.ClientID,
			ClientName:                  row.ClientName,
			TotalRevenue:                row.TotalRevenue,
			RevenuePercentage:           row.RevenuePercentage,
			CumulativeRevenuePercentage: row.CumulativeRevenuePercentage,
			Classification:              string(row.Classification),
		}
		response.Chart[i] = ClassificationChartPoint{
			ClientName:                  row.ClientName,
			CumulativeRevenuePercentage: row.CumulativeRevenuePercentage,
		}
	}
	return response
}

// TransactionResponse is one cash book entry in the detail table
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Kind          string          `json:"kind"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	ClientID      string          `json:"clientID,omitempty"`
	Description   string          `json:"description"`
}

// ListTransactionsResponse is a token-paginated page of cash book entries
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions to a DTO response
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	response := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, len(txns)),
		NextToken:    nextToken,
	}
	for i, txn := range txns {
		response.Transactions[i] = TransactionResponse{
			TransactionID: txn.TransactionID,
			Kind:          string(txn.Kind),
			Date:          txn.Date,
			Amount:        txn.Amount,
			ClientID:      txn.ClientID,
			Description:   txn.Description,
		}
	}
	return response
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a cash book entry is a revenue or an expense.
type TransactionKind string

const (
	KindRevenue TransactionKind = "REVENUE"
	KindExpense TransactionKind = "EXPENSE"
)

// DateLayout is the canonical format for all cash book dates.
const DateLayout = "2006-01-02"

// Transaction represents a single cash book entry. Entries are created and
// edited elsewhere in the back office; this core only reads immutable snapshots.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (e.g., UUID)
	Kind          TransactionKind `json:"kind"`          // REVENUE or EXPENSE (Not Null)
	Date          string          `json:"date"`          // Raw date as entered; expected YYYY-MM-DD but legacy rows may be malformed
	Amount        decimal.Decimal `json:"amount"`        // Non-negative; precise decimal type
	ClientID      string          `json:"clientID"`      // FK -> Client.clientID; empty when the entry is not tied to a client
	Description   string          `json:"description"`
	AuditFields
}

// NormalizedDate returns the entry date in canonical YYYY-MM-DD form.
// The second return value is false when the raw date cannot be parsed;
// such entries are excluded from every date-keyed aggregate.
func (t Transaction) NormalizedDate() (string, bool) {
	return NormalizeDate(t.Date)
}

// NormalizeDate parses a raw date string and reformats it as YYYY-MM-DD.
func NormalizeDate(raw string) (string, bool) {
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", false
	}
	return parsed.Format(DateLayout), true
}

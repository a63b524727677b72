package domain

import "github.com/shopspring/decimal"

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceUnpaid  InvoiceStatus = "UNPAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
)

// Invoice represents a billed amount for a client. Only PAID invoices
// contribute to revenue classification.
type Invoice struct {
	InvoiceID string          `json:"invoiceID"` // Primary Key (e.g., UUID)
	ClientID  string          `json:"clientID"`  // FK -> Client.clientID (Not Null)
	Amount    decimal.Decimal `json:"amount"`    // Non-negative
	Status    InvoiceStatus   `json:"status"`
	AuditFields
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusPending = "Pending"
	InvoiceStatusPartial = "Partial Payment"
	InvoiceStatusPaid    = "Fully Paid"
)

const PaymentTypeFull = "Full Payment"

// NotesAutoGenerated marks invoices created by the billing scheduler,
// as opposed to manual entry.
const NotesAutoGenerated = "Auto-generated"

// Invoice is one tenant's billing record for one calendar month.
// At most one invoice exists per (tenant, month); the month label uses
// the "January 2006" format.
type Invoice struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	TenantID         uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	TenantName       string          `json:"tenant_name" db:"tenant_name"`
	RoomNumber       string          `json:"room_number" db:"room_number"`
	TotalAmount      decimal.Decimal `json:"total_amount" db:"total_amount"`
	AmountPaid       decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	PaymentType      string          `json:"payment_type" db:"payment_type"`
	RemainingBalance decimal.Decimal `json:"remaining_balance" db:"remaining_balance"`
	Month            string          `json:"month" db:"month"`
	PaymentDate      *time.Time      `json:"payment_date" db:"payment_date"`
	DueDate          *time.Time      `json:"due_date" db:"due_date"`
	Status           string          `json:"status" db:"status"`
	Notes            string          `json:"notes" db:"notes"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// DeriveStatus computes the invoice status from the paid and total amounts.
// paid <= 0 is Pending, paid >= total is Fully Paid, anything in between
// is Partial Payment. The status column is never set independently.
func DeriveStatus(paid, total decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return InvoiceStatusPending
	case paid.GreaterThanOrEqual(total):
		return InvoiceStatusPaid
	default:
		return InvoiceStatusPartial
	}
}

// ApplyPayment adds amount to the invoice's paid total and recomputes the
// derived fields: balance = total - paid, status from DeriveStatus, payment
// date stamped with at. Payments are additive, so applying A then B leaves
// the invoice in the same state as applying A+B once.
func (i *Invoice) ApplyPayment(amount decimal.Decimal, at time.Time) {
	i.AmountPaid = i.AmountPaid.Add(amount)
	i.RemainingBalance = i.TotalAmount.Sub(i.AmountPaid)
	i.Status = DeriveStatus(i.AmountPaid, i.TotalAmount)
	i.PaymentDate = &at
}

// DTOs for requests and responses

type CreateInvoiceRequest struct {
	TenantID    uuid.UUID       `json:"tenant_id" validate:"required"`
	TenantName  string          `json:"tenant_name" validate:"required"`
	RoomNumber  string          `json:"room_number" validate:"required"`
	TotalAmount decimal.Decimal `json:"total_amount" validate:"required"`
	Month       string          `json:"month" validate:"required"`
	Notes       string          `json:"notes"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type RevenueResponse struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type GenerateInvoicesResponse struct {
	Month           string `json:"month"`
	InvoicesCreated int    `json:"invoices_created"`
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	total := decimal.NewFromInt(5000)

	tests := []struct {
		name     string
		paid     decimal.Decimal
		expected string
	}{
		{"nothing paid", decimal.Zero, InvoiceStatusPending},
		{"negative paid stays pending", decimal.NewFromInt(-100), InvoiceStatusPending},
		{"partial payment", decimal.NewFromInt(2000), InvoiceStatusPartial},
		{"one peso short", decimal.NewFromInt(4999), InvoiceStatusPartial},
		{"exact payment", decimal.NewFromInt(5000), InvoiceStatusPaid},
		{"overpayment", decimal.NewFromInt(6000), InvoiceStatusPaid},
		{"fractional partial", decimal.NewFromFloat(0.01), InvoiceStatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatus(tt.paid, total))
		})
	}
}

func pendingInvoice(total int64) *Invoice {
	amount := decimal.NewFromInt(total)
	return &Invoice{
		TenantName:       "Kevin",
		RoomNumber:       "1",
		TotalAmount:      amount,
		AmountPaid:       decimal.Zero,
		RemainingBalance: amount,
		Status:           InvoiceStatusPending,
	}
}

func TestApplyPayment(t *testing.T) {
	paidAt := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("full payment settles the invoice", func(t *testing.T) {
		invoice := pendingInvoice(5000)

		invoice.ApplyPayment(decimal.NewFromInt(5000), paidAt)

		assert.True(t, invoice.AmountPaid.Equal(decimal.NewFromInt(5000)))
		assert.True(t, invoice.RemainingBalance.IsZero())
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.Equal(t, paidAt, *invoice.PaymentDate)
	})

	t.Run("partial payment leaves the remainder", func(t *testing.T) {
		invoice := pendingInvoice(5000)

		invoice.ApplyPayment(decimal.NewFromInt(2000), paidAt)

		assert.True(t, invoice.AmountPaid.Equal(decimal.NewFromInt(2000)))
		assert.True(t, invoice.RemainingBalance.Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, InvoiceStatusPartial, invoice.Status)
	})

	t.Run("payments are additive", func(t *testing.T) {
		stepwise := pendingInvoice(5000)
		stepwise.ApplyPayment(decimal.NewFromInt(2000), paidAt)
		stepwise.ApplyPayment(decimal.NewFromInt(3000), paidAt.AddDate(0, 0, 5))

		once := pendingInvoice(5000)
		once.ApplyPayment(decimal.NewFromInt(5000), paidAt.AddDate(0, 0, 5))

		assert.True(t, stepwise.AmountPaid.Equal(once.AmountPaid))
		assert.True(t, stepwise.RemainingBalance.Equal(once.RemainingBalance))
		assert.Equal(t, once.Status, stepwise.Status)
		assert.Equal(t, *once.PaymentDate, *stepwise.PaymentDate)
	})

	t.Run("balance always equals total minus paid", func(t *testing.T) {
		invoice := pendingInvoice(5000)

		for _, amount := range []int64{1500, 500, 2500, 1000} {
			invoice.ApplyPayment(decimal.NewFromInt(amount), paidAt)
			assert.True(t, invoice.RemainingBalance.Equal(invoice.TotalAmount.Sub(invoice.AmountPaid)))
		}

		// 5500 paid against 5000 total: overpaid but still Fully Paid.
		assert.True(t, invoice.RemainingBalance.Equal(decimal.NewFromInt(-500)))
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	})

	t.Run("later payment moves the payment date", func(t *testing.T) {
		invoice := pendingInvoice(5000)
		invoice.ApplyPayment(decimal.NewFromInt(1000), paidAt)

		later := paidAt.AddDate(0, 0, 12)
		invoice.ApplyPayment(decimal.NewFromInt(1000), later)

		assert.Equal(t, later, *invoice.PaymentDate)
	})
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/paluyo/houserent/internal/domain"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, tenant_id, tenant_name, room_number, total_amount, amount_paid,
		payment_type, remaining_balance, month, payment_date, due_date, status, notes, created_at`

func (r *invoiceRepository) CreateIfAbsent(ctx context.Context, invoice *domain.Invoice) (bool, error) {
	// The unique constraint on (tenant_id, month) makes generation
	// idempotent even when two ticks race.
	query := `
		INSERT INTO invoices (id, tenant_id, tenant_name, room_number, total_amount, amount_paid,
			payment_type, remaining_balance, month, payment_date, due_date, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (tenant_id, month) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query,
		invoice.ID,
		invoice.TenantID,
		invoice.TenantName,
		invoice.RoomNumber,
		invoice.TotalAmount,
		invoice.AmountPaid,
		invoice.PaymentType,
		invoice.RemainingBalance,
		invoice.Month,
		invoice.PaymentDate,
		invoice.DueDate,
		invoice.Status,
		invoice.Notes,
		invoice.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	var invoice domain.Invoice
	if err := r.db.GetContext(ctx, &invoice, query, id); err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, paidAt time.Time) (*domain.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Row lock serializes concurrent payments against the same invoice.
	selectQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`

	var invoice domain.Invoice
	if err = tx.GetContext(ctx, &invoice, selectQuery, id); err != nil {
		return nil, err
	}

	invoice.ApplyPayment(amount, paidAt)

	updateQuery := `
		UPDATE invoices
		SET amount_paid = $2, remaining_balance = $3, payment_date = $4, status = $5
		WHERE id = $1
	`

	if _, err = tx.ExecContext(ctx, updateQuery,
		invoice.ID,
		invoice.AmountPaid,
		invoice.RemainingBalance,
		invoice.PaymentDate,
		invoice.Status,
	); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY payment_date DESC NULLS LAST, created_at DESC`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) ListForMonth(ctx context.Context, month string) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE month = $1 ORDER BY room_number`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, month); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1 ORDER BY created_at DESC`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, tenantID); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) Search(ctx context.Context, query string) ([]*domain.Invoice, error) {
	sqlQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE tenant_name ILIKE $1 OR room_number ILIKE $1 OR month ILIKE $1 OR status ILIKE $1
		ORDER BY created_at DESC
	`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, sqlQuery, "%"+query+"%"); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}

func (r *invoiceRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE tenant_id = $1`, tenantID)
	return err
}

func (r *invoiceRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount_paid), 0) FROM invoices`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

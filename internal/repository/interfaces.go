package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paluyo/houserent/internal/domain"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateIfAbsent inserts an invoice unless one already exists for the
	// same (tenant, month). Reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, invoice *domain.Invoice) (bool, error)

	// GetByID retrieves an invoice by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// ApplyPayment adds amount to the invoice's paid total inside a single
	// transaction, recomputing balance and status, and stamping the payment
	// date. Returns the updated invoice.
	ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, paidAt time.Time) (*domain.Invoice, error)

	// List retrieves all invoices, most recently paid first
	List(ctx context.Context) ([]*domain.Invoice, error)

	// ListForMonth retrieves all invoices for a month label
	ListForMonth(ctx context.Context, month string) ([]*domain.Invoice, error)

	// ListByTenant retrieves all invoices for a tenant
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Invoice, error)

	// Search matches tenant name, room number, month or status
	Search(ctx context.Context, query string) ([]*domain.Invoice, error)

	// Delete removes a single invoice
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByTenant removes all invoices belonging to a tenant
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error

	// TotalRevenue sums amount_paid across all invoices
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Tenant, error)
	Search(ctx context.Context, query string) ([]*domain.Tenant, error)

	// CountInRoom counts tenants currently assigned to a room
	CountInRoom(ctx context.Context, roomNumber string) (int, error)

	// ListOccupied returns one occupancy per tenant whose room status is Occupied
	ListOccupied(ctx context.Context) ([]*domain.Occupancy, error)
}

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByNumber(ctx context.Context, roomNumber string) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	UpdateStatus(ctx context.Context, roomNumber, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Room, error)
	StatusCounts(ctx context.Context) (map[string]int, error)
}

// SettingsRepository defines the interface for billing settings storage
type SettingsRepository interface {
	// Get returns the raw setting value; sql.ErrNoRows when the key is absent
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paluyo/houserent/internal/domain"
)

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, contact, room_number, monthly_rate, move_in_month, gender, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Contact,
		tenant.RoomNumber,
		tenant.MonthlyRate,
		tenant.MoveInMonth,
		tenant.Gender,
		tenant.CreatedAt,
	)

	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, contact, room_number, monthly_rate, move_in_month, gender, created_at
		FROM tenants
		WHERE id = $1
	`

	var tenant domain.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, id); err != nil {
		return nil, err
	}

	return &tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, contact = $3, monthly_rate = $4, gender = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Contact,
		tenant.MonthlyRate,
		tenant.Gender,
	)

	return err
}

func (r *tenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	return err
}

func (r *tenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	query := `
		SELECT id, name, contact, room_number, monthly_rate, move_in_month, gender, created_at
		FROM tenants
		ORDER BY room_number, name
	`

	var tenants []*domain.Tenant
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, err
	}

	return tenants, nil
}

func (r *tenantRepository) Search(ctx context.Context, query string) ([]*domain.Tenant, error) {
	sqlQuery := `
		SELECT id, name, contact, room_number, monthly_rate, move_in_month, gender, created_at
		FROM tenants
		WHERE name ILIKE $1 OR contact ILIKE $1 OR room_number ILIKE $1
		ORDER BY room_number, name
	`

	var tenants []*domain.Tenant
	if err := r.db.SelectContext(ctx, &tenants, sqlQuery, "%"+query+"%"); err != nil {
		return nil, err
	}

	return tenants, nil
}

func (r *tenantRepository) CountInRoom(ctx context.Context, roomNumber string) (int, error) {
	query := `SELECT COUNT(*) FROM tenants WHERE room_number = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, roomNumber); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *tenantRepository) ListOccupied(ctx context.Context) ([]*domain.Occupancy, error) {
	query := `
		SELECT t.id AS tenant_id, t.name AS tenant_name, t.room_number, t.monthly_rate
		FROM tenants t
		INNER JOIN rooms r ON t.room_number = r.room_number
		WHERE r.status = $1
		ORDER BY t.room_number
	`

	var occupancies []*domain.Occupancy
	if err := r.db.SelectContext(ctx, &occupancies, query, domain.RoomStatusOccupied); err != nil {
		return nil, err
	}

	return occupancies, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/repository"
	"github.com/paluyo/houserent/pkg/dateutil"
	customError "github.com/paluyo/houserent/pkg/errors"
)

// TenantService manages tenant-room assignments. Assigning a tenant flips
// the room to Occupied; removing the last tenant frees the room and drops
// the tenant's invoices.
type TenantService struct {
	tenantRepo  repository.TenantRepository
	roomRepo    repository.RoomRepository
	invoiceRepo repository.InvoiceRepository
}

func NewTenantService(
	tenantRepo repository.TenantRepository,
	roomRepo repository.RoomRepository,
	invoiceRepo repository.InvoiceRepository,
) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		roomRepo:    roomRepo,
		invoiceRepo: invoiceRepo,
	}
}

// AssignTenant places a tenant in a room, subject to the room's capacity.
// The monthly rate defaults to the room's rate when the request leaves it
// zero.
func (s *TenantService) AssignTenant(ctx context.Context, request *domain.CreateTenantRequest) (*domain.Tenant, error) {
	room, err := s.roomRepo.GetByNumber(ctx, request.RoomNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRoomNotFound(request.RoomNumber)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if room.Status == domain.RoomStatusMaintenance {
		return nil, customError.WrapRoomUnavailable(room.RoomNumber, room.Status)
	}

	count, err := s.tenantRepo.CountInRoom(ctx, room.RoomNumber)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if count >= room.Capacity {
		return nil, customError.WrapRoomFull(room.RoomNumber, room.Capacity)
	}

	rate := request.MonthlyRate
	if rate.IsZero() {
		rate = room.MonthlyRate
	}

	now := time.Now()
	tenant := &domain.Tenant{
		ID:          uuid.New(),
		Name:        request.Name,
		Contact:     request.Contact,
		RoomNumber:  room.RoomNumber,
		MonthlyRate: rate,
		MoveInMonth: dateutil.MonthLabel(now),
		Gender:      request.Gender,
		CreatedAt:   now,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if room.Status != domain.RoomStatusOccupied {
		if err := s.roomRepo.UpdateStatus(ctx, room.RoomNumber, domain.RoomStatusOccupied); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	return tenant, nil
}

func (s *TenantService) UpdateTenant(ctx context.Context, tenantID uuid.UUID, request *domain.UpdateTenantRequest) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapTenantNotFound(tenantID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	tenant.Name = request.Name
	tenant.Contact = request.Contact
	tenant.MonthlyRate = request.MonthlyRate
	tenant.Gender = request.Gender

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return tenant, nil
}

// RemoveTenant deletes the tenant record along with the tenant's invoices,
// and marks the room Available when nobody else lives there.
func (s *TenantService) RemoveTenant(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapTenantNotFound(tenantID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.tenantRepo.Delete(ctx, tenantID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	if err := s.invoiceRepo.DeleteByTenant(ctx, tenantID); err != nil {
		// The tenant is gone; orphaned invoices are logged, not fatal.
		log.Printf("tenant: could not delete invoices for %s: %v", tenant.Name, err)
	}

	remaining, err := s.tenantRepo.CountInRoom(ctx, tenant.RoomNumber)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if remaining == 0 {
		if err := s.roomRepo.UpdateStatus(ctx, tenant.RoomNumber, domain.RoomStatusAvailable); err != nil {
			return customError.WrapDatabaseError(err)
		}
	}

	return nil
}

func (s *TenantService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapTenantNotFound(tenantID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return tenant, nil
}

func (s *TenantService) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return tenants, nil
}

func (s *TenantService) SearchTenants(ctx context.Context, query string) ([]*domain.Tenant, error) {
	tenants, err := s.tenantRepo.Search(ctx, query)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return tenants, nil
}

func (s *TenantService) Occupancies(ctx context.Context) ([]*domain.Occupancy, error) {
	occupancies, err := s.tenantRepo.ListOccupied(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return occupancies, nil
}

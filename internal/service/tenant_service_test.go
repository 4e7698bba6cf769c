package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paluyo/houserent/internal/domain"
	customError "github.com/paluyo/houserent/pkg/errors"
	"github.com/paluyo/houserent/tests/mocks"
)

func TestAssignTenant_RoomFull(t *testing.T) {
	tenantRepo := &mocks.MockTenantRepository{}
	roomRepo := &mocks.MockRoomRepository{}
	service := NewTenantService(tenantRepo, roomRepo, &mocks.MockInvoiceRepository{})

	roomRepo.On("GetByNumber", mock.Anything, "1").Return(&domain.Room{
		RoomNumber: "1",
		Capacity:   2,
		Status:     domain.RoomStatusOccupied,
	}, nil)
	tenantRepo.On("CountInRoom", mock.Anything, "1").Return(2, nil)

	tenant, err := service.AssignTenant(context.Background(), &domain.CreateTenantRequest{
		Name:       "Kevin",
		Contact:    "0917 000 0000",
		RoomNumber: "1",
	})

	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, customError.ErrRoomFull)
	tenantRepo.AssertNotCalled(t, "Create")
}

func TestAssignTenant_RoomNotFound(t *testing.T) {
	tenantRepo := &mocks.MockTenantRepository{}
	roomRepo := &mocks.MockRoomRepository{}
	service := NewTenantService(tenantRepo, roomRepo, &mocks.MockInvoiceRepository{})

	roomRepo.On("GetByNumber", mock.Anything, "99").Return(nil, sql.ErrNoRows)

	tenant, err := service.AssignTenant(context.Background(), &domain.CreateTenantRequest{
		Name:       "Kevin",
		Contact:    "0917 000 0000",
		RoomNumber: "99",
	})

	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, customError.ErrRoomNotFound)
}

func TestAssignTenant_DefaultsRateFromRoomAndOccupiesIt(t *testing.T) {
	tenantRepo := &mocks.MockTenantRepository{}
	roomRepo := &mocks.MockRoomRepository{}
	service := NewTenantService(tenantRepo, roomRepo, &mocks.MockInvoiceRepository{})

	roomRate := decimal.NewFromInt(5000)
	roomRepo.On("GetByNumber", mock.Anything, "1").Return(&domain.Room{
		RoomNumber:  "1",
		Capacity:    2,
		MonthlyRate: roomRate,
		Status:      domain.RoomStatusAvailable,
	}, nil)
	tenantRepo.On("CountInRoom", mock.Anything, "1").Return(0, nil)
	tenantRepo.On("Create", mock.Anything, mock.MatchedBy(func(tenant *domain.Tenant) bool {
		return tenant.Name == "Kevin" && tenant.MonthlyRate.Equal(roomRate)
	})).Return(nil)
	roomRepo.On("UpdateStatus", mock.Anything, "1", domain.RoomStatusOccupied).Return(nil)

	tenant, err := service.AssignTenant(context.Background(), &domain.CreateTenantRequest{
		Name:       "Kevin",
		Contact:    "0917 000 0000",
		RoomNumber: "1",
	})

	assert.NoError(t, err)
	assert.True(t, tenant.MonthlyRate.Equal(roomRate))
	roomRepo.AssertExpectations(t)
	tenantRepo.AssertExpectations(t)
}

func TestRemoveTenant_FreesRoomAndDeletesInvoices(t *testing.T) {
	tenantRepo := &mocks.MockTenantRepository{}
	roomRepo := &mocks.MockRoomRepository{}
	invoiceRepo := &mocks.MockInvoiceRepository{}
	service := NewTenantService(tenantRepo, roomRepo, invoiceRepo)

	tenantID := uuid.New()
	tenantRepo.On("GetByID", mock.Anything, tenantID).Return(&domain.Tenant{
		ID:         tenantID,
		Name:       "Kevin",
		RoomNumber: "1",
	}, nil)
	tenantRepo.On("Delete", mock.Anything, tenantID).Return(nil)
	invoiceRepo.On("DeleteByTenant", mock.Anything, tenantID).Return(nil)
	tenantRepo.On("CountInRoom", mock.Anything, "1").Return(0, nil)
	roomRepo.On("UpdateStatus", mock.Anything, "1", domain.RoomStatusAvailable).Return(nil)

	err := service.RemoveTenant(context.Background(), tenantID)

	assert.NoError(t, err)
	tenantRepo.AssertExpectations(t)
	roomRepo.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestRemoveTenant_RoomStaysOccupiedWithRoommates(t *testing.T) {
	tenantRepo := &mocks.MockTenantRepository{}
	roomRepo := &mocks.MockRoomRepository{}
	invoiceRepo := &mocks.MockInvoiceRepository{}
	service := NewTenantService(tenantRepo, roomRepo, invoiceRepo)

	tenantID := uuid.New()
	tenantRepo.On("GetByID", mock.Anything, tenantID).Return(&domain.Tenant{
		ID:         tenantID,
		Name:       "Kevin",
		RoomNumber: "1",
	}, nil)
	tenantRepo.On("Delete", mock.Anything, tenantID).Return(nil)
	invoiceRepo.On("DeleteByTenant", mock.Anything, tenantID).Return(nil)
	tenantRepo.On("CountInRoom", mock.Anything, "1").Return(1, nil)

	err := service.RemoveTenant(context.Background(), tenantID)

	assert.NoError(t, err)
	roomRepo.AssertNotCalled(t, "UpdateStatus")
}

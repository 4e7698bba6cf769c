package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paluyo/houserent/internal/config"
	"github.com/paluyo/houserent/internal/domain"
	customError "github.com/paluyo/houserent/pkg/errors"
	"github.com/paluyo/houserent/tests/mocks"
)

func newBillingService(invoiceRepo *mocks.MockInvoiceRepository, tenantRepo *mocks.MockTenantRepository, settingsRepo *mocks.MockSettingsRepository) *BillingService {
	return NewBillingService(invoiceRepo, tenantRepo, settingsRepo, nil, &config.Config{})
}

func TestGenerateMonthlyInvoices_CreatesPendingInvoices(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	tenantRepo := &mocks.MockTenantRepository{}
	settingsRepo := &mocks.MockSettingsRepository{}
	service := newBillingService(invoiceRepo, tenantRepo, settingsRepo)

	kevinID := uuid.New()
	rate := decimal.NewFromFloat(5000.00)

	tenantRepo.On("ListOccupied", mock.Anything).Return([]*domain.Occupancy{
		{TenantID: kevinID, TenantName: "Kevin", RoomNumber: "1", MonthlyRate: rate},
	}, nil)
	settingsRepo.On("Get", mock.Anything, domain.SettingBillingDay).Return("1", nil)

	invoiceRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.TenantID == kevinID &&
			inv.TenantName == "Kevin" &&
			inv.RoomNumber == "1" &&
			inv.Month == "March 2025" &&
			inv.Status == domain.InvoiceStatusPending &&
			inv.TotalAmount.Equal(rate) &&
			inv.AmountPaid.IsZero() &&
			inv.RemainingBalance.Equal(rate) &&
			inv.PaymentDate == nil &&
			inv.DueDate != nil &&
			inv.DueDate.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	})).Return(true, nil)

	now := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	created, err := service.GenerateMonthlyInvoices(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, 1, created)
	invoiceRepo.AssertExpectations(t)
}

func TestGenerateMonthlyInvoices_SecondRunCreatesNothing(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	tenantRepo := &mocks.MockTenantRepository{}
	settingsRepo := &mocks.MockSettingsRepository{}
	service := newBillingService(invoiceRepo, tenantRepo, settingsRepo)

	tenantRepo.On("ListOccupied", mock.Anything).Return([]*domain.Occupancy{
		{TenantID: uuid.New(), TenantName: "Kevin", RoomNumber: "1", MonthlyRate: decimal.NewFromInt(5000)},
	}, nil)
	settingsRepo.On("Get", mock.Anything, domain.SettingBillingDay).Return("1", nil)

	// The invoice already exists; the insert is a no-op.
	invoiceRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)

	created, err := service.GenerateMonthlyInvoices(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestGenerateMonthlyInvoices_ContinuesAfterFailedInsert(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	tenantRepo := &mocks.MockTenantRepository{}
	settingsRepo := &mocks.MockSettingsRepository{}
	service := newBillingService(invoiceRepo, tenantRepo, settingsRepo)

	tenantRepo.On("ListOccupied", mock.Anything).Return([]*domain.Occupancy{
		{TenantID: uuid.New(), TenantName: "Kevin", RoomNumber: "1", MonthlyRate: decimal.NewFromInt(5000)},
		{TenantID: uuid.New(), TenantName: "Maria", RoomNumber: "2", MonthlyRate: decimal.NewFromInt(6500)},
	}, nil)
	settingsRepo.On("Get", mock.Anything, domain.SettingBillingDay).Return("1", nil)

	invoiceRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.TenantName == "Kevin"
	})).Return(false, errors.New("connection reset"))
	invoiceRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.TenantName == "Maria"
	})).Return(true, nil)

	created, err := service.GenerateMonthlyInvoices(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, 1, created)
	invoiceRepo.AssertExpectations(t)
}

func TestGenerateMonthlyInvoices_OccupancyListError(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	tenantRepo := &mocks.MockTenantRepository{}
	settingsRepo := &mocks.MockSettingsRepository{}
	service := newBillingService(invoiceRepo, tenantRepo, settingsRepo)

	tenantRepo.On("ListOccupied", mock.Anything).Return(nil, errors.New("database down"))

	created, err := service.GenerateMonthlyInvoices(context.Background(), time.Now())

	assert.Error(t, err)
	assert.Equal(t, 0, created)
	invoiceRepo.AssertNotCalled(t, "CreateIfAbsent")
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	service := newBillingService(invoiceRepo, &mocks.MockTenantRepository{}, &mocks.MockSettingsRepository{})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-500)} {
		invoice, err := service.RecordPayment(context.Background(), uuid.New(), amount)

		assert.Nil(t, invoice)
		assert.ErrorIs(t, err, customError.ErrInvalidPaymentAmount)
	}

	invoiceRepo.AssertNotCalled(t, "ApplyPayment")
}

func TestRecordPayment_FullPayment(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	service := newBillingService(invoiceRepo, &mocks.MockTenantRepository{}, &mocks.MockSettingsRepository{})

	invoiceID := uuid.New()
	amount := decimal.NewFromFloat(5000.00)
	paidAt := time.Now()
	updated := &domain.Invoice{
		ID:               invoiceID,
		TenantName:       "Kevin",
		RoomNumber:       "1",
		TotalAmount:      amount,
		AmountPaid:       amount,
		RemainingBalance: decimal.Zero,
		Status:           domain.InvoiceStatusPaid,
		PaymentDate:      &paidAt,
	}

	invoiceRepo.On("ApplyPayment", mock.Anything, invoiceID, amount, mock.AnythingOfType("time.Time")).Return(updated, nil)

	invoice, err := service.RecordPayment(context.Background(), invoiceID, amount)

	assert.NoError(t, err)
	assert.True(t, invoice.RemainingBalance.IsZero())
	assert.Equal(t, domain.InvoiceStatusPaid, invoice.Status)
	assert.NotNil(t, invoice.PaymentDate)
	invoiceRepo.AssertExpectations(t)
}

func TestRecordPayment_InvoiceNotFound(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	service := newBillingService(invoiceRepo, &mocks.MockTenantRepository{}, &mocks.MockSettingsRepository{})

	invoiceRepo.On("ApplyPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

	invoice, err := service.RecordPayment(context.Background(), uuid.New(), decimal.NewFromInt(100))

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, customError.ErrInvoiceNotFound)
}

func TestCreateInvoice_DuplicateMonth(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	service := newBillingService(invoiceRepo, &mocks.MockTenantRepository{}, &mocks.MockSettingsRepository{})

	invoiceRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)

	invoice, err := service.CreateInvoice(context.Background(), &domain.CreateInvoiceRequest{
		TenantID:    uuid.New(),
		TenantName:  "Kevin",
		RoomNumber:  "1",
		TotalAmount: decimal.NewFromInt(5000),
		Month:       "March 2025",
	})

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, customError.ErrDuplicateInvoice)
}

func TestInvoicesForMonth_EnsuresMissingRows(t *testing.T) {
	invoiceRepo := &mocks.MockInvoiceRepository{}
	tenantRepo := &mocks.MockTenantRepository{}
	service := newBillingService(invoiceRepo, tenantRepo, &mocks.MockSettingsRepository{})

	kevinID := uuid.New()
	tenantRepo.On("ListOccupied", mock.Anything).Return([]*domain.Occupancy{
		{TenantID: kevinID, TenantName: "Kevin", RoomNumber: "1", MonthlyRate: decimal.NewFromInt(5000)},
	}, nil)

	invoiceRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.TenantID == kevinID && inv.Month == "March 2025" && inv.Status == domain.InvoiceStatusPending
	})).Return(true, nil)
	invoiceRepo.On("ListForMonth", mock.Anything, "March 2025").Return([]*domain.Invoice{
		{TenantID: kevinID, Month: "March 2025"},
	}, nil)

	invoices, err := service.InvoicesForMonth(context.Background(), "March 2025")

	assert.NoError(t, err)
	assert.Len(t, invoices, 1)
	invoiceRepo.AssertExpectations(t)
}

func TestBillingDay_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		err      error
		expected int
	}{
		{"stored value", "15", nil, 15},
		{"missing key", "", sql.ErrNoRows, domain.DefaultBillingDay},
		{"malformed value", "soon", nil, domain.DefaultBillingDay},
		{"out of range high", "40", nil, domain.DefaultBillingDay},
		{"out of range low", "0", nil, domain.DefaultBillingDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingsRepo := &mocks.MockSettingsRepository{}
			settingsRepo.On("Get", mock.Anything, domain.SettingBillingDay).Return(tt.value, tt.err)

			service := newBillingService(&mocks.MockInvoiceRepository{}, &mocks.MockTenantRepository{}, settingsRepo)

			assert.Equal(t, tt.expected, service.BillingDay(context.Background()))
		})
	}
}

func TestBillingEnabled_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		err      error
		expected bool
	}{
		{"explicitly disabled", "false", nil, false},
		{"explicitly enabled", "true", nil, true},
		{"missing key", "", sql.ErrNoRows, domain.DefaultBillingEnabled},
		{"malformed value", "yes please", nil, domain.DefaultBillingEnabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingsRepo := &mocks.MockSettingsRepository{}
			settingsRepo.On("Get", mock.Anything, domain.SettingBillingEnabled).Return(tt.value, tt.err)

			service := newBillingService(&mocks.MockInvoiceRepository{}, &mocks.MockTenantRepository{}, settingsRepo)

			assert.Equal(t, tt.expected, service.BillingEnabled(context.Background()))
		})
	}
}

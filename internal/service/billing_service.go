package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/paluyo/houserent/internal/config"
	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/repository"
	"github.com/paluyo/houserent/pkg/dateutil"
	customError "github.com/paluyo/houserent/pkg/errors"
)

const (
	settingsCachePrefix = "settings:"
	revenueCacheKey     = "revenue:total"
)

// BillingService owns the invoice lifecycle: monthly generation for every
// occupied room, payment recording, and the billing settings that drive
// the scheduler.
type BillingService struct {
	invoiceRepo  repository.InvoiceRepository
	tenantRepo   repository.TenantRepository
	settingsRepo repository.SettingsRepository
	redis        *redis.Client
	config       *config.Config
}

func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	tenantRepo repository.TenantRepository,
	settingsRepo repository.SettingsRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *BillingService {
	return &BillingService{
		invoiceRepo:  invoiceRepo,
		tenantRepo:   tenantRepo,
		settingsRepo: settingsRepo,
		redis:        redisClient,
		config:       cfg,
	}
}

// GenerateMonthlyInvoices ensures every tenant of an occupied room has an
// invoice for the month containing now. A failure on one tenant is logged
// and skipped; the next tick picks the tenant up again. Returns the number
// of invoices created.
func (s *BillingService) GenerateMonthlyInvoices(ctx context.Context, now time.Time) (int, error) {
	occupancies, err := s.tenantRepo.ListOccupied(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	month := dateutil.MonthLabel(now)
	dueDate := dateutil.DueDate(now, s.BillingDay(ctx))

	created := 0
	for _, occ := range occupancies {
		invoice := s.newMonthlyInvoice(occ, month, dueDate, now)

		inserted, err := s.invoiceRepo.CreateIfAbsent(ctx, invoice)
		if err != nil {
			log.Printf("billing: skipping %s (room %s): %v", occ.TenantName, occ.RoomNumber, err)
			continue
		}
		if inserted {
			created++
			log.Printf("billing: invoice generated for %s (room %s), amount %s, due %s",
				occ.TenantName, occ.RoomNumber, occ.MonthlyRate.StringFixed(2), dueDate.Format("2006-01-02"))
		}
	}

	return created, nil
}

func (s *BillingService) newMonthlyInvoice(occ *domain.Occupancy, month string, dueDate, now time.Time) *domain.Invoice {
	return &domain.Invoice{
		ID:               uuid.New(),
		TenantID:         occ.TenantID,
		TenantName:       occ.TenantName,
		RoomNumber:       occ.RoomNumber,
		TotalAmount:      occ.MonthlyRate,
		AmountPaid:       decimal.Zero,
		PaymentType:      domain.PaymentTypeFull,
		RemainingBalance: occ.MonthlyRate,
		Month:            month,
		PaymentDate:      nil,
		DueDate:          &dueDate,
		Status:           domain.InvoiceStatusPending,
		Notes:            domain.NotesAutoGenerated,
		CreatedAt:        now,
	}
}

// RecordPayment applies an incremental payment to an invoice. The new paid
// total, balance and status are computed inside one transaction, so a
// concurrent payment cannot be lost.
func (s *BillingService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, amount decimal.Decimal) (*domain.Invoice, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidPaymentAmount(amount)
	}

	invoice, err := s.invoiceRepo.ApplyPayment(ctx, invoiceID, amount, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvoiceNotFound(invoiceID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateRevenueCache(ctx)

	return invoice, nil
}

// CreateInvoice records a manually entered invoice. The (tenant, month)
// uniqueness rule applies to manual entry as well.
func (s *BillingService) CreateInvoice(ctx context.Context, request *domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	invoice := &domain.Invoice{
		ID:               uuid.New(),
		TenantID:         request.TenantID,
		TenantName:       request.TenantName,
		RoomNumber:       request.RoomNumber,
		TotalAmount:      request.TotalAmount,
		AmountPaid:       decimal.Zero,
		PaymentType:      domain.PaymentTypeFull,
		RemainingBalance: request.TotalAmount,
		Month:            request.Month,
		Status:           domain.InvoiceStatusPending,
		Notes:            request.Notes,
		CreatedAt:        time.Now(),
	}

	inserted, err := s.invoiceRepo.CreateIfAbsent(ctx, invoice)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if !inserted {
		return nil, customError.WrapDuplicateInvoice(request.TenantName, request.Month)
	}

	return invoice, nil
}

// InvoicesForMonth lists every invoice for a month label, first making
// sure each current occupancy has one. Missing rows are created with
// default Pending values, so the month view is always complete.
func (s *BillingService) InvoicesForMonth(ctx context.Context, month string) ([]*domain.Invoice, error) {
	occupancies, err := s.tenantRepo.ListOccupied(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	for _, occ := range occupancies {
		invoice := &domain.Invoice{
			ID:               uuid.New(),
			TenantID:         occ.TenantID,
			TenantName:       occ.TenantName,
			RoomNumber:       occ.RoomNumber,
			TotalAmount:      occ.MonthlyRate,
			AmountPaid:       decimal.Zero,
			PaymentType:      domain.PaymentTypeFull,
			RemainingBalance: occ.MonthlyRate,
			Month:            month,
			Status:           domain.InvoiceStatusPending,
			CreatedAt:        time.Now(),
		}

		if _, err := s.invoiceRepo.CreateIfAbsent(ctx, invoice); err != nil {
			log.Printf("billing: could not ensure invoice for %s in %s: %v", occ.TenantName, month, err)
		}
	}

	invoices, err := s.invoiceRepo.ListForMonth(ctx, month)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return invoices, nil
}

func (s *BillingService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvoiceNotFound(invoiceID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return invoice, nil
}

func (s *BillingService) ListInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return invoices, nil
}

func (s *BillingService) SearchInvoices(ctx context.Context, query string) ([]*domain.Invoice, error) {
	invoices, err := s.invoiceRepo.Search(ctx, query)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return invoices, nil
}

func (s *BillingService) InvoicesByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return invoices, nil
}

func (s *BillingService) DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return customError.WrapDatabaseError(err)
	}
	s.invalidateRevenueCache(ctx)
	return nil
}

// TotalRevenue sums paid amounts across all invoices, cached in redis
// between payments.
func (s *BillingService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, revenueCacheKey).Result(); err == nil {
			if total, parseErr := decimal.NewFromString(cached); parseErr == nil {
				return total, nil
			}
		}
	}

	total, err := s.invoiceRepo.TotalRevenue(ctx)
	if err != nil {
		return decimal.Zero, customError.WrapDatabaseError(err)
	}

	if s.redis != nil {
		s.redis.Set(ctx, revenueCacheKey, total.String(), s.config.Cache.RevenueTTL)
	}

	return total, nil
}

// BillingDay returns the configured billing day-of-month. Missing keys,
// unparseable values and out-of-range days fall back to the default.
func (s *BillingService) BillingDay(ctx context.Context) int {
	raw := s.getSetting(ctx, domain.SettingBillingDay, strconv.Itoa(domain.DefaultBillingDay))

	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 || day > 31 {
		return domain.DefaultBillingDay
	}

	return day
}

// BillingEnabled reports whether automatic billing is switched on.
func (s *BillingService) BillingEnabled(ctx context.Context) bool {
	raw := s.getSetting(ctx, domain.SettingBillingEnabled, strconv.FormatBool(domain.DefaultBillingEnabled))

	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return domain.DefaultBillingEnabled
	}

	return enabled
}

// GetSetting returns the stored value for a setting name, or the given
// default when the key is absent or storage fails.
func (s *BillingService) GetSetting(ctx context.Context, name, defaultValue string) string {
	return s.getSetting(ctx, name, defaultValue)
}

// UpdateSetting persists a setting value and drops the cached copy.
func (s *BillingService) UpdateSetting(ctx context.Context, name, value string) error {
	if err := s.settingsRepo.Set(ctx, name, value); err != nil {
		return customError.WrapDatabaseError(err)
	}

	if s.redis != nil {
		s.redis.Del(ctx, settingsCachePrefix+name)
	}

	return nil
}

func (s *BillingService) getSetting(ctx context.Context, name, defaultValue string) string {
	cacheKey := settingsCachePrefix + name

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			return cached
		}
	}

	value, err := s.settingsRepo.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("billing: could not read setting %s: %v", name, err)
		}
		return defaultValue
	}

	if s.redis != nil {
		s.redis.Set(ctx, cacheKey, value, s.config.Cache.SettingsTTL)
	}

	return value
}

func (s *BillingService) invalidateRevenueCache(ctx context.Context) {
	if s.redis != nil {
		s.redis.Del(ctx, revenueCacheKey)
	}
}

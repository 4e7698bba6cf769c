package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrDuplicateInvoice     = errors.New("invoice already exists for tenant and month")
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomAlreadyExists    = errors.New("room already exists")
	ErrRoomFull             = errors.New("room is at full capacity")
	ErrRoomUnavailable      = errors.New("room is not available")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUsernameTaken        = errors.New("username already taken")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvoiceNotFound      = "INVOICE_NOT_FOUND"
	ErrCodeDuplicateInvoice     = "DUPLICATE_INVOICE"
	ErrCodeInvalidPaymentAmount = "INVALID_PAYMENT_AMOUNT"
	ErrCodeTenantNotFound       = "TENANT_NOT_FOUND"
	ErrCodeRoomNotFound         = "ROOM_NOT_FOUND"
	ErrCodeRoomAlreadyExists    = "ROOM_ALREADY_EXISTS"
	ErrCodeRoomFull             = "ROOM_FULL"
	ErrCodeRoomUnavailable      = "ROOM_UNAVAILABLE"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeUsernameTaken        = "USERNAME_TAKEN"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapInvoiceNotFound(invoiceID string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvoiceNotFound,
		fmt.Sprintf("Invoice %s not found", invoiceID),
		ErrInvoiceNotFound,
	)
}

func WrapDuplicateInvoice(tenantName, month string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicateInvoice,
		fmt.Sprintf("An invoice for %s already exists for %s", tenantName, month),
		ErrDuplicateInvoice,
	)
}

func WrapInvalidPaymentAmount(amount decimal.Decimal) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount.String()),
		ErrInvalidPaymentAmount,
	)
}

func WrapTenantNotFound(tenantID string) *BusinessError {
	return NewBusinessError(
		ErrCodeTenantNotFound,
		fmt.Sprintf("Tenant %s not found", tenantID),
		ErrTenantNotFound,
	)
}

func WrapRoomNotFound(roomNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomNotFound,
		fmt.Sprintf("Room %s not found", roomNumber),
		ErrRoomNotFound,
	)
}

func WrapRoomAlreadyExists(roomNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomAlreadyExists,
		fmt.Sprintf("Room %s already exists", roomNumber),
		ErrRoomAlreadyExists,
	)
}

func WrapRoomFull(roomNumber string, capacity int) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomFull,
		fmt.Sprintf("Room %s is at full capacity (%d)", roomNumber, capacity),
		ErrRoomFull,
	)
}

func WrapRoomUnavailable(roomNumber, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomUnavailable,
		fmt.Sprintf("Room %s is %s", roomNumber, status),
		ErrRoomUnavailable,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"Invalid username or password",
		ErrInvalidCredentials,
	)
}

func WrapUsernameTaken(username string) *BusinessError {
	return NewBusinessError(
		ErrCodeUsernameTaken,
		fmt.Sprintf("Username %s is already taken", username),
		ErrUsernameTaken,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant is an active assignment of a person to a room at a monthly rate.
// A tenant row is what the billing engine treats as an occupancy.
type Tenant struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Contact     string          `json:"contact" db:"contact"`
	RoomNumber  string          `json:"room_number" db:"room_number"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" db:"monthly_rate"`
	MoveInMonth string          `json:"move_in_month" db:"move_in_month"`
	Gender      string          `json:"gender" db:"gender"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// Occupancy is the billing engine's read model: one row per tenant whose
// room is currently occupied.
type Occupancy struct {
	TenantID    uuid.UUID       `json:"tenant_id" db:"tenant_id"`
	TenantName  string          `json:"tenant_name" db:"tenant_name"`
	RoomNumber  string          `json:"room_number" db:"room_number"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" db:"monthly_rate"`
}

type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required"`
	Contact    string `json:"contact" validate:"required"`
	RoomNumber string `json:"room_number" validate:"required"`
	// MonthlyRate defaults to the room's rate when zero.
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
	Gender      string          `json:"gender" validate:"omitempty,oneof=Male Female Other"`
}

type UpdateTenantRequest struct {
	Name        string          `json:"name" validate:"required"`
	Contact     string          `json:"contact" validate:"required"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"required"`
	Gender      string          `json:"gender" validate:"omitempty,oneof=Male Female Other"`
}

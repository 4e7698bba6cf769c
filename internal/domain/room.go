package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoomStatusAvailable   = "Available"
	RoomStatusOccupied    = "Occupied"
	RoomStatusMaintenance = "Maintenance"
)

// Room is a rentable unit. RoomNumber is the human-facing key used on
// invoices; ID is the storage key.
type Room struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	RoomNumber  string          `json:"room_number" db:"room_number"`
	RoomType    string          `json:"room_type" db:"room_type"`
	Capacity    int             `json:"capacity" db:"capacity"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" db:"monthly_rate"`
	Status      string          `json:"status" db:"status"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type CreateRoomRequest struct {
	RoomNumber  string          `json:"room_number" validate:"required"`
	RoomType    string          `json:"room_type" validate:"required"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"required"`
	Description string          `json:"description"`
}

type UpdateRoomRequest struct {
	RoomType    string          `json:"room_type" validate:"required"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"required"`
	Status      string          `json:"status" validate:"required,oneof=Available Occupied Maintenance"`
	Description string          `json:"description"`
}

type RoomStatusCounts struct {
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

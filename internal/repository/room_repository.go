package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paluyo/houserent/internal/domain"
)

type roomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (id, room_number, room_type, capacity, monthly_rate, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.RoomNumber,
		room.RoomType,
		room.Capacity,
		room.MonthlyRate,
		room.Status,
		room.Description,
		room.CreatedAt,
	)

	return err
}

func (r *roomRepository) GetByNumber(ctx context.Context, roomNumber string) (*domain.Room, error) {
	query := `
		SELECT id, room_number, room_type, capacity, monthly_rate, status, description, created_at
		FROM rooms
		WHERE room_number = $1
	`

	var room domain.Room
	if err := r.db.GetContext(ctx, &room, query, roomNumber); err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `
		UPDATE rooms
		SET room_type = $2, capacity = $3, monthly_rate = $4, status = $5, description = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.RoomType,
		room.Capacity,
		room.MonthlyRate,
		room.Status,
		room.Description,
	)

	return err
}

func (r *roomRepository) UpdateStatus(ctx context.Context, roomNumber, status string) error {
	query := `UPDATE rooms SET status = $2 WHERE room_number = $1`

	_, err := r.db.ExecContext(ctx, query, roomNumber, status)
	return err
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	query := `
		SELECT id, room_number, room_type, capacity, monthly_rate, status, description, created_at
		FROM rooms
		ORDER BY room_number
	`

	var rooms []*domain.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *roomRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) AS cnt FROM rooms GROUP BY status`

	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/repository"
	customError "github.com/paluyo/houserent/pkg/errors"
)

// RoomService manages the room inventory.
type RoomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

func (s *RoomService) CreateRoom(ctx context.Context, request *domain.CreateRoomRequest) (*domain.Room, error) {
	existing, err := s.roomRepo.GetByNumber(ctx, request.RoomNumber)
	if err == nil && existing != nil {
		return nil, customError.WrapRoomAlreadyExists(request.RoomNumber)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	room := &domain.Room{
		ID:          uuid.New(),
		RoomNumber:  request.RoomNumber,
		RoomType:    request.RoomType,
		Capacity:    request.Capacity,
		MonthlyRate: request.MonthlyRate,
		Status:      domain.RoomStatusAvailable,
		Description: request.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, roomNumber string) (*domain.Room, error) {
	room, err := s.roomRepo.GetByNumber(ctx, roomNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRoomNotFound(roomNumber)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return room, nil
}

func (s *RoomService) UpdateRoom(ctx context.Context, roomNumber string, request *domain.UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	room.RoomType = request.RoomType
	room.Capacity = request.Capacity
	room.MonthlyRate = request.MonthlyRate
	room.Status = request.Status
	room.Description = request.Description

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, roomNumber string) error {
	room, err := s.GetRoom(ctx, roomNumber)
	if err != nil {
		return err
	}

	if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

func (s *RoomService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return rooms, nil
}

// StatusCounts summarizes the room inventory for the dashboard.
func (s *RoomService) StatusCounts(ctx context.Context) (*domain.RoomStatusCounts, error) {
	counts, err := s.roomRepo.StatusCounts(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.RoomStatusCounts{
		Available:   counts[domain.RoomStatusAvailable],
		Occupied:    counts[domain.RoomStatusOccupied],
		Maintenance: counts[domain.RoomStatusMaintenance],
	}, nil
}

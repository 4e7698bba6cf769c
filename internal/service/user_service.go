package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/repository"
	customError "github.com/paluyo/houserent/pkg/errors"
)

// UserService stores bcrypt-hashed credentials and authenticates logins.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Register(ctx context.Context, request *domain.RegisterUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, request.Username)
	if err == nil && existing != nil {
		return nil, customError.WrapUsernameTaken(request.Username)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     request.Username,
		PasswordHash: string(hash),
		FullName:     request.FullName,
		Role:         request.Role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords produce the same error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvalidCredentials()
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, customError.WrapInvalidCredentials()
	}

	return user, nil
}

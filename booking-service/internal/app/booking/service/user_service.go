package service

import (
	"context"
	"errors"
	"fmt"

	"staybook/booking-service/internal/app/booking/entity"
	"staybook/booking-service/internal/app/booking/repository"
)

// UserService хранит профиль и баланс баллов
// Учетные данные живут у провайдера идентификации, здесь только его subject
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SignUp создает пользователя с нулевым балансом
func (s *UserService) SignUp(ctx context.Context, userID, email string, req *entity.SignUpRequest) (*entity.User, error) {
	user := &entity.User{
		ID:           userID,
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RewardPoints: 0,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser используется при входе и для /me
func (s *UserService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

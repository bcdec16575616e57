package service

import (
	"context"
	"strings"

	errs "shareit/internal/errors"
	"shareit/internal/models"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	user := &models.User{Name: req.Name, Email: req.Email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := models.UserToResponse(user)
	return &resp, nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound("user %d not found", userID)
	}
	resp := models.UserToResponse(user)
	return &resp, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.UserResponse, len(users))
	for i := range users {
		result[i] = models.UserToResponse(&users[i])
	}
	return result, nil
}

// Update applies a partial update: a blank name is ignored, an absent
// field keeps its value.
func (s *UserService) Update(ctx context.Context, userID int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound("user %d not found", userID)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := models.UserToResponse(user)
	return &resp, nil
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

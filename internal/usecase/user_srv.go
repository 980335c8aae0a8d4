package usecase

import (
	"context"
	"fmt"
	"net/url"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/response"

	"go.uber.org/zap"
)

type UserService interface {
	GetUsers(ctx context.Context) ([]response.UserResponse, error)
	GetUserByID(ctx context.Context, userID int64) (*response.UserDetailResponse, error)
	UpdateUserRoles(ctx context.Context, userID int64, form url.Values) (*response.UserDetailResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get users", zap.Error(err))
		return nil, fmt.Errorf("get users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return userResponses, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*response.UserDetailResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user by ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	resp := response.UserToDetailResponse(user)
	return &resp, nil
}

// UpdateUserRoles resolves the selected role checkboxes from the submitted
// form and replaces the user's whole role set with the selection. An empty
// selection means "no change submitted" and leaves the roles untouched; it
// is not a request to clear all roles.
func (s *userService) UpdateUserRoles(ctx context.Context, userID int64, form url.Values) (*response.UserDetailResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user for role update",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("get user for role update: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", userID)
	}

	selectedRoles := entity.ParseRolesFromForm(form)
	if len(selectedRoles) == 0 {
		s.log.Debug("Empty role selection, roles unchanged",
			zap.Int64("user_id", userID),
		)
		resp := response.UserToDetailResponse(user)
		return &resp, nil
	}

	if err := s.userRepo.ReplaceRoles(ctx, userID, selectedRoles); err != nil {
		s.log.Error("Failed to replace user roles",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("replace user roles: %w", err)
	}

	user.Roles = selectedRoles

	s.log.Info("User roles updated",
		zap.Int64("user_id", userID),
		zap.Int("role_count", len(selectedRoles)),
	)

	resp := response.UserToDetailResponse(user)
	return &resp, nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/pkg/database"
	"library-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token uuid.UUID) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		fieldErrs := utils.NewFieldErrors()
		fieldErrs.Merge(errs)
		return nil, newValidationError(fieldErrs)
	}

	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check existing username", zap.Error(err))
		return nil, fmt.Errorf("check existing username: %w", err)
	}
	if existing != nil {
		return nil, fieldError("username", "Username is already taken")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		Username:     req.Username,
		PasswordHash: passwordHash,
		Active:       true,
		Roles:        []entity.Role{entity.RoleUser},
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fieldError("username", "Username is already taken")
		}
		s.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", req.Username),
		)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		fieldErrs := utils.NewFieldErrors()
		fieldErrs.Merge(errs)
		return nil, newValidationError(fieldErrs)
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err))
		return nil, fmt.Errorf("find user for login: %w", err)
	}

	if user == nil || !user.Active || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Failed login attempt", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid username or password")
	}

	now := time.Now()
	session := &entity.Session{
		Token:     uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return &response.AuthResponse{
		Token: session.Token.String(),
		User:  response.UserToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.repo.Session.Delete(ctx, token); err != nil {
		s.log.Error("Failed to delete session", zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

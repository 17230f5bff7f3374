package service

import (
	"context"
	"errors"
	"time"

	"github.com/thomasasfar/api-apotek/internal/apierror"
	"github.com/thomasasfar/api-apotek/internal/config"
	"github.com/thomasasfar/api-apotek/internal/dto"
	"github.com/thomasasfar/api-apotek/internal/model"
	"github.com/thomasasfar/api-apotek/internal/repository"
	"github.com/thomasasfar/api-apotek/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Current(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	Search(ctx context.Context, filter dto.UserFilter) (*dto.Pageable[dto.UserResponse], error)
}

type userService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewUserService(users repository.UserRepository, cfg *config.Config) UserService {
	return &userService{users: users, cfg: cfg}
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Unauthorized("invalid username or password")
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.Unauthorized("invalid username or password")
	}

	validity := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	signed, err := token.Sign(s.cfg.JWTSecret, validity, user.ID, user.Name, user.Role)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	resp.Token = signed
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	count, err := s.users.CountByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apierror.Conflict("username %s already exists", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("username %s already exists", req.Username)
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Current(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Unauthorized("user no longer exists")
	}
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Search(ctx context.Context, filter dto.UserFilter) (*dto.Pageable[dto.UserResponse], error) {
	users, total, err := s.users.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, toUserResponse(&users[i]))
	}
	return dto.NewPageable(data, filter.Page, filter.Size, total), nil
}

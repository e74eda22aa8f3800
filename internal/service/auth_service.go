package service

import (
	"context"
	"time"

	"homestay-be/internal/config"
	"homestay-be/internal/dto"
	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtConfig  config.JWTConfig
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtConfig config.JWTConfig) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtConfig:  jwtConfig,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		PasswordHash: &hashStr,
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{UserId: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, false)
}

// LoginAdmin is the admin console entry point; non-admin accounts are
// rejected even with valid credentials.
func (s *authService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, true)
}

func (s *authService) login(ctx context.Context, req *dto.LoginRequest, requireAdmin bool) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Validation("invalid credentials")
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Validation("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Validation("invalid credentials")
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, apperror.Authorization("user account is blocked")
	}

	if requireAdmin && !user.IsAdmin() {
		return nil, apperror.Authorization("admin access required")
	}

	expiresAt := time.Now().Add(s.jwtConfig.Expiry)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiresAt,
		User: dto.UserInfo{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}

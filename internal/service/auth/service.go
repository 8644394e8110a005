package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/kantoria/hr-backoffice-go/internal/domain/auth"
	"github.com/kantoria/hr-backoffice-go/internal/domain/user"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("get user by email: %w", err)
	}
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		UserID:      u.ID,
		Role:        string(u.Role),
	}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/auth"
)

// AdminAuthService authenticates back-office users
type AdminAuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	CreateUser(ctx context.Context, email, password, fullName string, role models.Role) (*models.User, error)
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

type adminAuthServiceImpl struct {
	users      UserStore
	tokens     TokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAdminAuthService creates a new back-office auth service instance
func NewAdminAuthService(users UserStore, tokens TokenStore, jwtService *auth.JWTService, logger zerolog.Logger) AdminAuthService {
	return &adminAuthServiceImpl{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		logger:     logger,
	}
}

func authResponse(pair *auth.TokenPair, user *models.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           pair.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             pair.ExpiresIn,
			RefreshToken:          pair.RefreshToken,
			RefreshTokenExpiresIn: pair.RefreshExpiresIn,
		},
		User: user,
	}
}

func (s *adminAuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same cost as a real check so unknown emails are not distinguishable by timing
			auth.CheckPassword(dummyHash(), req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Back-office login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	if err := s.tokens.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("Back-office login")
	return authResponse(pair, user), nil
}

// Refresh rotates refreshToken: the old token is revoked and a new pair issued.
func (s *adminAuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	newToken, expiresAt := s.jwtService.NewRefreshToken()
	userID, err := s.tokens.RotateToken(ctx, refreshToken, newToken, expiresAt)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if !user.IsActive {
		if err := s.tokens.RevokeToken(ctx, newToken); err != nil {
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to revoke token of disabled account")
		}
		return nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.jwtService.PairWithRefresh(user, newToken)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	return authResponse(pair, user), nil
}

func (s *adminAuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return apperrors.ErrTokenInvalid
	}
	err := s.tokens.RevokeToken(ctx, refreshToken)
	if errors.Is(err, apperrors.ErrTokenNotFound) {
		return nil
	}
	return err
}

func (s *adminAuthServiceImpl) CreateUser(ctx context.Context, email, password, fullName string, role models.Role) (*models.User, error) {
	email = normalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if email == "" || fullName == "" {
		return nil, fmt.Errorf("%w: email and full name are required", apperrors.ErrValidationFailed)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrValidationFailed)
	}
	if role != models.RoleAdmin && role != models.RoleEditor {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminAuthServiceImpl) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.CleanupExpiredTokens(ctx)
}

// dummyHash is compared against on unknown emails
var dummyHash = sync.OnceValue(func() string {
	hash, _ := auth.HashPassword(uuid.NewString())
	return hash
})

// RunTokenJanitor purges expired refresh tokens every interval until ctx is done.
func RunTokenJanitor(ctx context.Context, svc AdminAuthService, interval time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Token janitor stopped")
			return
		case <-ticker.C:
			deleted, err := svc.CleanupExpiredTokens(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Error().Err(err).Msg("Token cleanup failed")
				}
				continue
			}
			logger.Debug().Int64("deleted", deleted).Msg("Token cleanup finished")
		}
	}
}

package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "github.com/yohan114/leave-management-system/internal/auth/errors"
	"github.com/yohan114/leave-management-system/internal/shared/storage"
	"github.com/yohan114/leave-management-system/internal/user"
)

const tokenTTL = 24 * time.Hour

type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Session(ctx context.Context, userID string) (SessionInfo, error)
}

type service struct {
	users  user.Repository
	secret []byte
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:  users,
		secret: []byte(os.Getenv("JWT_SECRET")),
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenResponse{}, storage.MapError(err)
	}

	if !u.IsActive {
		return TokenResponse{}, autherrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", req.Email))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"name":    u.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(tokenTTL.Seconds()),
		User: SessionInfo{
			ID:    u.ID.String(),
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
		},
	}, nil
}

func (s *service) Session(ctx context.Context, userID string) (SessionInfo, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionInfo{}, autherrors.ErrInvalidToken
		}
		return SessionInfo{}, storage.MapError(err)
	}
	return SessionInfo{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/types"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *types.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*types.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ParseToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	tokenRepo repos.UserTokenRepo
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(cfg *config.Config, log *logger.Logger, userRepo repos.UserRepo, tokenRepo repos.UserTokenRepo) AuthService {
	return &authService{
		log:       log.With("service", "AuthService"),
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		secret:    []byte(cfg.JWTSecretKey),
		tokenTTL:  time.Duration(cfg.AccessTokenTTLSec) * time.Second,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if exists {
		return nil, apierr.InvalidInput(fmt.Errorf("email %s already registered", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
	}
	created, err := s.userRepo.Create(ctx, nil, user)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("User registered", "user_id", created.ID)
	return created, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if user == nil {
		return nil, apierr.Unauthorized(errors.New("invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apierr.Unauthorized(errors.New("invalid email or password"))
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	if _, err := s.tokenRepo.Create(ctx, nil, &types.UserToken{
		ID:          uuid.New(),
		UserID:      user.ID,
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}); err != nil {
		return nil, apierr.Internal(err)
	}
	if err := s.tokenRepo.DeleteExpired(ctx, nil); err != nil {
		s.log.Warn("Failed to prune expired tokens", "error", err)
	}

	return &LoginResponse{AccessToken: signed, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) ParseToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, apierr.Unauthorized(errors.New("invalid or expired token"))
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apierr.Unauthorized(errors.New("invalid token claims"))
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, apierr.Unauthorized(errors.New("invalid token subject"))
	}
	return userID, nil
}

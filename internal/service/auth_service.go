package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
	"github.com/parkease/parkease-backend/internal/validation"
)

// UserStore — контракт хранилища пользователей и сессий.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateSession(ctx context.Context, s *models.Session) error
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// AuthService отвечает за регистрацию и вход пользователей платформы.
type AuthService struct {
	users  UserStore
	tokens *TokenManager
}

func NewAuthService(users UserStore, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// Register создаёт пользователя и выпускает пару токенов.
// Роль admin через публичную регистрацию не выдаётся.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, *TokenPair, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeValidation, "invalid email address")
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("name", in.Name, validation.MinDisplayNameLength, validation.MaxDisplayNameLength); err != nil {
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.Role != models.RoleDriver && in.Role != models.RoleProvider {
		return nil, nil, apperror.New(apperror.ErrCodeValidation, "role must be driver or provider")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, nil, apperror.New(apperror.ErrCodeConflict, "email is already registered")
		}
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, user, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login проверяет учётные данные и выпускает пару токенов.
func (s *AuthService) Login(ctx context.Context, email, password string, userAgent, ip *string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, nil, apperror.New(apperror.ErrCodeUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, apperror.ErrForbidden
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, apperror.New(apperror.ErrCodeUnauthorized, "invalid credentials")
	}

	_ = s.users.TouchLastLogin(ctx, user.ID, time.Now())

	pair, err := s.issuePair(ctx, user, userAgent, ip)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh обменивает refresh токен на новую пару, ротируя сессию.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "invalid refresh token")
	}

	session, err := s.users.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "session not found")
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.users.DeleteSession(ctx, refreshToken)
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "session expired")
	}

	userID := session.UserID
	if claims.Subject != userID.String() {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = s.users.DeleteSession(ctx, refreshToken)
	return s.issuePair(ctx, user, session.UserAgent, session.IPAddress)
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User, userAgent, ip *string) (*TokenPair, error) {
	pair, refreshExp, err := s.tokens.GeneratePair(user)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		UserAgent:    userAgent,
		IPAddress:    ip,
		ExpiresAt:    refreshExp,
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return pair, nil
}

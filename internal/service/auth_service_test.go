package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
)

// fakeUserStore реализует UserStore для тестов.
type fakeUserStore struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	sessions     map[string]*models.Session
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	if _, ok := f.usersByEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	u.ID = uuid.New()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.usersByEmail[u.Email] = u
	f.usersByID[u.ID] = u
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.usersByID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if u, ok := f.usersByID[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (f *fakeUserStore) CreateSession(ctx context.Context, s *models.Session) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.sessions[s.RefreshToken] = s
	return nil
}

func (f *fakeUserStore) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) DeleteSession(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	tokens := NewTokenManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 720*time.Hour)
	return NewAuthService(store, tokens), store
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues tokens", func(t *testing.T) {
		svc, store := newAuthFixture()

		user, pair, err := svc.Register(ctx, RegisterInput{
			Email:    "alex@example.com",
			Name:     "Alex Driver",
			Password: "Sup3rSecret",
			Role:     models.RoleDriver,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.RoleDriver, user.Role)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Len(t, store.sessions, 1)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		svc, _ := newAuthFixture()

		_, _, err := svc.Register(ctx, RegisterInput{
			Email:    "alex@example.com",
			Name:     "Alex Driver",
			Password: "short",
			Role:     models.RoleDriver,
		})
		assert.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("rejects admin role", func(t *testing.T) {
		svc, _ := newAuthFixture()

		_, _, err := svc.Register(ctx, RegisterInput{
			Email:    "admin@example.com",
			Name:     "Wannabe Admin",
			Password: "Sup3rSecret",
			Role:     models.RoleAdmin,
		})
		assert.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthFixture()

		_, _, err := svc.Register(ctx, RegisterInput{
			Email: "alex@example.com", Name: "Alex Driver", Password: "Sup3rSecret", Role: models.RoleDriver,
		})
		assert.NoError(t, err)

		_, _, err = svc.Register(ctx, RegisterInput{
			Email: "alex@example.com", Name: "Alex Clone", Password: "Sup3rSecret", Role: models.RoleDriver,
		})
		assert.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.ErrCodeConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	seedUser := func(store *fakeUserStore, password string, active bool) *models.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		user := &models.User{
			Email:        "alex@example.com",
			Name:         "Alex Driver",
			PasswordHash: string(hash),
			Role:         models.RoleDriver,
			IsActive:     active,
		}
		_ = store.Create(ctx, user)
		return user
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, store := newAuthFixture()
		seedUser(store, "Sup3rSecret", true)

		user, pair, err := svc.Login(ctx, "alex@example.com", "Sup3rSecret", nil, nil)
		assert.NoError(t, err)
		assert.NotNil(t, user.LastLoginAt)
		assert.NotEmpty(t, pair.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, store := newAuthFixture()
		seedUser(store, "Sup3rSecret", true)

		_, _, err := svc.Login(ctx, "alex@example.com", "WrongPass1", nil, nil)
		assert.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.ErrCodeUnauthorized))
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newAuthFixture()

		_, _, err := svc.Login(ctx, "ghost@example.com", "Sup3rSecret", nil, nil)
		assert.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.ErrCodeUnauthorized))
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, store := newAuthFixture()
		seedUser(store, "Sup3rSecret", false)

		_, _, err := svc.Login(ctx, "alex@example.com", "Sup3rSecret", nil, nil)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates session", func(t *testing.T) {
		svc, store := newAuthFixture()

		_, pair, err := svc.Register(ctx, RegisterInput{
			Email: "alex@example.com", Name: "Alex Driver", Password: "Sup3rSecret", Role: models.RoleDriver,
		})
		assert.NoError(t, err)

		fresh, err := svc.Refresh(ctx, pair.RefreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, fresh.AccessToken)

		// Старая сессия удалена, новая записана.
		_, ok := store.sessions[pair.RefreshToken]
		assert.False(t, ok)
		assert.Len(t, store.sessions, 1)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _ := newAuthFixture()

		_, err := svc.Refresh(ctx, "not-a-token")
		assert.Error(t, err)
		assert.True(t, apperror.IsCode(err, apperror.ErrCodeUnauthorized))
	})
}

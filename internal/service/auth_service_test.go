package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/joebanks10/todo-api/internal/auth"
	apperrors "github.com/joebanks10/todo-api/internal/errors"
	"github.com/joebanks10/todo-api/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenRepository is a mock implementation of TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Append(ctx context.Context, token *model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Token, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Token), args.Error(1)
}

// MockTokenCache is a mock implementation of TokenCacheInterface.
type MockTokenCache struct {
	mock.Mock
}

func (m *MockTokenCache) Remember(ctx context.Context, token string, userID uuid.UUID) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *MockTokenCache) Lookup(ctx context.Context, token string) (uuid.UUID, bool) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Bool(1)
}

func (m *MockTokenCache) Forget(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newTestAuthService(users *MockUserRepository, tokens *MockTokenRepository, cache *MockTokenCache) AuthService {
	return NewAuthService(users, tokens, auth.NewJWTService("test-secret"), cache)
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenRepository, *MockTokenCache)
		expectedError error
	}{
		{
			name:     "successful signup",
			email:    "joe@example.com",
			password: "mypassword",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository, cache *MockTokenCache) {
				users.On("FindByEmail", mock.Anything, "joe@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				tokens.On("Append", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
				cache.On("Remember", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already taken",
			email:    "joeb@example.com",
			password: "mypassword",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository, cache *MockTokenCache) {
				users.On("FindByEmail", mock.Anything, "joeb@example.com").Return(&model.User{Email: "joeb@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tokens := new(MockTokenRepository)
			cache := new(MockTokenCache)
			tt.setupMock(users, tokens, cache)

			svc := newTestAuthService(users, tokens, cache)
			user, token, err := svc.Signup(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NotEmpty(t, token)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("userOnePass"), bcryptCost)
	assert.NoError(t, err)
	userID := uuid.New()
	stored := &model.User{ID: userID, Email: "joeb@example.com", PasswordHash: string(hashed)}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenRepository, *MockTokenCache)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "joeb@example.com",
			password: "userOnePass",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository, cache *MockTokenCache) {
				users.On("FindByEmail", mock.Anything, "joeb@example.com").Return(stored, nil)
				tokens.On("Append", mock.Anything, mock.AnythingOfType("*model.Token")).Return(nil)
				cache.On("Remember", mock.Anything, mock.Anything, userID).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			email:    "joeb@example.com",
			password: "invalidpassword",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository, cache *MockTokenCache) {
				users.On("FindByEmail", mock.Anything, "joeb@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "nobodyspassword",
			setupMock: func(users *MockUserRepository, tokens *MockTokenRepository, cache *MockTokenCache) {
				users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tokens := new(MockTokenRepository)
			cache := new(MockTokenCache)
			tt.setupMock(users, tokens, cache)

			svc := newTestAuthService(users, tokens, cache)
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
				// No token is issued on a failed login.
				tokens.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, token)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()
	stored := &model.User{ID: userID, Email: "joeb@example.com"}

	validToken, err := jwtService.Sign(userID, model.TokenAccessAuth)
	assert.NoError(t, err)

	t.Run("accepts a stored token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		cache := new(MockTokenCache)
		cache.On("Lookup", mock.Anything, validToken).Return(uuid.Nil, false)
		tokens.On("Exists", mock.Anything, userID, validToken).Return(true, nil)
		cache.On("Remember", mock.Anything, validToken, userID).Return(nil)
		users.On("FindByID", mock.Anything, userID).Return(stored, nil)

		svc := newTestAuthService(users, tokens, cache)
		user, err := svc.VerifyToken(context.Background(), validToken)
		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("cache hit skips the database check", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		cache := new(MockTokenCache)
		cache.On("Lookup", mock.Anything, validToken).Return(userID, true)
		users.On("FindByID", mock.Anything, userID).Return(stored, nil)

		svc := newTestAuthService(users, tokens, cache)
		user, err := svc.VerifyToken(context.Background(), validToken)
		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		tokens.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a revoked token", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		cache := new(MockTokenCache)
		cache.On("Lookup", mock.Anything, validToken).Return(uuid.Nil, false)
		tokens.On("Exists", mock.Anything, userID, validToken).Return(false, nil)

		svc := newTestAuthService(users, tokens, cache)
		_, err := svc.VerifyToken(context.Background(), validToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		foreign, err := auth.NewJWTService("other-secret").Sign(userID, model.TokenAccessAuth)
		assert.NoError(t, err)

		svc := newTestAuthService(new(MockUserRepository), new(MockTokenRepository), new(MockTokenCache))
		_, err = svc.VerifyToken(context.Background(), foreign)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository), new(MockTokenRepository), new(MockTokenCache))
		_, err := svc.VerifyToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestAuthService_RevokeToken(t *testing.T) {
	userID := uuid.New()

	// Deleting an absent token is also a no-op success at the repository
	// level, so both cases share the same expectations.
	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	cache := new(MockTokenCache)
	tokens.On("Delete", mock.Anything, userID, "some-token").Return(nil).Twice()
	cache.On("Forget", mock.Anything, "some-token").Return(nil).Twice()

	svc := newTestAuthService(users, tokens, cache)
	assert.NoError(t, svc.RevokeToken(context.Background(), userID, "some-token"))
	assert.NoError(t, svc.RevokeToken(context.Background(), userID, "some-token"))

	tokens.AssertExpectations(t)
	cache.AssertExpectations(t)
}

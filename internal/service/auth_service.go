package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/joebanks10/todo-api/internal/auth"
	apperrors "github.com/joebanks10/todo-api/internal/errors"
	"github.com/joebanks10/todo-api/internal/model"
	"github.com/joebanks10/todo-api/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	VerifyToken(ctx context.Context, token string) (*model.User, error)
	RevokeToken(ctx context.Context, userID uuid.UUID, token string) error
}

type authService struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	jwtService *auth.JWTService
	tokenCache auth.TokenCacheInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, jwtService *auth.JWTService, tokenCache auth.TokenCacheInterface) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		tokenCache: tokenCache,
	}
}

// Signup creates a new user with a hashed password and issues a first
// token. The check-then-insert window is backstopped by the unique index
// on email.
func (s *authService) Signup(ctx context.Context, email, password string) (*model.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and issues a new token. Both
// unknown email and wrong password collapse to ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// issueToken signs a token and appends it to the user's stored token list
// so it can be revoked later.
func (s *authService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.jwtService.Sign(userID, model.TokenAccessAuth)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	entry := &model.Token{
		UserID: userID,
		Access: model.TokenAccessAuth,
		Token:  token,
	}
	if err := s.tokens.Append(ctx, entry); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	_ = s.tokenCache.Remember(ctx, token, userID)
	return token, nil
}

// VerifyToken resolves a token to its user. Beyond the signature check,
// the exact token string must still be present in the user's stored token
// list, so revoked tokens fail here no matter how valid the JWT is.
func (s *authService) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtService.Verify(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.Access != model.TokenAccessAuth {
		return nil, apperrors.ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if cachedID, ok := s.tokenCache.Lookup(ctx, token); !ok || cachedID != userID {
		stored, err := s.tokens.Exists(ctx, userID, token)
		if err != nil {
			return nil, fmt.Errorf("check stored token: %w", err)
		}
		if !stored {
			return nil, apperrors.ErrInvalidToken
		}
		_ = s.tokenCache.Remember(ctx, token, userID)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}

// RevokeToken removes the token from the user's stored list. Revoking an
// absent token is a no-op success.
func (s *authService) RevokeToken(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.tokens.Delete(ctx, userID, token); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	_ = s.tokenCache.Forget(ctx, token)
	return nil
}

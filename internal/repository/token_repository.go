package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joebanks10/todo-api/internal/model"
)

// TokenRepository persists the per-user token list that backs revocation.
// Rows are only appended by login/signup and deleted by logout.
type TokenRepository interface {
	Append(ctx context.Context, token *model.Token) error
	Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID, token string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Token, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository builds a GORM-backed repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Append(ctx context.Context, token *model.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Token{}).
		Where("user_id = ? AND token = ?", userID, token).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the matching entry. Deleting an absent token is a no-op
// success, which makes revocation idempotent.
func (r *tokenRepository) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.Token{}).Error
}

func (r *tokenRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Token, error) {
	var tokens []model.Token
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

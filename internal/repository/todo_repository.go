package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joebanks10/todo-api/internal/model"
)

// TodoRepository persists todos. Every lookup and mutation folds the owner
// id into the query predicate, so a caller can never reach another user's
// records and a foreign todo is indistinguishable from a missing one.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	FindByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	DeleteByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error)
	Count(ctx context.Context) (int64, error)
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository builds a GORM-backed repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// ListByOwner returns the caller's todos in insertion order.
func (r *todoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at, id").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) FindByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// DeleteByOwnerAndID removes the record and returns its prior value. The
// lookup and the delete carry the same owner-scoped predicate.
func (r *todoRepository) DeleteByOwnerAndID(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&todo).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Todo{}).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Todo{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/joebanks10/todo-api/internal/errors"
	"github.com/joebanks10/todo-api/internal/model"
	"github.com/joebanks10/todo-api/internal/repository"
)

// TodoPatch carries the optional fields of a todo update. Nil means "leave
// unchanged".
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// TodoService exposes ownership-scoped todo operations. The id parameter
// is the raw path segment: a malformed id maps to the same ErrTodoNotFound
// as a missing or foreign-owned record.
type TodoService interface {
	Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Todo, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	Get(ctx context.Context, ownerID uuid.UUID, id string) (*model.Todo, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id string) (*model.Todo, error)
	Update(ctx context.Context, ownerID uuid.UUID, id string, patch TodoPatch) (*model.Todo, error)
}

type todoService struct {
	todos repository.TodoRepository
}

// NewTodoService builds a TodoService.
func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrEmptyText
	}

	todo := &model.Todo{
		ID:      uuid.New(),
		Text:    text,
		OwnerID: ownerID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *todoService) Get(ctx context.Context, ownerID uuid.UUID, id string) (*model.Todo, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrTodoNotFound
	}

	todo, err := s.todos.FindByOwnerAndID(ctx, ownerID, todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, ownerID uuid.UUID, id string) (*model.Todo, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrTodoNotFound
	}

	todo, err := s.todos.DeleteByOwnerAndID(ctx, ownerID, todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	return todo, nil
}

// Update applies a partial patch. Completed false→true stamps CompletedAt
// with the current epoch milliseconds; →false clears it; re-applying true
// keeps the existing stamp.
func (s *todoService) Update(ctx context.Context, ownerID uuid.UUID, id string, patch TodoPatch) (*model.Todo, error) {
	todoID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrTodoNotFound
	}

	todo, err := s.todos.FindByOwnerAndID(ctx, ownerID, todoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}

	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, apperrors.ErrEmptyText
		}
		todo.Text = text
	}

	if patch.Completed != nil {
		if *patch.Completed {
			if !todo.Completed {
				now := time.Now().UnixMilli()
				todo.CompletedAt = &now
			}
			todo.Completed = true
		} else {
			todo.Completed = false
			todo.CompletedAt = nil
		}
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

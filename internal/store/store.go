package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"todoapp/internal/models"
)

// ErrNotFound is returned when no todo exists for the given id.
var ErrNotFound = errors.New("todo not found")

// Store defines the persistence operations for todo items. Implementations
// do not retry; each mutation runs in a single transaction.
type Store interface {
	Create(ctx context.Context, item *models.TodoItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TodoItem, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.TodoItem, error)
	Update(ctx context.Context, item *models.TodoItem) error
	Delete(ctx context.Context, item *models.TodoItem) error
	DeleteMany(ctx context.Context, items []models.TodoItem) error

	// Init creates the schema if it does not exist yet. It doubles as the
	// reachability probe for the startup readiness guard.
	Init(ctx context.Context) error
	Close() error
}

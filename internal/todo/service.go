// Package todo holds the service that orchestrates the persistence and
// cache gateways, and the readiness guard run before serving traffic.
package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"todoapp/internal/cache"
	"todoapp/internal/models"
	"todoapp/internal/store"
)

// API is the operation surface shared by both protocol adapters.
type API interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.TodoItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TodoItem, error)
	Create(ctx context.Context, title string, isCompleted bool) (*models.TodoItem, error)
	Update(ctx context.Context, id uuid.UUID, patch models.UpdatePatch) (*models.TodoItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteCompleted(ctx context.Context) (int, error)
}

// Service implements API over a Store and a Cache. Every mutation commits
// to the store first and invalidates the list snapshot only after the
// commit succeeds. The cache is best effort throughout: a failing cache
// never fails an operation.
//
// The snapshot can go stale for up to its TTL when a populate races an
// invalidation; that bounded staleness is accepted rather than closed with
// a version check.
type Service struct {
	store store.Store
	cache cache.Cache
	ttl   time.Duration

	now func() time.Time
}

// NewService creates a Service caching the unfiltered list for ttl.
func NewService(s store.Store, c cache.Cache, ttl time.Duration) *Service {
	return &Service{store: s, cache: c, ttl: ttl, now: time.Now}
}

// List returns todos newest first. An empty filter is served read-through
// from the cache; any filter bypasses the cache in both directions.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]models.TodoItem, error) {
	if !filter.IsEmpty() {
		return s.store.List(ctx, filter)
	}

	payload, ok, err := s.cache.GetString(ctx, cache.ListKey)
	if err != nil {
		log.Printf("todo: cache read failed, falling back to store: %v", err)
	} else if ok {
		var items []models.TodoItem
		if err := json.Unmarshal([]byte(payload), &items); err == nil {
			return items, nil
		}
		log.Printf("todo: discarding corrupt cache entry %q", cache.ListKey)
	}

	items, err := s.store.List(ctx, models.ListFilter{})
	if err != nil {
		return nil, err
	}

	if fresh, err := json.Marshal(items); err == nil {
		if err := s.cache.SetString(ctx, cache.ListKey, string(fresh), s.ttl); err != nil {
			log.Printf("todo: cache populate failed: %v", err)
		}
	}

	return items, nil
}

// Get returns a single todo. It always reads the store directly.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.TodoItem, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates the title, persists a new item and invalidates the list
// snapshot.
func (s *Service) Create(ctx context.Context, title string, isCompleted bool) (*models.TodoItem, error) {
	trimmed, err := validTitle(title)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := &models.TodoItem{
		ID:        uuid.New(),
		Title:     trimmed,
		CreatedAt: now,
	}
	item.SetCompleted(isCompleted, now)

	if err := s.store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.invalidate(ctx)
	return item, nil
}

// Update applies a partial patch. A blank title in the patch is ignored;
// a present isCompleted re-derives completedAt. An empty patch is a no-op
// write that still succeeds and still invalidates. Concurrent updates to
// the same id are last-write-wins.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch models.UpdatePatch) (*models.TodoItem, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if trimmed := strings.TrimSpace(*patch.Title); trimmed != "" {
			if len(trimmed) > models.MaxTitleLength {
				return nil, &ValidationError{
					Field:  "title",
					Reason: fmt.Sprintf("must be at most %d characters", models.MaxTitleLength),
				}
			}
			item.Title = trimmed
		}
	}
	if patch.IsCompleted != nil {
		item.SetCompleted(*patch.IsCompleted, s.now().UTC())
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	s.invalidate(ctx)
	return item, nil
}

// Delete removes a single todo and invalidates the list snapshot.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, item); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

// DeleteCompleted removes every completed todo and returns the count. When
// nothing is completed no write happens, so the cache is left untouched.
func (s *Service) DeleteCompleted(ctx context.Context) (int, error) {
	completed := true
	items, err := s.store.List(ctx, models.ListFilter{IsCompleted: &completed})
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err := s.store.DeleteMany(ctx, items); err != nil {
		return 0, fmt.Errorf("delete completed todos: %w", err)
	}

	s.invalidate(ctx)
	return len(items), nil
}

// invalidate drops the list snapshot. A failure here cannot roll back the
// committed mutation, so it is logged and the TTL bounds the staleness.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Remove(ctx, cache.ListKey); err != nil {
		log.Printf("todo: cache invalidation failed for %q: %v", cache.ListKey, err)
	}
}

func validTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	if len(trimmed) > models.MaxTitleLength {
		return "", &ValidationError{
			Field:  "title",
			Reason: fmt.Sprintf("must be at most %d characters", models.MaxTitleLength),
		}
	}
	return trimmed, nil
}

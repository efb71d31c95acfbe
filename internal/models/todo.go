package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MaxTitleLength is the longest title accepted after trimming.
const MaxTitleLength = 120

// TodoItem is the single persisted entity.
type TodoItem struct {
	bun.BaseModel `bun:"table:todo_items,alias:t"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Title       string     `bun:"title,notnull" json:"title"`
	IsCompleted bool       `bun:"is_completed,notnull,default:false" json:"isCompleted"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	CompletedAt *time.Time `bun:"completed_at" json:"completedAt"`
}

// Validate checks the item's invariants before it is persisted.
func (t *TodoItem) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(t.Title) != t.Title {
		return errors.New("title must be trimmed")
	}
	if len(t.Title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	if t.IsCompleted != (t.CompletedAt != nil) {
		return errors.New("completedAt must be set exactly when isCompleted is true")
	}
	return nil
}

// SetCompleted updates the completion flag and keeps completedAt consistent
// with it: stamped on a transition to true, cleared on a transition to false.
func (t *TodoItem) SetCompleted(completed bool, now time.Time) {
	t.IsCompleted = completed
	if completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

// ListFilter narrows List results. The zero value matches the full set.
type ListFilter struct {
	IsCompleted *bool  `schema:"isCompleted"`
	Search      string `schema:"search"`
}

// IsEmpty reports whether the filter selects the full unfiltered set.
// Only unfiltered results are ever served from or written to the cache.
func (f ListFilter) IsEmpty() bool {
	return f.IsCompleted == nil && strings.TrimSpace(f.Search) == ""
}

// UpdatePatch is a partial update. Nil fields are left untouched.
type UpdatePatch struct {
	Title       *string
	IsCompleted *bool
}

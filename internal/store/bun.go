package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	"todoapp/internal/models"
)

// BunStore implements Store on top of a relational database via bun.
// The dialect is picked from the DSN: postgres:// selects Postgres,
// anything else is treated as a SQLite path.
type BunStore struct {
	db *bun.DB
}

// Open connects to the database named by dsn. With debug set, every query
// is logged through bundebug.
func Open(dsn string, debug bool) (*BunStore, error) {
	var db *bun.DB
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	} else {
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		// SQLite allows a single writer; one connection also keeps
		// :memory: databases from splitting across pool connections.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &BunStore{db: db}, nil
}

// Init creates the todo_items table and its is_completed index if absent.
func (s *BunStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*models.TodoItem)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create todo_items table: %w", err)
	}

	if _, err := s.db.NewCreateIndex().
		Model((*models.TodoItem)(nil)).
		Index("idx_todo_items_is_completed").
		Column("is_completed").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create is_completed index: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *BunStore) Close() error {
	return s.db.Close()
}

// Create inserts a new todo item.
func (s *BunStore) Create(ctx context.Context, item *models.TodoItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid todo: %w", err)
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
			return fmt.Errorf("insert todo: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a todo item by id.
func (s *BunStore) GetByID(ctx context.Context, id uuid.UUID) (*models.TodoItem, error) {
	item := new(models.TodoItem)
	err := s.db.NewSelect().Model(item).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select todo: %w", err)
	}
	return item, nil
}

// List retrieves todo items matching the filter, newest first.
func (s *BunStore) List(ctx context.Context, filter models.ListFilter) ([]models.TodoItem, error) {
	items := make([]models.TodoItem, 0)

	q := s.db.NewSelect().Model(&items).Order("created_at DESC")
	if filter.IsCompleted != nil {
		q = q.Where("is_completed = ?", *filter.IsCompleted)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		q = q.Where("lower(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return items, nil
}

// Update persists all fields of an existing todo item.
func (s *BunStore) Update(ctx context.Context, item *models.TodoItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid todo: %w", err)
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(item).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("update todo: %w", err)
		}
		return nil
	})
}

// Delete removes a single todo item.
func (s *BunStore) Delete(ctx context.Context, item *models.TodoItem) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model(item).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("delete todo: %w", err)
		}
		return nil
	})
}

// DeleteMany removes the given items in one transaction.
func (s *BunStore) DeleteMany(ctx context.Context, items []models.TodoItem) error {
	if len(items) == 0 {
		return nil
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model(&items).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("delete todos: %w", err)
		}
		return nil
	})
}

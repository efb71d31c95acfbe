package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gqlhandler "github.com/graphql-go/handler"

	"todoapp/internal/cache"
	"todoapp/internal/config"
	"todoapp/internal/graph"
	"todoapp/internal/handlers"
	"todoapp/internal/store"
	"todoapp/internal/todo"
)

//go:embed static/*
var staticFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Ensure the data directory exists for file-backed SQLite.
	if !strings.HasPrefix(cfg.DatabaseURL, "postgres") && cfg.DatabaseURL != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabaseURL), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	st, err := store.Open(cfg.DatabaseURL, cfg.DebugSQL)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	policy := todo.DegradedStart
	if cfg.StartPolicy == "failfast" {
		policy = todo.FailFast
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := todo.WaitForStore(ctx, st, policy); err != nil {
		log.Fatalf("Store initialization failed: %v", err)
	}

	var c cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rc.Close()
		c = rc
	} else {
		log.Printf("No REDIS_URL configured, using in-process cache")
		c = cache.NewMemory(cfg.CacheTTL)
	}

	svc := todo.NewService(st, c, cfg.CacheTTL)
	h := handlers.New(svc)

	schema, err := graph.NewSchema(svc)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Mount("/api/todos", h.Routes())
	r.Handle("/graphql", gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	}))

	staticSub, _ := fs.Sub(staticFS, "static")
	r.Handle("/*", http.FileServer(http.FS(staticSub)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

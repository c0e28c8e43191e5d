// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	PostStore     *store.PostStore
	CategoryStore *store.CategoryStore
	UserStore     *store.UserStore
	Admin         *Admin
	Public        *Public
}

// newTestEnv creates a test environment with all handler dependencies.
// Auth handler tests bring their own Valkey-backed session store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	userStore := store.NewUserStore(db)

	return &testEnv{
		DB:            db,
		PostStore:     postStore,
		CategoryStore: categoryStore,
		UserStore:     userStore,
		Admin:         NewAdmin(postStore, categoryStore),
		Public:        NewPublic(postStore, categoryStore),
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// makeTestCategory creates a category with a unique name and cleanup.
func makeTestCategory(t *testing.T, env *testEnv, name string, sortOrder int) *models.Category {
	t.Helper()
	unique := name + "-" + uuid.NewString()[:8]
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE name = $1", unique) })

	c, err := env.CategoryStore.Create(&models.Category{Name: unique, SortOrder: sortOrder})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

// makeTestPost creates a post with cleanup registered by title.
func makeTestPost(t *testing.T, env *testEnv, title string, published bool, categoryIDs []uuid.UUID) *models.Post {
	t.Helper()
	t.Cleanup(func() { env.DB.Exec("DELETE FROM posts WHERE title = $1", title) })

	p, err := env.PostStore.Create(&models.Post{
		Title:       title,
		Content:     "test content for " + title,
		IsPublished: published,
	}, categoryIDs)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, three categories and four sample posts spanning single and
// overlapping category memberships. It is a no-op if data already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4)
	`, "admin@inkwell.local", string(hash), "Admin", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Demo content in one transaction so a failed seed leaves no partial data.
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	categoryNames := []string{"プログラミング", "インターネット", "セキュリティ"}
	categoryIDs := make([]string, len(categoryNames))
	for i, name := range categoryNames {
		if err := tx.QueryRow(`
			INSERT INTO categories (name, sort_order) VALUES ($1, $2) RETURNING id
		`, name, i).Scan(&categoryIDs[i]); err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
	}

	posts := []struct {
		title      string
		content    string
		coverURL   string
		categories []int
	}{
		{
			title:      "TypeScript入門",
			content:    "TypeScriptの基本文法についての解説です。",
			coverURL:   "https://w1980.blob.core.windows.net/pg3/cover-img-red.jpg",
			categories: []int{0},
		},
		{
			title:      "Wi-Fi 7の解説",
			content:    "最新の無線通信規格であるWi-Fi 7について紹介します。",
			coverURL:   "https://w1980.blob.core.windows.net/pg3/cover-img-green.jpg",
			categories: []int{1},
		},
		{
			title:      "安全なコードの書き方",
			content:    "脆弱性を作らないためのセキュアプログラミングの基礎です。",
			coverURL:   "https://w1980.blob.core.windows.net/pg3/cover-img-yellow.jpg",
			categories: []int{0, 2},
		},
		{
			title:      "Webアプリケーションの構築と運用",
			content:    "開発から公開、セキュリティ対策までを網羅したガイドです。",
			coverURL:   "https://w1980.blob.core.windows.net/pg3/cover-img-purple.jpg",
			categories: []int{0, 1, 2},
		},
	}

	for _, p := range posts {
		var postID string
		if err := tx.QueryRow(`
			INSERT INTO posts (title, content, cover_image_url, is_published)
			VALUES ($1, $2, $3, TRUE) RETURNING id
		`, p.title, p.content, p.coverURL).Scan(&postID); err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.title, err)
		}
		for _, ci := range p.categories {
			if _, err := tx.Exec(`
				INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
			`, postID, categoryIDs[ci]); err != nil {
				return fmt.Errorf("seed link post %q: %w", p.title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default admin user and demo content",
		"email", "admin@inkwell.local",
		"password", "admin",
	)

	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// PostStore handles all post-related database operations, including the
// post_categories join table. Every write that touches both the post row
// and its links runs as a single transaction: readers see either the old
// state or the new state, never a half-applied one.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, cover_image_url, is_published, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.CoverImageURL,
		&p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Categories = []models.CategoryRef{}
	return &p, nil
}

// PostFilter holds the listing predicates. All active filters combine
// with AND; IncludeDrafts=false restricts results to published posts
// regardless of the other filters.
type PostFilter struct {
	IncludeDrafts bool
	CategoryID    *uuid.UUID
	Query         string
	SortAsc       bool
}

// List returns posts matching the filter, ordered by creation date with id
// as tie-break so repeated reads are stable. Each post carries its resolved
// category {id, name} list.
func (s *PostStore) List(f PostFilter) ([]models.Post, error) {
	var (
		conds []string
		args  []any
	)

	if !f.IncludeDrafts {
		conds = append(conds, "p.is_published = TRUE")
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM post_categories pc
			         WHERE pc.post_id = p.id AND pc.category_id = $%d)`, len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+escapeLike(f.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.content ILIKE $%d)", n, n))
	}

	query := `
		SELECT p.id, p.title, p.content, p.cover_image_url, p.is_published,
		       p.created_at, p.updated_at
		FROM posts p`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	direction := "DESC"
	if f.SortAsc {
		direction = "ASC"
	}
	query += "\n\t\tORDER BY p.created_at " + direction + ", p.id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachCategories(items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves a post by ID. With includeDrafts=false a draft post
// is reported exactly like a missing one (nil, nil), so callers cannot
// distinguish hidden from nonexistent.
func (s *PostStore) FindByID(id uuid.UUID, includeDrafts bool) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts
		WHERE id = $1 AND (is_published OR $2)
	`, id, includeDrafts)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	items := []models.Post{*p}
	if err := s.attachCategories(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Create inserts a new post together with its category links in one
// transaction. Every category id must exist; otherwise nothing is created
// and a ValidationError naming the unknown ids is returned.
func (s *PostStore) Create(p *models.Post, categoryIDs []uuid.UUID) (*models.Post, error) {
	categoryIDs = dedupeIDs(categoryIDs)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	missing, err := missingCategoryIDs(tx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("verify post categories: %w", err)
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Field: "category", IDs: missing}
	}

	row := tx.QueryRow(`
		INSERT INTO posts (title, content, cover_image_url, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns,
		p.Title, p.Content, p.CoverImageURL, p.IsPublished,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := insertLinks(tx, result.ID, categoryIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}

	items := []models.Post{*result}
	if err := s.attachCategories(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update replaces every field of an existing post and its full category
// set in one transaction. The association set is a full overwrite: passing
// no ids removes all of the post's category links. Concurrent updates to
// the same post resolve by last-committed-transaction-wins.
func (s *PostStore) Update(p *models.Post, categoryIDs []uuid.UUID) error {
	categoryIDs = dedupeIDs(categoryIDs)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	missing, err := missingCategoryIDs(tx, categoryIDs)
	if err != nil {
		return fmt.Errorf("verify post categories: %w", err)
	}
	if len(missing) > 0 {
		return &ValidationError{Field: "category", IDs: missing}
	}

	res, err := tx.Exec(`
		UPDATE posts SET
			title = $1, content = $2, cover_image_url = $3,
			is_published = $4, updated_at = NOW()
		WHERE id = $5
	`, p.Title, p.Content, p.CoverImageURL, p.IsPublished, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete post links: %w", err)
	}
	if err := insertLinks(tx, p.ID, categoryIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceCategories overwrites a post's category set without touching the
// post row. The delete and re-insert of the link rows are one transaction.
func (s *PostStore) ReplaceCategories(postID uuid.UUID, categoryIDs []uuid.UUID) error {
	categoryIDs = dedupeIDs(categoryIDs)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return fmt.Errorf("verify post: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	missing, err := missingCategoryIDs(tx, categoryIDs)
	if err != nil {
		return fmt.Errorf("verify post categories: %w", err)
	}
	if len(missing) > 0 {
		return &ValidationError{Field: "category", IDs: missing}
	}

	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("delete post links: %w", err)
	}
	if err := insertLinks(tx, postID, categoryIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a post and all of its category links in one transaction.
// Returns ErrNotFound if the post does not exist.
func (s *PostStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("delete post links: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// insertLinks bulk-inserts one join row per category id for a post.
// Callers must have verified the ids and deduplicated them already.
func insertLinks(tx *sql.Tx, postID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("prepare insert links: %w", err)
	}
	defer stmt.Close()

	for _, cid := range categoryIDs {
		if _, err := stmt.Exec(postID, cid); err != nil {
			return fmt.Errorf("insert link %s: %w", cid, err)
		}
	}
	return nil
}

// attachCategories populates Categories on each post with {id, name}
// projections, ordered by category sort order.
func (s *PostStore) attachCategories(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	placeholders := make([]string, len(posts))
	args := make([]any, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = posts[i].ID
		index[posts[i].ID] = i
	}

	rows, err := s.db.Query(`
		SELECT pc.post_id, c.id, c.name
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY c.sort_order, c.name
	`, args...)
	if err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var ref models.CategoryRef
		if err := rows.Scan(&postID, &ref.ID, &ref.Name); err != nil {
			return fmt.Errorf("scan post category: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Categories = append(posts[i].Categories, ref)
		}
	}
	return rows.Err()
}

// dedupeIDs removes duplicate ids while preserving order, so a repeated
// category in the request cannot produce a duplicate link row.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

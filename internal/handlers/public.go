// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Public groups the unauthenticated read-only API handlers. Draft posts
// are never visible here.
type Public struct {
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
}

// NewPublic creates a new Public handler group with the given dependencies.
func NewPublic(postStore *store.PostStore, categoryStore *store.CategoryStore) *Public {
	return &Public{
		postStore:     postStore,
		categoryStore: categoryStore,
	}
}

// ListPosts returns published posts, newest first. Supports free-text
// substring search (?q=) over title and content, and category membership
// filtering (?categoryId=); active filters combine with AND.
func (p *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter := store.PostFilter{
		Query: r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid categoryId.")
			return
		}
		filter.CategoryID = &id
	}

	posts, err := p.postStore.List(filter)
	if err != nil {
		respondStoreError(w, err, "list public posts failed")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// GetPost returns a single published post. A draft post answers the same
// 404 as a nonexistent id, so callers cannot probe for hidden drafts; a
// malformed id gets the same treatment.
func (p *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Not Found")
		return
	}

	post, err := p.postStore.FindByID(id, false)
	if err != nil {
		respondStoreError(w, err, "get public post failed")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Not Found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// ListCategories returns all categories ordered by sort_order ascending,
// for navigation and the post form's selectable set.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categoryStore.List()
	if err != nil {
		respondStoreError(w, err, "list categories failed")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

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

// Admin groups the administrator API handlers. Every route is behind the
// admin session guard; drafts are visible here.
type Admin struct {
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(postStore *store.PostStore, categoryStore *store.CategoryStore) *Admin {
	return &Admin{
		postStore:     postStore,
		categoryStore: categoryStore,
	}
}

// postRequest is the create/update submission body. Updates are a full
// replacement of every field and of the category set, never a partial
// patch. A missing isPublished defaults to published.
type postRequest struct {
	Title         string      `json:"title" validate:"required,max=300"`
	Content       string      `json:"content" validate:"required"`
	CoverImageURL string      `json:"coverImageURL" validate:"omitempty,url"`
	CategoryIDs   []uuid.UUID `json:"categoryIds"`
	IsPublished   *bool       `json:"isPublished"`
}

func (req *postRequest) published() bool {
	return req.IsPublished == nil || *req.IsPublished
}

// --- Posts ---

// PostsList returns all posts, drafts included. Supports ?categoryId=,
// ?q= and ?sort=asc|desc (default desc, newest first).
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	filter := store.PostFilter{
		IncludeDrafts: true,
		Query:         r.URL.Query().Get("q"),
		SortAsc:       r.URL.Query().Get("sort") == "asc",
	}
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid categoryId.")
			return
		}
		filter.CategoryID = &id
	}

	posts, err := a.postStore.List(filter)
	if err != nil {
		respondStoreError(w, err, "list admin posts failed")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// PostGet returns a single post by id, draft or published.
func (a *Admin) PostGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	post, err := a.postStore.FindByID(id, true)
	if err != nil {
		respondStoreError(w, err, "get admin post failed")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Not Found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// PostCreate creates a post together with its category links. An unknown
// category id rejects the whole request and creates nothing.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if msg := decodeJSON(r, &req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	post := &models.Post{
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		IsPublished:   req.published(),
	}

	created, err := a.postStore.Create(post, req.CategoryIDs)
	if err != nil {
		respondStoreError(w, err, "create post failed")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// PostUpdate replaces a post's fields and its full category set.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req postRequest
	if msg := decodeJSON(r, &req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	post := &models.Post{
		ID:            id,
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		IsPublished:   req.published(),
	}

	if err := a.postStore.Update(post, req.CategoryIDs); err != nil {
		respondStoreError(w, err, "update post failed")
		return
	}

	updated, err := a.postStore.FindByID(id, true)
	if err != nil {
		respondStoreError(w, err, "reload updated post failed")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// PostDelete removes a post and all its category links. Deleting an id
// that does not exist is a 404, not a silent success.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := a.postStore.Delete(id); err != nil {
		respondStoreError(w, err, "delete post failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// --- Categories ---

// categoryRequest is the category create/update submission body.
type categoryRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	SortOrder *int   `json:"sortOrder"`
}

// CategoriesList returns all categories with post counts, ordered by
// sort_order.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categoryStore.List()
	if err != nil {
		respondStoreError(w, err, "list admin categories failed")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

// CategoryCreate creates a category. When sortOrder is omitted the new
// category is placed at the end of the display sequence.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if msg := decodeJSON(r, &req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	} else {
		next, err := a.categoryStore.NextSortOrder()
		if err != nil {
			respondStoreError(w, err, "next sort order failed")
			return
		}
		sortOrder = next
	}

	created, err := a.categoryStore.Create(&models.Category{
		Name:      req.Name,
		SortOrder: sortOrder,
	})
	if err != nil {
		respondStoreError(w, err, "create category failed")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// CategoryUpdate renames a category. Sort order changes go through
// CategoriesReorder only.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req categoryRequest
	if msg := decodeJSON(r, &req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.categoryStore.Update(&models.Category{ID: id, Name: req.Name}); err != nil {
		respondStoreError(w, err, "update category failed")
		return
	}

	updated, err := a.categoryStore.FindByID(id)
	if err != nil {
		respondStoreError(w, err, "reload updated category failed")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// CategoryDelete removes a category and every link referencing it.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := a.categoryStore.Delete(id); err != nil {
		respondStoreError(w, err, "delete category failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// reorderEntryRequest is one element of the reorder submission: the
// caller's full desired permutation as explicit id/position pairs.
// SortOrder is a pointer so position 0 is distinguishable from absent.
type reorderEntryRequest struct {
	ID        uuid.UUID `json:"id"`
	SortOrder *int      `json:"sortOrder"`
}

// CategoriesReorder persists a client-supplied permutation of category
// sort positions as one atomic batch. Unknown ids fail the whole batch.
func (a *Admin) CategoriesReorder(w http.ResponseWriter, r *http.Request) {
	var req []reorderEntryRequest
	if msg := decodeJSON(r, &req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if len(req) == 0 {
		respondError(w, http.StatusBadRequest, "Reorder body must not be empty.")
		return
	}

	entries := make([]store.ReorderEntry, len(req))
	for i, e := range req {
		if e.ID == uuid.Nil || e.SortOrder == nil {
			respondError(w, http.StatusBadRequest, "Each entry requires id and sortOrder.")
			return
		}
		entries[i] = store.ReorderEntry{ID: e.ID, SortOrder: *e.SortOrder}
	}

	if err := a.categoryStore.Reorder(entries); err != nil {
		respondStoreError(w, err, "reorder categories failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Success"})
}

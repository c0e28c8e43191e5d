// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog post. Draft posts (IsPublished=false) are only
// visible to administrators; the store layer enforces this at read time.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	CoverImageURL string    `json:"coverImageURL"`
	IsPublished   bool      `json:"isPublished"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Virtual field populated by store methods: the post's categories
	// as {id, name} projections, ordered by category sort order.
	Categories []CategoryRef `json:"categories"`
}

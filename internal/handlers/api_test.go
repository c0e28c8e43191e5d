// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/store"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
		var p payload
		if msg := decodeJSON(r, &p); msg != "" {
			t.Errorf("decodeJSON = %q, want empty", msg)
		}
		if p.Name != "ok" {
			t.Errorf("Name = %q, want ok", p.Name)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		if msg := decodeJSON(r, &p); msg == "" {
			t.Error("expected an error message for malformed JSON")
		}
	})

	t.Run("failed validation names the field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		var p payload
		msg := decodeJSON(r, &p)
		if msg == "" {
			t.Fatal("expected an error message for missing required field")
		}
		if !strings.Contains(msg, "Name") {
			t.Errorf("message %q should name the field", msg)
		}
	})

	t.Run("array body skips struct validation", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[{"name":"a"}]`))
		var list []payload
		if msg := decodeJSON(r, &list); msg != "" {
			t.Errorf("decodeJSON = %q, want empty for array body", msg)
		}
		if len(list) != 1 {
			t.Errorf("decoded %d elements, want 1", len(list))
		}
	})
}

func TestRespondStoreError(t *testing.T) {
	t.Run("missing row is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondStoreError(rec, store.ErrNotFound, "test")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})

	t.Run("reference failure is 400 naming ids", func(t *testing.T) {
		bad := uuid.New()
		rec := httptest.NewRecorder()
		respondStoreError(rec, &store.ValidationError{Field: "categoryIds", IDs: []uuid.UUID{bad}}, "test")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), bad.String()) {
			t.Errorf("body %q should contain the offending id", rec.Body.String())
		}
	})

	t.Run("anything else is 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondStoreError(rec, errors.New("connection reset"), "test")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", rec.Code)
		}
		// The internal detail must not leak to the client.
		if strings.Contains(rec.Body.String(), "connection reset") {
			t.Errorf("body %q leaks internal error detail", rec.Body.String())
		}
	})
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusTeapot, map[string]int{"n": 1})

	if rec.Code != http.StatusTeapot {
		t.Errorf("status: got %d, want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q, want application/json", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"n":1}` {
		t.Errorf("body: got %q, want {\"n\":1}", got)
	}
}

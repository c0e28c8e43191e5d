// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Inkwell API.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"inkwell/internal/store"
)

// validate is the shared request validator. validator.Validate is safe
// for concurrent use.
var validate = validator.New()

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into out and runs struct validation.
// Returns a caller-facing error message on failure, empty string otherwise.
func decodeJSON(r *http.Request, out any) string {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return "Invalid JSON body."
	}
	if err := validate.Struct(out); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			// Non-struct bodies (e.g. arrays) are validated by their handlers.
			return ""
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Sprintf("Invalid value for field %q (%s).", f.Field(), f.Tag())
		}
		return "Invalid request body."
	}
	return ""
}

// respondStoreError maps store-layer errors onto HTTP responses: missing
// rows become 404, reference validation failures become 400 naming the
// offending ids, anything else is logged and reported as 500.
func respondStoreError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Not Found")
		return
	}
	if ve, ok := store.AsValidation(err); ok {
		respondError(w, http.StatusBadRequest, ve.Error())
		return
	}
	slog.Error(logMsg, "error", err)
	respondError(w, http.StatusInternalServerError, "Internal Server Error")
}

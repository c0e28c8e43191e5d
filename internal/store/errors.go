// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation targets an id that does not
// exist. Deleting or updating a missing row is a failure, not a no-op.
var ErrNotFound = errors.New("not found")

// ValidationError reports input that references rows which do not exist,
// for example a post submitted with an unknown category id. It is always
// detected before any mutation takes place.
type ValidationError struct {
	Field string
	IDs   []uuid.UUID
}

func (e *ValidationError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("unknown %s reference: %s", e.Field, strings.Join(ids, ", "))
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

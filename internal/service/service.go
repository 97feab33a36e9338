// Package service implements the application use cases on top of the
// repository layer. Services validate input, enforce ownership, and leave
// storage atomicity to the repositories.
package service

import (
	"strconv"

	"ripple/internal/models"
)

// Feed page size bounds. Out-of-range requests are clamped rather than
// rejected so clients never have to special-case limits.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// clampLimit normalizes a requested page size into [1, MaxPageSize],
// defaulting when the client sent nothing.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// parseCursor decodes an opaque cursor back into the row id it names. An
// empty cursor means "from the top".
func parseCursor(cursor string) (uint, error) {
	if cursor == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(cursor, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid cursor")
	}
	return uint(id), nil
}

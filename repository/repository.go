// Package repository persists categories and ads in MongoDB.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches no document.
var ErrNotFound = errors.New("document not found")

// Package repository defines error values reused across multiple
// repositories. These sentinels let handlers distinguish failure scenarios
// without inspecting driver errors: ErrNotFound maps to HTTP 404 and
// ErrConflict to a uniqueness violation surfaced by MySQL.
package repository

import (
	"database/sql"
	"errors"
	"strings"
)

// ErrNotFound is returned when the target row does not exist. Handlers
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a uniqueness
// constraint, such as an access key that already exists.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// noRowsAsNotFound turns a zero-row delete into ErrNotFound. Only valid for
// DELETE statements; MySQL reports zero affected rows for no-op updates too.
func noRowsAsNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that an id did not resolve to a row
// and should become an HTTP 404, while the duplicate errors signal
// registration conflicts that re-render the form.
package repository

import "errors"

// ErrNotFound is returned when a customer or interaction id does not
// resolve to a row. Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when registration would violate the
// unique username constraint.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when registration would violate the
// unique email constraint.
var ErrEmailExists = errors.New("email already exists")

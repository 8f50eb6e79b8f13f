// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between different failure
// scenarios. Infrastructure failures defined here are retryable; the
// domain rejections live in the engine package and are terminal.
package repository

import "errors"

// ErrLockTimeout is returned when the per-day advisory lock could not
// be acquired within the configured wait. The commit is safe to retry:
// re-validation happens inside the lock on every attempt.
var ErrLockTimeout = errors.New("booking lock wait timed out")

// ErrBlockNotFound is returned when a block lookup or delete matches
// no row. Handlers should translate this into an HTTP 404 response.
var ErrBlockNotFound = errors.New("block not found")

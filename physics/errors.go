package physics

import "errors"

// All fallible operations return explicit error values; no panics are used
// for expected control flow.
var (
	// ErrInvalidShape is returned when a shape has a non-positive radius,
	// malformed AABB bounds, or non-finite coordinates.
	ErrInvalidShape = errors.New("physics: invalid shape")

	// ErrNotFound is returned when a collider id names a slot that was
	// never allocated.
	ErrNotFound = errors.New("physics: collider not found")

	// ErrStaleHandle is returned when a collider id's generation does not
	// match the slot, i.e. the collider was removed and the slot reused.
	ErrStaleHandle = errors.New("physics: stale collider handle")

	// ErrDegenerateInput is returned when step input that must be finite
	// (the tick duration) is NaN, Inf or negative. Degenerate per-mover
	// input is not an error; the offending mover is skipped instead.
	ErrDegenerateInput = errors.New("physics: degenerate input")
)

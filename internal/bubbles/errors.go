// internal/bubbles/errors.go
package bubbles

import "errors"

var (
	ErrNoContainer     = errors.New("bubbles: container is required")
	ErrNoContainerSize = errors.New("bubbles: container has no size")
	ErrNoSurface       = errors.New("bubbles: drawing surface is required")
	ErrNoScheduler     = errors.New("bubbles: frame scheduler is required")
	ErrInvalidColor    = errors.New("bubbles: invalid color")
)

package engine

import "errors"

var (
	// ErrNoScene is returned by Tick when the scheduler has no scene
	// attached.
	ErrNoScene = errors.New("engine: no scene attached")
)

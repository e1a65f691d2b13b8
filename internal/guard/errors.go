package guard

import "fmt"

// MissingDependencyError is a fatal pre-flight failure: a file the launch
// needs does not exist. Nothing is probed or spawned after one of these.
type MissingDependencyError struct {
	// Role says what the missing file was for ("runtime", "entrypoint").
	Role string
	// Path is the location that was checked.
	Path string
	// Hint tells the user how to fix it.
	Hint string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing %s: %s (%s)", e.Role, e.Path, e.Hint)
}

// LaunchError wraps a failure to start the backend process itself, as
// opposed to the backend running and exiting non-zero.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch backend: %v", e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

package launcher

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingLaunchInfo indicates the game has neither a command nor a launch URL.
	ErrMissingLaunchInfo = errors.New("missing launch information")
	// ErrConflictingLaunchInfo indicates the game carries both a command and a launch URL.
	ErrConflictingLaunchInfo = errors.New("conflicting launch information")
)

// LaunchError reports a failed launch of one title.
type LaunchError struct {
	Title string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("unable to launch game %s: %v", e.Title, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

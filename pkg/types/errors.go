// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds shared across packages. Callers wrap them with fmt.Errorf("%w")
// and test with errors.Is.
var (
	// ErrInvalidPath marks a path that does not exist or is not a directory
	// where one is required.
	ErrInvalidPath = errors.New("invalid path")

	// ErrMissingArgument marks a required companion flag or prompt value
	// that was not supplied.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidChoice marks menu input or a mode name outside the accepted set.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrConversion wraps failures reported by an external converter or codec.
	ErrConversion = errors.New("conversion failed")

	// ErrFileNotFound marks a selected file that vanished before removal.
	ErrFileNotFound = errors.New("file not found")

	// ErrDirectoryBusy is returned when another process holds the batch lock
	// for a directory.
	ErrDirectoryBusy = errors.New("directory busy")
)

package sfs

import "errors"

// Sentinel errors for the volume's error taxonomy. Wrap with
// fmt.Errorf("...: %w", Err...) where additional context helps; callers
// can still match with errors.Is.
var (
	// ErrNotFound is returned when an operation names a file that does not exist.
	ErrNotFound = errors.New("sfs: file not found")
	// ErrExists is returned by Create when the file already exists.
	ErrExists = errors.New("sfs: file already exists")
	// ErrCapacity is returned when the directory, metadata zone, or data
	// region cannot accept another entry/record/page.
	ErrCapacity = errors.New("sfs: capacity exhausted")
	// ErrOutOfBounds is returned when a read or offset write would reach
	// past the file's current size.
	ErrOutOfBounds = errors.New("sfs: offset out of bounds")
	// ErrInvalidName is returned for an empty file name.
	ErrInvalidName = errors.New("sfs: invalid file name")
	// ErrDeviceError wraps a failure surfaced by the underlying block device.
	ErrDeviceError = errors.New("sfs: device error")
)

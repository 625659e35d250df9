package schedulers

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned when the requested policy is
	// not one of the values listed by Algorithms.
	ErrUnsupportedAlgorithm = errors.New("unsupported scheduling algorithm")

	// ErrEmptyInput is returned when a run is requested with no processes.
	ErrEmptyInput = errors.New("no processes to schedule")

	// ErrMissingPriority is returned by the priority policy when at
	// least one process carries no priority value.
	ErrMissingPriority = errors.New("process is missing a priority")

	// ErrInvalidQuantum is returned by round-robin when the time
	// quantum is zero or negative.
	ErrInvalidQuantum = errors.New("time quantum must be positive")

	// ErrInvalidProcess is returned when a process has a negative
	// arrival time or a non-positive burst time.
	ErrInvalidProcess = errors.New("invalid process")
)

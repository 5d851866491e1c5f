package app

import "errors"

var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotStarted indicates an operation was invoked before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrQueueFull indicates the generation queue rejected a request.
	ErrQueueFull = errors.New("generation queue full")

	// ErrUnknownKind indicates a generation request with an unrecognized kind.
	ErrUnknownKind = errors.New("unknown generation kind")
)

package storage

import "errors"

// Sentinel kinds for store errors.
var (
	ErrWrite      = errors.New("store write failed")
	ErrUnknownKey = errors.New("unknown collection key")
)

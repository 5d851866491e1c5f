package genai

import "errors"

var (
	// ErrMissingCredential is returned before any request is made when the
	// client has no API key configured.
	ErrMissingCredential = errors.New("genai: missing API credential")
	// ErrEmptyResponse is returned when the completion carries no text.
	ErrEmptyResponse = errors.New("genai: empty completion")
	// ErrRequestFailed wraps transport and non-2xx failures.
	ErrRequestFailed = errors.New("genai: request failed")
)

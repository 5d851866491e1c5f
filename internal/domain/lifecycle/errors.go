package lifecycle

import "errors"

// Sentinel kinds for lifecycle errors.
var (
	ErrAlreadyPromoted = errors.New("record already promoted")
)

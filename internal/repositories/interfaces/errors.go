package interfaces

import "errors"

// ErrNotFound is returned by any repository lookup that matches no
// record. Callers compare with errors.Is.
var ErrNotFound = errors.New("record not found")

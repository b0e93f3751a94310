package authflow

import "errors"

// ErrCSRFMismatch is kept distinct from sessions.ErrNotFound so a forged
// callback can be told apart from a replayed one.
var ErrCSRFMismatch = errors.New("csrf token mismatch")

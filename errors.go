package oss

import "errors"

// ErrWallLimit is the cancellation cause of a run exceeding scheduler.wallLimit.
var ErrWallLimit = errors.New("oss: wall clock limit exceeded")

package service

import "errors"

// ErrNilProfile is returned when Analyze receives no profile.
var ErrNilProfile = errors.New("nil profile")

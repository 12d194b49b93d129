package profile

import "errors"

// Sentinel errors returned by the loader.
var (
	ErrReadProfile    = errors.New("read profile failed")
	ErrInvalidProfile = errors.New("invalid profile")
)

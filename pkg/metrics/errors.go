package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrNoGatherer   = errors.New("metrics registry cannot be gathered")
	ErrExportFailed = errors.New("metrics export failed")
)

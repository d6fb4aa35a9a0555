package bootstrap

import "errors"

// ErrCancelled is returned by Runner.Execute when the caller's cancellation
// flag is observed at a between-phases suspension point (spec §5:
// "the initialization pipeline supports abort between phases").
var ErrCancelled = errors.New("bootstrap: cancelled")

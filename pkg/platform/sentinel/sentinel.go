package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, sinks and clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// - ErrUnavailable: backing service or resource temporarily unavailable
// - ErrClosed: component already shut down and no longer accepts work
// - ErrQueueFull: bounded queue rejected a submission
var (
	ErrUnavailable = errors.New("unavailable")
	ErrClosed      = errors.New("closed")
	ErrQueueFull   = errors.New("queue full")
)

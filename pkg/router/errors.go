package router

import (
	"errors"
	"fmt"
)

// Error kinds the router distinguishes. Callers branch on
// kind with errors.Is; the router never defines a custom error hierarchy
// beyond these sentinels — every returned error wraps exactly one of them.
var (
	// ErrSetupFatal means Setup found a problem with the design's
	// pre-existing state (missing source/sink wire, two nets sharing a
	// source wire, a wire used as both source and sink of different
	// nets, two arcs sharing a sink wire). Setup aborts before any
	// mutation when this occurs.
	ErrSetupFatal = errors.New("router: setup-fatal")

	// ErrRoutingFatal means the A* search exhausted its frontier
	// without ever visiting the sink, even with rip-up allowed. Bindings
	// made by earlier, successful arcs remain in the Fabric; discarding
	// or retrying them is the caller's responsibility.
	ErrRoutingFatal = errors.New("router: routing-fatal")

	// ErrInvariantViolation means an integrity check or the post-route
	// validator caught a broken invariant. Treated as a bug: the router
	// does not attempt recovery.
	ErrInvariantViolation = errors.New("router: invariant violation")

	// ErrHostSignalled wraps an exceptional condition raised by a
	// collaborator (the Fabric, or a logging sink). The router's sole
	// responsibility on seeing one is to release the Fabric lock and
	// return failure.
	ErrHostSignalled = errors.New("router: host signalled")
)

// invariantErrorf wraps ErrInvariantViolation with a formatted detail
// message, the way every other constructor in this package wraps its
// sentinel.
func invariantErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvariantViolation}, args...)...)
}

// setupErrorf wraps ErrSetupFatal with a formatted detail message.
func setupErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrSetupFatal}, args...)...)
}

// routingErrorf wraps ErrRoutingFatal with a formatted detail message.
func routingErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrRoutingFatal}, args...)...)
}

// hostErrorf wraps ErrHostSignalled with a formatted detail message.
func hostErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrHostSignalled}, args...)...)
}

package streamfilter

import "errors"

// ErrHalted is returned by Process when a callback returned HaltDecision().
// It is not a failure: callers are expected to check for it with errors.Is
// and stop consuming the stream.
var ErrHalted = errors.New("streamfilter: halted")

// ErrInvalidYieldMode is returned when an Adapter is configured with a
// YieldMode string that does not match the "char" | "token" | "chunk:<N>"
// grammar.
var ErrInvalidYieldMode = errors.New("streamfilter: invalid yield mode")

// ErrNotAGenerator is returned when an Adapter is applied to a producer
// value that is neither a SyncProducer nor an AsyncProducer.
var ErrNotAGenerator = errors.New("streamfilter: target is not a token producer")

// ErrHaltedAfterFlush is returned if Process is called on a Processor that
// has already halted; a halted processor may not be reused. Flush on a
// halted processor returns nothing.
var ErrHaltedAfterFlush = errors.New("streamfilter: processor already halted")

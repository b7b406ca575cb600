package ir

import "errors"

// Decode errors form a small closed taxonomy. TooFewSymbols is structural:
// retrying the same decoder with a looser tolerance cannot help.
// TimingMismatch means this protocol does not match this signal and the
// caller should try the next decoder. A failed checksum is never an error;
// it is recorded as FlagParityFailed on the decoded code.
var (
	ErrTooFewSymbols  = errors.New("too few symbols")
	ErrTimingMismatch = errors.New("timing mismatch")

	// ErrRepeatFrame is returned by the NEC decoder for a valid repeat
	// envelope. The pipeline resolves it against the previously decoded
	// code; a bare decoder call cannot.
	ErrRepeatFrame = errors.New("repeat frame")

	// ErrNotSupported is reserved for a valid repeat frame received with
	// no usable predecessor to repeat.
	ErrNotSupported = errors.New("repeat frame without context")

	// ErrNotImplemented is returned by encoders for protocols without an
	// encoding rule, never silently substituted.
	ErrNotImplemented = errors.New("protocol not implemented")
)

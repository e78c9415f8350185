package core

import "errors"

var (
	// ErrInvalidInput rejects text the pipeline cannot process at all;
	// the only pre-processing rejection is non-UTF-8 input.
	ErrInvalidInput = errors.New("invalid input text")

	// ErrEngineUnknown marks a strategy or preference naming an engine
	// the registry does not hold. Logged and skipped, never fatal.
	ErrEngineUnknown = errors.New("unknown engine")

	// ErrEngineUnavailable marks an engine that is registered but
	// offline. Logged and skipped, never fatal.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrEngineFailed wraps a panic, timeout or malformed output from a
	// single engine. Contained at the runner; the engine simply does not
	// contribute.
	ErrEngineFailed = errors.New("engine failed")
)

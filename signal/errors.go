package signal

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownBucket reports a mapping entry for a bucket outside the
	// five recognized ones.
	ErrUnknownBucket = errors.New("unknown bucket")

	// ErrUnknownSignal reports a mapping entry for a signal name outside
	// the closed enumeration.
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrSignalBucketMismatch reports a recognized signal registered under
	// the wrong bucket.
	ErrSignalBucketMismatch = errors.New("signal does not belong to bucket")

	// ErrNilRule reports a nil extraction rule.
	ErrNilRule = errors.New("nil extraction rule")

	// ErrRulePanicked marks a fault recovered from a rule invocation.
	ErrRulePanicked = errors.New("extraction rule panicked")

	// ErrUncoercible marks a rule result that could not be coerced to the
	// signal's type.
	ErrUncoercible = errors.New("value not coercible")
)

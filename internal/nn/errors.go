package nn

import "errors"

var (
	// ErrInvalidConfig covers every referential-integrity failure found
	// while building a graph: dangling synapse sources, outputs naming
	// nothing, name collisions, unknown activations. Always fatal before
	// any tick runs.
	ErrInvalidConfig = errors.New("invalid network config")

	// ErrUnknownActivation reports an activation name outside the
	// built-in set.
	ErrUnknownActivation = errors.New("unknown activation")

	// ErrArity reports a vector whose length does not match the declared
	// input (forward) or output (learn) count.
	ErrArity = errors.New("vector arity mismatch")

	// ErrLearnWithoutForward reports a Learn call that was not preceded
	// by a Forward call for the same tick.
	ErrLearnWithoutForward = errors.New("learn called without a preceding forward pass")

	// ErrScheduleInvariant reports a scheduler self-check failure. This
	// is an internal bug, never a user error: after back edges are
	// removed the remaining dependency graph must linearize.
	ErrScheduleInvariant = errors.New("schedule invariant violation")
)

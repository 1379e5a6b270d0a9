// Package order implements the marketplace order lifecycle.
//
// It holds the lifecycle engine and the Order aggregate built on it:
//   - Status: the eleven lifecycle states with canonical storage strings and labels
//   - DeliveryType: digital, physical or hybrid, fixed at placement
//   - the transition table with CanTransition and ValidateTransition
//   - TrackingSequence and ProgressIndex for the buyer facing progress bar
//   - Order: the aggregate root that applies transitions and counts revisions
//   - Event: the append-only audit record of every accepted transition
//
// Engine functions are pure and safe for concurrent use. Unknown inputs
// never panic: CanTransition returns false, TrackingSequence returns an
// error matching ErrInvalidDeliveryType and ProgressIndex returns NotOnPath.
package order

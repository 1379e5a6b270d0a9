package order

// transitionTable is the complete adjacency of the lifecycle. It is built once
// at package init and never written afterwards, so concurrent reads are safe.
//
// Completed has no outgoing edges. DisputeOpen leaves only to Completed.
// No status lists itself.
var transitionTable = map[Status]map[Status]struct{}{
	Placed:            setOf(Accepted, DisputeOpen),
	Accepted:          setOf(InProgress, DisputeOpen),
	InProgress:        setOf(M1Submitted, FinalDelivered, DisputeOpen),
	M1Submitted:       setOf(RevisionRequested, FinalDelivered, DisputeOpen),
	RevisionRequested: setOf(InProgress, FinalDelivered, DisputeOpen),
	FinalDelivered:    setOf(Completed, DisputeOpen),
	Completed:         setOf(),
	PartnerAssigned:   setOf(OutForDelivery, DisputeOpen),
	OutForDelivery:    setOf(Delivered, DisputeOpen),
	Delivered:         setOf(Completed, DisputeOpen),
	DisputeOpen:       setOf(Completed),
}

func setOf(statuses ...Status) map[Status]struct{} {
	set := make(map[Status]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// CanTransition reports whether a single step from -> to is legal.
// Unknown or out-of-range values simply return false.
func CanTransition(from, to Status) bool {
	_, ok := transitionTable[from][to]
	return ok
}

// ValidateTransition is CanTransition with an error naming the rejected move.
// The error is an *InvalidTransitionError and matches ErrInvalidTransition.
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

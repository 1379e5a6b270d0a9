package order

import "fmt"

var trackingSequences = map[DeliveryType][]Status{
	Digital: {
		Placed, Accepted, InProgress, M1Submitted, FinalDelivered, Completed,
	},
	Physical: {
		Placed, Accepted, PartnerAssigned, OutForDelivery, Delivered, Completed,
	},
	Hybrid: {
		Placed, Accepted, InProgress, M1Submitted, FinalDelivered,
		PartnerAssigned, OutForDelivery, Delivered, Completed,
	},
}

// TrackingSequence returns the display path for a delivery type as a fresh
// slice. RevisionRequested and DisputeOpen are never part of a path.
//
// Note that the hybrid path shows FinalDelivered -> PartnerAssigned even
// though the transition table has no such edge; the path is for display only.
// The table has no Accepted -> PartnerAssigned edge either, so a physical
// order leaves its path after ACCEPTED and reports NotOnPath from IN_PROGRESS.
func TrackingSequence(d DeliveryType) ([]Status, error) {
	seq, ok := trackingSequences[d]
	if !ok {
		return nil, newInvalidDeliveryTypeError(fmt.Errorf("no tracking sequence for %s", d))
	}
	out := make([]Status, len(seq))
	copy(out, seq)
	return out, nil
}

// Progress is the position of a status on a tracking sequence.
// The zero value is NotOnPath.
type Progress struct {
	index  int
	onPath bool
}

// NotOnPath is returned by ProgressIndex for statuses absent from the sequence,
// DisputeOpen among them.
var NotOnPath = Progress{}

// Index returns the zero-based position and true, or 0 and false when the
// status is not on the path.
func (p Progress) Index() (int, bool) {
	return p.index, p.onPath
}

// OnPath reports whether the status was found on the sequence.
func (p Progress) OnPath() bool {
	return p.onPath
}

// Reached reports whether step i of the sequence is at or before the current
// position. Nothing is reached when the status is off the path.
func (p Progress) Reached(i int) bool {
	return p.onPath && i <= p.index
}

func (p Progress) String() string {
	if !p.onPath {
		return "not on path"
	}
	return fmt.Sprintf("step %d", p.index)
}

// ProgressIndex locates current within sequence. Sequences from
// TrackingSequence hold no duplicates; for other input the first match wins.
func ProgressIndex(current Status, sequence []Status) Progress {
	for i, s := range sequence {
		if s == current {
			return Progress{index: i, onPath: true}
		}
	}
	return NotOnPath
}

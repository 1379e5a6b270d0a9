package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of a marketplace order.
//
// Digital work runs Placed -> Accepted -> InProgress -> M1Submitted ->
// FinalDelivered -> Completed, with RevisionRequested looping back into
// InProgress. Physical goods run through PartnerAssigned, OutForDelivery and
// Delivered instead. DisputeOpen can be entered from every non-terminal
// status and only leaves to Completed. The full adjacency lives in
// transitions.go.
//
// The canonical strings returned by String are what storage and the API
// carry; the integer value is never persisted.
type Status int

const (
	// Unknown is the zero value and never valid, so an unset Status is caught
	// by Validate.
	Unknown Status = iota

	// Placed is the initial status of every order.
	Placed

	// Accepted means the vendor took the order.
	Accepted

	// InProgress means the vendor started the work.
	InProgress

	// M1Submitted means the first milestone was handed over for review.
	M1Submitted

	// RevisionRequested means the buyer sent the milestone back.
	RevisionRequested

	// FinalDelivered means the final deliverable was handed over.
	FinalDelivered

	// Completed is terminal.
	Completed

	// PartnerAssigned means a logistics partner holds the parcel.
	PartnerAssigned

	// OutForDelivery means the parcel is on its last leg.
	OutForDelivery

	// Delivered means the parcel reached the buyer.
	Delivered

	// DisputeOpen suspends the normal flow until an admin resolves it.
	DisputeOpen
)

var allStatuses = [...]Status{
	Placed,
	Accepted,
	InProgress,
	M1Submitted,
	RevisionRequested,
	FinalDelivered,
	Completed,
	PartnerAssigned,
	OutForDelivery,
	Delivered,
	DisputeOpen,
}

// getStatusStrings returns the canonical storage strings of the valid statuses.
func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown has no canonical string
	return map[Status]string{
		Placed:            "PLACED",
		Accepted:          "ACCEPTED",
		InProgress:        "IN_PROGRESS",
		M1Submitted:       "M1_SUBMITTED",
		RevisionRequested: "REVISION_REQUESTED",
		FinalDelivered:    "FINAL_DELIVERED",
		Completed:         "COMPLETED",
		PartnerAssigned:   "PARTNER_ASSIGNED",
		OutForDelivery:    "OUT_FOR_DELIVERY",
		Delivered:         "DELIVERED",
		DisputeOpen:       "DISPUTE_OPEN",
	}
}

// getStatusLabels returns the labels shown to buyers and vendors.
func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown has no label
	return map[Status]string{
		Placed:            "Order Placed",
		Accepted:          "Seller Accepted",
		InProgress:        "Work Started",
		M1Submitted:       "Milestone Submitted",
		RevisionRequested: "Revision Requested",
		FinalDelivered:    "Final Delivered",
		Completed:         "Completed",
		PartnerAssigned:   "Partner Assigned",
		OutForDelivery:    "Out for Delivery",
		Delivered:         "Delivered",
		DisputeOpen:       "Dispute Open",
	}
}

// AllStatuses returns the eleven valid statuses in declaration order.
// The slice is a fresh copy on every call.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses[:])
	return out
}

// ParseStatus maps a canonical string such as "IN_PROGRESS" to its Status.
// Matching is exact: lower case and display labels are rejected.
//
// The returned error matches both ErrInvalidStatus and errs.ErrValueIsInvalid.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, newInvalidStatusError(fmt.Errorf("%q is not a known status", s))
}

// Validate reports whether s is one of the eleven valid statuses.
//
// This is used to check Status values arriving from the database or the API
// before they reach the transition table.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return newInvalidStatusError(fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical storage string, or "UNKNOWN" for invalid values.
// It is safe to call on any Status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Label returns the display label, or "Unknown" for invalid values.
//
// Example:
//
//	fmt.Println(order.OutForDelivery.Label()) // Output: "Out for Delivery"
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s. Only Completed is terminal.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(transitionTable[s]) == 0
}

// NextStatuses lists the statuses reachable from s in one step, in
// declaration order. Invalid and terminal statuses yield an empty slice.
// Callers may modify the result.
func (s Status) NextStatuses() []Status {
	targets := transitionTable[s]
	out := make([]Status, 0, len(targets))
	for _, candidate := range allStatuses {
		if _, ok := targets[candidate]; ok {
			out = append(out, candidate)
		}
	}
	return out
}

// MarshalText writes the canonical string.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts only canonical strings.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func newInvalidStatusError(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidStatus, errs.NewValueIsInvalidErrorWithCause("status", cause))
}

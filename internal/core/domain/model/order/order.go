package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MaxRequirementsLength bounds the free-text brief, counted in runes.
	MaxRequirementsLength = 10000

	// MaxRevisionsAllowed bounds the allowance an offer can grant.
	MaxRevisionsAllowed = 20
)

// Parties are the users and listing an order binds together.
type Parties struct {
	Buyer   kernel.UUID
	Vendor  kernel.UUID
	Service kernel.UUID
}

// Terms are the commercial conditions fixed when the order is placed.
//
// RevisionsAllowed of 0 means revisions are not capped.
type Terms struct {
	DeliveryType     DeliveryType
	Amount           kernel.Money
	Requirements     string
	RevisionsAllowed int
}

// Order is the aggregate root of the marketplace lifecycle. It holds the
// current status, the delivery type that fixes its tracking sequence and the
// version used for optimistic concurrency.
//
// Order maintains these invariants:
//   - status is always one of the eleven valid statuses
//   - every status change is a legal edge of the transition table
//   - delivery type never changes after placement
//   - buyer and vendor are different users
//   - version grows by exactly one per accepted status change
type Order struct {
	id      kernel.UUID
	parties Parties
	terms   Terms

	status        Status
	revisionsUsed int
	version       int

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder places an order in the Placed status at version 1.
//
// All constructor checks run and their errors are joined, so a caller sees
// every invalid field at once.
func NewOrder(id kernel.UUID, parties Parties, terms Terms) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:    Placed,
		version:   1,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(parties),
		o.setTerms(terms),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from storage. Stored status and
// delivery type are validated so a corrupted row never becomes a live
// aggregate.
func RestoreOrder(
	id kernel.UUID,
	parties Parties,
	terms Terms,
	status Status,
	revisionsUsed int,
	version int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(parties),
		o.setTerms(terms),
		o.setStatus(status),
		o.setRevisionsUsed(revisionsUsed),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether o was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or the IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the user who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.parties.Buyer
}

// VendorID returns the user who fulfils the order.
func (o *Order) VendorID() kernel.UUID {
	return o.parties.Vendor
}

// ServiceID returns the listing the order was placed for.
func (o *Order) ServiceID() kernel.UUID {
	return o.parties.Service
}

// DeliveryType returns the type fixed at placement.
func (o *Order) DeliveryType() DeliveryType {
	return o.terms.DeliveryType
}

// Amount returns the agreed price.
func (o *Order) Amount() kernel.Money {
	return o.terms.Amount
}

// Requirements returns the buyer's brief, possibly empty.
func (o *Order) Requirements() string {
	return o.terms.Requirements
}

// RevisionsAllowed returns the revision cap; 0 means unlimited.
func (o *Order) RevisionsAllowed() int {
	return o.terms.RevisionsAllowed
}

// RevisionsUsed counts the moves into REVISION_REQUESTED so far.
func (o *Order) RevisionsUsed() int {
	return o.revisionsUsed
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic concurrency version, starting at 1.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last accepted status change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsParticipant reports whether u is the buyer or the vendor.
func (o *Order) IsParticipant(u kernel.UUID) bool {
	return o.IsBuyer(u) || o.IsVendor(u)
}

// IsBuyer reports whether u placed the order.
func (o *Order) IsBuyer(u kernel.UUID) bool {
	return o.parties.Buyer.IsEqual(u)
}

// IsVendor reports whether u fulfils the order.
func (o *Order) IsVendor(u kernel.UUID) bool {
	return o.parties.Vendor.IsEqual(u)
}

// RevisionsLeft returns the remaining allowance and false when revisions are
// not capped.
func (o *Order) RevisionsLeft() (int, bool) {
	if o.terms.RevisionsAllowed == 0 {
		return 0, false
	}
	return max(o.terms.RevisionsAllowed-o.revisionsUsed, 0), true
}

// Tracking returns the tracking sequence of this order's delivery type and
// the position of the current status on it.
func (o *Order) Tracking() ([]Status, Progress, error) {
	seq, err := TrackingSequence(o.terms.DeliveryType)
	if err != nil {
		return nil, NotOnPath, err
	}
	return seq, ProgressIndex(o.status, seq), nil
}

// ChangeStatus moves the order to `to` and returns the audit event recording
// the move.
//
// The move must be an edge of the transition table; otherwise an
// *InvalidTransitionError is returned and the order is left untouched.
// Entering RevisionRequested also consumes one revision when the allowance
// is capped, failing with ErrRevisionLimitReached once it is spent.
//
// An empty note is replaced with "Status changed to <STATUS>".
//
// Authorization is not checked here; see services.TransitionPolicy.
func (o *Order) ChangeStatus(to Status, by kernel.UUID, note, proofURL string) (*Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateTransition(o.status, to); err != nil {
		return nil, err
	}
	if to == RevisionRequested {
		if left, capped := o.RevisionsLeft(); capped && left == 0 {
			return nil, fmt.Errorf("%w: %d of %d used", ErrRevisionLimitReached,
				o.revisionsUsed, o.terms.RevisionsAllowed)
		}
	}

	event, err := NewTransitionEvent(o.id, o.status, to, by, note, proofURL)
	if err != nil {
		return nil, err
	}

	if to == RevisionRequested {
		o.revisionsUsed++
	}
	o.status = to
	o.version++
	o.updatedAt = event.CreatedAt()

	return event, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(p Parties) error {
	if err := errors.Join(
		wrapParam("buyerID", p.Buyer.Validate()),
		wrapParam("vendorID", p.Vendor.Validate()),
		wrapParam("serviceID", p.Service.Validate()),
	); err != nil {
		return err
	}
	if p.Buyer.IsEqual(p.Vendor) {
		return errs.NewValueIsInvalidErrorWithCause("vendorID",
			errors.New("buyer and vendor must be different users"))
	}
	o.parties = p
	return nil
}

func (o *Order) setTerms(t Terms) error {
	if err := t.DeliveryType.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}

	t.Requirements = strings.TrimSpace(t.Requirements)
	if n := utf8.RuneCountInString(t.Requirements); n > MaxRequirementsLength {
		return errs.NewValueIsOutOfRangeError("requirements length", n, 0, MaxRequirementsLength)
	}
	if t.RevisionsAllowed < 0 || t.RevisionsAllowed > MaxRevisionsAllowed {
		return errs.NewValueIsOutOfRangeError("revisionsAllowed", t.RevisionsAllowed, 0, MaxRevisionsAllowed)
	}

	o.terms = t
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setRevisionsUsed(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("revisionsUsed", n, 0, "unbounded")
	}
	o.revisionsUsed = n
	return nil
}

func (o *Order) setVersion(v int) error {
	if v < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("%d is less than 1", v))
	}
	o.version = v
	return nil
}

func wrapParam(name string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(name, err)
}

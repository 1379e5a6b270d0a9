package order

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// PlacementNote is the note of the first event of every order.
	PlacementNote = "Order placed successfully"

	// MaxNoteLength bounds event notes, counted in runes.
	MaxNoteLength = 2000
)

var ErrEventIsNotConstructed = errors.New("event must be created via NewPlacementEvent, NewTransitionEvent or RestoreEvent")

// Event is one immutable entry of an order's audit trail. Exactly one event
// is written per accepted transition, plus the placement event.
type Event struct {
	id         kernel.UUID
	orderID    kernel.UUID
	statusFrom *Status
	statusTo   Status
	note       string
	proofURL   string
	createdBy  kernel.UUID
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewPlacementEvent records that o was placed. It has no StatusFrom.
func NewPlacementEvent(o *Order) (*Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return newEvent(kernel.NewUUID(), o.ID(), nil, Placed, o.BuyerID(), PlacementNote, "", o.CreatedAt())
}

// NewTransitionEvent records a move between two statuses. It does not check
// the transition table; Order.ChangeStatus does that before calling it.
func NewTransitionEvent(orderID kernel.UUID, from, to Status, by kernel.UUID, note, proofURL string) (*Event, error) {
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(note) == "" {
		note = DefaultTransitionNote(to)
	}
	return newEvent(kernel.NewUUID(), orderID, &from, to, by, note, proofURL, time.Now().UTC())
}

// RestoreEvent rebuilds an event read from storage.
func RestoreEvent(
	id, orderID kernel.UUID,
	from *Status,
	to Status,
	by kernel.UUID,
	note, proofURL string,
	createdAt time.Time,
) (*Event, error) {
	if from != nil {
		if err := from.Validate(); err != nil {
			return nil, err
		}
	}
	return newEvent(id, orderID, from, to, by, note, proofURL, createdAt)
}

// DefaultTransitionNote is the note used when a transition is requested
// without one.
func DefaultTransitionNote(to Status) string {
	return fmt.Sprintf("Status changed to %s", to)
}

func newEvent(
	id, orderID kernel.UUID,
	from *Status,
	to Status,
	by kernel.UUID,
	note, proofURL string,
	createdAt time.Time,
) (*Event, error) {
	e := &Event{
		statusFrom: from,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		wrapParam("eventID", id.Validate()),
		wrapParam("orderID", orderID.Validate()),
		wrapParam("createdBy", by.Validate()),
		to.Validate(),
		e.setNote(note),
		e.setProofURL(proofURL),
	); err != nil {
		return nil, err
	}

	e.id = id
	e.orderID = orderID
	e.statusTo = to
	e.createdBy = by
	return e, nil
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) ID() kernel.UUID {
	return e.id
}

func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// StatusFrom returns the previous status and false for the placement event.
func (e *Event) StatusFrom() (Status, bool) {
	if e.statusFrom == nil {
		return Unknown, false
	}
	return *e.statusFrom, true
}

func (e *Event) StatusTo() Status {
	return e.statusTo
}

func (e *Event) Note() string {
	return e.note
}

func (e *Event) ProofURL() string {
	return e.proofURL
}

func (e *Event) CreatedBy() kernel.UUID {
	return e.createdBy
}

func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Event) setNote(note string) error {
	note = strings.TrimSpace(note)
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note length", n, 0, MaxNoteLength)
	}
	e.note = note
	return nil
}

// setProofURL accepts an empty value or an absolute http(s) link.
func (e *Event) setProofURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		e.proofURL = ""
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("proofURL", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("proofURL",
			fmt.Errorf("%q is not an absolute http(s) link", raw))
	}
	e.proofURL = u.String()
	return nil
}

package dispute

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

const MaxTextLength = 2000

var (
	ErrDisputeIsNotConstructed = errors.New("dispute must be created via Open or Restore")
	ErrAlreadyResolved         = errors.New("dispute is already resolved")
	ErrAlreadyOpen             = errors.New("order already has an open dispute")
)

type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusResolved
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown has no canonical string
	return map[Status]string{
		StatusOpen:     "OPEN",
		StatusResolved: "RESOLVED",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("dispute status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("dispute status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Dispute is raised by an order participant and resolved by an admin.
type Dispute struct {
	id         kernel.UUID
	orderID    kernel.UUID
	openedBy   kernel.UUID
	reason     string
	status     Status
	resolution string
	resolvedBy *kernel.UUID
	createdAt  time.Time
	resolvedAt *time.Time

	guard guard.ConstructorGuard
}

// Open raises a new dispute. The reason is required.
func Open(id, orderID, openedBy kernel.UUID, reason string) (*Dispute, error) {
	d := &Dispute{
		status:    StatusOpen,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		wrapParam("orderID", orderID.Validate()),
		wrapParam("openedBy", openedBy.Validate()),
		d.setReason(reason),
	); err != nil {
		return nil, err
	}

	d.id = id
	d.orderID = orderID
	d.openedBy = openedBy
	return d, nil
}

// Restore rebuilds a dispute read from storage.
func Restore(
	id, orderID, openedBy kernel.UUID,
	reason string,
	status Status,
	resolution string,
	resolvedBy *kernel.UUID,
	createdAt time.Time,
	resolvedAt *time.Time,
) (*Dispute, error) {
	d, err := Open(id, orderID, openedBy, reason)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if status == StatusResolved && (resolvedBy == nil || resolvedAt == nil) {
		return nil, errs.NewValueIsRequiredError("resolvedBy")
	}

	d.status = status
	d.resolution = resolution
	d.resolvedBy = resolvedBy
	d.createdAt = createdAt
	d.resolvedAt = resolvedAt
	return d, nil
}

// Resolve closes the dispute with a resolution note.
func (d *Dispute) Resolve(by kernel.UUID, resolution string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.status == StatusResolved {
		return ErrAlreadyResolved
	}
	if err := by.Validate(); err != nil {
		return wrapParam("resolvedBy", err)
	}

	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	if n := utf8.RuneCountInString(resolution); n > MaxTextLength {
		return errs.NewValueIsOutOfRangeError("resolution length", n, 1, MaxTextLength)
	}

	now := time.Now().UTC()
	d.status = StatusResolved
	d.resolution = resolution
	d.resolvedBy = &by
	d.resolvedAt = &now
	return nil
}

func (d *Dispute) Validate() error {
	if d == nil {
		return ErrDisputeIsNotConstructed
	}
	return d.guard.Validate(ErrDisputeIsNotConstructed)
}

func (d *Dispute) ID() kernel.UUID {
	return d.id
}

func (d *Dispute) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Dispute) OpenedBy() kernel.UUID {
	return d.openedBy
}

func (d *Dispute) Reason() string {
	return d.reason
}

func (d *Dispute) Status() Status {
	return d.status
}

func (d *Dispute) IsOpen() bool {
	return d.status == StatusOpen
}

func (d *Dispute) Resolution() string {
	return d.resolution
}

func (d *Dispute) ResolvedBy() *kernel.UUID {
	return d.resolvedBy
}

func (d *Dispute) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Dispute) ResolvedAt() *time.Time {
	return d.resolvedAt
}

func (d *Dispute) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if n := utf8.RuneCountInString(reason); n > MaxTextLength {
		return errs.NewValueIsOutOfRangeError("reason length", n, 1, MaxTextLength)
	}
	d.reason = reason
	return nil
}

func wrapParam(name string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(name, err)
}

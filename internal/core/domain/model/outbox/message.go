package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// MaxAttempts is how many failed relays a message survives before it is
// parked as Failed.
const MaxAttempts = 10

var ErrMessageIsNotConstructed = errors.New("outbox message must be created via NewMessage or RestoreMessage")

type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusPublished
	StatusFailed
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown has no canonical string
	return map[Status]string{
		StatusPending:   "pending",
		StatusPublished: "published",
		StatusFailed:    "failed",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("outbox status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Message is one pending integration event.
type Message struct {
	id          kernel.UUID
	aggregateID kernel.UUID
	eventType   string
	payload     []byte
	status      Status
	attempts    int
	lastError   string
	createdAt   time.Time
	publishedAt *time.Time

	guard guard.ConstructorGuard
}

// NewMessage serializes payload as JSON and queues it as pending.
func NewMessage(aggregateID kernel.UUID, eventType string, payload any) (*Message, error) {
	if err := aggregateID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("aggregateID", err)
	}
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	return &Message{
		id:          kernel.NewUUID(),
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     raw,
		status:      StatusPending,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreMessage rebuilds a message read from storage.
func RestoreMessage(
	id, aggregateID kernel.UUID,
	eventType string,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
	publishedAt *time.Time,
) (*Message, error) {
	if err := errors.Join(id.Validate(), aggregateID.Validate()); err != nil {
		return nil, err
	}
	if _, ok := getStatusStrings()[status]; !ok {
		return nil, errs.NewValueIsInvalidError("outbox status")
	}
	if attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, MaxAttempts)
	}

	return &Message{
		id:          id,
		aggregateID: aggregateID,
		eventType:   eventType,
		payload:     payload,
		status:      status,
		attempts:    attempts,
		lastError:   lastError,
		createdAt:   createdAt,
		publishedAt: publishedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

// MarkPublished records a successful relay.
func (m *Message) MarkPublished(at time.Time) {
	m.status = StatusPublished
	m.publishedAt = &at
	m.lastError = ""
}

// MarkFailed records a failed relay. The message stays pending until
// MaxAttempts is reached.
func (m *Message) MarkFailed(cause error) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
	if m.attempts >= MaxAttempts {
		m.status = StatusFailed
	}
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) AggregateID() kernel.UUID {
	return m.aggregateID
}

func (m *Message) EventType() string {
	return m.eventType
}

// Payload returns a copy of the JSON body.
func (m *Message) Payload() []byte {
	out := make([]byte, len(m.payload))
	copy(out, m.payload)
	return out
}

func (m *Message) Status() Status {
	return m.status
}

func (m *Message) Attempts() int {
	return m.attempts
}

func (m *Message) LastError() string {
	return m.lastError
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) PublishedAt() *time.Time {
	return m.publishedAt
}

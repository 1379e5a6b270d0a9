package order

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// DeliveryType decides which tracking sequence an order follows. It is fixed
// when the order is placed.
type DeliveryType int

const (
	DeliveryUnknown DeliveryType = iota
	Digital
	Physical
	Hybrid
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	//nolint:exhaustive // DeliveryUnknown has no canonical string
	return map[DeliveryType]string{
		Digital:  "digital",
		Physical: "physical",
		Hybrid:   "hybrid",
	}
}

// ParseDeliveryType accepts "digital", "physical" or "hybrid" in any case.
func ParseDeliveryType(s string) (DeliveryType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for dt, str := range getDeliveryTypeStrings() {
		if str == needle {
			return dt, nil
		}
	}
	return DeliveryUnknown, newInvalidDeliveryTypeError(fmt.Errorf("%q is not a known delivery type", s))
}

// Validate checks that d is Digital, Physical or Hybrid.
//
// Returns:
//   - nil for a known delivery type
//   - ErrInvalidDeliveryType wrapping a ValueIsInvalidError otherwise
func (d DeliveryType) Validate() error {
	if _, ok := getDeliveryTypeStrings()[d]; !ok {
		return newInvalidDeliveryTypeError(fmt.Errorf("%d is not a valid delivery type", d))
	}
	return nil
}

// String returns the canonical lower-case name.
//
// Returns:
//   - "digital", "physical" or "hybrid" for valid values
//   - "unknown" for DeliveryUnknown and out-of-range values
func (d DeliveryType) String() string {
	if str, ok := getDeliveryTypeStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// MarshalText encodes d as its canonical name. DeliveryUnknown is refused
// so that it never reaches storage or the wire.
func (d DeliveryType) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts the same input as ParseDeliveryType.
func (d *DeliveryType) UnmarshalText(text []byte) error {
	parsed, err := ParseDeliveryType(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func newInvalidDeliveryTypeError(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDeliveryType, errs.NewValueIsInvalidErrorWithCause("deliveryType", cause))
}

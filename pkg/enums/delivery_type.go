package enums

import "fmt"

// DeliveryType describes the shipping speed a customer selected.
type DeliveryType string

const (
	DeliveryStandard DeliveryType = "STANDARD"
	DeliveryExpress  DeliveryType = "EXPRESS"
)

var validDeliveryTypes = []DeliveryType{
	DeliveryStandard,
	DeliveryExpress,
}

// String implements fmt.Stringer.
func (d DeliveryType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryType.
func (d DeliveryType) IsValid() bool {
	for _, candidate := range validDeliveryTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryType converts raw input into a DeliveryType. Empty input
// defaults to STANDARD.
func ParseDeliveryType(value string) (DeliveryType, error) {
	if value == "" {
		return DeliveryStandard, nil
	}
	for _, candidate := range validDeliveryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery type %q", value)
}

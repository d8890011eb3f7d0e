package services

import (
	"fmt"
	"strings"
	"time"
)

const (
	CourierTCS          = "tcs"
	CourierLeopards     = "leopards"
	CourierMAndP        = "mnp"
	CourierPakistanPost = "pakistanpost"
)

// NormalizeCourier returns a canonical key for known couriers, or "".
func NormalizeCourier(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "", "&", "n", ".", "")
	normalized = replacer.Replace(normalized)

	switch normalized {
	case "tcs", "tcsexpress", "tcscouriers":
		return CourierTCS
	case "leopards", "leopardscourier", "leopardscouriers":
		return CourierLeopards
	case "mnp", "mandp", "mnpexpress", "mullernphipps":
		return CourierMAndP
	case "pakistanpost", "pakpost", "ems":
		return CourierPakistanPost
	default:
		return ""
	}
}

// CanonicalCourierName maps a courier key to its display name.
func CanonicalCourierName(courier string) string {
	switch NormalizeCourier(courier) {
	case CourierTCS:
		return "TCS"
	case CourierLeopards:
		return "Leopards Courier"
	case CourierMAndP:
		return "M&P"
	case CourierPakistanPost:
		return "Pakistan Post"
	default:
		return ""
	}
}

// NormalizeShippingMethod keeps custom methods untouched and normalizes known
// couriers.
func NormalizeShippingMethod(method string) string {
	trimmed := strings.TrimSpace(method)
	if trimmed == "" {
		return ""
	}
	if canonical := CanonicalCourierName(trimmed); canonical != "" {
		return canonical
	}
	return trimmed
}

var shippingDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseShippingDate accepts a calendar date (2006-01-02) or an RFC 3339
// timestamp.
func ParseShippingDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range shippingDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

package deadline

import (
	"errors"
	"fmt"
	"strings"
)

// CountingMode selects how day distances are measured.
type CountingMode string

const (
	BusinessDays CountingMode = "business"
	CalendarDays CountingMode = "calendar"
)

var ErrUnknownCountingMode = errors.New("unknown counting mode")

// ParseCountingMode accepts "business"/"calendar" and the "_days" / "Days" suffixed forms.
// An empty value is BusinessDays.
func ParseCountingMode(value string) (CountingMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.TrimSuffix(strings.TrimSuffix(normalized, "days"), "_")
	switch normalized {
	case "", "business":
		return BusinessDays, nil
	case "calendar":
		return CalendarDays, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCountingMode, value)
	}
}

package deadline

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the workflow state of a tracked item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
	StatusLate       Status = "late"
	StatusSuspended  Status = "suspended"
)

var ErrUnknownStatus = errors.New("unknown status")

var statuses = []Status{StatusPending, StatusInProgress, StatusInReview, StatusDone, StatusLate, StatusSuspended}

// ParseStatus accepts the status tags case-insensitively, with "-" or " " in place of "_".
// An empty value is StatusPending.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	if normalized == "" {
		return StatusPending, nil
	}
	for _, s := range statuses {
		if string(s) == normalized {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
}

func (s Status) String() string {
	return string(s)
}

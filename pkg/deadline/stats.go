package deadline

import (
	"fmt"
	"time"
)

// Stats is a snapshot of an item's SLA consumption. Day counts follow the CountingMode.
type Stats struct {
	Elapsed             int
	Total               int
	Remaining           int
	Overdue             int
	ProgressPercent     int
	DerivedStatus       Status
	IsInconsistent      bool
	InconsistencyDetail string
	Violations          []Violation
}

// Violation reports a milestone that is later than the next present milestone in sequence.
type Violation struct {
	Earlier   MilestoneKind
	EarlierAt time.Time
	Later     MilestoneKind
	LaterAt   time.Time
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s) is after %s (%s)",
		v.Earlier, v.EarlierAt.Format(detailLayout), v.Later, v.LaterAt.Format(detailLayout))
}

const detailLayout = "2006-01-02 15:04"

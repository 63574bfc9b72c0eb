package deadline

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type ReportRenderer interface {
	Render(results []Result) (string, error)
}

// CsvReportRenderer renders one row per item, preceded by a header row.
type CsvReportRenderer struct{}

func NewCsvReportRenderer() *CsvReportRenderer {
	return &CsvReportRenderer{}
}

var reportHeader = []string{"Label", "Status", "Elapsed", "Total", "Remaining", "Overdue", "Progress %", "Inconsistency"}

func (r *CsvReportRenderer) Render(results []Result) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.Write(reportHeader); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	for _, result := range results {
		s := result.Stats
		row := []string{
			result.Label,
			s.DerivedStatus.String(),
			strconv.Itoa(s.Elapsed),
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Remaining),
			strconv.Itoa(s.Overdue),
			strconv.Itoa(s.ProgressPercent),
			s.InconsistencyDetail,
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

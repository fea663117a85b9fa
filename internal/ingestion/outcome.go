package ingestion

type RowStatus string

const (
	RowSuccess RowStatus = "success"
	RowSkipped RowStatus = "skipped"
	RowError   RowStatus = "error"
)

// RowOutcome is the explicit per-row result of the pipeline. Skips and errors
// carry the reason instead of disappearing into log lines.
type RowOutcome struct {
	Row    int       `json:"row"`
	Status RowStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
}

// RunSummary aggregates the outcomes of one ingestion run.
type RunSummary struct {
	Outcomes         []RowOutcome
	Succeeded        int
	Skipped          int
	Errored          int
	EmployeesUpdated int
}

func (s *RunSummary) Record(outcome RowOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.Status {
	case RowSuccess:
		s.Succeeded++
	case RowSkipped:
		s.Skipped++
	case RowError:
		s.Errored++
	}
}

// ErrorCount counts every row that did not produce a record.
func (s *RunSummary) ErrorCount() int {
	return s.Skipped + s.Errored
}

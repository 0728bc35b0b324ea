package articulation

import (
	"encoding/json"
	"time"

	"roughlab/internal/rough"
	"roughlab/internal/verification"
)

// Envelope is the JSON shape machine consumers get: the report with the
// derived fields (boundary, accuracy) materialized, plus the optional
// rule audit.
type Envelope struct {
	RunID       string    `json:"run_id"`
	Table       string    `json:"table,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	ElapsedMS   int64     `json:"elapsed_ms"`

	Objects        int      `json:"objects"`
	Attributes     []string `json:"attributes"`
	DecisionName   string   `json:"decision_name"`
	DecisionValues []string `json:"decision_values"`

	Partition      [][]int             `json:"partition"`
	Approximations []ApproximationView `json:"approximations"`
	Reducts        [][]string          `json:"reducts"`
	MinimalReducts [][]string          `json:"minimal_reducts"`
	Rules          []RuleView          `json:"rules"`
	Conflicts      []rough.Conflict    `json:"conflicts"`
	Consistent     bool                `json:"consistent"`
	Audit          *verification.Audit `json:"audit,omitempty"`
}

// ApproximationView carries one decision concept with its derived parts.
type ApproximationView struct {
	Decision string  `json:"decision"`
	Lower    []int   `json:"lower"`
	Upper    []int   `json:"upper"`
	Boundary []int   `json:"boundary"`
	Accuracy float64 `json:"accuracy"`
}

// RuleView pairs a rule's structure with its display text.
type RuleView struct {
	Conditions []rough.Condition `json:"conditions"`
	Decision   rough.Condition   `json:"decision"`
	Text       string            `json:"text"`
}

// NewEnvelope materializes the JSON view of a report.
func NewEnvelope(report *rough.Report, audit *verification.Audit) Envelope {
	env := Envelope{
		RunID:          report.RunID,
		Table:          report.Table,
		GeneratedAt:    report.GeneratedAt,
		ElapsedMS:      report.Elapsed.Milliseconds(),
		Objects:        report.Objects,
		Attributes:     report.Attributes,
		DecisionName:   report.DecisionName,
		DecisionValues: report.DecisionValues,
		Consistent:     report.Consistent,
		Conflicts:      report.Conflicts,
		Audit:          audit,
	}
	if report.Partition != nil {
		env.Partition = report.Partition.Blocks
	}
	for _, a := range report.Approximations {
		env.Approximations = append(env.Approximations, ApproximationView{
			Decision: a.Decision,
			Lower:    a.Lower,
			Upper:    a.Upper,
			Boundary: a.Boundary(),
			Accuracy: a.Accuracy(),
		})
	}
	for _, r := range report.Reducts {
		env.Reducts = append(env.Reducts, []string(r))
	}
	for _, r := range report.MinimalReducts {
		env.MinimalReducts = append(env.MinimalReducts, []string(r))
	}
	for _, r := range report.Rules {
		env.Rules = append(env.Rules, RuleView{
			Conditions: r.Conditions,
			Decision:   r.Decision,
			Text:       r.Text(),
		})
	}
	return env
}

// JSON renders the report (and optional audit) as an indented envelope.
func (e *Emitter) JSON(report *rough.Report, audit *verification.Audit) ([]byte, error) {
	return json.MarshalIndent(NewEnvelope(report, audit), "", "  ")
}

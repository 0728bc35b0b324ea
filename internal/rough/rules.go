package rough

import (
	"sort"
	"strings"

	"roughlab/internal/decision"
)

// Condition is one "attribute = value" clause of a rule.
type Condition struct {
	Attribute string
	Value     string
}

// Rule is a certain decision rule: every object matching all Conditions
// carries Decision.Value in the table's decision column. Certainty comes
// from induction over lower approximations only.
type Rule struct {
	Conditions []Condition
	Decision   Condition
}

// Text renders the rule in the canonical display form, for example
// "IF Outlook=Sunny AND Wind=Weak THEN Decision = No". Rules are deduped
// and sorted by this rendering.
func (r Rule) Text() string {
	var sb strings.Builder
	sb.WriteString("IF ")
	for i, c := range r.Conditions {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(c.Attribute)
		sb.WriteByte('=')
		sb.WriteString(c.Value)
	}
	sb.WriteString(" THEN ")
	sb.WriteString(r.Decision.Attribute)
	sb.WriteString(" = ")
	sb.WriteString(r.Decision.Value)
	return sb.String()
}

// InduceRules extracts the certain rules of the table under the given
// attribute subset: one rule per object in a lower approximation, with
// one condition per attribute in subset order. Duplicate rules collapse
// and the result is sorted by Text. A fully rough table yields an empty
// result, which is a finding, not a failure.
func InduceRules(tbl *decision.Table, attrs []string) ([]Rule, error) {
	p, err := NewPartition(tbl, attrs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var rules []Rule
	for _, value := range tbl.DecisionValues() {
		approx := approximateWith(tbl, p, value)
		for _, id := range approx.Lower {
			rule := Rule{
				Conditions: make([]Condition, len(attrs)),
				Decision:   Condition{Attribute: tbl.DecisionName(), Value: value},
			}
			for i, a := range attrs {
				v, _ := tbl.Value(id, a)
				rule.Conditions[i] = Condition{Attribute: a, Value: v}
			}
			key := rule.Text()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rules = append(rules, rule)
		}
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].Text() < rules[j].Text() })
	return rules, nil
}

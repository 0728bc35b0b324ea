package verification

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"roughlab/internal/decision"
	"roughlab/internal/rough"
)

func buildTable(t *testing.T, attrs []string, rows []map[string]string) *decision.Table {
	t.Helper()
	tbl, err := decision.New(attrs, "", rows)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	return tbl
}

func induce(t *testing.T, tbl *decision.Table) []rough.Rule {
	t.Helper()
	rules, err := rough.InduceRules(tbl, tbl.Attributes())
	if err != nil {
		t.Fatalf("inducing rules: %v", err)
	}
	return rules
}

func TestAuditRules_InducedRulesAreSound(t *testing.T) {
	tbl := buildTable(t, []string{"Outlook", "Wind"}, []map[string]string{
		{"Outlook": "Sunny", "Wind": "Weak", "Decision": "No"},
		{"Outlook": "Sunny", "Wind": "Strong", "Decision": "No"},
		{"Outlook": "Rain", "Wind": "Weak", "Decision": "Yes"},
		{"Outlook": "Rain", "Wind": "Strong", "Decision": "Yes"},
	})
	rules := induce(t, tbl)
	if len(rules) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(rules))
	}

	audit, err := NewAuditor().AuditRules(context.Background(), tbl, rules)
	if err != nil {
		t.Fatalf("AuditRules failed: %v", err)
	}
	if !audit.Sound {
		t.Errorf("induced rules must audit sound, violations: %v", audit.Violations)
	}
	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(audit.Covered, want) {
		t.Errorf("covered = %v, want %v", audit.Covered, want)
	}
	if len(audit.Uncovered) != 0 {
		t.Errorf("uncovered = %v, want none", audit.Uncovered)
	}
}

func TestAuditRules_EmptyRuleSet(t *testing.T) {
	tbl := buildTable(t, []string{"A1"}, []map[string]string{
		{"A1": "x", "Decision": "P"},
		{"A1": "x", "Decision": "N"},
	})

	audit, err := NewAuditor().AuditRules(context.Background(), tbl, nil)
	if err != nil {
		t.Fatalf("AuditRules failed: %v", err)
	}
	if !audit.Sound {
		t.Error("empty rule set must be vacuously sound")
	}
	if len(audit.Covered) != 0 {
		t.Errorf("covered = %v, want none", audit.Covered)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(audit.Uncovered, want) {
		t.Errorf("uncovered = %v, want %v", audit.Uncovered, want)
	}
}

func TestAuditRules_BoundaryObjectsStayUncovered(t *testing.T) {
	// Objects 1 and 3 are indiscernible with opposing labels; only
	// object 2 has a certain rule.
	tbl := buildTable(t, []string{"A1"}, []map[string]string{
		{"A1": "x", "Decision": "P"},
		{"A1": "y", "Decision": "P"},
		{"A1": "x", "Decision": "N"},
	})
	rules := induce(t, tbl)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}

	audit, err := NewAuditor().AuditRules(context.Background(), tbl, rules)
	if err != nil {
		t.Fatalf("AuditRules failed: %v", err)
	}
	if !audit.Sound {
		t.Errorf("audit must be sound, violations: %v", audit.Violations)
	}
	if want := []int{2}; !reflect.DeepEqual(audit.Covered, want) {
		t.Errorf("covered = %v, want %v", audit.Covered, want)
	}
	if want := []int{1, 3}; !reflect.DeepEqual(audit.Uncovered, want) {
		t.Errorf("uncovered = %v, want %v", audit.Uncovered, want)
	}
}

func TestAuditRules_FlagsViolation(t *testing.T) {
	tbl := buildTable(t, []string{"Outlook", "Wind"}, []map[string]string{
		{"Outlook": "Sunny", "Wind": "Weak", "Decision": "No"},
		{"Outlook": "Sunny", "Wind": "Strong", "Decision": "No"},
		{"Outlook": "Rain", "Wind": "Weak", "Decision": "Yes"},
	})

	// A hand-built bad rule: Sunny objects are labeled No, not Yes.
	bogus := []rough.Rule{{
		Conditions: []rough.Condition{{Attribute: "Outlook", Value: "Sunny"}},
		Decision:   rough.Condition{Attribute: "Decision", Value: "Yes"},
	}}

	audit, err := NewAuditor().AuditRules(context.Background(), tbl, bogus)
	if err != nil {
		t.Fatalf("AuditRules failed: %v", err)
	}
	if audit.Sound {
		t.Fatal("expected audit to flag the bogus rule")
	}

	want := []Violation{
		{Rule: 0, Object: 1, Expected: "Yes", Actual: "No"},
		{Rule: 0, Object: 2, Expected: "Yes", Actual: "No"},
	}
	if !reflect.DeepEqual(audit.Violations, want) {
		t.Errorf("violations = %v, want %v", audit.Violations, want)
	}
	if len(audit.Covered) != 0 {
		t.Errorf("covered = %v, want none", audit.Covered)
	}
}

func TestAuditRules_PartialConditionRuleMatchesWider(t *testing.T) {
	// A rule mentioning only Outlook matches both Wind variants.
	tbl := buildTable(t, []string{"Outlook", "Wind"}, []map[string]string{
		{"Outlook": "Rain", "Wind": "Weak", "Decision": "Yes"},
		{"Outlook": "Rain", "Wind": "Strong", "Decision": "Yes"},
		{"Outlook": "Sunny", "Wind": "Weak", "Decision": "No"},
	})
	partial := []rough.Rule{{
		Conditions: []rough.Condition{{Attribute: "Outlook", Value: "Rain"}},
		Decision:   rough.Condition{Attribute: "Decision", Value: "Yes"},
	}}

	audit, err := NewAuditor().AuditRules(context.Background(), tbl, partial)
	if err != nil {
		t.Fatalf("AuditRules failed: %v", err)
	}
	if !audit.Sound {
		t.Errorf("audit must be sound, violations: %v", audit.Violations)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(audit.Covered, want) {
		t.Errorf("covered = %v, want %v", audit.Covered, want)
	}
}

func TestAuditRules_Canceled(t *testing.T) {
	tbl := buildTable(t, []string{"A1"}, []map[string]string{
		{"A1": "x", "Decision": "P"},
		{"A1": "y", "Decision": "N"},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAuditor().AuditRules(ctx, tbl, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBuildProgram(t *testing.T) {
	rules := []rough.Rule{{
		Conditions: []rough.Condition{
			{Attribute: "Outlook", Value: "Sunny"},
			{Attribute: "Wind", Value: "Weak"},
		},
		Decision: rough.Condition{Attribute: "Decision", Value: "No"},
	}}

	program := buildProgram(rules)
	wantClause := `rule_match(0, Id) :- object_attr(Id, "Outlook", "Sunny"), object_attr(Id, "Wind", "Weak").`
	if !strings.Contains(program, wantClause) {
		t.Errorf("program missing clause %q:\n%s", wantClause, program)
	}
	if !strings.Contains(program, "Decl object_attr(Id, Attr, Val).") {
		t.Errorf("program missing object_attr declaration:\n%s", program)
	}
}

func TestFactRendering(t *testing.T) {
	f := Fact{Predicate: "object_attr", Args: []interface{}{1, "Outlook", "Sunny"}}
	if got, want := f.String(), `object_attr(1, "Outlook", "Sunny").`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if _, err := f.ToAtom(); err != nil {
		t.Errorf("ToAtom failed: %v", err)
	}

	bad := Fact{Predicate: "object_attr", Args: []interface{}{1.5}}
	if _, err := bad.ToAtom(); err == nil {
		t.Error("expected an error for an unsupported argument type")
	}
}

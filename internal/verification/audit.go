// Package verification replays induced rules as a Datalog program and
// checks them against the table they came from. The deduction runs on the
// mangle engine: object cells and rule consequents become extensional
// facts, each rule's antecedent becomes a clause, and the fixpoint yields
// which objects each rule matches and whether the matched decision agrees.
//
// Certain rules are sound by construction, so a failed audit points at a
// broken rule set (or a table edited after induction), not at bad luck.
package verification

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"go.uber.org/zap"

	"roughlab/internal/decision"
	"roughlab/internal/rough"
)

// derivedFactLimit caps fixpoint output so a malformed rule set cannot
// blow up the store.
const derivedFactLimit = 500000

// Violation is one disagreement found by the audit: the rule at Rule
// (index into the audited slice) matched Object but the object's recorded
// decision differs from the rule's consequent.
type Violation struct {
	Rule     int
	Object   int
	Expected string
	Actual   string
}

// Audit is the outcome of replaying a rule set over a table. Covered
// holds the objects some rule matched with the correct decision;
// Uncovered holds the rest, which for a consistent table should be empty
// and for an inconsistent one lists the boundary objects no certain rule
// can reach.
type Audit struct {
	Sound      bool
	Violations []Violation
	Covered    []int
	Uncovered  []int
}

// Auditor runs rule audits. Safe for concurrent use; every audit builds
// a fresh program and store.
type Auditor struct {
	log *zap.Logger
}

// Option adjusts an Auditor.
type Option func(*Auditor)

// WithLogger attaches a logger for evaluation diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(a *Auditor) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAuditor builds an auditor with a nop logger unless one is supplied.
func NewAuditor(opts ...Option) *Auditor {
	a := &Auditor{log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuditRules replays rules against tbl and reports soundness and
// coverage. An empty rule set is a valid input: nothing is matched, so
// every object comes back uncovered and the audit is vacuously sound.
func (a *Auditor) AuditRules(ctx context.Context, tbl *decision.Table, rules []rough.Rule) (*Audit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program := buildProgram(rules)
	parsed, err := parse.Unit(strings.NewReader(program))
	if err != nil {
		return nil, fmt.Errorf("failed to parse audit program: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(parsed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze audit program: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	facts := buildFacts(tbl, rules)
	for _, f := range facts {
		atom, err := f.ToAtom()
		if err != nil {
			return nil, fmt.Errorf("failed to stage fact %v: %w", f, err)
		}
		store.Add(atom)
	}

	stats, err := engine.EvalProgramWithStats(programInfo, store,
		engine.WithCreatedFactLimit(derivedFactLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate audit program: %w", err)
	}
	a.log.Debug("audit fixpoint reached",
		zap.Int("clauses", len(parsed.Clauses)),
		zap.Int("base_facts", len(facts)),
		zap.Int("strata", len(stats.Strata)),
	)

	matches, err := collectPairs(programInfo, store, "rule_match")
	if err != nil {
		return nil, err
	}
	agreed, err := collectPairs(programInfo, store, "rule_agree")
	if err != nil {
		return nil, err
	}

	agreeSet := make(map[[2]int]struct{}, len(agreed))
	coveredSet := make(map[int]struct{})
	for _, p := range agreed {
		agreeSet[p] = struct{}{}
		coveredSet[p[1]] = struct{}{}
	}

	audit := &Audit{Sound: true}
	for _, p := range matches {
		if _, ok := agreeSet[p]; ok {
			continue
		}
		audit.Sound = false
		audit.Violations = append(audit.Violations, Violation{
			Rule:     p[0],
			Object:   p[1],
			Expected: rules[p[0]].Decision.Value,
			Actual:   tbl.Decision(p[1]),
		})
	}
	sort.Slice(audit.Violations, func(i, j int) bool {
		if audit.Violations[i].Rule != audit.Violations[j].Rule {
			return audit.Violations[i].Rule < audit.Violations[j].Rule
		}
		return audit.Violations[i].Object < audit.Violations[j].Object
	})

	for _, id := range tbl.IDs() {
		if _, ok := coveredSet[id]; ok {
			audit.Covered = append(audit.Covered, id)
		} else {
			audit.Uncovered = append(audit.Uncovered, id)
		}
	}

	a.log.Info("rule audit complete",
		zap.Bool("sound", audit.Sound),
		zap.Int("rules", len(rules)),
		zap.Int("violations", len(audit.Violations)),
		zap.Int("covered", len(audit.Covered)),
		zap.Int("uncovered", len(audit.Uncovered)),
	)
	return audit, nil
}

// buildProgram emits the audit program: declarations, one match clause
// per rule, and the shared agreement and coverage clauses.
func buildProgram(rules []rough.Rule) string {
	var sb strings.Builder
	sb.WriteString("# Rule audit program (generated per run).\n")
	sb.WriteString("Decl object_attr(Id, Attr, Val).\n")
	sb.WriteString("Decl object_decision(Id, Val).\n")
	sb.WriteString("Decl rule_decision(Rule, Val).\n")
	sb.WriteString("Decl rule_match(Rule, Id).\n")
	sb.WriteString("Decl rule_agree(Rule, Id).\n")
	sb.WriteString("Decl covered(Id).\n\n")

	for i, rule := range rules {
		fmt.Fprintf(&sb, "rule_match(%d, Id) :- ", i)
		for j, cond := range rule.Conditions {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "object_attr(Id, %q, %q)", cond.Attribute, cond.Value)
		}
		sb.WriteString(".\n")
	}

	sb.WriteString("\nrule_agree(R, Id) :- rule_match(R, Id), rule_decision(R, D), object_decision(Id, D).\n")
	sb.WriteString("covered(Id) :- rule_agree(R, Id).\n")
	return sb.String()
}

// buildFacts stages the extensional database: one object_attr triple per
// cell, one object_decision per object, one rule_decision per rule.
func buildFacts(tbl *decision.Table, rules []rough.Rule) []Fact {
	attrs := tbl.Attributes()
	facts := make([]Fact, 0, tbl.Len()*(len(attrs)+1)+len(rules))
	for _, id := range tbl.IDs() {
		for _, attr := range attrs {
			v, _ := tbl.Value(id, attr)
			facts = append(facts, Fact{Predicate: "object_attr", Args: []interface{}{id, attr, v}})
		}
		facts = append(facts, Fact{Predicate: "object_decision", Args: []interface{}{id, tbl.Decision(id)}})
	}
	for i, rule := range rules {
		facts = append(facts, Fact{Predicate: "rule_decision", Args: []interface{}{i, rule.Decision.Value}})
	}
	return facts
}

// collectPairs drains a two-number predicate from the store, sorted.
func collectPairs(programInfo *analysis.ProgramInfo, store factstore.FactStore, predicate string) ([][2]int, error) {
	var pairs [][2]int
	for pred := range programInfo.Decls {
		if pred.Symbol != predicate {
			continue
		}
		var convErr error
		store.GetFacts(ast.NewQuery(pred), func(atom ast.Atom) error {
			first, second, err := pair(atom)
			if err != nil {
				convErr = err
				return err
			}
			pairs = append(pairs, [2]int{first, second})
			return nil
		})
		if convErr != nil {
			return nil, convErr
		}
		break
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs, nil
}

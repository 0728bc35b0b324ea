// Package decision defines the immutable decision table that every roughLAB
// analysis runs over: objects described by categorical condition attributes
// plus exactly one decision attribute.
//
// A Table is built once per analysis run from whatever the presentation shell
// collected (TUI grid, YAML document, CSV file) and is read-only afterwards.
// Validation happens at construction: a table with any empty cell never
// reaches the analytical engine.
package decision

import (
	"fmt"
	"strings"
)

// DefaultDecisionName is the decision column name used when a source does not
// name one. The interactive lab always uses it.
const DefaultDecisionName = "Decision"

// IncompleteTableError reports the first empty cell found during validation.
// It is fatal to the run and surfaced to the user verbatim.
type IncompleteTableError struct {
	Row    int    // 1-based object row
	Column string // attribute or decision name
}

func (e *IncompleteTableError) Error() string {
	return fmt.Sprintf("row %d, column %q is empty — fill all cells, empty values break equivalence classes", e.Row, e.Column)
}

// Table is an immutable snapshot of a decision table.
//
// Objects are identified by their 1-based row number, matching the labels the
// entry form shows ("row 1".."row n"). Identifiers are stable for the table's
// lifetime; all analytical results reference objects by these ids.
type Table struct {
	name     string
	attrs    []string
	decision string
	rows     []map[string]string
}

// New builds and validates a Table.
//
// attrs is the ordered condition attribute set; decisionName may be empty, in
// which case DefaultDecisionName is used. Each row must carry a non-empty
// value for every condition attribute and for the decision attribute.
// Values are trimmed of surrounding whitespace; a value that trims to ""
// counts as missing and yields *IncompleteTableError.
func New(attrs []string, decisionName string, rows []map[string]string) (*Table, error) {
	if decisionName == "" {
		decisionName = DefaultDecisionName
	}

	if len(attrs) == 0 {
		return nil, fmt.Errorf("decision table needs at least one condition attribute")
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("decision table needs at least 2 objects, got %d", len(rows))
	}

	seen := make(map[string]struct{}, len(attrs))
	cleanAttrs := make([]string, 0, len(attrs))
	for _, a := range attrs {
		a = strings.TrimSpace(a)
		if a == "" {
			return nil, fmt.Errorf("condition attribute name must not be empty")
		}
		if a == decisionName {
			return nil, fmt.Errorf("attribute %q collides with the decision column", a)
		}
		if _, dup := seen[a]; dup {
			return nil, fmt.Errorf("duplicate condition attribute %q", a)
		}
		seen[a] = struct{}{}
		cleanAttrs = append(cleanAttrs, a)
	}

	cleanRows := make([]map[string]string, 0, len(rows))
	for i, row := range rows {
		clean := make(map[string]string, len(cleanAttrs)+1)
		for _, a := range cleanAttrs {
			v := strings.TrimSpace(row[a])
			if v == "" {
				return nil, &IncompleteTableError{Row: i + 1, Column: a}
			}
			clean[a] = v
		}
		d := strings.TrimSpace(row[decisionName])
		if d == "" {
			return nil, &IncompleteTableError{Row: i + 1, Column: decisionName}
		}
		clean[decisionName] = d
		cleanRows = append(cleanRows, clean)
	}

	return &Table{
		attrs:    cleanAttrs,
		decision: decisionName,
		rows:     cleanRows,
	}, nil
}

// SetName attaches an optional display name (e.g. from a YAML document).
// It returns the table to allow chaining at construction sites.
func (t *Table) SetName(name string) *Table {
	t.name = name
	return t
}

// Name returns the optional display name, "" when unset.
func (t *Table) Name() string { return t.name }

// Len returns the number of objects.
func (t *Table) Len() int { return len(t.rows) }

// Attributes returns a copy of the ordered condition attribute names.
func (t *Table) Attributes() []string {
	out := make([]string, len(t.attrs))
	copy(out, t.attrs)
	return out
}

// DecisionName returns the name of the decision column.
func (t *Table) DecisionName() string { return t.decision }

// HasAttribute reports whether name is one of the condition attributes.
func (t *Table) HasAttribute(name string) bool {
	for _, a := range t.attrs {
		if a == name {
			return true
		}
	}
	return false
}

// IDs returns all object identifiers in table order (1..Len).
func (t *Table) IDs() []int {
	out := make([]int, len(t.rows))
	for i := range t.rows {
		out[i] = i + 1
	}
	return out
}

// Value returns the condition-attribute value of an object. ok is false when
// the id is out of range or attr is not a condition attribute of the table.
func (t *Table) Value(id int, attr string) (string, bool) {
	if id < 1 || id > len(t.rows) || !t.HasAttribute(attr) {
		return "", false
	}
	return t.rows[id-1][attr], true
}

// Decision returns the decision value of an object, "" for unknown ids.
func (t *Table) Decision(id int) string {
	if id < 1 || id > len(t.rows) {
		return ""
	}
	return t.rows[id-1][t.decision]
}

// DecisionValues returns the distinct decision values in first-occurrence
// order. The order is stable across runs, so every per-decision result keeps
// the same sequence the table introduced them in.
func (t *Table) DecisionValues() []string {
	seen := make(map[string]struct{}, 4)
	out := make([]string, 0, 4)
	for _, row := range t.rows {
		d := row[t.decision]
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Signature returns the value tuple of an object under the given attributes,
// joined into a single comparable key. Attributes must have been validated by
// the caller; unknown names contribute an empty component.
//
// The separator is \x1f (unit separator) so composite values cannot collide
// with each other.
func (t *Table) Signature(id int, attrs []string) string {
	if id < 1 || id > len(t.rows) {
		return ""
	}
	parts := make([]string, len(attrs))
	row := t.rows[id-1]
	for i, a := range attrs {
		parts[i] = row[a]
	}
	return strings.Join(parts, "\x1f")
}

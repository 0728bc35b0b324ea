package rough

import "fmt"

// InvalidAttributeError reports an attribute subset the table cannot answer
// for: an unknown name, a duplicate, the decision column, or an empty subset.
// The presentation shell only ever passes subsets of Table.Attributes(), so
// hitting one means a caller bug.
type InvalidAttributeError struct {
	Name   string // offending attribute, "" when the subset itself is bad
	Reason string
}

func (e *InvalidAttributeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid attribute subset: %s", e.Reason)
	}
	return fmt.Sprintf("invalid attribute %q: %s", e.Name, e.Reason)
}

// TooManyAttributesError is the fail-fast guard of the reduct search: the
// subset lattice has 2^m - 1 members, so the attribute count is bounded
// before enumeration starts. Recoverable by narrowing the attribute set or
// raising the configured bound.
type TooManyAttributesError struct {
	Count int
	Limit int
}

func (e *TooManyAttributesError) Error() string {
	return fmt.Sprintf("reduct search over %d attributes exceeds the configured bound of %d (2^%d subsets); narrow the attribute set or raise the bound", e.Count, e.Limit, e.Count)
}

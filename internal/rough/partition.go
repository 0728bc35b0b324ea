// Package rough implements the analytical core: indiscernibility
// partitions, lower and upper approximations, reduct search, certain rule
// induction, and conflict detection over decision tables.
//
// Every operation is a pure function of an immutable decision.Table and an
// attribute subset. Results use value types with deterministic ordering, so
// two runs over the same table always produce identical output regardless
// of worker count.
package rough

import (
	"sort"
	"strconv"
	"strings"

	"roughlab/internal/decision"
)

// Partition groups the objects of a table into equivalence classes: two
// objects share a block exactly when they agree on every attribute in
// Attrs. Blocks appear in order of their first member's id, and ids inside
// a block ascend, which keeps output stable across runs.
type Partition struct {
	Attrs  []string
	Blocks [][]int
}

// NewPartition computes the equivalence classes of tbl under the attribute
// subset attrs. The subset must be non-empty, duplicate-free, and drawn
// from the table's condition attributes.
func NewPartition(tbl *decision.Table, attrs []string) (*Partition, error) {
	if err := validateSubset(tbl, attrs); err != nil {
		return nil, err
	}

	blockIdx := make(map[string]int)
	blocks := make([][]int, 0, tbl.Len())
	for _, id := range tbl.IDs() {
		sig := tbl.Signature(id, attrs)
		i, ok := blockIdx[sig]
		if !ok {
			i = len(blocks)
			blockIdx[sig] = i
			blocks = append(blocks, nil)
		}
		blocks[i] = append(blocks[i], id)
	}

	return &Partition{Attrs: append([]string(nil), attrs...), Blocks: blocks}, nil
}

// Universe returns every object id covered by the partition, ascending.
func (p *Partition) Universe() []int {
	var ids []int
	for _, b := range p.Blocks {
		ids = append(ids, b...)
	}
	sort.Ints(ids)
	return ids
}

// Equal reports whether two partitions carve the universe into the same
// set of blocks. Block order and the attribute subsets behind them are
// irrelevant: {1,2}{3} equals {3}{1,2}. This is the comparison the reduct
// search runs on, so it must not depend on construction order.
func (p *Partition) Equal(other *Partition) bool {
	if other == nil || len(p.Blocks) != len(other.Blocks) {
		return false
	}
	keys := make(map[string]struct{}, len(p.Blocks))
	for _, b := range p.Blocks {
		keys[blockKey(b)] = struct{}{}
	}
	for _, b := range other.Blocks {
		if _, ok := keys[blockKey(b)]; !ok {
			return false
		}
	}
	return true
}

// Refines reports whether every block of p sits inside some block of
// other. A partition over a superset of attributes always refines one
// over a subset.
func (p *Partition) Refines(other *Partition) bool {
	if other == nil {
		return false
	}
	owner := make(map[int]int)
	for i, b := range other.Blocks {
		for _, id := range b {
			owner[id] = i
		}
	}
	for _, b := range p.Blocks {
		host, ok := owner[b[0]]
		if !ok {
			return false
		}
		for _, id := range b[1:] {
			if h, ok := owner[id]; !ok || h != host {
				return false
			}
		}
	}
	return true
}

// blockKey canonicalizes a block for set comparison: ids sorted, comma
// joined. NewPartition emits ascending blocks already, but equality must
// hold for any block ordering a caller hands in.
func blockKey(block []int) string {
	ids := append([]int(nil), block...)
	sort.Ints(ids)
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

// validateSubset rejects attribute subsets the table cannot answer for.
func validateSubset(tbl *decision.Table, attrs []string) error {
	if len(attrs) == 0 {
		return &InvalidAttributeError{Reason: "at least one condition attribute is required"}
	}
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if a == tbl.DecisionName() {
			return &InvalidAttributeError{Name: a, Reason: "the decision column cannot be used as a condition attribute"}
		}
		if !tbl.HasAttribute(a) {
			return &InvalidAttributeError{Name: a, Reason: "not a condition attribute of the table"}
		}
		if _, dup := seen[a]; dup {
			return &InvalidAttributeError{Name: a, Reason: "listed more than once"}
		}
		seen[a] = struct{}{}
	}
	return nil
}

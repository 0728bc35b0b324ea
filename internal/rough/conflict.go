package rough

import (
	"sort"

	"roughlab/internal/decision"
)

// Conflict is an equivalence class whose members disagree on the decision:
// the attributes cannot tell the objects apart, yet they were labeled
// differently. Objects ascend, Decisions are sorted and duplicate-free.
type Conflict struct {
	Objects   []int
	Decisions []string
}

// FindConflicts returns the inconsistent equivalence classes of the table
// under the given attribute subset, in block first-occurrence order. An
// empty result means the table is consistent for these attributes.
func FindConflicts(tbl *decision.Table, attrs []string) ([]Conflict, error) {
	p, err := NewPartition(tbl, attrs)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, block := range p.Blocks {
		if len(block) < 2 {
			continue
		}
		seen := make(map[string]struct{}, 2)
		var values []string
		for _, id := range block {
			v := tbl.Decision(id)
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		if len(values) < 2 {
			continue
		}
		sort.Strings(values)
		conflicts = append(conflicts, Conflict{
			Objects:   append([]int(nil), block...),
			Decisions: values,
		})
	}
	return conflicts, nil
}

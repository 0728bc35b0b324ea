package rough

import (
	"sort"

	"roughlab/internal/decision"
)

// Approximation bounds a decision concept from below and above. Lower
// holds the objects certainly in the concept (their whole equivalence
// class carries Decision), Upper the objects possibly in it (their class
// contains at least one carrier). Both are ascending and Lower ⊆ Upper.
type Approximation struct {
	Decision string
	Lower    []int
	Upper    []int
}

// Boundary returns Upper minus Lower: the objects whose membership in the
// concept the attributes cannot settle. Empty for a crisp concept.
func (a Approximation) Boundary() []int {
	inLower := make(map[int]struct{}, len(a.Lower))
	for _, id := range a.Lower {
		inLower[id] = struct{}{}
	}
	var boundary []int
	for _, id := range a.Upper {
		if _, ok := inLower[id]; !ok {
			boundary = append(boundary, id)
		}
	}
	return boundary
}

// Accuracy is |Lower| / |Upper|, the classic roughness measure. A concept
// no object possibly belongs to has accuracy 0, not NaN.
func (a Approximation) Accuracy() float64 {
	if len(a.Upper) == 0 {
		return 0
	}
	return float64(len(a.Lower)) / float64(len(a.Upper))
}

// Approximate computes the rough approximation of the concept "decision
// column = value" under the given attribute subset. An unknown value is
// not an error: it yields empty bounds, which the caller reads as "no
// object possibly matches".
func Approximate(tbl *decision.Table, attrs []string, value string) (Approximation, error) {
	p, err := NewPartition(tbl, attrs)
	if err != nil {
		return Approximation{}, err
	}
	return approximateWith(tbl, p, value), nil
}

// ApproximateAll runs Approximate for every decision value of the table,
// in the values' first-occurrence order, sharing one partition pass.
func ApproximateAll(tbl *decision.Table, attrs []string) ([]Approximation, error) {
	p, err := NewPartition(tbl, attrs)
	if err != nil {
		return nil, err
	}
	values := tbl.DecisionValues()
	out := make([]Approximation, len(values))
	for i, v := range values {
		out[i] = approximateWith(tbl, p, v)
	}
	return out, nil
}

// approximateWith folds a precomputed partition into the two bounds.
func approximateWith(tbl *decision.Table, p *Partition, value string) Approximation {
	approx := Approximation{Decision: value}
	for _, block := range p.Blocks {
		carriers := 0
		for _, id := range block {
			if tbl.Decision(id) == value {
				carriers++
			}
		}
		if carriers == 0 {
			continue
		}
		approx.Upper = append(approx.Upper, block...)
		if carriers == len(block) {
			approx.Lower = append(approx.Lower, block...)
		}
	}
	sort.Ints(approx.Lower)
	sort.Ints(approx.Upper)
	return approx
}

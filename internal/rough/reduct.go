package rough

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"roughlab/internal/decision"
)

// DefaultMaxAttributes bounds the reduct search. The subset lattice doubles
// with every attribute, so the search refuses to start past this point
// unless the caller raises the bound explicitly.
const DefaultMaxAttributes = 16

// Reduct is an attribute subset that induces the same partition as the
// full set it was searched under. Attribute order follows the searched
// set, not the alphabet.
type Reduct []string

// Key returns a stable identity for the reduct, used for set membership
// checks. Attribute names never contain the separator; table validation
// guarantees that.
func (r Reduct) Key() string {
	return strings.Join(r, "\x1f")
}

// FindReducts returns every non-empty subset of attrs whose partition
// equals the partition under attrs itself. The full set always qualifies,
// so the result is never empty. Results are ordered by subset size, then
// by position within attrs, which makes the search reproducible.
//
// The search is exhaustive over 2^m - 1 candidates and fails fast with a
// TooManyAttributesError when m exceeds the configured bound.
func FindReducts(ctx context.Context, tbl *decision.Table, attrs []string, opts ...Option) ([]Reduct, error) {
	cfg := newSettings(opts)

	if err := validateSubset(tbl, attrs); err != nil {
		return nil, err
	}
	if len(attrs) > cfg.maxAttrs {
		return nil, &TooManyAttributesError{Count: len(attrs), Limit: cfg.maxAttrs}
	}

	base, err := NewPartition(tbl, attrs)
	if err != nil {
		return nil, err
	}

	subsets := enumerateSubsets(attrs)
	hits := make([]bool, len(subsets))

	workers := cfg.workers
	if workers > len(subsets) {
		workers = len(subsets)
	}

	if workers <= 1 {
		for i, subset := range subsets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			p, err := NewPartition(tbl, subset)
			if err != nil {
				return nil, err
			}
			hits[i] = p.Equal(base)
		}
	} else {
		g, ctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				for i := w; i < len(subsets); i += workers {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
					p, err := NewPartition(tbl, subsets[i])
					if err != nil {
						return err
					}
					hits[i] = p.Equal(base)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var reducts []Reduct
	for i, hit := range hits {
		if hit {
			reducts = append(reducts, Reduct(subsets[i]))
		}
	}
	return reducts, nil
}

// MinimalReducts filters an all-subsets result down to the reducts with
// no smaller reduct inside them. The input must come from FindReducts, so
// every preserving subset is present and a one-element-removed membership
// check suffices.
func MinimalReducts(reducts []Reduct) []Reduct {
	present := make(map[string]struct{}, len(reducts))
	for _, r := range reducts {
		present[r.Key()] = struct{}{}
	}

	var minimal []Reduct
	for _, r := range reducts {
		if len(r) == 1 {
			minimal = append(minimal, r)
			continue
		}
		shrinkable := false
		rest := make(Reduct, 0, len(r)-1)
		for drop := range r {
			rest = rest[:0]
			for i, a := range r {
				if i != drop {
					rest = append(rest, a)
				}
			}
			if _, ok := present[rest.Key()]; ok {
				shrinkable = true
				break
			}
		}
		if !shrinkable {
			minimal = append(minimal, r)
		}
	}
	return minimal
}

// enumerateSubsets lists every non-empty subset of attrs, smallest first,
// combinations in positional order within each size.
func enumerateSubsets(attrs []string) [][]string {
	n := len(attrs)
	var subsets [][]string
	for size := 1; size <= n; size++ {
		idx := make([]int, size)
		for i := range idx {
			idx[i] = i
		}
		for {
			subset := make([]string, size)
			for i, j := range idx {
				subset[i] = attrs[j]
			}
			subsets = append(subsets, subset)

			i := size - 1
			for i >= 0 && idx[i] == i+n-size {
				i--
			}
			if i < 0 {
				break
			}
			idx[i]++
			for j := i + 1; j < size; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
	return subsets
}

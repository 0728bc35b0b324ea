package rough

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roughlab/internal/decision"
)

func mustTable(t *testing.T, attrs []string, rows []map[string]string) *decision.Table {
	t.Helper()
	tbl, err := decision.New(attrs, "", rows)
	require.NoError(t, err)
	return tbl
}

// crispTable has one indiscernible pair sharing a decision and one
// singleton, so every concept is crisp.
func crispTable(t *testing.T) *decision.Table {
	t.Helper()
	return mustTable(t, []string{"A1", "A2"}, []map[string]string{
		{"A1": "x", "A2": "y", "Decision": "P"},
		{"A1": "x", "A2": "y", "Decision": "P"},
		{"A1": "x", "A2": "z", "Decision": "N"},
	})
}

// roughTable is the smallest inconsistent table: two objects the single
// attribute cannot tell apart, labeled differently.
func roughTable(t *testing.T) *decision.Table {
	t.Helper()
	return mustTable(t, []string{"A1"}, []map[string]string{
		{"A1": "x", "Decision": "P"},
		{"A1": "x", "Decision": "N"},
	})
}

// weatherTable needs both attributes to separate all four objects.
func weatherTable(t *testing.T) *decision.Table {
	t.Helper()
	return mustTable(t, []string{"Outlook", "Wind"}, []map[string]string{
		{"Outlook": "Sunny", "Wind": "Weak", "Decision": "No"},
		{"Outlook": "Sunny", "Wind": "Strong", "Decision": "No"},
		{"Outlook": "Rain", "Wind": "Weak", "Decision": "Yes"},
		{"Outlook": "Rain", "Wind": "Strong", "Decision": "Yes"},
	})
}

// noiseTable carries a constant attribute that discerns nothing, so the
// search should find a proper reduct below the full set.
func noiseTable(t *testing.T) *decision.Table {
	t.Helper()
	return mustTable(t, []string{"Color", "Size", "Noise"}, []map[string]string{
		{"Color": "Red", "Size": "Big", "Noise": "k", "Decision": "Yes"},
		{"Color": "Red", "Size": "Small", "Noise": "k", "Decision": "No"},
		{"Color": "Blue", "Size": "Big", "Noise": "k", "Decision": "No"},
		{"Color": "Blue", "Size": "Small", "Noise": "k", "Decision": "Yes"},
	})
}

func TestNewPartition(t *testing.T) {
	t.Run("groups by value tuple in first occurrence order", func(t *testing.T) {
		p, err := NewPartition(crispTable(t), []string{"A1", "A2"})
		require.NoError(t, err)

		want := [][]int{{1, 2}, {3}}
		if diff := cmp.Diff(want, p.Blocks); diff != "" {
			t.Errorf("blocks mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []string{"A1", "A2"}, p.Attrs)
	})

	t.Run("single attribute merges objects", func(t *testing.T) {
		p, err := NewPartition(crispTable(t), []string{"A1"})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 2, 3}}, p.Blocks)
	})

	t.Run("blocks are disjoint and cover the universe", func(t *testing.T) {
		tbl := noiseTable(t)
		for _, attrs := range [][]string{
			{"Color"}, {"Size"}, {"Noise"},
			{"Color", "Size"}, {"Size", "Noise"},
			{"Color", "Size", "Noise"},
		} {
			p, err := NewPartition(tbl, attrs)
			require.NoError(t, err)

			seen := make(map[int]int)
			for _, b := range p.Blocks {
				require.NotEmpty(t, b)
				for _, id := range b {
					seen[id]++
				}
			}
			for _, id := range tbl.IDs() {
				assert.Equal(t, 1, seen[id], "object %d under %v", id, attrs)
			}
			assert.Len(t, seen, tbl.Len())
			assert.Equal(t, tbl.IDs(), p.Universe())
		}
	})

	t.Run("identical runs give identical partitions", func(t *testing.T) {
		tbl := weatherTable(t)
		p1, err := NewPartition(tbl, []string{"Outlook", "Wind"})
		require.NoError(t, err)
		p2, err := NewPartition(tbl, []string{"Outlook", "Wind"})
		require.NoError(t, err)
		if diff := cmp.Diff(p1, p2); diff != "" {
			t.Errorf("runs diverged (-first +second):\n%s", diff)
		}
	})
}

func TestNewPartitionRejectsBadSubsets(t *testing.T) {
	tbl := crispTable(t)

	cases := []struct {
		name  string
		attrs []string
		want  string
	}{
		{"empty subset", nil, ""},
		{"unknown attribute", []string{"A1", "A9"}, "A9"},
		{"duplicate attribute", []string{"A1", "A1"}, "A1"},
		{"decision column", []string{"Decision"}, "Decision"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPartition(tbl, tc.attrs)
			require.Error(t, err)

			var invalid *InvalidAttributeError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.want, invalid.Name)
		})
	}
}

func TestPartitionEqual(t *testing.T) {
	t.Run("insensitive to block order", func(t *testing.T) {
		p1 := &Partition{Blocks: [][]int{{1, 2}, {3}}}
		p2 := &Partition{Blocks: [][]int{{3}, {1, 2}}}
		assert.True(t, p1.Equal(p2))
		assert.True(t, p2.Equal(p1))
	})

	t.Run("insensitive to id order within a block", func(t *testing.T) {
		p1 := &Partition{Blocks: [][]int{{1, 2}, {3}}}
		p2 := &Partition{Blocks: [][]int{{3}, {2, 1}}}
		assert.True(t, p1.Equal(p2))
	})

	t.Run("different groupings are unequal", func(t *testing.T) {
		p1 := &Partition{Blocks: [][]int{{1, 2}, {3}}}
		assert.False(t, p1.Equal(&Partition{Blocks: [][]int{{1}, {2, 3}}}))
		assert.False(t, p1.Equal(&Partition{Blocks: [][]int{{1, 2, 3}}}))
		assert.False(t, p1.Equal(nil))
	})

	t.Run("attribute labels do not affect equality", func(t *testing.T) {
		tbl := noiseTable(t)
		full, err := NewPartition(tbl, []string{"Color", "Size", "Noise"})
		require.NoError(t, err)
		slim, err := NewPartition(tbl, []string{"Color", "Size"})
		require.NoError(t, err)
		assert.True(t, full.Equal(slim))
	})
}

func TestPartitionRefines(t *testing.T) {
	tbl := noiseTable(t)

	full, err := NewPartition(tbl, []string{"Color", "Size", "Noise"})
	require.NoError(t, err)

	for _, attrs := range [][]string{{"Color"}, {"Size"}, {"Noise"}, {"Color", "Size"}} {
		sub, err := NewPartition(tbl, attrs)
		require.NoError(t, err)
		assert.True(t, full.Refines(sub), "full partition must refine %v", attrs)
	}

	colorOnly, err := NewPartition(tbl, []string{"Color"})
	require.NoError(t, err)
	assert.False(t, colorOnly.Refines(full))
	assert.False(t, colorOnly.Refines(nil))
}

func TestInvalidAttributeErrorMessage(t *testing.T) {
	err := &InvalidAttributeError{Name: "Humidity", Reason: "not a condition attribute of the table"}
	assert.Contains(t, err.Error(), `"Humidity"`)

	empty := &InvalidAttributeError{Reason: "at least one condition attribute is required"}
	assert.Contains(t, empty.Error(), "invalid attribute subset")

	wrapped := errors.Join(errors.New("outer"), err)
	var target *InvalidAttributeError
	assert.True(t, errors.As(wrapped, &target))
}

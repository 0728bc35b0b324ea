package rough

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateSubsets(t *testing.T) {
	got := enumerateSubsets([]string{"a", "b", "c"})
	want := [][]string{
		{"a"}, {"b"}, {"c"},
		{"a", "b"}, {"a", "c"}, {"b", "c"},
		{"a", "b", "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subset order mismatch (-want +got):\n%s", diff)
	}
}

func TestFindReducts(t *testing.T) {
	ctx := context.Background()

	t.Run("drops a constant attribute", func(t *testing.T) {
		attrs := []string{"Color", "Size", "Noise"}
		reducts, err := FindReducts(ctx, noiseTable(t), attrs)
		require.NoError(t, err)

		want := []Reduct{
			{"Color", "Size"},
			{"Color", "Size", "Noise"},
		}
		if diff := cmp.Diff(want, reducts); diff != "" {
			t.Errorf("reducts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("full set is always a member", func(t *testing.T) {
		attrs := []string{"Outlook", "Wind"}
		reducts, err := FindReducts(ctx, weatherTable(t), attrs)
		require.NoError(t, err)
		assert.Equal(t, []Reduct{{"Outlook", "Wind"}}, reducts)
	})

	t.Run("single attribute table", func(t *testing.T) {
		tbl := mustTable(t, []string{"Level"}, []map[string]string{
			{"Level": "Low", "Decision": "Yes"},
			{"Level": "Low", "Decision": "Yes"},
			{"Level": "High", "Decision": "No"},
			{"Level": "High", "Decision": "No"},
		})
		reducts, err := FindReducts(ctx, tbl, []string{"Level"})
		require.NoError(t, err)
		assert.Equal(t, []Reduct{{"Level"}}, reducts)
	})

	t.Run("every result reproduces the full partition", func(t *testing.T) {
		tbl := noiseTable(t)
		attrs := []string{"Color", "Size", "Noise"}
		base, err := NewPartition(tbl, attrs)
		require.NoError(t, err)

		reducts, err := FindReducts(ctx, tbl, attrs)
		require.NoError(t, err)
		require.NotEmpty(t, reducts)
		for _, r := range reducts {
			p, err := NewPartition(tbl, r)
			require.NoError(t, err)
			assert.True(t, p.Equal(base), "reduct %v", r)
		}
	})

	t.Run("worker count does not change the result", func(t *testing.T) {
		tbl := noiseTable(t)
		attrs := []string{"Color", "Size", "Noise"}

		serial, err := FindReducts(ctx, tbl, attrs, WithWorkers(1))
		require.NoError(t, err)
		for _, workers := range []int{2, 4, 8} {
			parallel, err := FindReducts(ctx, tbl, attrs, WithWorkers(workers))
			require.NoError(t, err)
			if diff := cmp.Diff(serial, parallel); diff != "" {
				t.Errorf("workers=%d diverged from serial (-serial +parallel):\n%s", workers, diff)
			}
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		tbl := noiseTable(t)
		attrs := []string{"Color", "Size", "Noise"}
		first, err := FindReducts(ctx, tbl, attrs)
		require.NoError(t, err)
		second, err := FindReducts(ctx, tbl, attrs)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("runs diverged (-first +second):\n%s", diff)
		}
	})
}

func TestFindReductsBound(t *testing.T) {
	tbl := noiseTable(t)
	attrs := []string{"Color", "Size", "Noise"}

	_, err := FindReducts(context.Background(), tbl, attrs, WithMaxAttributes(2))
	require.Error(t, err)

	var tooMany *TooManyAttributesError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 3, tooMany.Count)
	assert.Equal(t, 2, tooMany.Limit)
	assert.Contains(t, err.Error(), "bound")

	_, err = FindReducts(context.Background(), tbl, attrs, WithMaxAttributes(3))
	assert.NoError(t, err)
}

func TestFindReductsCancellation(t *testing.T) {
	tbl := noiseTable(t)
	attrs := []string{"Color", "Size", "Noise"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := FindReducts(ctx, tbl, attrs, WithWorkers(workers))
		assert.True(t, errors.Is(err, context.Canceled), "workers=%d: %v", workers, err)
	}
}

func TestFindReductsRejectsBadSubset(t *testing.T) {
	var invalid *InvalidAttributeError
	_, err := FindReducts(context.Background(), crispTable(t), []string{"A1", "Ghost"})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Ghost", invalid.Name)
}

func TestMinimalReducts(t *testing.T) {
	t.Run("filters supersets from a search result", func(t *testing.T) {
		tbl := noiseTable(t)
		attrs := []string{"Color", "Size", "Noise"}
		reducts, err := FindReducts(context.Background(), tbl, attrs)
		require.NoError(t, err)

		minimal := MinimalReducts(reducts)
		assert.Equal(t, []Reduct{{"Color", "Size"}}, minimal)
	})

	t.Run("keeps incomparable reducts", func(t *testing.T) {
		in := []Reduct{
			{"A", "B"},
			{"A", "C"},
			{"A", "B", "C"},
		}
		assert.Equal(t, []Reduct{{"A", "B"}, {"A", "C"}}, MinimalReducts(in))
	})

	t.Run("single attribute reducts survive", func(t *testing.T) {
		in := []Reduct{{"A"}, {"A", "B"}, {"A", "C"}, {"A", "B", "C"}}
		assert.Equal(t, []Reduct{{"A"}}, MinimalReducts(in))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MinimalReducts(nil))
	})
}

func TestReductKey(t *testing.T) {
	assert.NotEqual(t, Reduct{"ab", "c"}.Key(), Reduct{"a", "bc"}.Key())
	assert.Equal(t, Reduct{"a", "b"}.Key(), Reduct{"a", "b"}.Key())
}

func TestTooManyAttributesErrorMessage(t *testing.T) {
	err := &TooManyAttributesError{Count: 20, Limit: 16}
	assert.Contains(t, err.Error(), "20")
	assert.Contains(t, err.Error(), "16")
}

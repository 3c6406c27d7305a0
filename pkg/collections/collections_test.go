package collections_test

import (
	"testing"

	"github.com/alkime/stylepost/pkg/collections"

	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Run("basic types", func(t *testing.T) {
		strs := []string{"a", "bb", "ccc"}
		lengths := collections.Apply(strs, func(s string) int {
			return len(s)
		})

		require.Equal(t, []int{1, 2, 3}, lengths)
	})

	t.Run("structs", func(t *testing.T) {
		type stage struct {
			Name  string
			Order int
		}

		stages := []stage{
			{Name: "style", Order: 1},
			{Name: "research", Order: 2},
			{Name: "write", Order: 3},
		}

		names := collections.Apply(stages, func(s stage) string {
			return s.Name
		})
		require.Equal(t, []string{"style", "research", "write"}, names)
	})
}

func TestCap(t *testing.T) {
	tests := []struct {
		name         string
		items        []int
		max          int
		wantItems    []int
		wantOverflow int
	}{
		{name: "under cap", items: []int{1, 2}, max: 3, wantItems: []int{1, 2}, wantOverflow: 0},
		{name: "at cap", items: []int{1, 2, 3}, max: 3, wantItems: []int{1, 2, 3}, wantOverflow: 0},
		{name: "over cap", items: []int{1, 2, 3, 4, 5}, max: 3, wantItems: []int{1, 2, 3}, wantOverflow: 2},
		{name: "no cap", items: []int{1, 2, 3}, max: 0, wantItems: []int{1, 2, 3}, wantOverflow: 0},
		{name: "nil", items: nil, max: 3, wantItems: nil, wantOverflow: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, overflow := collections.Cap(tt.items, tt.max)
			require.Equal(t, tt.wantItems, got)
			require.Equal(t, tt.wantOverflow, overflow)
		})
	}
}

func TestSplitCompact(t *testing.T) {
	require.Equal(t, []string{"safety knives", "box cutter"},
		collections.SplitCompact(" safety knives, ,box cutter ,", ","))
	require.Nil(t, collections.SplitCompact("   ", ","))
	require.Equal(t, []string{"one", "two"}, collections.SplitCompact("one\n\n two\n", "\n"))
}

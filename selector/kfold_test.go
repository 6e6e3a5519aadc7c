package selector

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKFoldPartitions(t *testing.T) {
	folds := KFold(10, 3, 14)
	require.Len(t, folds, 3)

	var all []int
	sizes := []int{}
	for _, f := range folds {
		assert.Len(t, f.Train, 10-len(f.Test))
		seen := map[int]bool{}
		for _, i := range f.Test {
			seen[i] = true
		}
		for _, i := range f.Train {
			assert.False(t, seen[i], "index %d in both train and test", i)
		}
		all = append(all, f.Test...)
		sizes = append(sizes, len(f.Test))
	}
	sort.Ints(all)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)
	assert.Equal(t, []int{4, 3, 3}, sizes)
}

func TestKFoldDeterministic(t *testing.T) {
	assert.Equal(t, KFold(9, 3, 14), KFold(9, 3, 14))
}

func TestKFoldInvalid(t *testing.T) {
	assert.Nil(t, KFold(2, 3, 14))
	assert.Nil(t, KFold(5, 0, 14))
}

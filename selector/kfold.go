package selector

import (
	"math/rand"
	"sort"
)

// Fold is one train/test partition of sequence indices.
type Fold struct {
	Train []int
	Test  []int
}

// KFold shuffles 0..n-1 with seed and cuts it into k consecutive test blocks.
// The first n%k blocks hold one extra index. Both index lists are sorted.
func KFold(n, k int, seed int64) []Fold {
	if k < 1 || n < k {
		return nil
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	folds := make([]Fold, 0, k)
	start := 0
	for i := 0; i < k; i++ {
		size := n / k
		if i < n%k {
			size++
		}
		test := append([]int(nil), perm[start:start+size]...)
		train := make([]int, 0, n-size)
		train = append(train, perm[:start]...)
		train = append(train, perm[start+size:]...)
		sort.Ints(test)
		sort.Ints(train)
		folds = append(folds, Fold{Train: train, Test: test})
		start += size
	}
	return folds
}

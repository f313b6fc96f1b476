package ml

import (
	"math"
	"math/rand"
)

// TrainTestSplit permutes 0..n-1 with a generator seeded by seed and puts the
// first ceil(testFraction*n) indices in the test set. The same n, fraction and
// seed always yield the same split.
func TrainTestSplit(n int, testFraction float64, seed int64) (train []int, test []int) {
	if n <= 0 {
		return nil, nil
	}
	testSize := int(math.Ceil(testFraction * float64(n)))
	if testSize > n {
		testSize = n
	}

	order := rand.New(rand.NewSource(seed)).Perm(n)
	test = append([]int(nil), order[:testSize]...)
	train = append([]int(nil), order[testSize:]...)
	return train, test
}

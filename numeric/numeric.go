// Package numeric has small array helpers used across the analysis code.
package numeric

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"
)

var (
	ErrRaggedRows   = errors.New("numeric: rows have different lengths")
	ErrTooManyPairs = errors.New("numeric: more pairs requested than exist")
)

// UniqueRows returns the distinct rows of a 2-D table, sorted
// lexicographically. The input is not modified.
func UniqueRows[T cmp.Ordered](rows [][]T) ([][]T, error) {
	if len(rows) == 0 {
		return [][]T{}, nil
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedRows, i, len(r), width)
		}
	}

	sorted := make([][]T, len(rows))
	for i, r := range rows {
		sorted[i] = slices.Clone(r)
	}
	slices.SortFunc(sorted, slices.Compare[[]T])

	return slices.CompactFunc(sorted, slices.Equal[[]T]), nil
}

// RandomPairs draws numPairs distinct index pairs (i, j) with
// 0 <= i < j < total, in the order they were drawn. A nil r uses a freshly
// seeded source.
func RandomPairs(r *rand.Rand, total, numPairs int) ([][2]int, error) {
	if total < 0 || numPairs < 0 {
		return nil, fmt.Errorf("numeric: negative size (total %d, pairs %d)", total, numPairs)
	}
	possible := total * (total - 1) / 2
	if numPairs > possible {
		return nil, fmt.Errorf("%w: %d of %d", ErrTooManyPairs, numPairs, possible)
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// rejection sampling gets slow near saturation; shuffle instead
	if numPairs > possible/2 {
		return shuffledPairs(r, total, numPairs), nil
	}

	seen := make(map[[2]int]struct{}, numPairs)
	pairs := make([][2]int, 0, numPairs)
	for len(pairs) < numPairs {
		i, j := r.Intn(total), r.Intn(total)
		if i == j {
			continue
		}
		if i > j {
			i, j = j, i
		}
		p := [2]int{i, j}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func shuffledPairs(r *rand.Rand, total, numPairs int) [][2]int {
	all := make([][2]int, 0, total*(total-1)/2)
	for i := 0; i < total; i++ {
		for j := i + 1; j < total; j++ {
			all = append(all, [2]int{i, j})
		}
	}
	// partial Fisher-Yates: only the first numPairs slots matter
	for k := 0; k < numPairs; k++ {
		m := k + r.Intn(len(all)-k)
		all[k], all[m] = all[m], all[k]
	}
	return all[:numPairs]
}

// Maxima returns the indices of the strict local maxima of a. The first and
// last elements only need to exceed their one neighbour; a single element is
// a maximum. NaN compares false both ways, so neither a NaN nor its
// neighbours are maxima.
func Maxima[T cmp.Ordered](a []T) []int {
	idx := []int{}
	for i := range a {
		if i > 0 && !(a[i] > a[i-1]) {
			continue
		}
		if i < len(a)-1 && !(a[i] > a[i+1]) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

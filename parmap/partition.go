package parmap

import (
	"fmt"

	"github.com/spaolacci/murmur3"
)

// Partitioner returns the partition, in [0, p), that receives item. index
// is the item's position in the input slice.
type Partitioner[T any] func(item T, index, p int) int

// RoundRobin assigns index i to partition i mod p.
func RoundRobin[T any](_ T, index, p int) int {
	return index % p
}

// ByKey hashes key(item) with murmur3, so items with equal keys always land
// on the same worker.
func ByKey[T any](key func(T) []byte) Partitioner[T] {
	return func(item T, _ int, p int) int {
		return int(murmur3.Sum64(key(item)) % uint64(p))
	}
}

// WithPartitioner replaces round-robin partitioning. The partitioner must be
// built for the input type of the Map call it is passed to.
func WithPartitioner[T any](pt Partitioner[T]) Option {
	return func(o *Options) {
		o.assign = func(item any, index, p int) int {
			v, ok := item.(T)
			if !ok {
				return -1
			}
			return pt(v, index, p)
		}
	}
}

// Split divides jobs round robin into exactly p partitions. Partition k
// holds jobs[k], jobs[k+p], jobs[k+2p], ...; trailing partitions are empty
// when len(jobs) < p. Split returns nil when p < 1.
func Split[T any](jobs []T, p int) [][]T {
	if p < 1 {
		return nil
	}
	parts, _ := split(jobs, p, nil)
	out := make([][]T, len(parts))
	for i, part := range parts {
		out[i] = part.items
	}
	return out
}

// partition is the work of one worker. indices[j] is the input position of
// items[j].
type partition[T any] struct {
	id      int
	items   []T
	indices []int
}

func split[T any](jobs []T, p int, assign func(item any, index, p int) int) ([]partition[T], error) {
	parts := make([]partition[T], p)
	for k := range parts {
		parts[k].id = k
		if assign == nil {
			n := len(jobs) / p
			if k < len(jobs)%p {
				n++
			}
			parts[k].items = make([]T, 0, n)
			parts[k].indices = make([]int, 0, n)
		}
	}

	for i, job := range jobs {
		var k int
		if assign == nil {
			k = i % p
		} else {
			k = assign(job, i, p)
		}
		if k < 0 || k >= p {
			return nil, &ConfigError{Field: "partitioner", Value: fmt.Sprintf("item %d -> %d of %d", i, k, p)}
		}
		parts[k].items = append(parts[k].items, job)
		parts[k].indices = append(parts[k].indices, i)
	}

	return parts, nil
}

// Package utils provides common utility functions for the strata project.
package utils

import (
	"container/heap"
	"math"
	"sort"
)

// SparseVector is a term-weighted vector keyed by vocabulary index.
// Absent keys carry zero weight.
type SparseVector map[int]float64

// Norm returns the Euclidean (L2) norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// SparseCosineSimilarity calculates the cosine similarity between two
// sparse vectors. Returns 0 if either vector is empty or has zero
// magnitude. The result is in [0, 1] for non-negative weights.
func SparseCosineSimilarity(a, b SparseVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Iterate over the smaller vector.
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for i, wa := range a {
		if wb, ok := b[i]; ok {
			dot += wa * wb
		}
	}
	if dot == 0 {
		return 0
	}

	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (normA * normB)
}

// ScoredItem represents an item with a score for top-K selection.
type ScoredItem[T any] struct {
	Item  T
	Score float64
}

// minHeap implements a min-heap for ScoredItem.
// The smallest score sits at the root, so deciding whether a new item
// belongs in the current top K is a single comparison.
type minHeap[T any] []ScoredItem[T]

func (h minHeap[T]) Len() int           { return len(h) }
func (h minHeap[T]) Less(i, j int) bool { return h[i].Score < h[j].Score } // min-heap
func (h minHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap[T]) Push(x any) {
	*h = append(*h, x.(ScoredItem[T]))
}

func (h *minHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopKByScore returns the top K items with the highest scores using a heap.
// This is O(n log k), cheaper than a full sort when k << n. The returned
// slice is sorted in descending order by score.
func TopKByScore[T any](items []ScoredItem[T], k int) []ScoredItem[T] {
	if k <= 0 || len(items) == 0 {
		return nil
	}

	if k >= len(items) {
		result := make([]ScoredItem[T], len(items))
		copy(result, items)
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Score > result[j].Score
		})
		return result
	}

	h := make(minHeap[T], 0, k)
	heap.Init(&h)

	for _, item := range items {
		if h.Len() < k {
			heap.Push(&h, item)
		} else if item.Score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, item)
		}
	}

	result := make([]ScoredItem[T], h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(ScoredItem[T])
	}
	return result
}

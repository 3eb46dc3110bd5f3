package orders

import (
	"math"
	"sort"
)

// WeightedChoice picks items with probability weight_i / sum(weights).
//
// The weights are normalized to sum to 1 and stored as a cumulative table, so one Float64 draw
// in [0, 1) selects the first item whose cumulative probability exceeds the draw.
type WeightedChoice[T any] struct {
	items      []T
	cumulative []float64
}

// NewWeightedChoice builds a WeightedChoice. Every weight must be positive, the sum must fit into an int,
// and there must be exactly one weight per item.
func NewWeightedChoice[T any](items []T, weights []int) (WeightedChoice[T], error) {
	if len(items) == 0 || len(items) != len(weights) {
		return WeightedChoice[T]{}, ErrInvalidWeights
	}

	total := 0
	for _, weight := range weights {
		if weight <= 0 || weight > math.MaxInt-total {
			return WeightedChoice[T]{}, ErrInvalidWeights
		}
		total += weight
	}

	cumulative := make([]float64, len(weights))
	running := 0.0
	for i, weight := range weights {
		running += float64(weight) / float64(total)
		cumulative[i] = running
	}
	cumulative[len(cumulative)-1] = 1.0 // absorb floating point residue

	itemsCopy := make([]T, len(items))
	copy(itemsCopy, items)

	return WeightedChoice[T]{items: itemsCopy, cumulative: cumulative}, nil
}

// Pick draws one item from the source.
func (w WeightedChoice[T]) Pick(source Source) T {
	r := source.Float64()

	i := sort.Search(len(w.cumulative), func(i int) bool {
		return w.cumulative[i] > r
	})
	if i == len(w.items) {
		i = len(w.items) - 1
	}

	return w.items[i]
}

// Probabilities returns the normalized weights in item order.
func (w WeightedChoice[T]) Probabilities() []float64 {
	probabilities := make([]float64, len(w.cumulative))
	previous := 0.0
	for i, c := range w.cumulative {
		probabilities[i] = c - previous
		previous = c
	}

	return probabilities
}

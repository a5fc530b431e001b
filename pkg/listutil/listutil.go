// Package listutil holds small deterministic helpers over slices that the blocking algorithms share.
package listutil

import (
	"log"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
)

// Filtered returns a copy of the list holding only the elements that satisfy the predicate
func Filtered[T any](list []T, predicate func(element T) bool) []T {
	return lo.Filter(list, func(element T, _ int) bool { return predicate(element) })
}

// CountFiltered returns the number of elements that satisfy the predicate
func CountFiltered[T any](list []T, predicate func(element T) bool) int {
	return lo.CountBy(list, predicate)
}

// Permuted returns a permuted copy of the list, the original list is not modified.
// The permutation depends only on the state of rng, so a seeded source reproduces it
func Permuted[T any](list []T, rng *rand.Rand) []T {
	permutation := make([]int, len(list))
	for i := range permutation {
		permutation[i] = i
	}
	for i := len(permutation) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		permutation[i], permutation[j] = permutation[j], permutation[i]
	}

	return lo.Map(permutation, func(i int, _ int) T { return list[i] })
}

// AddIfNotExists appends the element unless the list already contains it
func AddIfNotExists[T comparable](list []T, element T) []T {
	if slices.Contains(list, element) {
		return list
	}
	return append(list, element)
}

// AddAllIfNotExists appends every element of elements that is not already present
func AddAllIfNotExists[T comparable](list []T, elements []T) []T {
	for _, element := range elements {
		list = AddIfNotExists(list, element)
	}
	return list
}

// Intersection returns the elements common to both lists, neither list is modified
func Intersection[T comparable](list1, list2 []T) []T {
	return lo.Intersect(list1, list2)
}

// PollFirst removes the first element and returns it together with the remaining list
func PollFirst[T any](list []T) (T, []T) {
	if len(list) == 0 {
		log.Panicf("cannot poll the first element of an empty list")
	}
	return list[0], list[1:]
}

// Package ranking orders blocking results so that the best of several candidates can be picked.
package ranking

import (
	"cmp"
	"encoding/json"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
)

// Entry summarizes one blocking result. Only its scores are compared
type Entry struct {
	Id                   int64
	ViolatedRules        []int64 // Ids of the rules the result does not fulfil
	UnassignedChoices    int64   // Subject choices that could not be assigned to a course
	ImbalanceHistogram   []int64 // ImbalanceHistogram[i] is the number of courses whose size differs by i from their siblings
	SameCourseTypeInSlot int64   // Courses of the same subject and course-type placed into the same slot
}

// Criterion compares two values, returning a negative number if a is better than b, a positive one if b is better and 0 otherwise
type Criterion[T any] func(a, b T) int

// By builds a criterion preferring smaller extracted values
func By[T any, K cmp.Ordered](extract func(value T) K) Criterion[T] {
	return func(a, b T) int {
		return cmp.Compare(extract(a), extract(b))
	}
}

// Chain reduces the criteria from left to right: the first criterion that tells a and b apart decides
func Chain[T any](criteria ...Criterion[T]) Criterion[T] {
	return func(a, b T) int {
		for _, criterion := range criteria {
			if comparison := criterion(a, b); comparison != 0 {
				return comparison
			}
		}
		return 0
	}
}

// A shorter histogram means a smaller maximum imbalance. Histograms of equal length are compared from the highest imbalance down,
// fewer courses with the higher imbalance are better
func compareHistograms(histogram1, histogram2 []int64) int {
	if comparison := cmp.Compare(len(histogram1), len(histogram2)); comparison != 0 {
		return comparison
	}
	for i := len(histogram1) - 1; i >= 0; i-- {
		if comparison := cmp.Compare(histogram1[i], histogram2[i]); comparison != 0 {
			return comparison
		}
	}
	return 0
}

var compareEntries = Chain(
	By(func(entry Entry) int { return len(entry.ViolatedRules) }),
	By(func(entry Entry) int64 { return entry.UnassignedChoices }),
	Criterion[Entry](func(a, b Entry) int { return compareHistograms(a.ImbalanceHistogram, b.ImbalanceHistogram) }),
	By(func(entry Entry) int64 { return entry.SameCourseTypeInSlot }),
	By(func(entry Entry) int64 { return entry.Id }), // Ids are unique, hence two distinct entries never compare equal
)

// Compare orders entries from best to worst and can be passed to slices.SortFunc
func Compare(a, b Entry) int {
	return compareEntries(a, b)
}

// Sort orders the entries in place from best to worst
func Sort(entries []Entry) {
	slices.SortFunc(entries, Compare)
}

// Best returns the best entry, false if there are no entries
func Best(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	return slices.MinFunc(entries, Compare), true
}

func EntriesFromJson(file string) ([]Entry, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var entriesJson []any
	if err := json.Unmarshal(bytes, &entriesJson); err != nil {
		return nil, err
	}

	var entries []Entry
	if err := mapstructure.Decode(entriesJson, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

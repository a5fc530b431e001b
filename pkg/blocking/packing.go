package blocking

import (
	"github.com/limaJavier/examblocking/pkg/model"

	"github.com/samber/lo"
)

// Places every group into a slot. Real slots are filled in the given order, then fake slots -1, -2, ... are opened until no group is left.
// Each slot takes as many groups as fit in one pass (first-fit, no backtracking)
func packGroups(slots []int64, groups [][]model.ParticipationTermin, lookup model.ConflictLookup) []model.Assignment {
	assignments := make([]model.Assignment, 0, lo.SumBy(groups, func(group []model.ParticipationTermin) int { return len(group) }))

	// Copy groups since the list is consumed slot by slot
	remaining := make([][]model.ParticipationTermin, len(groups))
	copy(remaining, groups)

	for _, slot := range slots {
		remaining = fillSlot(slot, remaining, lookup, &assignments)
	}

	// Every pass over a fake slot places at least the first remaining group, therefore the loop terminates
	for fakeSlot := int64(-1); len(remaining) > 0; fakeSlot-- {
		remaining = fillSlot(fakeSlot, remaining, lookup, &assignments)
	}

	return assignments
}

// Places every group that does not collide with the students already in the slot and returns the groups that were not placed
func fillSlot(slot int64, groups [][]model.ParticipationTermin, lookup model.ConflictLookup, assignments *[]model.Assignment) [][]model.ParticipationTermin {
	students := make(map[int64]bool)
	if slot >= 0 {
		for _, participation := range lookup.ParticipationsBySlot(slot) {
			students[participation.Student] = true
		}
	}

	remaining := make([][]model.ParticipationTermin, 0, len(groups))
	for _, group := range groups {
		groupStudents := lo.Map(group, func(termin model.ParticipationTermin, _ int) int64 {
			return lookup.ParticipationByTermin(termin).Student
		})

		if lo.SomeBy(groupStudents, func(student int64) bool { return students[student] }) {
			remaining = append(remaining, group)
			continue
		}

		for _, termin := range group {
			*assignments = append(*assignments, model.Assignment{Termin: termin, Slot: slot})
		}
		for _, student := range groupStudents {
			students[student] = true
		}
	}

	return remaining
}

package blocking

import (
	"slices"

	"github.com/limaJavier/examblocking/pkg/model"

	"github.com/samber/lo"
)

type Summary struct {
	Termins   int
	Slots     int           // Distinct slots used (real and fake)
	FakeSlots int           // Fake slots used
	PerSlot   map[int64]int // Termins placed per slot
}

func Summarize(assignments []model.Assignment) Summary {
	perSlot := lo.CountValuesBy(assignments, func(assignment model.Assignment) int64 { return assignment.Slot })
	return Summary{
		Termins: len(assignments),
		Slots:   len(perSlot),
		FakeSlots: lo.CountBy(lo.Keys(perSlot), func(slot int64) bool {
			return slot < 0
		}),
		PerSlot: perSlot,
	}
}

// Resolves the makeup termins of the configuration, preserving their order
func makeupTermins(configuration model.Configuration, lookup model.ConflictLookup) []model.ParticipationTermin {
	return lo.Map(configuration.Makeups, func(id int64, _ int) model.ParticipationTermin {
		return lookup.Termin(id)
	})
}

func compute(termins []model.ParticipationTermin, configuration model.Configuration, lookup model.ConflictLookup) []model.Assignment {
	groups := buildGroups(termins, configuration, lookup)
	return packGroups(configuration.Slots, groups, lookup)
}

func verify(assignments []model.Assignment, configuration model.Configuration, lookup model.ConflictLookup) bool {
	//** Check completeness: every makeup is assigned exactly once and nothing else is assigned
	assigned := lo.CountValuesBy(assignments, func(assignment model.Assignment) int64 { return assignment.Termin.Id })
	if len(assigned) != len(configuration.Makeups) || len(assignments) != len(configuration.Makeups) {
		return false
	}
	for _, makeup := range configuration.Makeups {
		if assigned[makeup] != 1 {
			return false
		}
	}

	//** Check slots: real slots must be configured, fake slots must be -1, -2, ..., -k without gaps
	fakeSlots := make(map[int64]bool)
	for _, assignment := range assignments {
		if assignment.Slot < 0 {
			fakeSlots[assignment.Slot] = true
		} else if !slices.Contains(configuration.Slots, assignment.Slot) {
			return false
		}
	}
	for fakeSlot := range fakeSlots {
		if fakeSlot < -int64(len(fakeSlots)) {
			return false
		}
	}

	//** Check collisions: a student appears at most once per slot, students already scheduled into a real slot included
	slotStudents := make(map[int64]map[int64]bool)
	for _, assignment := range assignments {
		if _, ok := slotStudents[assignment.Slot]; !ok {
			slotStudents[assignment.Slot] = make(map[int64]bool)
			if assignment.Slot >= 0 {
				for _, participation := range lookup.ParticipationsBySlot(assignment.Slot) {
					slotStudents[assignment.Slot][participation.Student] = true
				}
			}
		}

		student := lookup.ParticipationByTermin(assignment.Termin).Student
		if slotStudents[assignment.Slot][student] {
			return false
		}
		slotStudents[assignment.Slot][student] = true
	}

	return true
}

package blocking

import (
	"log"

	"github.com/limaJavier/examblocking/pkg/model"

	"github.com/samber/lo"
)

// Builds groups of termins that may travel together to the same slot. Every termin joins the first group that admits it
// (first-fit), otherwise it opens a new group. The result depends only on the order of termins
func buildGroups(termins []model.ParticipationTermin, configuration model.Configuration, lookup model.ConflictLookup) [][]model.ParticipationTermin {
	groups := make([][]model.ParticipationTermin, 0)

	for _, termin := range termins {
		participation := lookup.ParticipationByTermin(termin)
		if participation.Student < 0 {
			log.Panicf("invalid student id %v of termin %v", participation.Student, termin.Id)
		} else if participation.CourseExam < 0 {
			log.Panicf("invalid course-exam id %v of termin %v", participation.CourseExam, termin.Id)
		}

		_, index, found := lo.FindIndexOf(groups, func(group []model.ParticipationTermin) bool {
			return admits(group, termin, configuration, lookup)
		})
		if found {
			groups[index] = append(groups[index], termin)
		} else {
			groups = append(groups, []model.ParticipationTermin{termin})
		}
	}

	return groups
}

// Checks whether the termin may be added to the group
func admits(group []model.ParticipationTermin, termin model.ParticipationTermin, configuration model.Configuration, lookup model.ConflictLookup) bool {
	if len(group) == 0 {
		log.Panicf("group must contain at least one termin")
	}

	participation := lookup.ParticipationByTermin(termin)
	courseExam := lookup.CourseExamByParticipation(participation)

	// A student must not appear twice within a group
	if lo.SomeBy(group, func(member model.ParticipationTermin) bool {
		return lookup.ParticipationByTermin(member).Student == participation.Student
	}) {
		return false
	}

	first := lookup.ParticipationByTermin(group[0])
	if configuration.GroupBySameExam {
		return first.CourseExam == participation.CourseExam
	}

	if configuration.GroupBySameSubjectAndType {
		firstCourseExam := lookup.CourseExamByParticipation(first)
		return firstCourseExam.Subject == courseExam.Subject && firstCourseExam.CourseType == courseExam.CourseType
	}

	// Without a grouping rule every termin stays on its own
	return false
}

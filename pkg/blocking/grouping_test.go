package blocking

import (
	"testing"

	"github.com/limaJavier/examblocking/pkg/model"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

type stubLookup struct {
	participations map[int64]model.Participation
	courseExams    map[int64]model.CourseExam
}

func (lookup stubLookup) Termin(id int64) model.ParticipationTermin {
	return model.ParticipationTermin{Id: id, Participation: id}
}

func (lookup stubLookup) ParticipationByTermin(termin model.ParticipationTermin) model.Participation {
	return lookup.participations[termin.Participation]
}

func (lookup stubLookup) CourseExamByParticipation(participation model.Participation) model.CourseExam {
	return lookup.courseExams[participation.CourseExam]
}

func (lookup stubLookup) ParticipationsBySlot(slot int64) []model.Participation {
	return nil
}

func TestBuildGroups(t *testing.T) {
	t.Run("Same exam, distinct students", func(t *testing.T) {
		//** Arrange
		f := fixture{courseExams: []model.CourseExam{{Id: 0, Subject: 0, CourseType: "GK"}}}
		configuration := model.Configuration{
			Makeups:         []int64{f.add(0, 0, nil), f.add(1, 0, nil), f.add(2, 0, nil)},
			GroupBySameExam: true,
		}
		lookup := f.lookup()

		//** Act
		groups := buildGroups(makeupTermins(configuration, lookup), configuration, lookup)

		//** Assert
		assert.Len(t, groups, 1)
		assert.Len(t, groups[0], 3)
	})

	t.Run("Same student never shares a group", func(t *testing.T) {
		//** Arrange
		f := fixture{courseExams: []model.CourseExam{{Id: 0, Subject: 0, CourseType: "GK"}, {Id: 1, Subject: 0, CourseType: "GK"}}}
		configuration := model.Configuration{
			Makeups:         []int64{f.add(0, 0, nil), f.add(0, 1, nil), f.add(0, 0, nil)},
			GroupBySameExam: true,
		}
		lookup := f.lookup()

		//** Act
		groups := buildGroups(makeupTermins(configuration, lookup), configuration, lookup)

		//** Assert
		assert.Len(t, groups, 3)
	})

	t.Run("Same subject and course-type", func(t *testing.T) {
		//** Arrange
		f := fixture{courseExams: []model.CourseExam{
			{Id: 0, Subject: 7, CourseType: "GK"},
			{Id: 1, Subject: 7, CourseType: "GK"},
			{Id: 2, Subject: 7, CourseType: "LK"},
		}}
		configuration := model.Configuration{
			Makeups:                   []int64{f.add(0, 0, nil), f.add(1, 1, nil), f.add(2, 2, nil), f.add(3, 0, nil)},
			GroupBySameSubjectAndType: true,
		}
		lookup := f.lookup()

		//** Act
		groups := buildGroups(makeupTermins(configuration, lookup), configuration, lookup)

		//** Assert
		assert.Equal(t, [][]int64{{0, 1, 3}, {2}}, lo.Map(groups, func(group []model.ParticipationTermin, _ int) []int64 {
			return lo.Map(group, func(termin model.ParticipationTermin, _ int) int64 { return termin.Id })
		}))
	})

	t.Run("Without grouping rule every group is a singleton", func(t *testing.T) {
		//** Arrange
		f := fixture{courseExams: []model.CourseExam{{Id: 0, Subject: 0, CourseType: "GK"}}}
		configuration := model.Configuration{
			Makeups: []int64{f.add(0, 0, nil), f.add(1, 0, nil), f.add(2, 0, nil)},
		}
		lookup := f.lookup()

		//** Act
		groups := buildGroups(makeupTermins(configuration, lookup), configuration, lookup)

		//** Assert
		assert.Len(t, groups, 3)
	})

	t.Run("Homogeneity", func(t *testing.T) {
		for range 20 {
			for _, flags := range [][2]bool{{true, false}, {false, true}} {
				//** Arrange
				configuration, lookup := randomScenario(flags[0], flags[1])

				//** Act
				groups := buildGroups(makeupTermins(configuration, lookup), configuration, lookup)

				//** Assert
				assert.Equal(t, len(configuration.Makeups), lo.SumBy(groups, func(group []model.ParticipationTermin) int { return len(group) }))
				for _, group := range groups {
					assert.NotEmpty(t, group)
					participations := lo.Map(group, func(termin model.ParticipationTermin, _ int) model.Participation {
						return lookup.ParticipationByTermin(termin)
					})

					students := lo.Map(participations, func(participation model.Participation, _ int) int64 { return participation.Student })
					assert.Len(t, lo.Uniq(students), len(students))

					if configuration.GroupBySameExam {
						assert.Len(t, lo.UniqBy(participations, func(participation model.Participation) int64 { return participation.CourseExam }), 1)
					} else {
						assert.Len(t, lo.UniqBy(participations, func(participation model.Participation) [2]any {
							courseExam := lookup.CourseExamByParticipation(participation)
							return [2]any{courseExam.Subject, courseExam.CourseType}
						}), 1)
					}
				}
			}
		}
	})

	t.Run("Panic flow", func(t *testing.T) {
		//** Arrange
		lookups := []stubLookup{
			{
				participations: map[int64]model.Participation{0: {Id: 0, Student: -1, CourseExam: 0}},
				courseExams:    map[int64]model.CourseExam{0: {Id: 0}},
			},
			{
				participations: map[int64]model.Participation{0: {Id: 0, Student: 3, CourseExam: -4}},
				courseExams:    map[int64]model.CourseExam{-4: {Id: -4}},
			},
		}

		for _, lookup := range lookups {
			configuration := model.Configuration{Makeups: []int64{0}, GroupBySameExam: true}

			//** Act and assert
			assert.Panics(t, func() {
				buildGroups(makeupTermins(configuration, lookup), configuration, lookup)
			})
		}

		assert.Panics(t, func() {
			admits(nil, model.ParticipationTermin{}, model.Configuration{}, lookups[0])
		})
	})
}

package model

import (
	"log"
	"slices"
)

// ConflictLookup gives the blocking algorithms access to the records they need to detect collisions
type ConflictLookup interface {
	// Returns the participation-termin with the given id
	Termin(id int64) ParticipationTermin

	// Returns the participation the termin is an attempt of
	ParticipationByTermin(termin ParticipationTermin) Participation

	// Returns the course-exam (i.e. subject and course-type) the participation belongs to
	CourseExamByParticipation(participation Participation) CourseExam

	// Returns the participations that already have a termin scheduled in the given slot
	ParticipationsBySlot(slot int64) []Participation
}

type index struct {
	termins        map[int64]ParticipationTermin
	participations map[int64]Participation
	courseExams    map[int64]CourseExam
	slots          map[int64][]Participation
}

// NewIndex builds an immutable lookup over the input. The input is expected to be validated by ProcessRawInput
func NewIndex(modelInput ModelInput) ConflictLookup {
	index := index{
		termins:        make(map[int64]ParticipationTermin, len(modelInput.Termins)),
		participations: make(map[int64]Participation, len(modelInput.Participations)),
		courseExams:    make(map[int64]CourseExam, len(modelInput.CourseExams)),
		slots:          make(map[int64][]Participation),
	}

	for _, courseExam := range modelInput.CourseExams {
		index.courseExams[courseExam.Id] = courseExam
	}
	for _, participation := range modelInput.Participations {
		index.participations[participation.Id] = participation
	}
	for _, termin := range modelInput.Termins {
		index.termins[termin.Id] = termin
		if termin.Slot == nil {
			continue
		}

		participation, ok := index.participations[termin.Participation]
		if !ok {
			log.Panicf("participation %v of termin %v not found", termin.Participation, termin.Id)
		}
		index.slots[*termin.Slot] = append(index.slots[*termin.Slot], participation)
	}

	return &index
}

func (index *index) Termin(id int64) ParticipationTermin {
	termin, ok := index.termins[id]
	if !ok {
		log.Panicf("participation-termin %v not found", id)
	}
	return termin
}

func (index *index) ParticipationByTermin(termin ParticipationTermin) Participation {
	participation, ok := index.participations[termin.Participation]
	if !ok {
		log.Panicf("participation %v of termin %v not found", termin.Participation, termin.Id)
	}
	return participation
}

func (index *index) CourseExamByParticipation(participation Participation) CourseExam {
	courseExam, ok := index.courseExams[participation.CourseExam]
	if !ok {
		log.Panicf("course-exam %v of participation %v not found", participation.CourseExam, participation.Id)
	}
	return courseExam
}

func (index *index) ParticipationsBySlot(slot int64) []Participation {
	return slices.Clone(index.slots[slot])
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputFile = "../../testdata/makeups.json"

func slot(id int64) *int64 {
	return &id
}

func validRawInput() RawModelInput {
	return RawModelInput{
		CourseExams: []CourseExam{
			{Id: 0, Subject: 1, CourseType: "LK"},
			{Id: 1, Subject: 2, CourseType: "GK"},
		},
		Participations: []Participation{
			{Id: 0, Student: 10, CourseExam: 0},
			{Id: 1, Student: 11, CourseExam: 1},
		},
		Termins: []ParticipationTermin{
			{Id: 0, Participation: 0, Slot: slot(5)},
			{Id: 1, Participation: 0},
			{Id: 2, Participation: 1},
		},
		Configuration: RawConfiguration{
			Makeups:         []int64{1, 2},
			Slots:           []int64{5, 6},
			GroupBySameExam: true,
			MaxTimeMillis:   250,
		},
	}
}

func TestInputFromJson(t *testing.T) {
	//** Act
	input, err := InputFromJson(inputFile)

	//** Assert
	require.NoError(t, err)
	assert.Len(t, input.CourseExams, 4)
	assert.Len(t, input.Participations, 6)
	assert.Len(t, input.Termins, 10)
	assert.Len(t, input.Rooms, 3)
	assert.Equal(t, Room{Id: 2, Name: "B201", Capacity: 30}, input.Rooms[2])
	assert.Equal(t, CourseExam{Id: 0, Subject: 1, CourseType: "LK"}, input.CourseExams[0])
	assert.Equal(t, int64(100), *input.Termins[0].Slot)
	assert.Nil(t, input.Termins[6].Slot)
	assert.Equal(t, Configuration{
		Makeups:         []int64{6, 7, 8, 9},
		Slots:           []int64{100, 101},
		GroupBySameExam: true,
		MaxTime:         20 * time.Millisecond,
	}, input.Configuration)

	_, err = InputFromJson("missing.json")
	assert.Error(t, err)
}

func TestProcessRawInput(t *testing.T) {
	t.Run("Correct flow", func(t *testing.T) {
		//** Act
		input, err := ProcessRawInput(validRawInput())

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, input.Configuration.MaxTime)
		assert.Equal(t, []int64{1, 2}, input.Configuration.Makeups)
	})

	t.Run("Error flow", func(t *testing.T) {
		//** Arrange
		corruptions := map[string]func(raw *RawModelInput){
			"duplicate course-exam": func(raw *RawModelInput) {
				raw.CourseExams = append(raw.CourseExams, CourseExam{Id: 0})
			},
			"negative course-exam": func(raw *RawModelInput) {
				raw.CourseExams[0].Id = -1
			},
			"negative student": func(raw *RawModelInput) {
				raw.Participations[1].Student = -3
			},
			"unknown course-exam": func(raw *RawModelInput) {
				raw.Participations[1].CourseExam = 9
			},
			"unknown participation": func(raw *RawModelInput) {
				raw.Termins[2].Participation = 9
			},
			"negative termin slot": func(raw *RawModelInput) {
				raw.Termins[0].Slot = slot(-1)
			},
			"both grouping rules": func(raw *RawModelInput) {
				raw.Configuration.GroupBySameSubjectAndType = true
			},
			"duplicate makeup": func(raw *RawModelInput) {
				raw.Configuration.Makeups = []int64{1, 1}
			},
			"unknown makeup": func(raw *RawModelInput) {
				raw.Configuration.Makeups = []int64{1, 7}
			},
			"scheduled makeup": func(raw *RawModelInput) {
				raw.Configuration.Makeups = []int64{0, 1}
			},
			"negative real slot": func(raw *RawModelInput) {
				raw.Configuration.Slots = []int64{5, -2}
			},
			"duplicate real slot": func(raw *RawModelInput) {
				raw.Configuration.Slots = []int64{5, 5}
			},
			"negative time": func(raw *RawModelInput) {
				raw.Configuration.MaxTimeMillis = -1
			},
			"duplicate room": func(raw *RawModelInput) {
				raw.Rooms = []Room{{Id: 1}, {Id: 1}}
			},
		}

		for name, corrupt := range corruptions {
			raw := validRawInput()
			corrupt(&raw)

			//** Act
			_, err := ProcessRawInput(raw)

			//** Assert
			assert.Error(t, err, name)
		}
	})
}

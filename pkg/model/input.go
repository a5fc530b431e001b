package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type CourseExam struct {
	Id         int64
	Subject    int64
	CourseType string
}

// Participation is one student's obligation to write the exam of a course
type Participation struct {
	Id         int64
	Student    int64
	CourseExam int64
}

// ParticipationTermin is one attempt of a participation. Slot is nil while the attempt is not scheduled
type ParticipationTermin struct {
	Id            int64
	Participation int64
	Slot          *int64
}

type Room struct {
	Id       int64
	Name     string
	Capacity uint64
}

type Configuration struct {
	Makeups                   []int64 // Termins to be placed, in the order they are processed
	Slots                     []int64 // Real slots, in the order they are filled
	GroupBySameExam           bool
	GroupBySameSubjectAndType bool
	MaxTime                   time.Duration
}

type RawConfiguration struct {
	Makeups                   []int64
	Slots                     []int64
	GroupBySameExam           bool
	GroupBySameSubjectAndType bool
	MaxTimeMillis             int64
}

type RawModelInput struct {
	CourseExams    []CourseExam
	Participations []Participation
	Termins        []ParticipationTermin
	Rooms          []Room
	Configuration  RawConfiguration
}

type ModelInput struct {
	CourseExams    []CourseExam
	Participations []Participation
	Termins        []ParticipationTermin
	Rooms          []Room
	Configuration  Configuration
}

type Assignment struct {
	Termin ParticipationTermin
	Slot   int64
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}
	var inputJson map[string]any
	err = json.Unmarshal(bytes, &inputJson)
	if err != nil {
		return ModelInput{}, err
	}

	var rawInput RawModelInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return ModelInput{}, err
	}
	return ProcessRawInput(rawInput)
}

func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	input := ModelInput{
		CourseExams:    rawInput.CourseExams,
		Participations: rawInput.Participations,
		Termins:        rawInput.Termins,
		Rooms:          rawInput.Rooms,
		Configuration: Configuration{
			Makeups:                   rawInput.Configuration.Makeups,
			Slots:                     rawInput.Configuration.Slots,
			GroupBySameExam:           rawInput.Configuration.GroupBySameExam,
			GroupBySameSubjectAndType: rawInput.Configuration.GroupBySameSubjectAndType,
			MaxTime:                   time.Duration(rawInput.Configuration.MaxTimeMillis) * time.Millisecond,
		},
	}

	//** Manage course-exams
	courseExams := make(map[int64]bool)
	for _, courseExam := range input.CourseExams {
		if courseExam.Id < 0 {
			return ModelInput{}, fmt.Errorf("course-exam id must not be negative: %v", courseExam.Id)
		} else if courseExams[courseExam.Id] {
			return ModelInput{}, fmt.Errorf("duplicate course-exam %v", courseExam.Id)
		}
		courseExams[courseExam.Id] = true
	}

	//** Manage participations
	participations := make(map[int64]bool)
	for _, participation := range input.Participations {
		if participation.Id < 0 || participation.Student < 0 {
			return ModelInput{}, fmt.Errorf("participation %v has a negative id or student id (student %v)", participation.Id, participation.Student)
		} else if participations[participation.Id] {
			return ModelInput{}, fmt.Errorf("duplicate participation %v", participation.Id)
		} else if !courseExams[participation.CourseExam] {
			return ModelInput{}, fmt.Errorf("participation %v references unknown course-exam %v", participation.Id, participation.CourseExam)
		}
		participations[participation.Id] = true
	}

	//** Manage termins
	termins := make(map[int64]ParticipationTermin)
	for _, termin := range input.Termins {
		if _, ok := termins[termin.Id]; ok {
			return ModelInput{}, fmt.Errorf("duplicate participation-termin %v", termin.Id)
		} else if !participations[termin.Participation] {
			return ModelInput{}, fmt.Errorf("participation-termin %v references unknown participation %v", termin.Id, termin.Participation)
		} else if termin.Slot != nil && *termin.Slot < 0 {
			return ModelInput{}, fmt.Errorf("participation-termin %v is scheduled into a negative slot %v", termin.Id, *termin.Slot)
		}
		termins[termin.Id] = termin
	}

	//** Manage configuration
	configuration := input.Configuration
	if configuration.GroupBySameExam && configuration.GroupBySameSubjectAndType {
		return ModelInput{}, fmt.Errorf("grouping by same exam and grouping by same subject and course-type are mutually exclusive")
	}
	if duplicates := lo.FindDuplicates(configuration.Makeups); len(duplicates) > 0 {
		return ModelInput{}, fmt.Errorf("makeup termins must be unique: %v", duplicates)
	}
	for _, makeup := range configuration.Makeups {
		termin, ok := termins[makeup]
		if !ok {
			return ModelInput{}, fmt.Errorf("makeup termin %v does not exist", makeup)
		} else if termin.Slot != nil {
			return ModelInput{}, fmt.Errorf("makeup termin %v is already scheduled in slot %v", makeup, *termin.Slot)
		}
	}
	if lo.SomeBy(configuration.Slots, func(slot int64) bool { return slot < 0 }) {
		return ModelInput{}, fmt.Errorf("real slots must not be negative: %v", configuration.Slots)
	} else if duplicates := lo.FindDuplicates(configuration.Slots); len(duplicates) > 0 {
		return ModelInput{}, fmt.Errorf("real slots must be unique: %v", duplicates)
	}
	if configuration.MaxTime < 0 {
		return ModelInput{}, fmt.Errorf("maximum time must not be negative: %v", configuration.MaxTime)
	}

	//** Manage rooms
	if duplicates := lo.FindDuplicates(lo.Map(input.Rooms, func(room Room, _ int) int64 { return room.Id })); len(duplicates) > 0 {
		return ModelInput{}, fmt.Errorf("duplicate rooms: %v", duplicates)
	}

	return input, nil
}

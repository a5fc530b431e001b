package blocking

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/limaJavier/examblocking/pkg/model"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type RoomAssignment struct {
	Slot       int64
	CourseExam int64
	Room       int64
	Termins    []int64
}

type unassignableError struct {
	slot int64
}

func (err unassignableError) Error() string {
	return fmt.Sprintf("not all course-exams of slot %v can be assigned a room", err.slot)
}

// AssignRooms seats the makeups of every slot: termins of the same course-exam share a room, a room hosts at most one course-exam per slot
// and must be large enough for it. Rooms are matched per slot through a maximum bipartite matching
func AssignRooms(assignments []model.Assignment, lookup model.ConflictLookup, rooms []model.Room) ([]RoomAssignment, error) {
	//** Collect termins per slot and course-exam
	slots := make([]int64, 0)
	courseExams := make(map[int64][]int64) // Course-exams per slot in order of appearance
	termins := make(map[[2]int64][]int64)  // Termins per slot and course-exam
	for _, assignment := range assignments {
		courseExam := lookup.ParticipationByTermin(assignment.Termin).CourseExam
		key := [2]int64{assignment.Slot, courseExam}

		if _, ok := courseExams[assignment.Slot]; !ok {
			slots = append(slots, assignment.Slot)
		}
		if _, ok := termins[key]; !ok {
			courseExams[assignment.Slot] = append(courseExams[assignment.Slot], courseExam)
		}
		termins[key] = append(termins[key], assignment.Termin.Id)
	}

	roomAssignments := make([]RoomAssignment, 0)
	for _, slot := range slots {
		sizes := lo.Map(courseExams[slot], func(courseExam int64, _ int) uint64 {
			return uint64(len(termins[[2]int64{slot, courseExam}]))
		})

		matching, err := matchRooms(courseExams[slot], sizes, rooms)
		if _, ok := err.(unassignableError); ok {
			return nil, unassignableError{slot: slot}
		} else if err != nil {
			return nil, err
		}

		for courseExam, room := range matching {
			roomAssignments = append(roomAssignments, RoomAssignment{
				Slot:       slot,
				CourseExam: courseExam,
				Room:       room,
				Termins:    termins[[2]int64{slot, courseExam}],
			})
		}
	}

	slices.SortFunc(roomAssignments, func(a, b RoomAssignment) int {
		if comparison := cmp.Compare(a.Slot, b.Slot); comparison != 0 {
			return comparison
		}
		return cmp.Compare(a.CourseExam, b.CourseExam)
	})
	return roomAssignments, nil
}

// Returns a room per course-exam, where sizes[i] is the number of participants of courseExams[i]
func matchRooms(courseExams []int64, sizes []uint64, rooms []model.Room) (map[int64]int64, error) {
	capacities := lo.SliceToMap(rooms, func(room model.Room) (int64, uint64) { return room.Id, room.Capacity })
	demands := lo.SliceToMap(lo.Zip2(courseExams, sizes), func(tuple lo.Tuple2[int64, uint64]) (int64, uint64) { return tuple.A, tuple.B })

	// A course-exam neighbors a room if and only if it fits into the room
	neighbors := func(courseExamAny any, roomAny any) (bool, error) {
		courseExam := courseExamAny.(int64)
		room := roomAny.(int64)

		return demands[courseExam] <= capacities[room], nil
	}

	// Transform course-exams and rooms to slices of any
	courseExamsAny := lo.Map(courseExams, func(courseExam int64, _ int) any { return courseExam })
	roomsAny := lo.Map(rooms, func(room model.Room, _ int) any { return room.Id })

	graph, err := bipartitegraph.NewBipartiteGraph(courseExamsAny, roomsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	// Check the matching is a maximum one
	if len(matching) < len(courseExams) {
		return nil, unassignableError{}
	}

	assignments := make(map[int64]int64, len(courseExams))
	for _, edge := range matching {
		courseExamIndex, roomIndex := edge.Node1, edge.Node2-len(courseExams)
		assignments[courseExams[courseExamIndex]] = rooms[roomIndex].Id
	}

	return assignments, nil
}

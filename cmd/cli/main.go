package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/examblocking/pkg/blocking"
	"github.com/limaJavier/examblocking/pkg/config"
	"github.com/limaJavier/examblocking/pkg/model"

	"github.com/gocarina/gocsv"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

const configEnvironmentVariable = "EXAMBLOCKING_CONFIG"

var (
	validFormats = []string{"json", "csv"}
	blockers     = map[string]func(settings config.Config, logger *slog.Logger) blocking.Blocker{
		"greedy": func(_ config.Config, logger *slog.Logger) blocking.Blocker {
			return blocking.NewGreedyBlocker(logger)
		},
		"randomized": func(settings config.Config, logger *slog.Logger) blocking.Blocker {
			return blocking.NewRandomizedBlocker(logger, settings.Seed, settings.Workers)
		},
	}
)

type assignmentRecord struct {
	Termin        int64  `csv:"termin" json:"termin"`
	Participation int64  `csv:"participation" json:"participation"`
	Student       int64  `csv:"student" json:"student"`
	CourseExam    int64  `csv:"courseExam" json:"courseExam"`
	Slot          int64  `csv:"slot" json:"slot"`
	Room          string `csv:"room" json:"room,omitempty"`
}

func main() {
	settings := loadSettings()

	// Define arguments
	strategyPtr := flag.String("strategy", settings.Strategy, `Strategy to distribute the makeups. Allowed values are:
- "greedy" (Makeups are grouped and packed once in the configured order) and
- "randomized" (The greedy pass is repeated over random orders until the time is up, the result with the fewest fake slots is kept)`)
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	formatPtr := flag.String("format", "json", "Output format. Allowed values are: \"json\", \"csv\", where \"json\" is the default")
	roomsPtr := flag.Bool("rooms", false, "Assign a room to every course-exam of every slot")
	seedPtr := flag.Uint64("seed", settings.Seed, "Seed of the randomized strategy")
	workersPtr := flag.Int("workers", settings.Workers, "Concurrent runs per round of the randomized strategy")
	timePtr := flag.Duration("time", 0, "Maximum computation time of the randomized strategy; if zero, the input's (or else the config's) time is used")
	debugPtr := flag.Bool("debug", settings.Debug, "Log debug information to the Standard Error")
	flag.Parse()
	strategy := strings.ToLower(*strategyPtr)
	format := strings.ToLower(*formatPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr
	settings.Seed = *seedPtr
	settings.Workers = *workersPtr

	// Validate arguments
	if !slices.Contains(config.ValidStrategies, strategy) {
		log.Fatalf("%v is not a valid strategy", strategy)
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if settings.Workers < 1 {
		log.Fatalf("workers must be positive: %v", settings.Workers)
	}

	// Extract input
	input, err := model.InputFromJson(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	configuration := input.Configuration
	if *timePtr > 0 {
		configuration.MaxTime = *timePtr
	} else if configuration.MaxTime == 0 {
		configuration.MaxTime = settings.MaxTime
	}

	// Initialize engines
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *debugPtr {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	lookup := model.NewIndex(input)
	blocker := blockers[strategy](settings, logger)

	// Distribute makeups
	start := time.Now()
	assignments := blocker.Compute(configuration, lookup)
	elapsed := time.Since(start)

	// Verify the distribution's correctness
	if !blocker.Verify(assignments, configuration, lookup) {
		fmt.Fprintln(os.Stderr, "verification failed")
		os.Exit(15)
	}

	// Build output from assignments
	rooms := make(map[int64]string)
	if *roomsPtr {
		roomAssignments, err := blocking.AssignRooms(assignments, lookup, input.Rooms)
		if err != nil {
			log.Fatalf("an error occurred during room assignment: %v", err)
		}
		roomNames := lo.SliceToMap(input.Rooms, func(room model.Room) (int64, string) { return room.Id, room.Name })
		for _, roomAssignment := range roomAssignments {
			for _, termin := range roomAssignment.Termins {
				rooms[termin] = roomNames[roomAssignment.Room]
			}
		}
	}

	records := lo.Map(assignments, func(assignment model.Assignment, _ int) assignmentRecord {
		participation := lookup.ParticipationByTermin(assignment.Termin)
		return assignmentRecord{
			Termin:        assignment.Termin.Id,
			Participation: participation.Id,
			Student:       participation.Student,
			CourseExam:    participation.CourseExam,
			Slot:          assignment.Slot,
			Room:          rooms[assignment.Termin.Id],
		}
	})

	var output []byte
	if format == "csv" {
		output, err = toCsv(records, settings.Delimiter)
	} else {
		perSlot := lo.GroupBy(records, func(record assignmentRecord) string { return strconv.FormatInt(record.Slot, 10) })
		output, err = json.Marshal(perSlot)
	}
	if err != nil {
		log.Fatalf("an error occurred while building output: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(output))
	} else {
		err := os.WriteFile(outFile, output, 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	summary := blocking.Summarize(assignments)
	fmt.Fprintf(os.Stderr, "Termins: %v\n", summary.Termins)
	fmt.Fprintf(os.Stderr, "Slots: %v\n", summary.Slots)
	fmt.Fprintf(os.Stderr, "Fake slots: %v\n", summary.FakeSlots)
	fmt.Fprintf(os.Stderr, "Duration: %v\n", elapsed)
}

func toCsv(records []assignmentRecord, delimiter string) ([]byte, error) {
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		writer := csv.NewWriter(out)
		writer.Comma = []rune(delimiter)[0]
		return gocsv.NewSafeCSVWriter(writer)
	})

	output, err := gocsv.MarshalString(&records)
	return []byte(output), err
}

// Loads the .env file (if any) and then the config, whose path may be overridden through the environment.
// Otherwise the config.json placed next to the executable is used
func loadSettings() config.Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("cannot load .env file: %v", err)
	}

	if configPath, ok := os.LookupEnv(configEnvironmentVariable); ok {
		config.ConfigPath = configPath
	} else if execPath, err := os.Executable(); err == nil {
		config.ConfigPath = path.Join(path.Dir(execPath), "config.json")
	}

	settings, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("cannot load %v: %v", config.ConfigPath, err)
	}
	return settings
}

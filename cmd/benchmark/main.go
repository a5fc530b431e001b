package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/limaJavier/examblocking/pkg/blocking"
	"github.com/limaJavier/examblocking/pkg/model"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
)

const resultsFile = "benchmark_results.csv"

type BlockerType int

const (
	greedy BlockerType = iota
	randomized
)

var blockerTypes = map[BlockerType]string{
	greedy:     "greedy",
	randomized: "randomized",
}

type TestMetadata struct {
	Name           string
	CourseExams    int
	Participations int
	Makeups        int
	Slots          int
}

type BlockerMetadata struct {
	Type    BlockerType
	MaxTime time.Duration
}

type BenchmarkResult struct {
	Blocker   string `csv:"Blocker"`
	MaxTime   string `csv:"MaxTime"`
	Test      string `csv:"Test"`
	Makeups   int    `csv:"Makeups"`
	RealSlots int    `csv:"RealSlots"`
	SlotsUsed int    `csv:"SlotsUsed"`
	FakeSlots int    `csv:"FakeSlots"`
	Duration  int64  `csv:"Duration(ms)"`
	Verified  bool   `csv:"Verified"`
}

func main() {
	directoryPtr := flag.String("dir", "testdata", "Directory holding the input files")
	budgetsPtr := flag.String("budgets", "10ms,100ms", "Comma separated computation times of the randomized blocker")
	seedPtr := flag.Uint64("seed", 1, "Seed of the randomized blocker")
	workersPtr := flag.Int("workers", 4, "Concurrent runs per round of the randomized blocker")
	flag.Parse()

	budgets, err := parseBudgets(*budgetsPtr)
	if err != nil {
		log.Fatalf("invalid budgets: %v", err)
	}

	tests := getTests(*directoryPtr)
	blockers := getBlockers(budgets)
	results := make([]BenchmarkResult, 0, len(tests)*len(blockers))

	for _, test := range tests {
		input, err := model.InputFromJson(test.Name)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
		lookup := model.NewIndex(input)

		for _, metadata := range blockers {
			fmt.Printf("Benchmarking test \"%v\" with blocker \"%v\" and time \"%v\"\n", test.Name, blockerTypes[metadata.Type], metadata.MaxTime)

			var blocker blocking.Blocker
			if metadata.Type == greedy {
				blocker = blocking.NewGreedyBlocker(nil)
			} else {
				blocker = blocking.NewRandomizedBlocker(nil, *seedPtr, *workersPtr)
			}
			configuration := input.Configuration
			configuration.MaxTime = metadata.MaxTime

			start := time.Now()
			assignments := blocker.Compute(configuration, lookup)
			duration := time.Since(start)
			summary := blocking.Summarize(assignments)

			results = append(results, BenchmarkResult{
				Blocker:   blockerTypes[metadata.Type],
				MaxTime:   metadata.MaxTime.String(),
				Test:      test.Name,
				Makeups:   test.Makeups,
				RealSlots: test.Slots,
				SlotsUsed: summary.Slots,
				FakeSlots: summary.FakeSlots,
				Duration:  duration.Milliseconds(),
				Verified:  blocker.Verify(assignments, configuration, lookup),
			})
		}
	}

	toCsv(results)
}

func getTests(directory string) []TestMetadata {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0)
	for _, file := range testFiles {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		filename := filepath.Join(directory, file.Name())
		input, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:           filename,
			CourseExams:    len(input.CourseExams),
			Participations: len(input.Participations),
			Makeups:        len(input.Configuration.Makeups),
			Slots:          len(input.Configuration.Slots),
		})
	}

	return tests
}

func getBlockers(budgets []time.Duration) []BlockerMetadata {
	blockers := []BlockerMetadata{{Type: greedy}}
	for _, budget := range budgets {
		blockers = append(blockers, BlockerMetadata{Type: randomized, MaxTime: budget})
	}
	return blockers
}

func parseBudgets(budgetsStr string) ([]time.Duration, error) {
	parts := lo.Compact(lo.Map(strings.Split(budgetsStr, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	}))

	budgets := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		budget, err := time.ParseDuration(part)
		if err != nil {
			return nil, err
		} else if budget <= 0 {
			return nil, fmt.Errorf("budget must be positive: %v", part)
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}

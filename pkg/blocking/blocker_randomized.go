package blocking

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/limaJavier/examblocking/pkg/listutil"
	"github.com/limaJavier/examblocking/pkg/model"
	"github.com/limaJavier/examblocking/pkg/ranking"
)

type randomizedBlocker struct {
	logger  *slog.Logger
	seed    uint64
	workers int
}

type outcome struct {
	run         int
	assignments []model.Assignment
	summary     Summary
}

var compareOutcomes = ranking.Chain(
	ranking.By(func(result outcome) int { return result.summary.FakeSlots }),
	ranking.By(func(result outcome) int { return result.summary.Slots }),
	ranking.By(func(result outcome) int { return result.run }),
)

// NewRandomizedBlocker returns a blocker that repeats the greedy computation over permuted makeup orders until the configuration's maximum time has elapsed
// and keeps the outcome with the fewest fake slots. Each run owns a random source derived from seed and its run number, run 0 keeps the configured order
func NewRandomizedBlocker(logger *slog.Logger, seed uint64, workers int) Blocker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if workers < 1 {
		workers = 1
	}
	return &randomizedBlocker{
		logger:  logger,
		seed:    seed,
		workers: workers,
	}
}

func (blocker *randomizedBlocker) Compute(configuration model.Configuration, lookup model.ConflictLookup) []model.Assignment {
	termins := makeupTermins(configuration, lookup)
	deadline := time.Now().Add(configuration.MaxTime)

	var best *outcome
	runs := 0
	// At least one round is executed, regardless of the deadline
	for round := 0; round == 0 || time.Now().Before(deadline); round++ {
		outcomes := make(chan outcome) // Channel to collect the outcomes of the round

		// Execute runs on different goroutines, they share nothing but the read-only lookup
		for worker := range blocker.workers {
			go func(run int) {
				order := termins
				if run > 0 {
					order = listutil.Permuted(termins, rand.New(rand.NewPCG(blocker.seed, uint64(run))))
				}
				assignments := compute(order, configuration, lookup)
				outcomes <- outcome{
					run:         run,
					assignments: assignments,
					summary:     Summarize(assignments),
				}
			}(round*blocker.workers + worker)
		}

		for range blocker.workers {
			candidate := <-outcomes
			if best == nil || compareOutcomes(candidate, *best) < 0 {
				best = &candidate
			}
		}
		runs += blocker.workers
	}

	blocker.logger.Debug("randomized blocking finished",
		slog.Int("runs", runs),
		slog.Int("bestRun", best.run),
		slog.Int("slots", best.summary.Slots),
		slog.Int("fakeSlots", best.summary.FakeSlots),
	)
	return best.assignments
}

func (blocker *randomizedBlocker) Verify(assignments []model.Assignment, configuration model.Configuration, lookup model.ConflictLookup) bool {
	return verify(assignments, configuration, lookup)
}

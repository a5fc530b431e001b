package blocking

import (
	"io"
	"log/slog"

	"github.com/limaJavier/examblocking/pkg/model"
)

type greedyBlocker struct {
	logger *slog.Logger
}

// NewGreedyBlocker returns a deterministic blocker: makeups are grouped and packed in the configured order.
// The configuration's maximum time is not consulted, a single pass always terminates
func NewGreedyBlocker(logger *slog.Logger) Blocker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &greedyBlocker{
		logger: logger,
	}
}

func (blocker *greedyBlocker) Compute(configuration model.Configuration, lookup model.ConflictLookup) []model.Assignment {
	termins := makeupTermins(configuration, lookup)

	groups := buildGroups(termins, configuration, lookup)
	blocker.logger.Debug("makeup groups built", slog.Int("termins", len(termins)), slog.Int("groups", len(groups)))

	assignments := packGroups(configuration.Slots, groups, lookup)
	summary := Summarize(assignments)
	blocker.logger.Debug("makeup groups packed", slog.Int("slots", summary.Slots), slog.Int("fakeSlots", summary.FakeSlots))

	return assignments
}

func (blocker *greedyBlocker) Verify(assignments []model.Assignment, configuration model.Configuration, lookup model.ConflictLookup) bool {
	return verify(assignments, configuration, lookup)
}

package blocking

import "github.com/limaJavier/examblocking/pkg/model"

// Blocker distributes the makeup termins of a configuration onto slots, such that no student writes twice within the same slot.
// Real slots are filled first in the configured order; groups that fit nowhere are placed into fake slots numbered -1, -2, ...
type Blocker interface {
	Compute(
		configuration model.Configuration,
		lookup model.ConflictLookup,
	) []model.Assignment

	Verify(
		assignments []model.Assignment,
		configuration model.Configuration,
		lookup model.ConflictLookup,
	) bool
}

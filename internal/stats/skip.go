package stats

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mistahuman/gitstats/internal/git"
)

// SkipUnreadable records a commit whose diff stats could not be read.
// Lenient mode counts and reports it so one corrupt record never blocks
// the report; strict mode aborts.
func (a *Aggregator) SkipUnreadable(id git.Hash, cause error) error {
	if a.strict {
		return errors.Wrapf(ErrMalformedCommit, "%s: %v", id, cause)
	}
	a.totals.Skipped++
	a.warnings = append(a.warnings, fmt.Sprintf("skipped unreadable commit %s: %v", id, cause))
	return nil
}

// Package stats accumulates per-contributor and repository-wide totals
// from a commit sequence in a single streaming pass.
package stats

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"

	"github.com/mistahuman/gitstats/internal/git"
	"github.com/mistahuman/gitstats/internal/identity"
)

// ErrMalformedCommit is returned in strict mode when a commit record is
// missing its identifier or timestamp. In lenient mode such records are
// skipped, counted, and reported as warnings instead.
var ErrMalformedCommit = errors.New("malformed commit record")

// ContributorStats accumulates metrics for a single contributor.
// Counts only grow within a run; the accumulator is created lazily on
// the contributor's first commit and is not persisted.
type ContributorStats struct {
	Key          identity.Key
	Commits      int
	LinesAdded   int
	LinesRemoved int
	FilesTouched *set.Set[string]
	FirstSeen    time.Time
	LastSeen     time.Time
}

// NewContributorStats creates an empty accumulator for a contributor.
func NewContributorStats(key identity.Key) *ContributorStats {
	return &ContributorStats{
		Key:          key,
		FilesTouched: set.New[string](0),
	}
}

// Churn returns total lines changed (added + removed).
func (c *ContributorStats) Churn() int {
	return c.LinesAdded + c.LinesRemoved
}

// FileCount returns the number of distinct files touched.
func (c *ContributorStats) FileCount() int {
	return c.FilesTouched.Size()
}

// addCommit folds one commit and its file changes into the accumulator.
// First/last seen track min/max commit timestamp by value, not arrival
// order, since traversal yields newest first.
func (c *ContributorStats) addCommit(commit git.CommitInfo, changes []git.FileChange) {
	c.Commits++

	for _, change := range changes {
		c.LinesAdded += change.LinesAdded
		c.LinesRemoved += change.LinesRemoved
		c.FilesTouched.Insert(change.Path)
	}

	if c.FirstSeen.IsZero() || commit.When.Before(c.FirstSeen) {
		c.FirstSeen = commit.When
	}
	if commit.When.After(c.LastSeen) {
		c.LastSeen = commit.When
	}
}

// Totals holds the repository-wide aggregates.
type Totals struct {
	Commits      int
	Contributors int
	LinesAdded   int
	LinesRemoved int
	FirstCommit  time.Time
	LastCommit   time.Time
	Skipped      int
}

// Aggregator consumes a commit sequence and builds contributor and
// repository totals. It is streaming-compatible: commits are folded in
// one at a time and never retained.
type Aggregator struct {
	resolver *identity.Resolver
	strict   bool

	contributors map[identity.Key]*ContributorStats
	totals       Totals
	warnings     []string
}

// NewAggregator creates an aggregator using the given identity resolver.
// In strict mode the first malformed commit record aborts the run; the
// default lenient mode skips it with a recorded warning.
func NewAggregator(resolver *identity.Resolver, strict bool) *Aggregator {
	return &Aggregator{
		resolver:     resolver,
		strict:       strict,
		contributors: make(map[identity.Key]*ContributorStats),
	}
}

// Add folds one commit and its file changes into the aggregate.
func (a *Aggregator) Add(commit git.CommitInfo, changes []git.FileChange) error {
	if commit.SHA.IsZero() || commit.When.IsZero() {
		if a.strict {
			return errors.Wrapf(ErrMalformedCommit, "%s", commit.SHA)
		}
		a.totals.Skipped++
		a.warnings = append(a.warnings, fmt.Sprintf("skipped malformed commit record %q", commit.SHA))
		return nil
	}

	key := a.resolver.Observe(commit.Author, commit.When)

	cs, ok := a.contributors[key]
	if !ok {
		cs = NewContributorStats(key)
		a.contributors[key] = cs
	}
	cs.addCommit(commit, changes)

	a.totals.Commits++
	for _, change := range changes {
		a.totals.LinesAdded += change.LinesAdded
		a.totals.LinesRemoved += change.LinesRemoved
	}
	if a.totals.FirstCommit.IsZero() || commit.When.Before(a.totals.FirstCommit) {
		a.totals.FirstCommit = commit.When
	}
	if commit.When.After(a.totals.LastCommit) {
		a.totals.LastCommit = commit.When
	}

	return nil
}

// Contributors returns the per-contributor accumulators keyed by
// canonical contributor.
func (a *Aggregator) Contributors() map[identity.Key]*ContributorStats {
	return a.contributors
}

// Totals returns the repository-wide totals accumulated so far.
func (a *Aggregator) Totals() Totals {
	t := a.totals
	t.Contributors = len(a.contributors)
	return t
}

// Warnings returns the messages recorded for skipped commit records.
func (a *Aggregator) Warnings() []string {
	return a.warnings
}

// Package report exposes the two top-level operations: contributor
// statistics and tag-to-tag changelogs. It owns repository lifetime and
// returns fully materialized reports for the output layer.
package report

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/mistahuman/gitstats/config"
	"github.com/mistahuman/gitstats/internal/changelog"
	"github.com/mistahuman/gitstats/internal/git"
	"github.com/mistahuman/gitstats/internal/identity"
	"github.com/mistahuman/gitstats/internal/stats"
	"github.com/mistahuman/gitstats/internal/walk"
)

// ContributorRow is one contributor's totals prepared for presentation,
// including the contribution share of total churn.
type ContributorRow struct {
	Key          identity.Key
	Name         string
	Commits      int
	LinesAdded   int
	LinesRemoved int
	Files        int
	FirstSeen    time.Time
	LastSeen     time.Time
	SharePercent float64
}

// StatsReport holds the results of contributor statistics analysis.
type StatsReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Empty       bool
	Rows        []ContributorRow
	Totals      stats.Totals
	Warnings    []string
}

// ChangelogReport holds an assembled changelog.
type ChangelogReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Result      *changelog.Result
}

func newResolver(cfg *config.Config) *identity.Resolver {
	return identity.NewResolver(identity.Aliases{
		Emails: cfg.Identity.EmailAliases,
		Names:  cfg.Identity.NameAliases,
	})
}

func openRepo(repoRoot string, cfg *config.Config) (*git.GitRepository, error) {
	return git.Open(repoRoot, git.Options{
		Include: cfg.Filters.Include,
		Exclude: cfg.Filters.Exclude,
	})
}

// ComputeStats walks the full history from HEAD and aggregates
// per-contributor and repository totals. Rows are sorted by commit count
// descending, ties by contributor key, so repeated runs produce
// identical output.
func ComputeStats(repoRoot string, cfg *config.Config) (*StatsReport, error) {
	repo, err := openRepo(repoRoot, cfg)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	report := &StatsReport{
		RepoPath:    repoRoot,
		GeneratedAt: time.Now(),
	}

	if repo.IsEmpty() {
		report.Empty = true
		return report, nil
	}

	head, err := repo.Head()
	if err != nil {
		return nil, err
	}

	it, err := walk.New(repo, head, nil)
	if err != nil {
		return nil, err
	}

	resolver := newResolver(cfg)
	agg := stats.NewAggregator(resolver, cfg.Strict)

	err = it.ForEach(func(c git.CommitInfo) error {
		changes, err := repo.DiffStats(c.SHA)
		if err != nil {
			return agg.SkipUnreadable(c.SHA, err)
		}
		return agg.Add(c, changes)
	})
	if err != nil {
		return nil, err
	}

	report.Totals = agg.Totals()
	report.Warnings = agg.Warnings()
	report.Rows = buildRows(agg, resolver)
	return report, nil
}

// ComputeChangelog assembles the changelog between two tags. Unresolved
// tags abort with changelog.UnresolvedTagError; there is no partial
// output.
func ComputeChangelog(repoRoot, fromTag, toTag string, cfg *config.Config) (*ChangelogReport, error) {
	repo, err := openRepo(repoRoot, cfg)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	result, err := changelog.Assemble(repo, newResolver(cfg), fromTag, toTag, changelog.Options{
		AbbrevLength:    cfg.Changelog.AbbrevLength,
		FeaturePatterns: cfg.Changelog.FeaturePatterns,
		FixPatterns:     cfg.Changelog.FixPatterns,
	})
	if err != nil {
		return nil, err
	}

	return &ChangelogReport{
		RepoPath:    repoRoot,
		GeneratedAt: time.Now(),
		Result:      result,
	}, nil
}

// buildRows materializes sorted presentation rows from the aggregate.
func buildRows(agg *stats.Aggregator, resolver *identity.Resolver) []ContributorRow {
	totalChurn := 0
	for _, cs := range agg.Contributors() {
		totalChurn += cs.Churn()
	}

	rows := lo.MapToSlice(agg.Contributors(), func(key identity.Key, cs *stats.ContributorStats) ContributorRow {
		share := 0.0
		if totalChurn > 0 {
			share = float64(cs.Churn()) / float64(totalChurn) * 100.0
		}
		return ContributorRow{
			Key:          key,
			Name:         resolver.DisplayName(key),
			Commits:      cs.Commits,
			LinesAdded:   cs.LinesAdded,
			LinesRemoved: cs.LinesRemoved,
			Files:        cs.FileCount(),
			FirstSeen:    cs.FirstSeen,
			LastSeen:     cs.LastSeen,
			SharePercent: share,
		}
	})

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Commits != rows[j].Commits {
			return rows[i].Commits > rows[j].Commits
		}
		return rows[i].Key < rows[j].Key
	})

	return rows
}

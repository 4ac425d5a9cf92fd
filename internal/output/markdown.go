package output

import (
	"fmt"

	"github.com/mistahuman/gitstats/internal/changelog"
	"github.com/mistahuman/gitstats/internal/report"
)

// MarkdownStatsWriter writes contributor statistics as Markdown.
type MarkdownStatsWriter struct{}

// Write outputs the contributor statistics report as Markdown.
func (w *MarkdownStatsWriter) Write(r *report.StatsReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Contributor Statistics")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", r.RepoPath)

	if r.Empty {
		fmt.Fprintln(out, "Repository is empty. No commits to analyze.")
		return nil
	}

	fmt.Fprintf(out, "**Commits:** %d  **Contributors:** %d\n\n", r.Totals.Commits, r.Totals.Contributors)

	fmt.Fprintln(out, "| # | Author | Commits | Added | Removed | Files | First | Last | Share |")
	fmt.Fprintln(out, "|---|--------|---------|-------|---------|-------|-------|------|-------|")
	for i, row := range topRows(r.Rows, options.Top) {
		fmt.Fprintf(out, "| %d | %s | %d | %d | %d | %d | %s | %s | %.2f%% |\n",
			i+1, row.Name, row.Commits, row.LinesAdded, row.LinesRemoved, row.Files,
			row.FirstSeen.Format("2006-01-02"), row.LastSeen.Format("2006-01-02"),
			row.SharePercent)
	}

	if r.Totals.Skipped > 0 {
		fmt.Fprintf(out, "\n**Skipped malformed commit records:** %d\n", r.Totals.Skipped)
	}

	return nil
}

// MarkdownChangelogWriter writes changelog reports as Markdown, in the
// shape produced by the original changelog generator.
type MarkdownChangelogWriter struct{}

// Write outputs the changelog report as Markdown.
func (w *MarkdownChangelogWriter) Write(r *report.ChangelogReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	result := r.Result

	fmt.Fprintf(out, "# Changelog from %s to %s\n\n", result.FromTag, result.ToTag)

	fmt.Fprintln(out, "## Statistics")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "- Files changed: %d\n", result.Stats.FilesChanged)
	fmt.Fprintf(out, "- Lines added: %d\n", result.Stats.Insertions)
	fmt.Fprintf(out, "- Lines removed: %d\n", result.Stats.Deletions)
	fmt.Fprintf(out, "- Total commits: %d\n\n", len(result.Entries))

	sections := []struct {
		title   string
		section changelog.Section
	}{
		{"New Features", changelog.SectionFeature},
		{"Bug Fixes", changelog.SectionFix},
		{"Other Changes", changelog.SectionOther},
	}

	for _, s := range sections {
		entries := result.BySection(s.section)
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(out, "## %s\n\n", s.title)
		for _, e := range entries {
			fmt.Fprintf(out, "- %s (%s)\n  _by %s on %s_\n",
				e.Subject, e.SHA, e.Author, e.When.Format("2006-01-02"))
		}
		fmt.Fprintln(out)
	}

	return nil
}

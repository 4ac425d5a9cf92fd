package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mistahuman/gitstats/internal/changelog"
	"github.com/mistahuman/gitstats/internal/report"
)

// ConsoleStatsWriter writes contributor statistics to the console.
type ConsoleStatsWriter struct{}

// Write outputs the contributor statistics report to the console, or to
// the file named by OutputPath. Color is disabled when writing to a
// file.
func (w *ConsoleStatsWriter) Write(r *report.StatsReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	heading := color.New(color.FgGreen)
	notice := color.New(color.FgYellow)
	if file != nil {
		heading.DisableColor()
		notice.DisableColor()
	}

	if r.Empty {
		notice.Fprintln(out, "Repository is empty. No commits to analyze.")
		return nil
	}

	heading.Fprintln(out, "Contributor Statistics")
	fmt.Fprintf(out, "Repository: %s\n", r.RepoPath)
	if !r.Totals.FirstCommit.IsZero() {
		fmt.Fprintf(out, "Period: %s to %s\n",
			r.Totals.FirstCommit.Format("2006-01-02"),
			r.Totals.LastCommit.Format("2006-01-02"))
	}
	fmt.Fprintf(out, "Commits: %s  Contributors: %d\n\n",
		humanize.Comma(int64(r.Totals.Commits)), r.Totals.Contributors)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "Author", "Commits", "Added", "Removed", "Files", "First", "Last", "Share"})

	for i, row := range topRows(r.Rows, options.Top) {
		t.AppendRow(table.Row{
			i + 1,
			row.Name,
			humanize.Comma(int64(row.Commits)),
			humanize.Comma(int64(row.LinesAdded)),
			humanize.Comma(int64(row.LinesRemoved)),
			row.Files,
			row.FirstSeen.Format("2006-01-02"),
			row.LastSeen.Format("2006-01-02"),
			fmt.Sprintf("%.2f%%", row.SharePercent),
		})
	}

	t.AppendFooter(table.Row{
		"", "Total",
		humanize.Comma(int64(r.Totals.Commits)),
		humanize.Comma(int64(r.Totals.LinesAdded)),
		humanize.Comma(int64(r.Totals.LinesRemoved)),
		"", "", "", "",
	})
	t.Render()

	if r.Totals.Skipped > 0 {
		notice.Fprintf(out, "\nSkipped %d malformed commit record(s):\n", r.Totals.Skipped)
		for _, warning := range r.Warnings {
			fmt.Fprintf(out, "  %s\n", warning)
		}
	}

	return nil
}

// ConsoleChangelogWriter writes changelog reports to the console.
type ConsoleChangelogWriter struct{}

// Write outputs the changelog report to the console, or to the file
// named by OutputPath. Color is disabled when writing to a file.
func (w *ConsoleChangelogWriter) Write(r *report.ChangelogReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	heading := color.New(color.FgGreen)
	sectionHeading := color.New(color.FgCyan)
	if file != nil {
		heading.DisableColor()
		sectionHeading.DisableColor()
	}

	result := r.Result

	heading.Fprintf(out, "Changelog from %s to %s\n", result.FromTag, result.ToTag)
	fmt.Fprintf(out, "Files changed: %d  Lines added: %d  Lines removed: %d  Commits: %d\n",
		result.Stats.FilesChanged, result.Stats.Insertions, result.Stats.Deletions, len(result.Entries))

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

		fmt.Fprintln(out)
		sectionHeading.Fprintln(out, s.title)
		for _, e := range entries {
			fmt.Fprintf(out, "  %s  %s  (%s, %s)\n",
				e.SHA, e.Subject, e.Author, e.When.Format("2006-01-02"))
		}
	}

	return nil
}

package output

import (
	"io"
	"os"

	"github.com/mistahuman/gitstats/internal/report"
)

// Compile-time interface conformance checks.
var (
	_ StatsReportWriter = (*ConsoleStatsWriter)(nil)
	_ StatsReportWriter = (*JSONStatsWriter)(nil)
	_ StatsReportWriter = (*CSVStatsWriter)(nil)
	_ StatsReportWriter = (*MarkdownStatsWriter)(nil)

	_ ChangelogReportWriter = (*ConsoleChangelogWriter)(nil)
	_ ChangelogReportWriter = (*JSONChangelogWriter)(nil)
	_ ChangelogReportWriter = (*MarkdownChangelogWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
}

// StatsReportWriter writes contributor statistics reports.
type StatsReportWriter interface {
	Write(report *report.StatsReport, options OutputOptions) error
}

// ChangelogReportWriter writes changelog reports.
type ChangelogReportWriter interface {
	Write(report *report.ChangelogReport, options OutputOptions) error
}

// NewStatsReportWriter creates a stats report writer for the specified
// format.
func NewStatsReportWriter(format OutputFormat) StatsReportWriter {
	switch format {
	case FormatJSON:
		return &JSONStatsWriter{}
	case FormatCSV:
		return &CSVStatsWriter{}
	case FormatMarkdown:
		return &MarkdownStatsWriter{}
	default:
		return &ConsoleStatsWriter{}
	}
}

// NewChangelogReportWriter creates a changelog report writer for the
// specified format.
func NewChangelogReportWriter(format OutputFormat) ChangelogReportWriter {
	switch format {
	case FormatJSON:
		return &JSONChangelogWriter{}
	case FormatMarkdown:
		return &MarkdownChangelogWriter{}
	default:
		return &ConsoleChangelogWriter{}
	}
}

// createWriter returns the destination writer, opening the output file
// when a path is set. The returned file is nil when writing to stdout.
func createWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return file, file, nil
	}
	return os.Stdout, nil, nil
}

// topRows caps the row slice to the first n entries when n is positive.
func topRows(rows []report.ContributorRow, n int) []report.ContributorRow {
	if n > 0 && n < len(rows) {
		return rows[:n]
	}
	return rows
}

package output

import (
	"encoding/csv"
	"strconv"

	"github.com/mistahuman/gitstats/internal/report"
)

// CSVStatsWriter writes contributor statistics as CSV.
type CSVStatsWriter struct{}

// Write outputs the contributor statistics report as CSV.
func (w *CSVStatsWriter) Write(r *report.StatsReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{"author", "key", "commits", "lines_added", "lines_removed", "files", "first_seen", "last_seen", "share_percent"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range topRows(r.Rows, options.Top) {
		record := []string{
			row.Name,
			string(row.Key),
			strconv.Itoa(row.Commits),
			strconv.Itoa(row.LinesAdded),
			strconv.Itoa(row.LinesRemoved),
			strconv.Itoa(row.Files),
			row.FirstSeen.Format("2006-01-02"),
			row.LastSeen.Format("2006-01-02"),
			strconv.FormatFloat(row.SharePercent, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	return nil
}

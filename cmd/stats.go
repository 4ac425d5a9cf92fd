package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/mistahuman/gitstats/internal/output"
	"github.com/mistahuman/gitstats/internal/report"
)

// statsAction runs contributor statistics for the repository at --path.
func statsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	r, err := report.ComputeStats(c.String("path"), cfg)
	if err != nil {
		return err
	}

	opts := outputOptions(c)
	writer := output.NewStatsReportWriter(opts.Format)
	return writer.Write(r, opts)
}

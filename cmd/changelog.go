package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mistahuman/gitstats/internal/output"
	"github.com/mistahuman/gitstats/internal/report"
)

// ChangelogCmd returns the changelog command.
func ChangelogCmd() *cli.Command {
	return &cli.Command{
		Name:      "changelog",
		Aliases:   []string{"cl"},
		Usage:     "Generate a changelog between two Git tags",
		ArgsUsage: "FROM_TAG TO_TAG",
		Flags:     commonFlags(),
		Action:    changelogAction,
	}
}

func changelogAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected exactly two tag arguments, got %d", c.NArg())
	}
	fromTag := c.Args().Get(0)
	toTag := c.Args().Get(1)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	r, err := report.ComputeChangelog(c.String("path"), fromTag, toTag, cfg)
	if err != nil {
		return err
	}

	opts := outputOptions(c)
	writer := output.NewChangelogReportWriter(opts.Format)
	return writer.Write(r, opts)
}

package output

import (
	"encoding/json"
	"time"

	"github.com/mistahuman/gitstats/internal/report"
)

// jsonStatsReport is the serialization shape for stats reports.
type jsonStatsReport struct {
	Repository   string                 `json:"repository"`
	GeneratedAt  time.Time              `json:"generatedAt"`
	Empty        bool                   `json:"empty,omitempty"`
	Commits      int                    `json:"commits"`
	Contributors int                    `json:"contributors"`
	LinesAdded   int                    `json:"linesAdded"`
	LinesRemoved int                    `json:"linesRemoved"`
	Skipped      int                    `json:"skippedCommits,omitempty"`
	Warnings     []string               `json:"warnings,omitempty"`
	Authors      []jsonContributorEntry `json:"authors"`
}

type jsonContributorEntry struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Commits      int       `json:"commits"`
	LinesAdded   int       `json:"linesAdded"`
	LinesRemoved int       `json:"linesRemoved"`
	Files        int       `json:"files"`
	FirstSeen    time.Time `json:"firstSeen"`
	LastSeen     time.Time `json:"lastSeen"`
	SharePercent float64   `json:"sharePercent"`
}

// JSONStatsWriter writes contributor statistics as JSON.
type JSONStatsWriter struct{}

// Write outputs the contributor statistics report as JSON.
func (w *JSONStatsWriter) Write(r *report.StatsReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	doc := jsonStatsReport{
		Repository:   r.RepoPath,
		GeneratedAt:  r.GeneratedAt,
		Empty:        r.Empty,
		Commits:      r.Totals.Commits,
		Contributors: r.Totals.Contributors,
		LinesAdded:   r.Totals.LinesAdded,
		LinesRemoved: r.Totals.LinesRemoved,
		Skipped:      r.Totals.Skipped,
		Warnings:     r.Warnings,
		Authors:      make([]jsonContributorEntry, 0, len(r.Rows)),
	}

	for _, row := range topRows(r.Rows, options.Top) {
		doc.Authors = append(doc.Authors, jsonContributorEntry{
			Key:          string(row.Key),
			Name:         row.Name,
			Commits:      row.Commits,
			LinesAdded:   row.LinesAdded,
			LinesRemoved: row.LinesRemoved,
			Files:        row.Files,
			FirstSeen:    row.FirstSeen,
			LastSeen:     row.LastSeen,
			SharePercent: row.SharePercent,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// jsonChangelogReport is the serialization shape for changelog reports.
type jsonChangelogReport struct {
	Repository   string               `json:"repository"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	FromTag      string               `json:"fromTag"`
	ToTag        string               `json:"toTag"`
	FilesChanged int                  `json:"filesChanged"`
	LinesAdded   int                  `json:"linesAdded"`
	LinesRemoved int                  `json:"linesRemoved"`
	Commits      []jsonChangelogEntry `json:"commits"`
}

type jsonChangelogEntry struct {
	SHA     string    `json:"sha"`
	Author  string    `json:"author"`
	Subject string    `json:"subject"`
	When    time.Time `json:"when"`
	Section string    `json:"section"`
}

// JSONChangelogWriter writes changelog reports as JSON.
type JSONChangelogWriter struct{}

// Write outputs the changelog report as JSON.
func (w *JSONChangelogWriter) Write(r *report.ChangelogReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	result := r.Result
	doc := jsonChangelogReport{
		Repository:   r.RepoPath,
		GeneratedAt:  r.GeneratedAt,
		FromTag:      result.FromTag,
		ToTag:        result.ToTag,
		FilesChanged: result.Stats.FilesChanged,
		LinesAdded:   result.Stats.Insertions,
		LinesRemoved: result.Stats.Deletions,
		Commits:      make([]jsonChangelogEntry, 0, len(result.Entries)),
	}

	for _, e := range result.Entries {
		doc.Commits = append(doc.Commits, jsonChangelogEntry{
			SHA:     e.SHA,
			Author:  e.Author,
			Subject: e.Subject,
			When:    e.When,
			Section: string(e.Section),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Package changelog resolves a tag-to-tag commit range and maps it to
// presentation-ready entries.
package changelog

import (
	"fmt"
	"regexp"
	"time"

	"github.com/pkg/errors"

	"github.com/mistahuman/gitstats/internal/git"
	"github.com/mistahuman/gitstats/internal/identity"
	"github.com/mistahuman/gitstats/internal/walk"
)

// DefaultAbbrevLength is the abbreviated hash length used when the
// configuration does not override it.
const DefaultAbbrevLength = 7

// UnresolvedTagError reports a tag name that did not resolve to a
// commit. The changelog is aborted entirely; there is no partial output.
type UnresolvedTagError struct {
	Tag string
}

func (e *UnresolvedTagError) Error() string {
	return fmt.Sprintf("tag %q does not exist", e.Tag)
}

// Section buckets changelog entries by commit-message convention.
type Section string

const (
	SectionFeature Section = "feature"
	SectionFix     Section = "fix"
	SectionOther   Section = "other"
)

// Entry is one commit prepared for presentation.
type Entry struct {
	SHA     string // abbreviated
	Author  string
	Subject string
	When    time.Time
	Section Section
}

// Result is an assembled changelog for a tag range.
type Result struct {
	FromTag string
	ToTag   string
	From    git.Hash
	To      git.Hash
	Entries []Entry
	Stats   git.RangeStats
}

// Options configures changelog assembly.
type Options struct {
	// AbbrevLength is the abbreviated hash length (DefaultAbbrevLength
	// when zero).
	AbbrevLength int
	// FeaturePatterns and FixPatterns classify entries into sections by
	// matching the message subject. Unmatched entries land in
	// SectionOther. Invalid patterns are rejected by NewClassifier.
	FeaturePatterns []string
	FixPatterns     []string
}

// Classifier assigns entries to sections by message subject.
type Classifier struct {
	features []*regexp.Regexp
	fixes    []*regexp.Regexp
}

// NewClassifier compiles the section patterns.
func NewClassifier(opts Options) (*Classifier, error) {
	c := &Classifier{}
	for _, p := range opts.FeaturePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "feature pattern %q", p)
		}
		c.features = append(c.features, re)
	}
	for _, p := range opts.FixPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "fix pattern %q", p)
		}
		c.fixes = append(c.fixes, re)
	}
	return c, nil
}

// Classify returns the section for a message subject. Fix patterns win
// over feature patterns when both match.
func (c *Classifier) Classify(subject string) Section {
	for _, re := range c.fixes {
		if re.MatchString(subject) {
			return SectionFix
		}
	}
	for _, re := range c.features {
		if re.MatchString(subject) {
			return SectionFeature
		}
	}
	return SectionOther
}

// Assemble resolves both tags, walks the range to..from, and maps each
// commit to an Entry in the walker's order (most recent first). The
// ordering is a user-facing contract: re-running on an unchanged
// repository yields an identical sequence.
func Assemble(repo git.Repository, resolver *identity.Resolver, fromTag, toTag string, opts Options) (*Result, error) {
	classifier, err := NewClassifier(opts)
	if err != nil {
		return nil, err
	}

	from, err := repo.ResolveTag(fromTag)
	if err != nil {
		return nil, &UnresolvedTagError{Tag: fromTag}
	}
	to, err := repo.ResolveTag(toTag)
	if err != nil {
		return nil, &UnresolvedTagError{Tag: toTag}
	}

	it, err := walk.New(repo, to, &from)
	if err != nil {
		return nil, err
	}

	abbrev := opts.AbbrevLength
	if abbrev <= 0 {
		abbrev = DefaultAbbrevLength
	}

	result := &Result{
		FromTag: fromTag,
		ToTag:   toTag,
		From:    from,
		To:      to,
	}

	err = it.ForEach(func(c git.CommitInfo) error {
		key := resolver.Observe(c.Author, c.When)
		result.Entries = append(result.Entries, Entry{
			SHA:     c.SHA.Abbrev(abbrev),
			Author:  resolver.DisplayName(key),
			Subject: c.Subject(),
			When:    c.When,
			Section: classifier.Classify(c.Subject()),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats, err := repo.DiffRange(from, to)
	if err != nil {
		return nil, err
	}
	result.Stats = stats

	return result, nil
}

// BySection returns the entries belonging to a section, preserving their
// order.
func (r *Result) BySection(s Section) []Entry {
	var entries []Entry
	for _, e := range r.Entries {
		if e.Section == s {
			entries = append(entries, e)
		}
	}
	return entries
}

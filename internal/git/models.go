package git

import (
	"strings"
	"time"
)

// Hash is the hex form of a commit identifier. Fixed length, opaque to
// callers; its byte order is the final determinism tiebreak in ordering.
type Hash string

// ZeroHash is the Hash of a missing or unset identifier.
const ZeroHash Hash = ""

// IsZero reports whether the hash is unset.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Abbrev returns the first n characters of the hash.
func (h Hash) Abbrev(n int) string {
	s := string(h)
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}

// CommitInfo represents a single commit as read from the repository.
// Immutable once read.
type CommitInfo struct {
	SHA     Hash
	Parents []Hash
	When    time.Time
	Author  AuthorInfo
	Message string
}

// Subject returns the first line of the commit message.
func (c CommitInfo) Subject() string {
	msg := c.Message
	if idx := strings.IndexAny(msg, "\r\n"); idx >= 0 {
		msg = msg[:idx]
	}
	return msg
}

// IsMerge reports whether the commit has more than one parent.
func (c CommitInfo) IsMerge() bool {
	return len(c.Parents) > 1
}

// AuthorInfo is the raw identity recorded on a commit.
type AuthorInfo struct {
	Name  string
	Email string
}

// FileChange represents a file change within a commit.
type FileChange struct {
	Path         string
	OldPath      string // For renames
	LinesAdded   int
	LinesRemoved int
	Kind         ChangeKind
}

// Churn returns total lines changed (added + removed).
func (f FileChange) Churn() int {
	return f.LinesAdded + f.LinesRemoved
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
	ChangeKindRenamed
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// RangeStats summarizes the aggregate tree diff between two commits.
type RangeStats struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

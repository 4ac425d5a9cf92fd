package git

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

// Options configures repository access.
type Options struct {
	Include []string // Glob patterns to include in diff stats
	Exclude []string // Glob patterns to exclude from diff stats
}

// GitRepository is the go-git backed Repository implementation.
type GitRepository struct {
	repo *gogit.Repository
	opts Options
}

// Open opens the git repository at path.
func Open(path string, opts Options) (*GitRepository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open repository %q", path)
	}
	return &GitRepository{repo: repo, opts: opts}, nil
}

// Head returns the commit identifier HEAD points at.
func (r *GitRepository) Head() (Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return ZeroHash, errors.Wrap(ErrUnresolvedReference, "HEAD")
	}
	return Hash(ref.Hash().String()), nil
}

// IsEmpty reports whether the repository has no commits on HEAD.
func (r *GitRepository) IsEmpty() bool {
	_, err := r.repo.Head()
	return err != nil
}

// ResolveRef resolves a ref or revision name to a commit identifier,
// peeling annotated tags.
func (r *GitRepository) ResolveRef(name string) (Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return ZeroHash, errors.Wrapf(ErrUnresolvedReference, "%q", name)
	}
	return r.peel(*h)
}

// ResolveTag resolves a tag name to a commit identifier. The fully
// qualified "refs/tags/<name>" form is tried first so a tag is never
// shadowed by a branch of the same name.
func (r *GitRepository) ResolveTag(name string) (Hash, error) {
	for _, candidate := range []string{"refs/tags/" + name, name} {
		h, err := r.repo.ResolveRevision(plumbing.Revision(candidate))
		if err == nil {
			return r.peel(*h)
		}
	}
	return ZeroHash, errors.Wrapf(ErrUnresolvedReference, "tag %q", name)
}

// peel resolves an annotated tag object to the commit it points at.
// Plain commit hashes pass through unchanged.
func (r *GitRepository) peel(h plumbing.Hash) (Hash, error) {
	tag, err := r.repo.TagObject(h)
	if err != nil {
		return Hash(h.String()), nil
	}
	commit, err := tag.Commit()
	if err != nil {
		return ZeroHash, errors.Wrapf(ErrUnresolvedReference, "tag object %s", h)
	}
	return Hash(commit.Hash.String()), nil
}

// Commit loads a commit by id.
func (r *GitRepository) Commit(id Hash) (CommitInfo, error) {
	c, err := r.commitObject(id)
	if err != nil {
		return CommitInfo{}, err
	}

	parents := make([]Hash, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, Hash(p.String()))
	}

	return CommitInfo{
		SHA:     Hash(c.Hash.String()),
		Parents: parents,
		When:    c.Committer.When,
		Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		Message: c.Message,
	}, nil
}

// Parents returns the parent identifiers of a commit.
func (r *GitRepository) Parents(id Hash) ([]Hash, error) {
	c, err := r.commitObject(id)
	if err != nil {
		return nil, err
	}
	parents := make([]Hash, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, Hash(p.String()))
	}
	return parents, nil
}

// DiffStats returns per-file line statistics for a commit against its
// first parent. Root commits diff against the empty tree.
func (r *GitRepository) DiffStats(id Hash) ([]FileChange, error) {
	c, err := r.commitObject(id)
	if err != nil {
		return nil, err
	}

	toTree, err := c.Tree()
	if err != nil {
		return nil, errors.Wrapf(err, "tree of %s", id)
	}

	var fromTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, errors.Wrapf(ErrNotFound, "parent of %s", id)
		}
		fromTree, err = parent.Tree()
		if err != nil {
			return nil, errors.Wrapf(err, "parent tree of %s", id)
		}
	}

	changes, err := object.DiffTreeWithOptions(context.Background(), fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "diff of %s", id)
	}

	patch, err := changes.Patch()
	if err != nil {
		return nil, errors.Wrapf(err, "patch of %s", id)
	}

	return r.collectFileChanges(patch), nil
}

// DiffRange returns the aggregate tree diff statistics between two
// commits.
func (r *GitRepository) DiffRange(from, to Hash) (RangeStats, error) {
	fromCommit, err := r.commitObject(from)
	if err != nil {
		return RangeStats{}, err
	}
	toCommit, err := r.commitObject(to)
	if err != nil {
		return RangeStats{}, err
	}

	patch, err := fromCommit.Patch(toCommit)
	if err != nil {
		return RangeStats{}, errors.Wrapf(err, "diff %s..%s", from, to)
	}

	stats := RangeStats{}
	for _, fileStat := range patch.Stats() {
		stats.FilesChanged++
		stats.Insertions += fileStat.Addition
		stats.Deletions += fileStat.Deletion
	}
	return stats, nil
}

// Close releases the repository handle. go-git holds no OS resources
// between calls, so this only invalidates the accessor.
func (r *GitRepository) Close() error {
	r.repo = nil
	return nil
}

func (r *GitRepository) commitObject(id Hash) (*object.Commit, error) {
	if id.IsZero() {
		return nil, errors.Wrap(ErrNotFound, "zero id")
	}
	c, err := r.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	return c, nil
}

// collectFileChanges converts a patch into FileChange records, applying
// the include/exclude filters.
func (r *GitRepository) collectFileChanges(patch *object.Patch) []FileChange {
	var changes []FileChange

	for _, filePatch := range patch.FilePatches() {
		from, to := filePatch.Files()

		var path, oldPath string
		var kind ChangeKind

		switch {
		case from == nil && to != nil:
			path = to.Path()
			kind = ChangeKindAdded
		case from != nil && to == nil:
			path = from.Path()
			kind = ChangeKindDeleted
		case from != nil && to != nil && from.Path() != to.Path():
			path = to.Path()
			oldPath = from.Path()
			kind = ChangeKindRenamed
		default:
			if to != nil {
				path = to.Path()
			} else if from != nil {
				path = from.Path()
			}
			kind = ChangeKindModified
		}

		if path == "" || !r.matchesFilters(path) {
			continue
		}

		var added, removed int
		for _, chunk := range filePatch.Chunks() {
			lines := countLines(chunk.Content())
			switch chunk.Type() {
			case fdiff.Add:
				added += lines
			case fdiff.Delete:
				removed += lines
			}
		}

		changes = append(changes, FileChange{
			Path:         path,
			OldPath:      oldPath,
			LinesAdded:   added,
			LinesRemoved: removed,
			Kind:         kind,
		})
	}

	return changes
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *GitRepository) matchesFilters(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range r.opts.Exclude {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return false
		}
	}

	if len(r.opts.Include) == 0 {
		return true
	}

	for _, pattern := range r.opts.Include {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return true
		}
	}

	return false
}

// countLines counts the lines in a chunk, where a trailing fragment
// without a newline still counts as one line.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

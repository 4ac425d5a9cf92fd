package git

// Repository defines the accessor interface the traversal and changelog
// engines consume. This abstraction allows for easier testing and
// potential alternative implementations.
type Repository interface {
	// ResolveRef resolves a ref or revision name (branch, tag, "HEAD",
	// full or abbreviated hash) to a commit identifier. Annotated tags
	// are peeled to the commit they point at. Returns
	// ErrUnresolvedReference when the name does not resolve.
	ResolveRef(name string) (Hash, error)

	// ResolveTag resolves a tag name (tried as "refs/tags/<name>" first)
	// to a commit identifier. Returns ErrUnresolvedReference when the
	// tag does not exist.
	ResolveTag(name string) (Hash, error)

	// Commit loads a commit by id. Returns ErrNotFound when the object
	// is missing.
	Commit(id Hash) (CommitInfo, error)

	// Parents returns the parent identifiers of a commit.
	Parents(id Hash) ([]Hash, error)

	// DiffStats returns per-file line statistics for a commit against
	// its first parent. Root commits diff against the empty tree.
	DiffStats(id Hash) ([]FileChange, error)

	// DiffRange returns the aggregate tree diff statistics between two
	// commits (from..to).
	DiffRange(from, to Hash) (RangeStats, error)

	// Close releases the underlying repository handle. Safe to call
	// more than once.
	Close() error
}

// Compile-time interface conformance check.
var _ Repository = (*GitRepository)(nil)

package git

import "github.com/pkg/errors"

// MockRepository is a test double for the Repository interface. It
// serves commits from an in-memory graph without needing a real git
// repository.
type MockRepository struct {
	Commits map[Hash]CommitInfo
	Changes map[Hash][]FileChange
	Refs    map[string]Hash
	Tags    map[string]Hash
	Ranges  map[[2]Hash]RangeStats
	Closed  bool
}

// NewMockRepository creates an empty MockRepository.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		Commits: make(map[Hash]CommitInfo),
		Changes: make(map[Hash][]FileChange),
		Refs:    make(map[string]Hash),
		Tags:    make(map[string]Hash),
		Ranges:  make(map[[2]Hash]RangeStats),
	}
}

// AddCommit registers a commit and its file changes in the graph.
func (m *MockRepository) AddCommit(c CommitInfo, changes ...FileChange) {
	m.Commits[c.SHA] = c
	m.Changes[c.SHA] = changes
}

// ResolveRef resolves a registered ref name or a known commit hash.
func (m *MockRepository) ResolveRef(name string) (Hash, error) {
	if h, ok := m.Refs[name]; ok {
		return h, nil
	}
	if h, ok := m.Tags[name]; ok {
		return h, nil
	}
	if _, ok := m.Commits[Hash(name)]; ok {
		return Hash(name), nil
	}
	return ZeroHash, errors.Wrapf(ErrUnresolvedReference, "%q", name)
}

// ResolveTag resolves a registered tag name.
func (m *MockRepository) ResolveTag(name string) (Hash, error) {
	if h, ok := m.Tags[name]; ok {
		return h, nil
	}
	return ZeroHash, errors.Wrapf(ErrUnresolvedReference, "tag %q", name)
}

// Commit returns a registered commit.
func (m *MockRepository) Commit(id Hash) (CommitInfo, error) {
	c, ok := m.Commits[id]
	if !ok {
		return CommitInfo{}, errors.Wrapf(ErrNotFound, "%s", id)
	}
	return c, nil
}

// Parents returns the parent identifiers of a registered commit.
func (m *MockRepository) Parents(id Hash) ([]Hash, error) {
	c, ok := m.Commits[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	return c.Parents, nil
}

// DiffStats returns the registered file changes of a commit.
func (m *MockRepository) DiffStats(id Hash) ([]FileChange, error) {
	if _, ok := m.Commits[id]; !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	return m.Changes[id], nil
}

// DiffRange returns the registered range stats for a (from, to) pair.
func (m *MockRepository) DiffRange(from, to Hash) (RangeStats, error) {
	return m.Ranges[[2]Hash{from, to}], nil
}

// Close marks the repository as closed.
func (m *MockRepository) Close() error {
	m.Closed = true
	return nil
}

// Compile-time interface conformance check.
var _ Repository = (*MockRepository)(nil)

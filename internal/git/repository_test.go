package git

import (
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/pkg/errors"

	"github.com/mistahuman/gitstats/internal/gittest"
)

type testRepo struct {
	dir    string
	repo   *GitRepository
	gogit  *gogit.Repository
	hashes []string
}

func newTestRepo(t *testing.T) testRepo {
	t.Helper()

	dir, repo := gittest.CreateRepo(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c1 := gittest.AddCommit(t, repo, "initial commit",
		map[string]string{"main.go": "package main\n\nfunc main() {}\n"},
		gittest.Author{Name: "Al", Email: "a@x.test"}, base)
	c2 := gittest.AddCommit(t, repo, "add helper",
		map[string]string{"util/helper.go": "package util\n"},
		gittest.Author{Name: "Alan", Email: "a@x.test"}, base.Add(time.Hour))
	c3 := gittest.AddCommit(t, repo, "fix: handle nil\n\nlonger body",
		map[string]string{"main.go": "package main\n\nfunc main() { run() }\n"},
		gittest.Author{Name: "Bea", Email: "b@y.test"}, base.Add(2*time.Hour))

	r, err := Open(dir, Options{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { r.Close() })

	return testRepo{dir: dir, repo: r, gogit: repo, hashes: []string{c1, c2, c3}}
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir(), Options{})
	if err == nil {
		t.Fatal("Open() on a plain directory should fail")
	}
}

func TestGitRepository_Head(t *testing.T) {
	tr := newTestRepo(t)

	head, err := tr.repo.Head()
	if err != nil {
		t.Fatalf("Head() error: %v", err)
	}
	if string(head) != tr.hashes[2] {
		t.Errorf("Head() = %s, expected %s", head, tr.hashes[2])
	}
}

func TestGitRepository_ResolveRef(t *testing.T) {
	tr := newTestRepo(t)

	h, err := tr.repo.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef(HEAD) error: %v", err)
	}
	if string(h) != tr.hashes[2] {
		t.Errorf("ResolveRef(HEAD) = %s, expected %s", h, tr.hashes[2])
	}

	_, err = tr.repo.ResolveRef("no-such-ref")
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("ResolveRef(no-such-ref) error = %v, expected ErrUnresolvedReference", err)
	}
}

func TestGitRepository_ResolveTag(t *testing.T) {
	tr := newTestRepo(t)
	gittest.Tag(t, tr.gogit, "v1.0", tr.hashes[0])

	h, err := tr.repo.ResolveTag("v1.0")
	if err != nil {
		t.Fatalf("ResolveTag(v1.0) error: %v", err)
	}
	if string(h) != tr.hashes[0] {
		t.Errorf("ResolveTag(v1.0) = %s, expected %s", h, tr.hashes[0])
	}

	_, err = tr.repo.ResolveTag("v9.9")
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("ResolveTag(v9.9) error = %v, expected ErrUnresolvedReference", err)
	}
}

func TestGitRepository_ResolveTag_Annotated(t *testing.T) {
	tr := newTestRepo(t)
	gittest.AnnotatedTag(t, tr.gogit, "v2.0", tr.hashes[1], "release v2.0")

	h, err := tr.repo.ResolveTag("v2.0")
	if err != nil {
		t.Fatalf("ResolveTag(v2.0) error: %v", err)
	}
	if string(h) != tr.hashes[1] {
		t.Errorf("annotated tag should peel to commit %s, got %s", tr.hashes[1], h)
	}
}

func TestGitRepository_Commit(t *testing.T) {
	tr := newTestRepo(t)

	c, err := tr.repo.Commit(Hash(tr.hashes[2]))
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if c.Subject() != "fix: handle nil" {
		t.Errorf("Subject() = %q", c.Subject())
	}
	if c.Author.Name != "Bea" || c.Author.Email != "b@y.test" {
		t.Errorf("Author = %+v", c.Author)
	}
	if len(c.Parents) != 1 || string(c.Parents[0]) != tr.hashes[1] {
		t.Errorf("Parents = %v, expected [%s]", c.Parents, tr.hashes[1])
	}

	_, err = tr.repo.Commit(Hash("0000000000000000000000000000000000000000"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Commit(zero) error = %v, expected ErrNotFound", err)
	}
}

func TestGitRepository_Parents(t *testing.T) {
	tr := newTestRepo(t)

	parents, err := tr.repo.Parents(Hash(tr.hashes[0]))
	if err != nil {
		t.Fatalf("Parents() error: %v", err)
	}
	if len(parents) != 0 {
		t.Errorf("root commit should have no parents, got %v", parents)
	}
}

func TestGitRepository_DiffStats(t *testing.T) {
	tr := newTestRepo(t)

	// Root commit diffs against the empty tree.
	changes, err := tr.repo.DiffStats(Hash(tr.hashes[0]))
	if err != nil {
		t.Fatalf("DiffStats(root) error: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("DiffStats(root) = %d changes, expected 1", len(changes))
	}
	if changes[0].Path != "main.go" || changes[0].Kind != ChangeKindAdded {
		t.Errorf("root change = %+v", changes[0])
	}
	if changes[0].LinesAdded != 3 || changes[0].LinesRemoved != 0 {
		t.Errorf("root change lines = +%d -%d, expected +3 -0", changes[0].LinesAdded, changes[0].LinesRemoved)
	}

	// Modification diffs against the first parent.
	changes, err = tr.repo.DiffStats(Hash(tr.hashes[2]))
	if err != nil {
		t.Fatalf("DiffStats(c3) error: %v", err)
	}
	if len(changes) != 1 || changes[0].Kind != ChangeKindModified {
		t.Fatalf("DiffStats(c3) = %+v", changes)
	}
	if changes[0].LinesAdded != 1 || changes[0].LinesRemoved != 1 {
		t.Errorf("c3 change lines = +%d -%d, expected +1 -1", changes[0].LinesAdded, changes[0].LinesRemoved)
	}
}

func TestGitRepository_DiffStats_Filters(t *testing.T) {
	tr := newTestRepo(t)

	r, err := Open(tr.dir, Options{Exclude: []string{"util/**"}})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	changes, err := r.DiffStats(Hash(tr.hashes[1]))
	if err != nil {
		t.Fatalf("DiffStats() error: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("excluded path should be filtered, got %+v", changes)
	}
}

func TestGitRepository_DiffRange(t *testing.T) {
	tr := newTestRepo(t)

	stats, err := tr.repo.DiffRange(Hash(tr.hashes[0]), Hash(tr.hashes[2]))
	if err != nil {
		t.Fatalf("DiffRange() error: %v", err)
	}
	// util/helper.go added (1 line), main.go modified (+1 -1).
	if stats.FilesChanged != 2 {
		t.Errorf("FilesChanged = %d, expected 2", stats.FilesChanged)
	}
	if stats.Insertions != 2 || stats.Deletions != 1 {
		t.Errorf("Insertions/Deletions = %d/%d, expected 2/1", stats.Insertions, stats.Deletions)
	}
}

func TestGitRepository_IsEmpty(t *testing.T) {
	dir, _ := gittest.CreateRepo(t)

	r, err := Open(dir, Options{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	if !r.IsEmpty() {
		t.Error("IsEmpty() = false for a repository with no commits")
	}
}

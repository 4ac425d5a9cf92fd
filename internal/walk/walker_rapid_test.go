package walk

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/mistahuman/gitstats/internal/git"
)

// genDAG builds a random commit graph. Commit i may only have parents
// with smaller indices, so the graph is acyclic by construction, like
// real commit parentage.
func genDAG() *rapid.Generator[*git.MockRepository] {
	return rapid.Custom(func(t *rapid.T) *git.MockRepository {
		repo := git.NewMockRepository()
		count := rapid.IntRange(1, 40).Draw(t, "count")
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		for i := 0; i < count; i++ {
			var parents []git.Hash
			if i > 0 {
				parentCount := rapid.IntRange(1, min(3, i)).Draw(t, fmt.Sprintf("parents%d", i))
				for p := 0; p < parentCount; p++ {
					idx := rapid.IntRange(0, i-1).Draw(t, fmt.Sprintf("parent%d_%d", i, p))
					parents = append(parents, hashFor(idx))
				}
			}
			// Timestamps may collide or even run backwards against
			// topology, as in real repositories with skewed clocks.
			minutes := rapid.IntRange(0, count).Draw(t, fmt.Sprintf("when%d", i))
			repo.AddCommit(git.CommitInfo{
				SHA:     hashFor(i),
				Parents: parents,
				When:    base.Add(time.Duration(minutes) * time.Minute),
				Author:  git.AuthorInfo{Name: "A", Email: "a@x.test"},
			})
		}
		return repo
	})
}

func hashFor(i int) git.Hash {
	return git.Hash(fmt.Sprintf("%040x", i+1))
}

func walkOrder(t *rapid.T, repo *git.MockRepository, start git.Hash) []git.Hash {
	it, err := New(repo, start, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var order []git.Hash
	err = it.ForEach(func(c git.CommitInfo) error {
		order = append(order, c.SHA)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error: %v", err)
	}
	return order
}

func TestRapidWalker_NoDuplicateYields(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := genDAG().Draw(t, "repo")
		start := hashFor(len(repo.Commits) - 1)

		seen := make(map[git.Hash]bool)
		for _, sha := range walkOrder(t, repo, start) {
			if seen[sha] {
				t.Fatalf("commit %s yielded twice", sha)
			}
			seen[sha] = true
		}
	})
}

func TestRapidWalker_ChildrenBeforeParents(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := genDAG().Draw(t, "repo")
		start := hashFor(len(repo.Commits) - 1)

		position := make(map[git.Hash]int)
		order := walkOrder(t, repo, start)
		for i, sha := range order {
			position[sha] = i
		}

		for _, sha := range order {
			c := repo.Commits[sha]
			for _, parent := range c.Parents {
				pPos, ok := position[parent]
				if !ok {
					t.Fatalf("parent %s of %s never yielded", parent, sha)
				}
				if pPos <= position[sha] {
					t.Fatalf("parent %s yielded before child %s", parent, sha)
				}
			}
		}
	})
}

func TestRapidWalker_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := genDAG().Draw(t, "repo")
		start := hashFor(len(repo.Commits) - 1)

		first := walkOrder(t, repo, start)
		second := walkOrder(t, repo, start)

		if len(first) != len(second) {
			t.Fatalf("runs yielded %d and %d commits", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("order diverged at %d: %s vs %s", i, first[i], second[i])
			}
		}
	})
}

func TestRapidWalker_BoundaryExclusion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		repo := genDAG().Draw(t, "repo")
		start := hashFor(len(repo.Commits) - 1)
		boundaryIdx := rapid.IntRange(0, len(repo.Commits)-1).Draw(t, "boundary")
		boundary := hashFor(boundaryIdx)

		it, err := New(repo, start, &boundary)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}

		yielded := make(map[git.Hash]bool)
		err = it.ForEach(func(c git.CommitInfo) error {
			yielded[c.SHA] = true
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach() error: %v", err)
		}

		// Nothing reachable from the boundary may appear.
		excluded := ancestry(repo, boundary)
		for sha := range yielded {
			if excluded[sha] {
				t.Fatalf("boundary ancestor %s was yielded", sha)
			}
		}

		// Everything reachable from start and not excluded must appear.
		for sha := range ancestry(repo, start) {
			if !excluded[sha] && !yielded[sha] {
				t.Fatalf("commit %s missing from range", sha)
			}
		}
	})
}

// ancestry computes the reachable set with a plain reference walk.
func ancestry(repo *git.MockRepository, root git.Hash) map[git.Hash]bool {
	reachable := make(map[git.Hash]bool)
	frontier := []git.Hash{root}
	for len(frontier) > 0 {
		id := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if reachable[id] {
			continue
		}
		reachable[id] = true
		frontier = append(frontier, repo.Commits[id].Parents...)
	}
	return reachable
}

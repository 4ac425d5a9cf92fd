// Package gittest builds throwaway git repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Author pairs a name and email for test commits.
type Author struct {
	Name  string
	Email string
}

// DefaultAuthor is used when a commit does not specify one.
var DefaultAuthor = Author{Name: "Test Author", Email: "test@example.com"}

// CreateRepo creates a temporary git repository with a worktree.
func CreateRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()

	tmpDir := t.TempDir()
	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}
	return tmpDir, repo
}

// AddCommit writes the given files and commits them, returning the
// commit hash as a hex string.
func AddCommit(t *testing.T, repo *gogit.Repository, message string, files map[string]string, author Author, when time.Time) string {
	t.Helper()

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	root := w.Filesystem.Root()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := w.Add(name); err != nil {
			t.Fatalf("Failed to add file: %v", err)
		}
	}

	if author.Name == "" && author.Email == "" {
		author = DefaultAuthor
	}

	hash, err := w.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  when,
		},
		Committer: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  when,
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	return hash.String()
}

// Tag creates a lightweight tag pointing at the given commit.
func Tag(t *testing.T, repo *gogit.Repository, name, hash string) {
	t.Helper()

	_, err := repo.CreateTag(name, plumbing.NewHash(hash), nil)
	if err != nil {
		t.Fatalf("Failed to create tag %s: %v", name, err)
	}
}

// AnnotatedTag creates an annotated tag pointing at the given commit.
func AnnotatedTag(t *testing.T, repo *gogit.Repository, name, hash, message string) {
	t.Helper()

	_, err := repo.CreateTag(name, plumbing.NewHash(hash), &gogit.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  DefaultAuthor.Name,
			Email: DefaultAuthor.Email,
			When:  time.Now(),
		},
		Message: message,
	})
	if err != nil {
		t.Fatalf("Failed to create annotated tag %s: %v", name, err)
	}
}

package identity

import (
	"testing"
	"time"

	"github.com/mistahuman/gitstats/internal/git"
)

func TestResolver_EmailIsPrimaryKey(t *testing.T) {
	r := NewResolver(Aliases{})

	tests := []struct {
		name     string
		author   git.AuthorInfo
		expected Key
	}{
		{name: "Plain email", author: git.AuthorInfo{Name: "Al", Email: "a@x.test"}, expected: "a@x.test"},
		{name: "Case normalized", author: git.AuthorInfo{Name: "Al", Email: "A@X.Test"}, expected: "a@x.test"},
		{name: "Whitespace trimmed", author: git.AuthorInfo{Name: "Al", Email: " a@x.test "}, expected: "a@x.test"},
		{name: "Different name same email", author: git.AuthorInfo{Name: "Alan", Email: "a@x.test"}, expected: "a@x.test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if key := r.Resolve(tt.author); key != tt.expected {
				t.Errorf("Resolve(%+v) = %q, expected %q", tt.author, key, tt.expected)
			}
		})
	}
}

func TestResolver_NameFallback(t *testing.T) {
	r := NewResolver(Aliases{})

	tests := []struct {
		name     string
		author   git.AuthorInfo
		expected Key
	}{
		{name: "Empty email", author: git.AuthorInfo{Name: "Al Smith", Email: ""}, expected: "al smith"},
		{name: "Missing domain", author: git.AuthorInfo{Name: "Al Smith", Email: "al@"}, expected: "al smith"},
		{name: "Missing local part", author: git.AuthorInfo{Name: "Al Smith", Email: "@x.test"}, expected: "al smith"},
		{name: "Collapsed whitespace", author: git.AuthorInfo{Name: "  Al   Smith ", Email: ""}, expected: "al smith"},
		{name: "Everything empty", author: git.AuthorInfo{}, expected: "<unknown>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if key := r.Resolve(tt.author); key != tt.expected {
				t.Errorf("Resolve(%+v) = %q, expected %q", tt.author, key, tt.expected)
			}
		})
	}
}

func TestResolver_Idempotent(t *testing.T) {
	r := NewResolver(Aliases{})
	author := git.AuthorInfo{Name: "Al", Email: "A@X.Test"}

	first := r.Resolve(author)
	second := r.Resolve(author)
	if first != second {
		t.Errorf("Resolve() not idempotent: %q vs %q", first, second)
	}
}

func TestResolver_Aliases(t *testing.T) {
	r := NewResolver(Aliases{
		Emails: map[string]string{"old@x.test": "new@x.test"},
		Names:  map[string]string{"Al Smith": "new@x.test"},
	})

	if key := r.Resolve(git.AuthorInfo{Name: "Al", Email: "Old@X.Test"}); key != "new@x.test" {
		t.Errorf("email alias not applied, got %q", key)
	}
	if key := r.Resolve(git.AuthorInfo{Name: "al smith", Email: ""}); key != "new@x.test" {
		t.Errorf("name alias not applied, got %q", key)
	}
}

func TestResolver_DisplayNameFollowsMostRecentCommit(t *testing.T) {
	r := NewResolver(Aliases{})
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Observed out of chronological order, as a newest-first traversal
	// would deliver them.
	key := r.Observe(git.AuthorInfo{Name: "Alan", Email: "a@x.test"}, base.Add(time.Hour))
	r.Observe(git.AuthorInfo{Name: "Al", Email: "a@x.test"}, base)

	if name := r.DisplayName(key); name != "Alan" {
		t.Errorf("DisplayName() = %q, expected %q (most recent commit)", name, "Alan")
	}
}

func TestResolver_DisplayNameFallsBackToKey(t *testing.T) {
	r := NewResolver(Aliases{})
	if name := r.DisplayName(Key("a@x.test")); name != "a@x.test" {
		t.Errorf("DisplayName() for unobserved key = %q", name)
	}
}

func TestResolver_NoStateLeakBetweenResolvers(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := NewResolver(Aliases{})
	first.Observe(git.AuthorInfo{Name: "Alan", Email: "a@x.test"}, base)

	second := NewResolver(Aliases{})
	if name := second.DisplayName(Key("a@x.test")); name != "a@x.test" {
		t.Errorf("fresh resolver saw state from another run: %q", name)
	}
}

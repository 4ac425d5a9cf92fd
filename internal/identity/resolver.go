// Package identity maps the raw (name, email) pairs recorded on commits
// to canonical contributor keys.
//
// Grouping is a heuristic approximation of person identity: a lowercased
// email is the primary key, spellings of the name vary freely, and alias
// tables can collapse further addresses. There is no cryptographic or
// verified identity guarantee.
package identity

import (
	"strings"
	"time"

	"github.com/mistahuman/gitstats/internal/git"
)

// Key is the canonical contributor key produced by the Resolver. Two raw
// identities with the same Key are treated as the same person for the
// duration of a run.
type Key string

// Resolver normalizes raw commit identities into canonical contributor
// keys. It carries per-run state (display-name recency); create one per
// run rather than sharing across runs.
type Resolver struct {
	emailAliases map[string]string // lowercased email -> canonical email
	nameAliases  map[string]string // normalized name -> canonical email

	names map[Key]displayName
}

type displayName struct {
	name string
	when time.Time
}

// Aliases configures identity collapsing beyond email matching.
type Aliases struct {
	// Emails maps alternate addresses to a canonical address.
	Emails map[string]string
	// Names maps display names to a canonical address, for commits
	// recorded without a usable email.
	Names map[string]string
}

// NewResolver creates a Resolver with the given alias table. A nil or
// empty Aliases is valid.
func NewResolver(aliases Aliases) *Resolver {
	r := &Resolver{
		emailAliases: make(map[string]string),
		nameAliases:  make(map[string]string),
		names:        make(map[Key]displayName),
	}
	for from, to := range aliases.Emails {
		r.emailAliases[normalizeEmail(from)] = normalizeEmail(to)
	}
	for from, to := range aliases.Names {
		r.nameAliases[normalizeName(from)] = normalizeEmail(to)
	}
	return r
}

// Resolve returns the canonical contributor key for a raw identity.
// It never fails; malformed input degrades to best-effort grouping on
// the normalized name. Resolving the same raw identity always yields
// the same key within a run.
func (r *Resolver) Resolve(author git.AuthorInfo) Key {
	email := normalizeEmail(author.Email)
	if canonical, ok := r.emailAliases[email]; ok {
		email = canonical
	}
	if wellFormed(email) {
		return Key(email)
	}

	name := normalizeName(author.Name)
	if canonical, ok := r.nameAliases[name]; ok {
		return Key(canonical)
	}
	if name != "" {
		return Key(name)
	}

	// Both fields empty or unusable; keep whatever was recorded so the
	// commit still lands somewhere.
	if email != "" {
		return Key(email)
	}
	return Key("<unknown>")
}

// Observe records a sighting of a raw identity at a commit timestamp.
// The display name reported for the key is the one attached to the most
// recent commit timestamp seen, not the most recent call.
func (r *Resolver) Observe(author git.AuthorInfo, when time.Time) Key {
	key := r.Resolve(author)

	name := strings.TrimSpace(author.Name)
	if name == "" {
		name = strings.TrimSpace(author.Email)
	}
	if name == "" {
		name = string(key)
	}

	current, ok := r.names[key]
	if !ok || when.After(current.when) {
		r.names[key] = displayName{name: name, when: when}
	}
	return key
}

// DisplayName returns the display name recorded for a key, falling back
// to the key itself when the key was never observed.
func (r *Resolver) DisplayName(key Key) string {
	if d, ok := r.names[key]; ok {
		return d.name
	}
	return string(key)
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName lowercases, trims, and collapses inner whitespace.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// wellFormed reports whether an address is usable as a grouping key:
// non-empty local and domain parts around an "@".
func wellFormed(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

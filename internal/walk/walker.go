// Package walk implements deterministic reverse-topological traversal of
// the commit graph, with ancestor-exclusion boundaries for tag ranges.
package walk

import (
	"container/heap"
	"io"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"

	"github.com/mistahuman/gitstats/internal/git"
)

// ErrStop can be returned from a ForEach callback to end the traversal
// early without an error.
var ErrStop = errors.New("stop iteration")

// Iterator walks commits reachable from a start commit, excluding any
// reachable from an optional boundary commit.
//
// Ordering contract: every commit is yielded after all of its children
// (descendants before ancestors); ties among simultaneously ready
// commits are broken by descending commit timestamp, then by ascending
// identifier byte order. The sequence is finite, produced lazily, and
// not restartable.
type Iterator struct {
	repo       git.Repository
	headers    map[git.Hash]git.CommitInfo
	childCount map[git.Hash]int
	included   *set.Set[git.Hash]
	yielded    *set.Set[git.Hash]
	ready      *commitHeap
	closed     bool
}

// New builds an iterator over the commits reachable from start but not
// from boundary. A nil boundary walks the full ancestry of start.
//
// The commit graph (headers and parent edges) is scanned up front to
// establish the ordering; per-commit diff statistics stay lazy, fetched
// by the consumer only for yielded commits. Fails with
// git.ErrUnresolvedReference naming the side that did not resolve.
func New(repo git.Repository, start git.Hash, boundary *git.Hash) (*Iterator, error) {
	if _, err := repo.Commit(start); err != nil {
		return nil, errors.Wrapf(git.ErrUnresolvedReference, "start %s", start)
	}

	excluded := set.New[git.Hash](0)
	if boundary != nil {
		if _, err := repo.Commit(*boundary); err != nil {
			return nil, errors.Wrapf(git.ErrUnresolvedReference, "boundary %s", *boundary)
		}
		if err := collectAncestry(repo, *boundary, excluded, nil, nil); err != nil {
			return nil, err
		}
	}

	it := &Iterator{
		repo:       repo,
		headers:    make(map[git.Hash]git.CommitInfo),
		childCount: make(map[git.Hash]int),
		included:   set.New[git.Hash](0),
		yielded:    set.New[git.Hash](0),
		ready:      &commitHeap{},
	}

	if excluded.Contains(start) {
		// Empty range: start is an ancestor of (or equal to) boundary.
		return it, nil
	}

	if err := collectAncestry(repo, start, it.included, excluded, it); err != nil {
		return nil, err
	}

	heap.Push(it.ready, it.headers[start])
	return it, nil
}

// Next returns the next commit in the traversal order, or io.EOF when
// the sequence is exhausted or the iterator has been closed.
func (it *Iterator) Next() (git.CommitInfo, error) {
	if it.closed || it.ready.Len() == 0 {
		return git.CommitInfo{}, io.EOF
	}

	c := heap.Pop(it.ready).(git.CommitInfo)
	it.yielded.Insert(c.SHA)

	for _, parent := range uniqueHashes(c.Parents) {
		if !it.included.Contains(parent) {
			continue
		}
		it.childCount[parent]--
		if it.childCount[parent] == 0 {
			heap.Push(it.ready, it.headers[parent])
		}
	}

	return c, nil
}

// ForEach applies fn to every remaining commit in order. Returning
// ErrStop from fn ends the walk early without error. The iterator is
// closed on all exit paths.
func (it *Iterator) ForEach(fn func(git.CommitInfo) error) error {
	defer it.Close()

	for {
		c, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// Count returns the number of commits in the traversal (yielded plus
// remaining).
func (it *Iterator) Count() int {
	return it.included.Size()
}

// Close ends the traversal and releases the graph index. Safe to call
// more than once; Next returns io.EOF afterwards.
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.headers = nil
	it.childCount = nil
	it.ready = &commitHeap{}
}

// collectAncestry walks parent edges from root with an explicit frontier
// (no recursion, so deep histories cannot exhaust the stack), inserting
// every reachable commit into out. Commits in skip, and their ancestry,
// are pruned. When it is non-nil the commit headers and per-parent child
// counts are recorded for the ordering phase.
func collectAncestry(repo git.Repository, root git.Hash, out, skip *set.Set[git.Hash], it *Iterator) error {
	frontier := []git.Hash{root}

	for len(frontier) > 0 {
		id := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if out.Contains(id) {
			continue
		}
		if skip != nil && skip.Contains(id) {
			continue
		}

		c, err := repo.Commit(id)
		if err != nil {
			return err
		}
		out.Insert(id)
		if it != nil {
			it.headers[id] = c
		}

		for _, parent := range uniqueHashes(c.Parents) {
			if skip != nil && skip.Contains(parent) {
				continue
			}
			if it != nil {
				it.childCount[parent]++
			}
			if !out.Contains(parent) {
				frontier = append(frontier, parent)
			}
		}
	}

	return nil
}

// uniqueHashes drops duplicate parent entries so a repeated parent is
// counted once.
func uniqueHashes(hashes []git.Hash) []git.Hash {
	if len(hashes) < 2 {
		return hashes
	}
	seen := set.New[git.Hash](len(hashes))
	result := hashes[:0:0]
	for _, h := range hashes {
		if seen.Insert(h) {
			result = append(result, h)
		}
	}
	return result
}

// commitHeap is a max-heap ordered by commit timestamp descending, with
// ties broken by ascending identifier byte order.
type commitHeap []git.CommitInfo

func (h commitHeap) Len() int { return len(h) }

func (h commitHeap) Less(i, j int) bool {
	if !h[i].When.Equal(h[j].When) {
		return h[i].When.After(h[j].When)
	}
	return h[i].SHA < h[j].SHA
}

func (h commitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *commitHeap) Push(x any) { *h = append(*h, x.(git.CommitInfo)) }

func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

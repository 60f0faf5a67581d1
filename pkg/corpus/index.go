// Package corpus holds the word frequency corpus and answers pattern queries against it.
//
// Words live in a Patricia trie keyed by spelling, plus a per-length bucket list. Patterns
// that start with enough literal letters walk only the matching trie subtree; patterns
// that are mostly wildcards scan the bucket of words with the right length instead.
package corpus

import (
	"context"
	"strings"

	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultWildcardThreshold is the wildcard count from which a search scans the length
// bucket rather than walking the trie.
const DefaultWildcardThreshold = 6

// Searcher answers pattern queries with matches in corpus order.
type Searcher interface {
	Search(ctx context.Context, q puzzle.Query) ([]rank.MatchResult, error)
}

// Index is an immutable, concurrency-safe view of the corpus.
type Index struct {
	trie              *patricia.Trie
	byLen             map[int][]rank.MatchResult
	totalWords        int
	maxFrequency      int64
	wildcardThreshold int
}

// NewIndex indexes entries. Later duplicates of a word replace earlier ones in the trie,
// so callers should deduplicate first (the loaders do).
func NewIndex(entries []rank.MatchResult) *Index {
	idx := &Index{
		trie:              patricia.NewTrie(),
		byLen:             make(map[int][]rank.MatchResult),
		wildcardThreshold: DefaultWildcardThreshold,
	}
	for _, e := range entries {
		idx.add(e)
	}
	for n := range idx.byLen {
		rank.SortMatches(idx.byLen[n])
	}
	return idx
}

func (idx *Index) add(e rank.MatchResult) {
	if !idx.trie.Insert(patricia.Prefix(e.Word), e.Frequency) {
		log.Debugf("Replacing duplicate word %q", e.Word)
		idx.trie.Set(patricia.Prefix(e.Word), e.Frequency)
		bucket := idx.byLen[len(e.Word)]
		for i := range bucket {
			if bucket[i].Word == e.Word {
				bucket[i].Frequency = e.Frequency
			}
		}
		return
	}
	idx.byLen[len(e.Word)] = append(idx.byLen[len(e.Word)], e)
	idx.totalWords++
	if e.Frequency > idx.maxFrequency {
		idx.maxFrequency = e.Frequency
	}
}

// SetWildcardThreshold changes when searches switch from trie walks to bucket scans.
// Zero always scans; a large value always walks the trie.
func (idx *Index) SetWildcardThreshold(n int) {
	if n < 0 {
		n = 0
	}
	idx.wildcardThreshold = n
}

// Search returns every word matching q, by descending frequency then alphabetically.
// q must already be validated.
func (idx *Index) Search(ctx context.Context, q puzzle.Query) ([]rank.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := puzzle.Compile(q)

	var results []rank.MatchResult
	var err error
	if idx.useTrie(q, m) {
		results, err = idx.walkTrie(ctx, m)
	} else {
		results, err = idx.scanBucket(ctx, m)
	}
	if err != nil {
		return nil, err
	}

	rank.SortMatches(results)
	log.Debugf("Search %s: %d matches", q, len(results))
	return results, nil
}

func (idx *Index) useTrie(q puzzle.Query, m *puzzle.Matcher) bool {
	if m.LiteralPrefix() == "" {
		return false
	}
	slots := strings.Count(q.Pattern, string(puzzle.Wildcard))
	if q.Mode == puzzle.Cryptogram {
		slots = countUpper(q.Pattern)
	}
	return slots < idx.wildcardThreshold
}

func countUpper(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			n++
		}
	}
	return n
}

func (idx *Index) walkTrie(ctx context.Context, m *puzzle.Matcher) ([]rank.MatchResult, error) {
	var results []rank.MatchResult
	visited := 0
	err := idx.trie.VisitSubtree(patricia.Prefix(m.LiteralPrefix()), func(p patricia.Prefix, item patricia.Item) error {
		visited++
		if visited%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		word := string(p)
		if !m.Match(word) {
			return nil
		}
		freq, ok := item.(int64)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, word)
			return nil
		}
		results = append(results, rank.MatchResult{Word: word, Frequency: freq})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (idx *Index) scanBucket(ctx context.Context, m *puzzle.Matcher) ([]rank.MatchResult, error) {
	var results []rank.MatchResult
	for i, e := range idx.byLen[m.Len()] {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if m.Match(e.Word) {
			results = append(results, e)
		}
	}
	return results, nil
}

// Lookup returns the frequency of word, if present.
func (idx *Index) Lookup(word string) (int64, bool) {
	item := idx.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	freq, ok := item.(int64)
	return freq, ok
}

// Stats returns statistics about the loaded corpus.
func (idx *Index) Stats() map[string]int {
	return map[string]int{
		"totalWords":   idx.totalWords,
		"maxFrequency": int(idx.maxFrequency),
		"lengths":      len(idx.byLen),
	}
}

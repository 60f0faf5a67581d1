package utils

import (
	"strings"
)

// SeenFilter drops words that were already seen, ignoring case.
// It is not safe for concurrent use.
type SeenFilter struct {
	seenWords map[string]bool
}

// NewSeenFilter creates an empty filter.
func NewSeenFilter() *SeenFilter {
	return &SeenFilter{seenWords: make(map[string]bool)}
}

// ShouldInclude checks if a word should be kept (not a duplicate).
// Returns true the first time a word is seen, false afterwards.
func (f *SeenFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}

// Len is the number of distinct words seen.
func (f *SeenFilter) Len() int {
	return len(f.seenWords)
}

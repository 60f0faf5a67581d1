package puzzle

import "strings"

// Matcher decides whether a corpus word fits a query.
type Matcher struct {
	mode    Mode
	pattern []byte
	// allowed holds, per wildcard or placeholder, which letters may fill it.
	allowed [26]bool
	prefix  string
}

// Compile prepares q for matching. q is expected to be validated.
func Compile(q Query) *Matcher {
	m := &Matcher{mode: q.Mode}

	known := q.KnownLetters()
	for i := range m.allowed {
		m.allowed[i] = q.Mode == Crossword || !known[i]
	}

	if q.Mode == Cryptogram {
		m.pattern = []byte(q.Pattern)
	} else {
		m.pattern = []byte(strings.ToLower(q.Pattern))
	}

	end := len(m.pattern)
	for i, c := range m.pattern {
		if m.isSlot(c) {
			end = i
			break
		}
	}
	m.prefix = string(m.pattern[:end])
	return m
}

func (m *Matcher) isSlot(c byte) bool {
	if m.mode == Cryptogram {
		return c >= 'A' && c <= 'Z'
	}
	return c == Wildcard
}

// LiteralPrefix is the part of the pattern before the first wildcard. Every matching
// word starts with it.
func (m *Matcher) LiteralPrefix() string {
	return m.prefix
}

// Len is the length every matching word has.
func (m *Matcher) Len() int {
	return len(m.pattern)
}

// Match reports whether word fits the pattern.
func (m *Matcher) Match(word string) bool {
	if len(word) != len(m.pattern) {
		return false
	}

	// cryptogram placeholder -> plaintext letter, and the reverse
	var forward, reverse [26]byte

	for i := 0; i < len(word); i++ {
		p, c := m.pattern[i], word[i]
		if !m.isSlot(p) {
			if p != c {
				return false
			}
			continue
		}
		if c < 'a' || c > 'z' || !m.allowed[c-'a'] {
			return false
		}
		if m.mode != Cryptogram {
			continue
		}

		// a letter never enciphers to itself
		if c == p-'A'+'a' {
			return false
		}
		slot := p - 'A'
		switch {
		case forward[slot] == 0 && reverse[c-'a'] == 0:
			forward[slot] = c
			reverse[c-'a'] = p
		case forward[slot] != c || reverse[c-'a'] != p:
			return false
		}
	}
	return true
}

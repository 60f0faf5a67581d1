// Package puzzle models a player's query: the game mode, the letter pattern and the letters
// known to be absent. It normalises raw input, validates it, and compiles the pattern into
// a matcher the corpus uses to select candidate words.
package puzzle

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/bastiangx/wordhint/pkg/rank"
)

// Wildcard stands for one unknown letter in a normalised pattern.
const Wildcard = '?'

// DefaultMaxPatternLen is the longest pattern the corpus accepts.
const DefaultMaxPatternLen = 20

// Mode selects how wildcards in a pattern may be filled.
type Mode string

const (
	// WheelOfFortune wildcards never repeat a revealed or absent letter.
	WheelOfFortune Mode = "WheelOfFortune"
	// Crossword wildcards may be any letter.
	Crossword Mode = "Crossword"
	// Cryptogram patterns use upper case placeholders for enciphered letters.
	Cryptogram Mode = "Cryptogram"
)

var (
	// ErrInvalidPattern is matched by every ValidationError.
	ErrInvalidPattern = errors.New("invalid puzzle query")
	// ErrUnknownMode is returned by ParseMode for an unrecognised name.
	ErrUnknownMode = errors.New("invalid mode")
)

// ValidationError describes which part of a query was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// ParseMode accepts the wire names of the modes, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{WheelOfFortune, Crossword, Cryptogram} {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// RanksLetters reports whether suggesting the next letter makes sense for the mode.
// Crossword answers may reuse any letter, so there is no guess to suggest.
func (m Mode) RanksLetters() bool {
	return m == WheelOfFortune || m == Cryptogram
}

// Query is a normalised request for matching words.
type Query struct {
	Mode    Mode
	Pattern string
	Absent  string
}

// NewQuery normalises raw user input into a Query.
func NewQuery(mode Mode, rawPattern, rawAbsent string) Query {
	pattern := Normalize(rawPattern)
	if mode == Cryptogram {
		pattern = normalizeCryptogram(rawPattern)
	}
	return Query{
		Mode:    mode,
		Pattern: pattern,
		Absent:  NormalizeAbsent(rawAbsent),
	}
}

// Normalize trims, lower-cases and strips whitespace from a raw pattern, expands the
// unicode ellipsis and turns '.' and '*' into the '?' wildcard.
func Normalize(raw string) string {
	p := strings.ToLower(stripSpace(raw))
	p = strings.ReplaceAll(p, "…", "...")
	return strings.NewReplacer(".", "?", "*", "?").Replace(p)
}

// normalizeCryptogram keeps the case of the pattern since upper case marks placeholders.
func normalizeCryptogram(raw string) string {
	return strings.ReplaceAll(stripSpace(raw), "…", "...")
}

// NormalizeAbsent trims, lower-cases and strips whitespace from the absent letters.
func NormalizeAbsent(raw string) string {
	return strings.ToLower(stripSpace(raw))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Validate checks the query against the characters and length the corpus accepts.
func (q Query) Validate(maxLen int) error {
	if q.Pattern == "" {
		return &ValidationError{Field: "pattern", Message: "no pattern specified"}
	}
	for _, c := range q.Pattern {
		if !isAllowedPatternChar(c, q.Mode) {
			return &ValidationError{Field: "pattern", Message: "disallowed characters in pattern"}
		}
	}
	if maxLen > 0 && len(q.Pattern) > maxLen {
		return &ValidationError{Field: "pattern", Message: "pattern too long"}
	}
	for _, c := range q.Absent {
		if !isASCIILetter(c) {
			return &ValidationError{Field: "absent_letters", Message: "disallowed characters in absent_letters"}
		}
	}
	return nil
}

func isAllowedPatternChar(c rune, mode Mode) bool {
	if isASCIILetter(c) || c == '\'' || c == '-' {
		return true
	}
	return mode != Cryptogram && c == Wildcard
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// KnownLetters returns the letters a player can no longer guess usefully.
func (q Query) KnownLetters() rank.KnownLetters {
	switch q.Mode {
	case Crossword:
		return rank.NewKnownLetters(q.Absent)
	case Cryptogram:
		return rank.NewKnownLetters(solvedLetters(q.Pattern), q.Absent)
	default:
		return rank.NewKnownLetters(q.Pattern, q.Absent)
	}
}

func solvedLetters(pattern string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return -1
		}
		return r
	}, pattern)
}

// Values encodes the query the way the corpus service expects it.
// Empty mode and absent letters are left out.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Mode != "" {
		v.Set("mode", string(q.Mode))
	}
	v.Set("pattern", q.Pattern)
	if q.Absent != "" {
		v.Set("absent_letters", q.Absent)
	}
	return v
}

// Key identifies the query for caching.
func (q Query) Key() string {
	return string(q.Mode) + "|" + q.Pattern + "|" + q.Absent
}

// String renders the query for logs.
func (q Query) String() string {
	if q.Absent == "" {
		return fmt.Sprintf("%s %s", q.Mode, q.Pattern)
	}
	return fmt.Sprintf("%s %s -%s", q.Mode, q.Pattern, q.Absent)
}

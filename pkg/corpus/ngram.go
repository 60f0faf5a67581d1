package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/wordhint/pkg/rank"
)

// DefaultFrequencyCutoff drops the long tail of rare words and OCR typos.
const DefaultFrequencyCutoff = 10000

// skipping _NUM since numbers are never puzzle answers
var posSuffixes = []string{"_NOUN", "_VERB", "_ADJ", "_ADV", "_ADP", "_PRON", "_DET", "_CONJ", "_PRT"}

// NgramCounter sums Google Books 1-gram counts per lower-cased word.
type NgramCounter struct {
	counts map[string]int64
	lines  int
}

// NewNgramCounter returns an empty counter.
func NewNgramCounter() *NgramCounter {
	return &NgramCounter{counts: make(map[string]int64)}
}

// Len is the number of distinct words counted so far.
func (c *NgramCounter) Len() int {
	return len(c.counts)
}

// ReadFrom consumes one 1-gram file: "word\tyear,count,volumes\t...".
func (c *NgramCounter) ReadFrom(r io.Reader) (int64, error) {
	reader := bufio.NewReader(r)
	var read int64
	for {
		line, err := reader.ReadString('\n')
		read += int64(len(line))
		if len(strings.TrimSpace(line)) > 0 {
			c.lines++
			if perr := c.ParseLine(line); perr != nil {
				return read, fmt.Errorf("line %d: %w", c.lines, perr)
			}
		}
		if err == io.EOF {
			return read, nil
		}
		if err != nil {
			return read, err
		}
	}
}

// ParseLine adds the counts of a single 1-gram line. Words with characters a puzzle
// cannot show are skipped without error.
func (c *NgramCounter) ParseLine(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return fmt.Errorf("no word")
	}

	word := parts[0]
	for i := 0; i < len(word); i++ {
		if !isAllowedCorpusChar(word[i]) {
			return nil
		}
	}
	if strings.Contains(word, "_") {
		word = TrimPartOfSpeech(word)
		if strings.Contains(word, "_") {
			return nil
		}
	}
	word = strings.ToLower(word)

	var count int64
	for _, entry := range parts[1:] {
		// year,match count,volume count
		fields := strings.Split(entry, ",")
		if len(fields) < 2 {
			return fmt.Errorf("no count in entry %s", entry)
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("couldn't parse count: %w", err)
		}
		count += n
	}
	c.counts[word] += count
	return nil
}

// Entries returns words with at least cutoff occurrences, by descending frequency
// then alphabetically.
func (c *NgramCounter) Entries(cutoff int64) []rank.MatchResult {
	entries := make([]rank.MatchResult, 0, len(c.counts))
	for word, n := range c.counts {
		if n >= cutoff {
			entries = append(entries, rank.MatchResult{Word: word, Frequency: n})
		}
	}
	rank.SortMatches(entries)
	return entries
}

// TrimPartOfSpeech removes a trailing part-of-speech tag such as "_NOUN".
func TrimPartOfSpeech(word string) string {
	for _, suffix := range posSuffixes {
		if strings.HasSuffix(word, suffix) {
			return word[:len(word)-len(suffix)]
		}
	}
	return word
}

func isAllowedCorpusChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '\'' || c == '_' || c == '-'
}

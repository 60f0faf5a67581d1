/*
Package rank turns raw corpus matches into the rankings shown to a player.

Two stages are provided, both pure and safe for concurrent use:

Aggregate derives a ranking of the letters a player has not used yet. Every match adds its
corpus frequency to each distinct letter of its word, so a letter's score is the combined
popularity of all remaining candidates that contain it.

	ranking, err := rank.Aggregate(matches, rank.NewKnownLetters("??ai?", "er"))

Partition splits any ranked slice into a visible head and a collapsed overflow tail. The
limit is chosen by the caller (wordhint uses 10 for words and 5 for letters).

	words, err := rank.Partition(matches, 10)
	words = rank.SetOverflowOpen(words, true)

Neither stage fetches, renders or stores anything. A zero total frequency is reported through
LetterRanking.Empty and LetterScore.Percentage rather than producing NaN values.
*/
package rank

// Alphabet is the set of letters a puzzle can reveal, in tie-break order.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// MatchResult is one corpus hit.
type MatchResult struct {
	Word      string `json:"word" msgpack:"w"`
	Frequency int64  `json:"frequency" msgpack:"f"`
}

// LetterScore is the weighted score of a letter not yet known to the player.
type LetterScore struct {
	Letter byte
	Score  int64
	total  int64
}

// Percentage returns Score as a share of the total frequency of the match set.
// ok is false when the total is zero and no share can be computed.
func (s LetterScore) Percentage() (pct float64, ok bool) {
	if s.total <= 0 {
		return 0, false
	}
	return float64(s.Score) / float64(s.total) * 100, true
}

// String returns the letter itself.
func (s LetterScore) String() string {
	return string(s.Letter)
}

// LetterRanking holds the letters of the alphabet minus the known letters,
// ordered by descending score and then alphabetically.
type LetterRanking struct {
	Letters        []LetterScore
	TotalFrequency int64
}

// Empty reports whether there is nothing to rank, i.e. the match set carried no weight.
func (r LetterRanking) Empty() bool {
	return r.TotalFrequency == 0
}

// Score returns the score of letter and whether it is part of the ranking.
func (r LetterRanking) Score(letter byte) (int64, bool) {
	for _, s := range r.Letters {
		if s.Letter == letter {
			return s.Score, true
		}
	}
	return 0, false
}

// KnownLetters is the set of letters already fixed by the pattern or declared absent.
type KnownLetters [26]bool

// NewKnownLetters builds a set from any number of strings. Characters outside
// a-z (after case folding) are ignored, so raw patterns can be passed as-is.
func NewKnownLetters(sources ...string) KnownLetters {
	var k KnownLetters
	for _, src := range sources {
		for i := 0; i < len(src); i++ {
			if idx, ok := letterIndex(src[i]); ok {
				k[idx] = true
			}
		}
	}
	return k
}

// Contains reports whether letter is known. Upper case letters are folded.
func (k KnownLetters) Contains(letter byte) bool {
	idx, ok := letterIndex(letter)
	return ok && k[idx]
}

// String lists the known letters alphabetically.
func (k KnownLetters) String() string {
	buf := make([]byte, 0, 26)
	for i, known := range k {
		if known {
			buf = append(buf, Alphabet[i])
		}
	}
	return string(buf)
}

func letterIndex(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	}
	return 0, false
}

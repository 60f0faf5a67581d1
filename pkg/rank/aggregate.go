package rank

import "sort"

// Aggregate ranks the letters not in known by their weighted occurrence in matches.
//
// A letter scores the frequency of every match whose word contains it, counted once per
// word however often it repeats there. Known letters never appear in the result.
// An empty matches slice is valid and yields all-zero scores with TotalFrequency 0.
func Aggregate(matches []MatchResult, known KnownLetters) (LetterRanking, error) {
	var scores [26]int64
	var total int64

	for i, m := range matches {
		if m.Frequency < 0 {
			return LetterRanking{}, newContractViolation("aggregate",
				"match %d (%q) has negative frequency %d", i, m.Word, m.Frequency)
		}
		total += m.Frequency

		seen := distinctLetters(m.Word)
		for idx, present := range seen {
			if present && !known[idx] {
				scores[idx] += m.Frequency
			}
		}
	}

	letters := make([]LetterScore, 0, 26)
	for idx := range scores {
		if known[idx] {
			continue
		}
		letters = append(letters, LetterScore{
			Letter: Alphabet[idx],
			Score:  scores[idx],
			total:  total,
		})
	}
	SortLetters(letters)

	return LetterRanking{Letters: letters, TotalFrequency: total}, nil
}

// SortLetters orders scores by descending Score, alphabetically on ties.
func SortLetters(letters []LetterScore) {
	sort.SliceStable(letters, func(i, j int) bool {
		if letters[i].Score != letters[j].Score {
			return letters[i].Score > letters[j].Score
		}
		return letters[i].Letter < letters[j].Letter
	})
}

// SortMatches orders matches by descending Frequency, alphabetically on ties.
// This is the order the corpus service emits.
func SortMatches(matches []MatchResult) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Frequency != matches[j].Frequency {
			return matches[i].Frequency > matches[j].Frequency
		}
		return matches[i].Word < matches[j].Word
	})
}

func distinctLetters(word string) [26]bool {
	var seen [26]bool
	for i := 0; i < len(word); i++ {
		if idx, ok := letterIndex(word[i]); ok {
			seen[idx] = true
		}
	}
	return seen
}

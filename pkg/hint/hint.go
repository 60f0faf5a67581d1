package hint

import (
	"context"
	"fmt"

	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
)

// Default page sizes.
const (
	DefaultWordLimit   = 10
	DefaultLetterLimit = 5
)

// Outcome is an already classified corpus response: either matches, or an error message.
type Outcome struct {
	Matches []rank.MatchResult
	Err     string
}

// Report is what the player sees for one query.
type Report struct {
	Query          puzzle.Query
	Words          rank.Disclosure[rank.MatchResult]
	Letters        rank.Disclosure[rank.LetterScore]
	TotalFrequency int64
	// RanksLetters is false for modes where Letters is left empty.
	RanksLetters bool
}

// ToggleWords opens or collapses the word overflow.
func (r *Report) ToggleWords(open bool) {
	r.Words = rank.SetOverflowOpen(r.Words, open)
}

// ToggleLetters opens or collapses the letter overflow.
func (r *Report) ToggleLetters(open bool) {
	r.Letters = rank.SetOverflowOpen(r.Letters, open)
}

// Assistant builds reports with fixed page sizes.
type Assistant struct {
	WordLimit   int
	LetterLimit int
}

// NewAssistant returns an Assistant with the default page sizes.
func NewAssistant() Assistant {
	return Assistant{WordLimit: DefaultWordLimit, LetterLimit: DefaultLetterLimit}
}

// Build ranks outcome for q. An upstream error is returned as *UpstreamError and
// an outcome without matches as ErrEmptyResult; neither is aggregated.
func (a Assistant) Build(q puzzle.Query, outcome Outcome) (*Report, error) {
	if outcome.Err != "" {
		return nil, &UpstreamError{Message: outcome.Err}
	}
	if len(outcome.Matches) == 0 {
		return nil, ErrEmptyResult
	}

	ranking, err := rank.Aggregate(outcome.Matches, q.KnownLetters())
	if err != nil {
		return nil, err
	}
	words, err := rank.Partition(outcome.Matches, a.WordLimit)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Query:          q,
		Words:          words,
		TotalFrequency: ranking.TotalFrequency,
		RanksLetters:   q.Mode.RanksLetters(),
	}
	if report.RanksLetters {
		report.Letters, err = rank.Partition(ranking.Letters, a.LetterLimit)
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

// Ask fetches q through f and builds the report.
func (a Assistant) Ask(ctx context.Context, f Fetcher, q puzzle.Query) (*Report, error) {
	outcome, err := f.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q, err)
	}
	log.Debugf("Query %s returned %d matches", q, len(outcome.Matches))
	return a.Build(q, outcome)
}

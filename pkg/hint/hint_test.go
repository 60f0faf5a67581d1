package hint

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letters(d rank.Disclosure[rank.LetterScore]) string {
	out := make([]byte, 0, d.Len())
	for _, l := range d.Shown() {
		out = append(out, l.Letter)
	}
	return string(out)
}

func TestBuildChairChain(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "chai?"}
	outcome := Outcome{Matches: []rank.MatchResult{{Word: "chair", Frequency: 10}, {Word: "chain", Frequency: 5}}}

	report, err := NewAssistant().Build(q, outcome)
	require.NoError(t, err)

	assert.True(t, report.RanksLetters)
	assert.Equal(t, int64(15), report.TotalFrequency)
	assert.Equal(t, outcome.Matches, report.Words.Visible)
	assert.False(t, report.Words.HasOverflow())

	assert.Equal(t, "rnbde", letters(report.Letters))
	assert.True(t, report.Letters.HasOverflow())
	assert.Len(t, report.Letters.Overflow, 26-4-5)

	pct, ok := report.Letters.Visible[0].Percentage()
	require.True(t, ok)
	assert.InDelta(t, 66.67, pct, 0.01)
	pct, ok = report.Letters.Visible[1].Percentage()
	require.True(t, ok)
	assert.InDelta(t, 33.33, pct, 0.01)
}

func TestBuildEmptyResult(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "zz?"}
	for _, outcome := range []Outcome{{}, {Matches: []rank.MatchResult{}}} {
		report, err := NewAssistant().Build(q, outcome)
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrEmptyResult)
	}
}

func TestBuildUpstreamError(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "t?e"}
	outcome := Outcome{
		Err: "corpus unavailable",
		// ignored: an error outcome is never aggregated
		Matches: []rank.MatchResult{{Word: "bad", Frequency: -1}},
	}
	// a negative limit would fail partitioning if it were reached
	report, err := Assistant{WordLimit: -1, LetterLimit: -1}.Build(q, outcome)
	assert.Nil(t, report)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "corpus unavailable", upstream.Message)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.False(t, errors.Is(err, ErrEmptyResult))
}

func TestBuildCrosswordSkipsLetters(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.Crossword, Pattern: "t?e"}
	outcome := Outcome{Matches: []rank.MatchResult{{Word: "the", Frequency: 5}, {Word: "tee", Frequency: 2}}}

	report, err := NewAssistant().Build(q, outcome)
	require.NoError(t, err)
	assert.False(t, report.RanksLetters)
	assert.Zero(t, report.Letters.Len())
	assert.Equal(t, int64(7), report.TotalFrequency)
}

func TestBuildContractViolations(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "t?e"}
	good := Outcome{Matches: []rank.MatchResult{{Word: "the", Frequency: 5}}}

	_, err := Assistant{WordLimit: -1, LetterLimit: 5}.Build(q, good)
	assert.ErrorIs(t, err, rank.ErrContractViolation)

	_, err = Assistant{WordLimit: 10, LetterLimit: -3}.Build(q, good)
	assert.ErrorIs(t, err, rank.ErrContractViolation)

	bad := Outcome{Matches: []rank.MatchResult{{Word: "the", Frequency: -5}}}
	_, err = NewAssistant().Build(q, bad)
	assert.ErrorIs(t, err, rank.ErrContractViolation)
}

func TestBuildPreservesWordOrder(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "???"}
	var matches []rank.MatchResult
	for i := 0; i < 15; i++ {
		matches = append(matches, rank.MatchResult{Word: fmt.Sprintf("w%02d", i), Frequency: int64(i)})
	}

	report, err := NewAssistant().Build(q, Outcome{Matches: matches})
	require.NoError(t, err)
	assert.Len(t, report.Words.Visible, 10)
	assert.Len(t, report.Words.Overflow, 5)
	assert.Equal(t, "w00", report.Words.Visible[0].Word)
	assert.Equal(t, matches, append(report.Words.Visible, report.Words.Overflow...))
}

func TestReportToggles(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "chai?"}
	report, err := NewAssistant().Build(q, Outcome{Matches: []rank.MatchResult{{Word: "chair", Frequency: 10}}})
	require.NoError(t, err)

	assert.False(t, report.Letters.Open)
	report.ToggleLetters(true)
	assert.True(t, report.Letters.Open)
	assert.Len(t, report.Letters.Shown(), 22)
	report.ToggleLetters(false)
	assert.False(t, report.Letters.Open)

	report.ToggleWords(true)
	assert.True(t, report.Words.Open)
	assert.False(t, report.Letters.Open)
}

type stubFetcher struct {
	outcome Outcome
	err     error
	got     puzzle.Query
}

func (s *stubFetcher) Fetch(_ context.Context, q puzzle.Query) (Outcome, error) {
	s.got = q
	return s.outcome, s.err
}

func TestAsk(t *testing.T) {
	q := puzzle.Query{Mode: puzzle.Cryptogram, Pattern: "XYX"}
	f := &stubFetcher{outcome: Outcome{Matches: []rank.MatchResult{{Word: "did", Frequency: 3}}}}

	report, err := NewAssistant().Ask(context.Background(), f, q)
	require.NoError(t, err)
	assert.Equal(t, q, f.got)
	assert.Equal(t, "did", report.Words.Visible[0].Word)

	f.err = errors.New("connection refused")
	_, err = NewAssistant().Ask(context.Background(), f, q)
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, errors.Is(err, ErrUpstream))
}

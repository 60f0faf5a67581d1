package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bastiangx/wordhint/pkg/hint"
	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

type stubFetcher struct {
	outcome hint.Outcome
	err     error
	queries []puzzle.Query
}

func (s *stubFetcher) Fetch(_ context.Context, q puzzle.Query) (hint.Outcome, error) {
	s.queries = append(s.queries, q)
	return s.outcome, s.err
}

func chairChain() hint.Outcome {
	return hint.Outcome{Matches: []rank.MatchResult{{Word: "chair", Frequency: 1200}, {Word: "chain", Frequency: 600}}}
}

func TestRenderReport(t *testing.T) {
	q := puzzle.NewQuery(puzzle.WheelOfFortune, "chai?", "")
	report, err := hint.NewAssistant().Build(q, chairChain())
	require.NoError(t, err)

	var out bytes.Buffer
	NewRenderer(&out).Render(report)
	text := out.String()

	assert.Contains(t, text, "Words for WheelOfFortune chai?")
	assert.Contains(t, text, " 1. chair")
	assert.Contains(t, text, "1,200")
	assert.Contains(t, text, " 2. chain")
	assert.NotContains(t, text, "More words")
	assert.Contains(t, text, " 1. r 66.67%")
	assert.Contains(t, text, " 2. n 33.33%")
	assert.Contains(t, text, "▸ More letters (17)")

	report.ToggleLetters(true)
	out.Reset()
	NewRenderer(&out).Render(report)
	assert.Contains(t, out.String(), "22. z 0.00%")
	assert.Contains(t, out.String(), "▾ Fewer letters")
}

func TestRenderCrosswordHasNoLetters(t *testing.T) {
	q := puzzle.NewQuery(puzzle.Crossword, "chai?", "")
	report, err := hint.NewAssistant().Build(q, chairChain())
	require.NoError(t, err)

	var out bytes.Buffer
	NewRenderer(&out).Render(report)
	assert.NotContains(t, out.String(), "letters")
}

func TestRenderNumbersLongExpandedLists(t *testing.T) {
	matches := make([]rank.MatchResult, 65540)
	for i := range matches {
		matches[i] = rank.MatchResult{Word: fmt.Sprintf("w%d", i), Frequency: int64(len(matches) - i)}
	}
	q := puzzle.NewQuery(puzzle.Crossword, "??????", "")
	report, err := hint.NewAssistant().Build(q, hint.Outcome{Matches: matches})
	require.NoError(t, err)
	report.ToggleWords(true)

	var out bytes.Buffer
	NewRenderer(&out).Render(report)
	text := out.String()
	assert.Contains(t, text, "65535. w65534 ")
	assert.Contains(t, text, "65536. w65535 ")
	assert.Contains(t, text, "65540. w65539 ")
	assert.NotContains(t, text, "\n 0. ")
}

func TestRenderZeroFrequencyShowsScores(t *testing.T) {
	q := puzzle.NewQuery(puzzle.WheelOfFortune, "?", "")
	report, err := hint.NewAssistant().Build(q, hint.Outcome{Matches: []rank.MatchResult{{Word: "a", Frequency: 0}}})
	require.NoError(t, err)

	var out bytes.Buffer
	NewRenderer(&out).Render(report)
	assert.Contains(t, out.String(), "scores only")
	assert.Contains(t, out.String(), " 1. a 0")
	assert.NotContains(t, out.String(), "%")
}

func TestRenderError(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)

	r.RenderError(hint.ErrEmptyResult)
	assert.Equal(t, "No words found\n", out.String())

	out.Reset()
	r.RenderError(&hint.UpstreamError{Message: "corpus unavailable"})
	assert.Equal(t, "Error: corpus unavailable\n", out.String())
}

func TestInputHandlerQuery(t *testing.T) {
	f := &stubFetcher{outcome: chairChain()}
	var out bytes.Buffer
	h := NewInputHandler(f, hint.NewAssistant(), puzzle.WheelOfFortune, 20, &out)

	input := strings.Join([]string{
		"CHAI.  e r",
		":letters",
		":mode crossword",
		"t*e",
		":quit",
		"never read",
	}, "\n")
	require.NoError(t, h.Run(context.Background(), strings.NewReader(input)))

	require.Len(t, f.queries, 2)
	assert.Equal(t, puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "chai?", Absent: "er"}, f.queries[0])
	assert.Equal(t, puzzle.Query{Mode: puzzle.Crossword, Pattern: "t?e"}, f.queries[1])
	assert.Equal(t, puzzle.Crossword, h.Mode())

	text := out.String()
	assert.Contains(t, text, "▸ More letters (15)")
	assert.Contains(t, text, "▾ Fewer letters")
	assert.Contains(t, text, "mode: Crossword")
}

func TestInputHandlerValidation(t *testing.T) {
	f := &stubFetcher{outcome: chairChain()}
	var out bytes.Buffer
	h := NewInputHandler(f, hint.NewAssistant(), puzzle.WheelOfFortune, 5, &out)

	h.HandleLine(context.Background(), "abcdefg")
	h.HandleLine(context.Background(), "t?e 1")
	assert.Empty(t, f.queries)
	assert.Contains(t, out.String(), "Error: pattern too long")
	assert.Contains(t, out.String(), "Error: disallowed characters in absent_letters")
}

func TestInputHandlerErrors(t *testing.T) {
	f := &stubFetcher{outcome: hint.Outcome{Err: "corpus unavailable"}}
	var out bytes.Buffer
	h := NewInputHandler(f, hint.NewAssistant(), puzzle.WheelOfFortune, 20, &out)

	h.HandleLine(context.Background(), "t?e")
	assert.Contains(t, out.String(), "Error: corpus unavailable")

	h.HandleLine(context.Background(), ":words")
	assert.Contains(t, out.String(), "nothing to show yet")

	f.outcome = hint.Outcome{}
	h.HandleLine(context.Background(), "t?e")
	assert.Contains(t, out.String(), "No words found")

	f.err = errors.New("dial tcp: connection refused")
	h.HandleLine(context.Background(), "t?e")
	assert.Contains(t, out.String(), "connection refused")

	h.HandleLine(context.Background(), ":mode Scrabble")
	assert.Contains(t, out.String(), "Error: invalid mode")
	assert.Equal(t, puzzle.WheelOfFortune, h.Mode())

	h.HandleLine(context.Background(), ":bogus")
	assert.Contains(t, out.String(), "unknown command :bogus")
}

package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/bastiangx/wordhint/pkg/corpus"
	"github.com/bastiangx/wordhint/pkg/hint"
	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
)

// ErrBadRequest is matched by a RequestError with a 4xx status.
var ErrBadRequest = errors.New("bad request")

// RequestError is a failed search with the status to report it under.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	return target == ErrBadRequest && e.Status >= 400 && e.Status < 500
}

func badRequest(msg string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: msg}
}

// Service validates raw queries and runs them against a corpus.
type Service struct {
	searcher      corpus.Searcher
	maxPatternLen int
}

// NewService wraps searcher. maxPatternLen <= 0 uses puzzle.DefaultMaxPatternLen.
func NewService(searcher corpus.Searcher, maxPatternLen int) *Service {
	if maxPatternLen <= 0 {
		maxPatternLen = puzzle.DefaultMaxPatternLen
	}
	return &Service{searcher: searcher, maxPatternLen: maxPatternLen}
}

// ParseQuery builds a validated query from raw request fields.
func (s *Service) ParseQuery(mode, pattern, absent string) (puzzle.Query, error) {
	if mode == "" {
		return puzzle.Query{}, badRequest("no mode specified")
	}
	m, err := puzzle.ParseMode(mode)
	if err != nil {
		return puzzle.Query{}, badRequest("invalid mode")
	}
	if pattern == "" {
		return puzzle.Query{}, badRequest("no pattern specified")
	}

	q := puzzle.NewQuery(m, pattern, absent)
	if err := q.Validate(s.maxPatternLen); err != nil {
		return puzzle.Query{}, badRequest(err.Error())
	}
	return q, nil
}

// Search parses and runs a query. The result is never nil, so it encodes as an
// empty list rather than null.
func (s *Service) Search(ctx context.Context, mode, pattern, absent string) ([]rank.MatchResult, error) {
	q, err := s.ParseQuery(mode, pattern, absent)
	if err != nil {
		return nil, err
	}

	results, err := s.searcher.Search(ctx, q)
	if err != nil {
		log.Errorf("Search %s failed: %v", q, err)
		return nil, &RequestError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	if results == nil {
		results = []rank.MatchResult{}
	}
	return results, nil
}

// Fetch runs q in-process, so the hint assistant can work without an HTTP hop.
// Rejections become an upstream error in the Outcome, as they would over HTTP.
func (s *Service) Fetch(ctx context.Context, q puzzle.Query) (hint.Outcome, error) {
	results, err := s.Search(ctx, string(q.Mode), q.Pattern, q.Absent)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return hint.Outcome{Err: reqErr.Message}, nil
		}
		return hint.Outcome{}, err
	}
	return hint.Outcome{Matches: results}, nil
}

// Stats reports corpus and cache statistics when the searcher provides them.
func (s *Service) Stats() map[string]int {
	if st, ok := s.searcher.(interface{ Stats() map[string]int }); ok {
		return st.Stats()
	}
	return map[string]int{}
}

// statusOf maps any error to the status it is reported under.
func statusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return http.StatusInternalServerError
}

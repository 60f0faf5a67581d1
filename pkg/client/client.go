// Package client queries a corpus service over HTTP and classifies its JSON responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bastiangx/wordhint/pkg/hint"
	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id the service logs each request under.
const RequestIDHeader = "X-Request-ID"

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// Client talks to one /search_corpus endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a Client for endpoint, e.g. "http://localhost:8080/search_corpus".
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "?"),
		http:     &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch runs q against the corpus. The response is classified by shape: a JSON
// array is the match list, an object with "error" is an upstream error. Anything
// else, and any transport failure, is returned as an error.
func (c *Client) Fetch(ctx context.Context, q puzzle.Query) (hint.Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Values().Encode(), nil)
	if err != nil {
		return hint.Outcome{}, err
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return hint.Outcome{}, err
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return hint.Outcome{}, fmt.Errorf("read response: %w", err)
	}
	log.Debugf("GET %s [%s] -> %d in %v", q, requestID, resp.StatusCode, time.Since(start))

	return Classify(blob, resp.StatusCode)
}

// Classify decodes a corpus payload into an Outcome.
func Classify(blob []byte, status int) (hint.Outcome, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 {
		return hint.Outcome{}, fmt.Errorf("empty response (status %d)", status)
	}

	switch trimmed[0] {
	case '[':
		var matches []rank.MatchResult
		if err := json.Unmarshal(trimmed, &matches); err != nil {
			return hint.Outcome{}, fmt.Errorf("decode matches: %w", err)
		}
		return hint.Outcome{Matches: matches}, nil
	case '{':
		var payload struct {
			Error *string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return hint.Outcome{}, fmt.Errorf("decode error payload: %w", err)
		}
		if payload.Error == nil {
			return hint.Outcome{}, fmt.Errorf("unexpected object in response (status %d)", status)
		}
		msg := *payload.Error
		if msg == "" {
			msg = fmt.Sprintf("corpus error (status %d)", status)
		}
		return hint.Outcome{Err: msg}, nil
	}
	return hint.Outcome{}, fmt.Errorf("unexpected response (status %d): %.64s", status, trimmed)
}

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bastiangx/wordhint/pkg/hint"
	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMatches(t *testing.T) {
	var gotQuery, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"word":"chair","frequency":10},{"word":"chain","frequency":5}]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/search_corpus", time.Second)
	q := puzzle.Query{Mode: puzzle.WheelOfFortune, Pattern: "??ai?", Absent: "er"}
	outcome, err := c.Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "absent_letters=er&mode=WheelOfFortune&pattern=%3F%3Fai%3F", gotQuery)
	assert.Len(t, gotID, 36)
	assert.Equal(t, hint.Outcome{Matches: []rank.MatchResult{
		{Word: "chair", Frequency: 10},
		{Word: "chain", Frequency: 5},
	}}, outcome)
}

func TestFetchOmitsEmptyFields(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	outcome, err := New(srv.URL, time.Second).Fetch(context.Background(), puzzle.Query{Pattern: "t?e"})
	require.NoError(t, err)
	assert.Equal(t, "pattern=t%3Fe", gotQuery)
	assert.Empty(t, outcome.Matches)
	assert.Empty(t, outcome.Err)
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"corpus unavailable"}`))
	}))
	defer srv.Close()

	outcome, err := New(srv.URL, time.Second).Fetch(context.Background(), puzzle.Query{Pattern: "t?e"})
	require.NoError(t, err)
	assert.Equal(t, "corpus unavailable", outcome.Err)
	assert.Nil(t, outcome.Matches)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Fetch(context.Background(), puzzle.Query{Pattern: "t?e"})
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    hint.Outcome
		wantErr string
	}{
		{"array", ` [{"word":"the","frequency":3}]`, hint.Outcome{Matches: []rank.MatchResult{{Word: "the", Frequency: 3}}}, ""},
		{"error object", `{"error":"no mode specified"}`, hint.Outcome{Err: "no mode specified"}, ""},
		{"empty error message", `{"error":""}`, hint.Outcome{Err: "corpus error (status 500)"}, ""},
		{"object without error", `{"words":[]}`, hint.Outcome{}, "unexpected object"},
		{"empty body", "  ", hint.Outcome{}, "empty response"},
		{"html", "<html>", hint.Outcome{}, "unexpected response"},
		{"bad array", `[{"word":1}]`, hint.Outcome{}, "decode matches"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify([]byte(tt.body), http.StatusInternalServerError)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndpointTrimsQueryMark(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/search_corpus", New("http://localhost:8080/search_corpus?", time.Second).Endpoint())
}

/*
Package server exposes a corpus to clients, over HTTP or over msgpack IPC.

Both transports share one Service which parses, validates and runs the query, so a
request is rejected with the same message whichever way it arrives.

# HTTP

	GET /search_corpus?mode=WheelOfFortune&pattern=%3F%3Fai%3F&absent_letters=er

returns a JSON array ordered by descending frequency:

	[{"word": "chair", "frequency": 120}, {"word": "chain", "frequency": 60}]

or, for a rejected query, an object with a 400 or 500 status:

	{"error": "pattern too long"}

Every response carries an X-Request-ID header, echoed from the request when present.

# IPC

The IPC server reads msgpack requests from stdin and writes msgpack responses to stdout.
It announces itself with {"status": "ready"} before the first request.

	{"id": "req_001", "m": "WheelOfFortune", "p": "t?e", "a": "h"}

is answered with

	{"id": "req_001", "w": [{"w": "tie", "f": 900}, {"w": "toe", "f": 700}], "c": 2, "t": 145}

where t is the search time in microseconds, or with an error carrying an HTTP-like code:

	{"id": "req_001", "e": "invalid mode", "c": 400}

A request without an id gets a generated one. The optional "l" field caps the number of
words returned.
*/
package server

import "github.com/bastiangx/wordhint/pkg/rank"

// SearchRequest - IPC search request
type SearchRequest struct {
	ID      string `msgpack:"id"`
	Mode    string `msgpack:"m"`
	Pattern string `msgpack:"p"`
	Absent  string `msgpack:"a,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
}

// SearchResponse - IPC search response
type SearchResponse struct {
	ID        string             `msgpack:"id"`
	Words     []rank.MatchResult `msgpack:"w"`
	Count     int                `msgpack:"c"`
	TimeTaken int64              `msgpack:"t"`
}

// SearchError holds basic error information for failed requests
type SearchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// StatusMessage is sent once the IPC server is ready.
type StatusMessage struct {
	Status string `msgpack:"status"`
}

// ErrorResponse is the JSON body of a rejected HTTP request.
type ErrorResponse struct {
	Error string `json:"error"`
}

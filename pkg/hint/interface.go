// Package hint turns the outcome of a corpus query into a report: the matching words and,
// for modes where guessing a letter makes sense, the letters most likely to appear next.
// Both lists are split into a visible head and a collapsed overflow.
package hint

import (
	"context"

	"github.com/bastiangx/wordhint/pkg/puzzle"
)

// Fetcher runs a query against a corpus and classifies what came back.
type Fetcher interface {
	// Fetch returns matches or an upstream error message in the Outcome. The error
	// return is reserved for transport problems.
	Fetch(ctx context.Context, q puzzle.Query) (Outcome, error)
}

package hint

import "errors"

var (
	// ErrEmptyResult means the corpus had no words for the query. It is a valid
	// result, not a failure, and carries no letter statistics.
	ErrEmptyResult = errors.New("no words found")
	// ErrUpstream is matched by every UpstreamError.
	ErrUpstream = errors.New("corpus error")
)

// UpstreamError carries the corpus's own error message unchanged.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

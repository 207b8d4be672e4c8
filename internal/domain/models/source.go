package models

// Source tags where a payload came from: a live API response or the golden
// dataset substituted after a failure.
type Source string

const (
	SourceLive   Source = "live"
	SourceGolden Source = "golden"
)

// Result pairs a payload with its source, so every consumer sees fallback
// state per response instead of reading a shared flag.
type Result[T any] struct {
	Payload T      `json:"payload"`
	Source  Source `json:"source"`
}

// Live wraps a payload fetched from the API.
func Live[T any](payload T) Result[T] {
	return Result[T]{Payload: payload, Source: SourceLive}
}

// Golden wraps a substituted payload.
func Golden[T any](payload T) Result[T] {
	return Result[T]{Payload: payload, Source: SourceGolden}
}

// IsGolden reports whether the payload was substituted.
func (r Result[T]) IsGolden() bool {
	return r.Source == SourceGolden
}

package apperrors

import "errors"

var (
	// ErrStore marks a failure reported by the Record Store itself.
	ErrStore = errors.New("record store error")
	// ErrNotFound marks a successful query that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrMissingID marks a detail request without a plant identifier.
	ErrMissingID = errors.New("missing plant id")
)

// Kind groups errors the way pages report them.
type Kind string

const (
	KindStore      Kind = "store_error"
	KindNotFound   Kind = "not_found"
	KindMissingID  Kind = "missing_id"
	KindUnexpected Kind = "unexpected"
)

// Classify maps an error onto one of the four reported kinds.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, ErrMissingID):
		return KindMissingID
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStore):
		return KindStore
	default:
		return KindUnexpected
	}
}

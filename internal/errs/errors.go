// Package errs defines the typed error model shared by all pictora components.
//
// Every failure crossing a component boundary is classified into one of the
// kinds below and carries the original cause. Callers branch on the kind via
// [KindOf] or the Is* helpers instead of string matching, and the cause chain
// stays available through errors.Is / errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the failure categories the
// application distinguishes.
type Kind uint8

const (
	// KindUnknown is the zero value for unclassified errors.
	KindUnknown Kind = iota

	// KindValidation - bad caller input (empty query text, non-positive k,
	// dimension mismatch). Never retried.
	KindValidation

	// KindInvalidInput - a caller-supplied file that cannot be read as an image.
	KindInvalidInput

	// KindEmbedding - the embedding backend failed to encode an input.
	KindEmbedding

	// KindIndexUnavailable - connectivity or auth failure against the vector store.
	KindIndexUnavailable

	// KindCollectionNotFound - operating on a collection that was never ensured.
	KindCollectionNotFound

	// KindIndexing - a bulk indexing run failed.
	KindIndexing

	// KindTranslation - the query rewriter's language model timed out or errored.
	KindTranslation

	// KindPersistence - saving retrieved results to local storage failed.
	KindPersistence
)

// String returns the stable name of the kind, used in logs and failure responses.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidInput:
		return "invalid_input"
	case KindEmbedding:
		return "embedding"
	case KindIndexUnavailable:
		return "index_unavailable"
	case KindCollectionNotFound:
		return "collection_not_found"
	case KindIndexing:
		return "indexing"
	case KindTranslation:
		return "translation"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is the typed error carried across component boundaries.
// Kind tags the failure category, Err holds the original cause (may be nil).
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the original cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes two *Error values match when their kinds match, so that
// errors.Is(err, &Error{Kind: KindValidation}) works as a kind check.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New creates a typed error without a cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a typed error without a cause, with formatting.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an existing cause.
// Returns nil when err is nil so call sites can wrap unconditionally.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain.
// Returns KindUnknown when no *Error is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain contains an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsValidation reports whether the error is a caller-input failure.
// Validation failures must never be retried.
func IsValidation(err error) bool {
	k := KindOf(err)
	return k == KindValidation || k == KindInvalidInput
}

package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. Every failure in the package is immediate and
// signals misuse; none of them are worth retrying.
type Kind string

const (
	// KindLifecycle means the operation is not valid in the current Active/Complete state.
	KindLifecycle Kind = "lifecycle_violation"
	// KindDuplicate means the key was already marked in this trace.
	KindDuplicate Kind = "duplicate_decision"
	// KindUnknown means the key was never marked.
	KindUnknown Kind = "unknown_decision"
	// KindEmpty means complete was called before any decision was marked.
	KindEmpty Kind = "empty_completion"
	// KindImportConflict means a document was imported into a tree that already holds data.
	KindImportConflict Kind = "import_conflict"
	// KindInvalidValue means a decision value is not a string, number or boolean.
	KindInvalidValue Kind = "invalid_value"
	// KindInvalidToken means a token could not be parsed.
	KindInvalidToken Kind = "invalid_token"
	// KindInvalidDocument means a serialized tree is malformed or breaks tree invariants.
	KindInvalidDocument Kind = "invalid_document"
	// KindNotFound means a recording id is not registered.
	KindNotFound Kind = "recording_not_found"
)

// Error is the structured failure returned by recorders, the merge engine and
// the token parser.
type Error struct {
	Kind Kind
	Key  string // Decision key involved, if any
	Msg  string
}

// NewError builds an *Error.
func NewError(kind Kind, key, msg string) *Error {
	return &Error{Kind: kind, Key: key, Msg: msg}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "etchmory: " + string(e.Kind)
	}
	return "etchmory: " + e.Msg
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrLifecycleViolation = &Error{Kind: KindLifecycle}
	ErrDuplicateDecision  = &Error{Kind: KindDuplicate}
	ErrUnknownDecision    = &Error{Kind: KindUnknown}
	ErrEmptyCompletion    = &Error{Kind: KindEmpty}
	ErrImportConflict     = &Error{Kind: KindImportConflict}
	ErrInvalidValue       = &Error{Kind: KindInvalidValue}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken}
	ErrInvalidDocument    = &Error{Kind: KindInvalidDocument}

	// ErrRecordingNotFound is returned when a recording id cannot be found in a session registry.
	ErrRecordingNotFound = &Error{Kind: KindNotFound, Msg: "recording not found"}
)

// KindOf extracts the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// DuplicateDecision reports a key marked twice.
func DuplicateDecision(key string) error {
	return NewError(KindDuplicate, key, fmt.Sprintf("decision %q already exists", key))
}

// UnknownDecision reports a recall of a key that was never marked.
func UnknownDecision(key string) error {
	return NewError(KindUnknown, key, fmt.Sprintf("decision %q does not exist", key))
}

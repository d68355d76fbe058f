package domain

import (
	"errors"
	"unicode/utf8"
)

// Decision is one recorded key/value outcome within an execution cycle.
type Decision struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// NewDecision pairs a key with its outcome.
func NewDecision(key string, value Value) Decision {
	return Decision{Key: key, Value: value}
}

// Same reports whether d and o carry the identical key and value.
// Key equality alone is not enough: two traces reaching the same key with
// different outcomes have diverged.
func (d Decision) Same(o Decision) bool {
	return d.Key == o.Key && d.Value == o.Value
}

// Validate checks that d can be recorded and serialized without loss.
func (d Decision) Validate() error {
	if !utf8.ValidString(d.Key) {
		return NewError(KindInvalidValue, d.Key, "decision keys must be valid UTF-8")
	}
	if err := d.Value.Validate(); err != nil {
		var e *Error
		if errors.As(err, &e) {
			return NewError(e.Kind, d.Key, e.Msg)
		}
		return err
	}
	return nil
}

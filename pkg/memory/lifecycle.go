package memory

import (
	"fmt"

	"github.com/aretw0/etchmory/pkg/domain"
)

// Lifecycle is the Active/Complete state machine shared by every recorder.
// Backends hold one by value and consult it before touching their storage.
type Lifecycle struct {
	complete bool
	keys     map[string]struct{} // Marked keys; released on completion
}

// Active reports whether decisions may still be marked.
func (l *Lifecycle) Active() bool { return !l.complete }

// EnsureActive fails with domain.ErrLifecycleViolation once the recording is complete.
func (l *Lifecycle) EnsureActive(op string) error {
	if l.complete {
		return domain.NewError(domain.KindLifecycle, "",
			fmt.Sprintf("cannot %s on a completed recording; %s must happen before complete()", op, op))
	}
	return nil
}

// EnsureComplete fails with domain.ErrLifecycleViolation while the recording is active.
func (l *Lifecycle) EnsureComplete(op string) error {
	if !l.complete {
		return domain.NewError(domain.KindLifecycle, "",
			fmt.Sprintf("cannot %s an active recording; did you forget to call complete()?", op))
	}
	return nil
}

// Admit validates d and reserves its key. It fails without side effects when
// the recording is complete, d cannot be recorded or its key was already marked.
func (l *Lifecycle) Admit(d domain.Decision) error {
	if err := l.EnsureActive("mark"); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	return l.Claim(d.Key)
}

// Claim reserves key for a new mark. It fails without side effects when the
// recording is complete or the key was already marked.
func (l *Lifecycle) Claim(key string) error {
	if err := l.EnsureActive("mark"); err != nil {
		return err
	}
	if _, ok := l.keys[key]; ok {
		return domain.DuplicateDecision(key)
	}
	if l.keys == nil {
		l.keys = make(map[string]struct{})
	}
	l.keys[key] = struct{}{}
	return nil
}

// Complete moves the recording to Complete. It reports whether this call
// performed the transition; later calls return (false, nil). size is the
// number of marked decisions and finalize, when non-nil, runs once on
// transition after the key index is released.
func (l *Lifecycle) Complete(size int, finalize func()) (bool, error) {
	if l.complete {
		return false, nil
	}
	if size == 0 {
		return false, domain.NewError(domain.KindEmpty, "",
			"cannot complete a recording without marked decisions; call mark() before complete()")
	}

	l.complete = true
	l.keys = nil
	if finalize != nil {
		finalize()
	}
	return true, nil
}

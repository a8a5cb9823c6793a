package contact

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of a form's state for rendering.
type Snapshot struct {
	Fields     Fields
	Submitting bool
}

// Form is one visitor's contact form. At most one submission is in flight
// at a time; while it is, further submissions are rejected with ErrInFlight.
type Form struct {
	mu         sync.Mutex
	fields     Fields
	submitting bool
	lastUsed   time.Time
}

// NewForm returns an empty, idle form.
func NewForm() *Form {
	return &Form{lastUsed: time.Now()}
}

// Snapshot returns the current fields and submitting flag.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{Fields: f.fields, Submitting: f.submitting}
}

// Submit validates fields and hands them to sender. On success the form's
// fields are cleared; on a delivery failure they are kept and a
// *NetworkError is returned. Validation failures record the fields but do
// not attempt a send.
func (f *Form) Submit(ctx context.Context, fields Fields, remoteAddr string, sender Sender) error {
	fields = fields.Trimmed()

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.lastUsed = time.Now()
	f.fields = fields
	if err := fields.Validate(); err != nil {
		f.mu.Unlock()
		return err
	}
	f.submitting = true
	f.mu.Unlock()

	err := sender.Send(ctx, NewMessage(fields, remoteAddr))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	f.lastUsed = time.Now()
	if err != nil {
		var ne *NetworkError
		if !errors.As(err, &ne) {
			err = &NetworkError{Op: "send", Err: err}
		}
		return err
	}
	f.fields = Fields{}
	return nil
}

func (f *Form) touch(now time.Time) {
	f.mu.Lock()
	if now.After(f.lastUsed) {
		f.lastUsed = now
	}
	f.mu.Unlock()
}

func (f *Form) idleSince() (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastUsed, f.submitting
}

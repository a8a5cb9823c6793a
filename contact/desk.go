package contact

import (
	"context"
	"sync"
	"time"
)

// Desk keeps one Form per visitor so the single in-flight rule applies per
// browser session. Idle forms are evicted after ttl.
type Desk struct {
	mu    sync.Mutex
	forms map[string]*Form
	ttl   time.Duration
}

// NewDesk returns a desk that forgets forms idle for longer than ttl.
func NewDesk(ttl time.Duration) *Desk {
	return &Desk{forms: make(map[string]*Form), ttl: ttl}
}

// Form returns the form for visitor, creating it on first use. The form's
// idle clock restarts so a concurrent Sweep cannot evict it before the
// caller submits.
func (d *Desk) Form(visitor string) *Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.forms[visitor]
	if !ok {
		f = NewForm()
		d.forms[visitor] = f
	}
	f.touch(time.Now())
	return f
}

// Peek returns the visitor's form without creating one.
func (d *Desk) Peek(visitor string) (*Form, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.forms[visitor]
	return f, ok
}

// Len returns the number of tracked forms.
func (d *Desk) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.forms)
}

// Sweep drops forms idle since before now-ttl. Forms with a send in flight
// are kept. It returns the number removed.
func (d *Desk) Sweep(now time.Time) int {
	cutoff := now.Add(-d.ttl)
	d.mu.Lock()
	defer d.mu.Unlock()
	removed := 0
	for k, f := range d.forms {
		last, busy := f.idleSince()
		if !busy && last.Before(cutoff) {
			delete(d.forms, k)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (d *Desk) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			d.Sweep(now)
		}
	}
}

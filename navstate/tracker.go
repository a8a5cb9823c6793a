package navstate

const (
	// DefaultHideThreshold is the offset the page must pass before the bar may hide.
	DefaultHideThreshold = 100
	// DefaultProbeBias activates a section this many pixels before its top
	// reaches the top of the viewport.
	DefaultProbeBias = 200
	// DefaultScrolledThreshold switches the bar to its compact style.
	DefaultScrolledThreshold = 50
)

// State is the derived navigation state.
type State struct {
	LastOffset int
	Visible    bool
	Scrolled   bool
	Active     SectionID
}

// Initial returns the state at page load.
func Initial() State {
	return State{Visible: true, Active: Home}
}

// Change reports which parts of the state an OnScroll call modified.
type Change uint8

const (
	VisibilityChanged Change = 1 << iota
	SectionChanged
	ScrolledChanged
)

// Has reports whether c includes flag.
func (c Change) Has(flag Change) bool { return c&flag != 0 }

// Option configures a Tracker.
type Option func(*Tracker)

// WithHideThreshold overrides DefaultHideThreshold.
func WithHideThreshold(px int) Option {
	return func(t *Tracker) { t.hideThreshold = px }
}

// WithProbeBias overrides DefaultProbeBias.
func WithProbeBias(px int) Option {
	return func(t *Tracker) { t.probeBias = px }
}

// WithScrolledThreshold overrides DefaultScrolledThreshold.
func WithScrolledThreshold(px int) Option {
	return func(t *Tracker) { t.scrolled = px }
}

// WithResetOnMiss makes the tracker fall back to the first section when no
// section top has been reached, instead of keeping the previous one.
func WithResetOnMiss() Option {
	return func(t *Tracker) { t.resetOnMiss = true }
}

// Tracker converts scroll offsets into navigation state. It is not safe for
// concurrent use; feed it from a single event loop.
type Tracker struct {
	reg           *Registry
	state         State
	hideThreshold int
	probeBias     int
	scrolled      int
	resetOnMiss   bool
}

// New returns a tracker over reg in the initial state.
func New(reg *Registry, opts ...Option) *Tracker {
	t := &Tracker{
		reg:           reg,
		state:         Initial(),
		hideThreshold: DefaultHideThreshold,
		probeBias:     DefaultProbeBias,
		scrolled:      DefaultScrolledThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	if reg.Len() > 0 {
		t.state.Active = reg.First()
	}
	return t
}

// State returns the current state.
func (t *Tracker) State() State { return t.state }

// HideThreshold returns the configured hide threshold.
func (t *Tracker) HideThreshold() int { return t.hideThreshold }

// ProbeBias returns the configured probe bias.
func (t *Tracker) ProbeBias() int { return t.probeBias }

// SetRegistry replaces the section registry after a layout change. The
// visibility state and last offset are kept.
func (t *Tracker) SetRegistry(reg *Registry) {
	t.reg = reg
}

// Seed adopts offset as the starting position without a visibility
// transition, as when the browser restores a scroll position on reload.
// The bar stays visible until the next OnScroll.
func (t *Tracker) Seed(offset int) State {
	if offset < 0 {
		offset = 0
	}
	t.state.LastOffset = offset
	t.state.Scrolled = offset > t.scrolled
	if next, ok := t.reg.At(offset + t.probeBias); ok {
		t.state.Active = next
	} else if t.resetOnMiss {
		t.state.Active = t.reg.First()
	}
	return t.state
}

// OnScroll applies one scroll sample and returns the new state along with
// the parts that changed. A zero Change means nothing needs re-rendering.
func (t *Tracker) OnScroll(offset int) (State, Change) {
	if offset < 0 {
		offset = 0
	}
	var ch Change

	hide := offset > t.state.LastOffset && offset > t.hideThreshold
	show := offset <= t.state.LastOffset || offset <= t.hideThreshold
	switch {
	case hide && t.state.Visible:
		t.state.Visible = false
		ch |= VisibilityChanged
	case show && !t.state.Visible:
		t.state.Visible = true
		ch |= VisibilityChanged
	}
	t.state.LastOffset = offset

	if scrolled := offset > t.scrolled; scrolled != t.state.Scrolled {
		t.state.Scrolled = scrolled
		ch |= ScrolledChanged
	}

	next, ok := t.reg.At(offset + t.probeBias)
	if !ok && t.resetOnMiss {
		next, ok = t.reg.First(), true
	}
	if ok && next != t.state.Active {
		t.state.Active = next
		ch |= SectionChanged
	}
	return t.state, ch
}

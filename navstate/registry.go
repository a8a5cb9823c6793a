// Package navstate derives navigation bar state from a stream of vertical
// scroll offsets: whether the bar is visible and which page section is active.
package navstate

import (
	"errors"
	"fmt"
	"sort"
)

// SectionID identifies a page section. The set is fixed.
type SectionID string

const (
	Home     SectionID = "home"
	About    SectionID = "about"
	Projects SectionID = "projects"
	Skills   SectionID = "skills"
	Blog     SectionID = "blog"
	Contact  SectionID = "contact"
)

var sectionOrder = []SectionID{Home, About, Projects, Skills, Blog, Contact}

// SectionIDs returns every section id in page order.
func SectionIDs() []SectionID {
	out := make([]SectionID, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Valid reports whether id is one of the known sections.
func (id SectionID) Valid() bool {
	for _, s := range sectionOrder {
		if s == id {
			return true
		}
	}
	return false
}

var (
	ErrUnknownSection   = errors.New("navstate: unknown section")
	ErrDuplicateSection = errors.New("navstate: duplicate section")
	ErrUnordered        = errors.New("navstate: section tops must not decrease")
)

// Section is a page section and its vertical offset from the document top.
type Section struct {
	ID  SectionID
	Top int
}

// Registry is an ordered, read-only list of sections as laid out on the page.
type Registry struct {
	sections []Section
}

// NewRegistry validates sections and returns a registry in the given order.
func NewRegistry(sections ...Section) (*Registry, error) {
	seen := make(map[SectionID]struct{}, len(sections))
	out := make([]Section, len(sections))
	for i, s := range sections {
		if !s.ID.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, s.ID)
		}
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.Top < 0 {
			s.Top = 0
		}
		if i > 0 && s.Top < out[i-1].Top {
			return nil, fmt.Errorf("%w: %q at %d is above %q at %d", ErrUnordered, s.ID, s.Top, out[i-1].ID, out[i-1].Top)
		}
		out[i] = s
	}
	return &Registry{sections: out}, nil
}

// MustRegistry is like NewRegistry but panics on invalid input.
func MustRegistry(sections ...Section) *Registry {
	r, err := NewRegistry(sections...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of sections.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sections)
}

// Sections returns a copy of the registered sections.
func (r *Registry) Sections() []Section {
	if r == nil {
		return nil
	}
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// First returns the first registered section id, or Home when empty.
func (r *Registry) First() SectionID {
	if r.Len() == 0 {
		return Home
	}
	return r.sections[0].ID
}

// At returns the last section in page order whose top is at or above probe.
// Tops are non-decreasing, so the match is found by binary search.
func (r *Registry) At(probe int) (SectionID, bool) {
	n := r.Len()
	if n == 0 {
		return "", false
	}
	// i is the first index whose top lies below the probe.
	i := sort.Search(n, func(i int) bool { return r.sections[i].Top > probe })
	if i == 0 {
		return "", false
	}
	return r.sections[i-1].ID, true
}

// Package content holds the display records rendered by the portfolio:
// profile, projects, skills, blog teasers and contact links.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexchen-dev/folio/navstate"
)

//go:embed default.yaml
var defaultYAML []byte

// Colors accepted for accent fields.
var Colors = []string{"sky", "orange", "sage"}

type Profile struct {
	Name      string   `yaml:"name"`
	Initials  string   `yaml:"initials"`
	Headline  string   `yaml:"headline"`
	Tagline   string   `yaml:"tagline"`
	Bio       []string `yaml:"bio"`
	Location  string   `yaml:"location"`
	ResumeURL string   `yaml:"resume_url"`
}

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
	Color       string   `yaml:"color"`
	GitHub      string   `yaml:"github"`
	Live        string   `yaml:"live"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type SkillCategory struct {
	Name   string  `yaml:"name"`
	Color  string  `yaml:"color"`
	Skills []Skill `yaml:"skills"`
}

// Post is a blog teaser card. Date uses the 2006-01-02 layout.
type Post struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Excerpt  string `yaml:"excerpt"`
	Image    string `yaml:"image"`
	Date     string `yaml:"date"`
	ReadTime string `yaml:"read_time"`
	Category string `yaml:"category"`
	Color    string `yaml:"color"`
	URL      string `yaml:"url"`
}

// Published parses the post date.
func (p Post) Published() (time.Time, error) {
	return time.Parse("2006-01-02", p.Date)
}

// DisplayDate formats the post date as "Jan 15, 2025", or the raw value if unparsable.
func (p Post) DisplayDate() string {
	t, err := p.Published()
	if err != nil {
		return p.Date
	}
	return t.Format("Jan 2, 2006")
}

type ContactInfo struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Href  string `yaml:"href"`
}

type SocialLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type NavLink struct {
	Name    string             `yaml:"name"`
	Section navstate.SectionID `yaml:"section"`
}

// Href returns the in-page anchor for the link.
func (l NavLink) Href() string { return "#" + string(l.Section) }

// Site is everything the page renders.
type Site struct {
	Profile    Profile         `yaml:"profile"`
	Nav        []NavLink       `yaml:"nav"`
	Stats      []Stat          `yaml:"stats"`
	Projects   []Project       `yaml:"projects"`
	Skills     []SkillCategory `yaml:"skills"`
	Posts      []Post          `yaml:"posts"`
	Contact    []ContactInfo   `yaml:"contact"`
	Socials    []SocialLink    `yaml:"socials"`
	QuickLinks []NavLink       `yaml:"quick_links"`
}

// Default returns the built-in sample site.
func Default() *Site {
	s, err := Decode(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("content: embedded default.yaml: %v", err))
	}
	return s
}

// Load reads and validates a YAML content file.
func Load(path string) (*Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("content: open %s: %w", path, err)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return s, nil
}

// Decode parses and validates YAML content from r.
func Decode(r io.Reader) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the invariants the views rely on.
func (s *Site) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Profile.Name) == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}
	for _, l := range append(append([]NavLink{}, s.Nav...), s.QuickLinks...) {
		if !l.Section.Valid() {
			errs = append(errs, fmt.Errorf("nav link %q: unknown section %q", l.Name, l.Section))
		}
	}
	for _, st := range s.Stats {
		if !validColor(st.Color) {
			errs = append(errs, fmt.Errorf("stat %q: unknown color %q", st.Label, st.Color))
		}
	}
	for _, p := range s.Projects {
		if !validColor(p.Color) {
			errs = append(errs, fmt.Errorf("project %q: unknown color %q", p.Title, p.Color))
		}
	}
	for _, c := range s.Skills {
		if !validColor(c.Color) {
			errs = append(errs, fmt.Errorf("skill category %q: unknown color %q", c.Name, c.Color))
		}
		for _, sk := range c.Skills {
			if sk.Level < 0 || sk.Level > 100 {
				errs = append(errs, fmt.Errorf("skill %q: level %d outside 0-100", sk.Name, sk.Level))
			}
		}
	}
	for _, p := range s.Posts {
		if !validColor(p.Color) {
			errs = append(errs, fmt.Errorf("post %q: unknown color %q", p.Title, p.Color))
		}
		if _, err := p.Published(); err != nil {
			errs = append(errs, fmt.Errorf("post %q: date %q: want YYYY-MM-DD", p.Title, p.Date))
		}
	}
	return errors.Join(errs...)
}

// Sections returns the section ids linked from the nav, in order.
func (s *Site) Sections() []navstate.SectionID {
	out := make([]navstate.SectionID, 0, len(s.Nav))
	for _, l := range s.Nav {
		out = append(out, l.Section)
	}
	return out
}

func validColor(c string) bool {
	for _, v := range Colors {
		if c == v {
			return true
		}
	}
	return false
}

package views

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AccentClass maps a content color to its CSS modifier.
func AccentClass(color string) string {
	switch color {
	case "orange":
		return "accent-orange"
	case "sage":
		return "accent-sage"
	default:
		return "accent-sky"
	}
}

// Ago renders t relative to now, e.g. "3 hours ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalLD(data)
}

// PersonJsonLD produces a Schema.org Person block for the profile owner.
func PersonJsonLD(cfg SiteConfig, name, headline, location string, sameAs []string) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     name,
		"url":      BuildURL(cfg.URL),
	}
	if headline != "" {
		data["jobTitle"] = headline
	}
	if location != "" {
		data["address"] = map[string]string{
			"@type":           "PostalAddress",
			"addressLocality": location,
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	return marshalLD(data)
}

func marshalLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// writer accumulates the first write error so templates read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }

// attr writes ` name="value"` with value escaped.
func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes an href attribute, neutralising unsafe URL schemes.
func (w *writer) href(u string) {
	w.attr("href", string(templ.URL(u)))
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err != nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func component(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(ctx, w)
		return w.err
	})
}

func itoa(n int) string { return strconv.Itoa(n) }

package views

import (
	"time"

	"github.com/alexchen-dev/folio/content"
)

// SiteConfig holds site-wide settings every page template needs.
type SiteConfig struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
}

// NavConfig is handed to the client-side tracker through data attributes.
type NavConfig struct {
	HideThreshold     int
	ProbeBias         int
	ScrolledThreshold int
	ResetOnMiss       bool
	WasmURL           string // empty disables the wasm tracker
}

// Notice is a dismissible banner above a form.
type Notice struct {
	Kind string // "success", "error" or "info"
	Text string
}

// ContactView is what the contact form fragment renders.
type ContactView struct {
	Name       string
	Email      string
	Message    string
	Submitting bool
	Errors     map[string]string // field -> reason
	Notice     *Notice
}

// NewsletterView is what the newsletter form fragment renders.
type NewsletterView struct {
	Email string
	Error string
	Done  bool
}

// PageData is everything the full page needs.
type PageData struct {
	Config     SiteConfig
	Meta       PageMeta
	Nav        NavConfig
	Site       *content.Site
	Contact    ContactView
	Newsletter NewsletterView
	CSRF       string
}

// InboxMessage is a stored contact message as the admin inbox shows it.
type InboxMessage struct {
	ID         string
	Name       string
	Email      string
	Body       string
	RemoteAddr string
	ReceivedAt time.Time
	Read       bool
}

// Subscriber is a newsletter sign-up as the admin list shows it.
type Subscriber struct {
	Email     string
	CreatedAt time.Time
}

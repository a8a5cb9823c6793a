package folio

import (
	"strings"

	"github.com/alexchen-dev/folio/contact"
	"github.com/alexchen-dev/folio/views"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// absURL joins an absolute path onto the configured site URL.
func (a *App) absURL(path string) string {
	return strings.TrimRight(a.Config.URL, "/") + path
}

func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func (a *App) navConfig() views.NavConfig {
	return views.NavConfig{
		HideThreshold:     a.Config.Nav.HideThreshold,
		ProbeBias:         a.Config.Nav.ProbeBias,
		ScrolledThreshold: a.Config.Nav.ScrolledThreshold,
		ResetOnMiss:       a.Config.Nav.ResetOnMiss,
		WasmURL:           a.Config.Nav.WasmURL,
	}
}

// contactView turns a form snapshot plus the outcome of the last
// submission into what the fragment renders.
func contactView(snap contact.Snapshot, errs map[string]string, n *views.Notice) views.ContactView {
	return views.ContactView{
		Name:       snap.Fields.Name,
		Email:      snap.Fields.Email,
		Message:    snap.Fields.Message,
		Submitting: snap.Submitting,
		Errors:     errs,
		Notice:     n,
	}
}

func toInbox(msgs []StoredMessage) []views.InboxMessage {
	out := make([]views.InboxMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, views.InboxMessage(m))
	}
	return out
}

func toSubscribers(subs []Subscriber) []views.Subscriber {
	out := make([]views.Subscriber, 0, len(subs))
	for _, s := range subs {
		out = append(out, views.Subscriber(s))
	}
	return out
}

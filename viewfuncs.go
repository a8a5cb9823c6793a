package folio

import (
	"github.com/a-h/templ"

	"github.com/alexchen-dev/folio/navstate"
	"github.com/alexchen-dev/folio/views"
)

// ViewFuncs holds the templ components the handlers render. New fills it
// with the built-in views; WithViews replaces individual entries so a site
// can own any page or fragment while folio keeps the handler logic.
type ViewFuncs struct {
	Page           func(d views.PageData) templ.Component
	Section        func(id navstate.SectionID, d views.PageData) (templ.Component, bool)
	ContactForm    func(v views.ContactView, csrfToken string) templ.Component
	NewsletterForm func(v views.NewsletterView, csrfToken string) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminInbox     func(msgs []views.InboxMessage, unread int, csrfToken string) templ.Component
	InboxRow       func(m views.InboxMessage, csrfToken string) templ.Component
	Subscribers    func(subs []views.Subscriber, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// DefaultViews returns the built-in view set.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Page:           views.Page,
		Section:        views.Section,
		ContactForm:    views.ContactForm,
		NewsletterForm: views.NewsletterForm,
		AdminLogin:     views.AdminLogin,
		AdminInbox:     views.AdminInbox,
		InboxRow:       views.InboxRow,
		Subscribers:    views.Subscribers,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// merge returns v with every nil entry taken from base.
func (v ViewFuncs) merge(base ViewFuncs) ViewFuncs {
	if v.Page == nil {
		v.Page = base.Page
	}
	if v.Section == nil {
		v.Section = base.Section
	}
	if v.ContactForm == nil {
		v.ContactForm = base.ContactForm
	}
	if v.NewsletterForm == nil {
		v.NewsletterForm = base.NewsletterForm
	}
	if v.AdminLogin == nil {
		v.AdminLogin = base.AdminLogin
	}
	if v.AdminInbox == nil {
		v.AdminInbox = base.AdminInbox
	}
	if v.InboxRow == nil {
		v.InboxRow = base.InboxRow
	}
	if v.Subscribers == nil {
		v.Subscribers = base.Subscribers
	}
	if v.NotFound == nil {
		v.NotFound = base.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = base.ServerError
	}
	return v
}

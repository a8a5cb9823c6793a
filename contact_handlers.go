package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alexchen-dev/folio/contact"
	"github.com/alexchen-dev/folio/views"
)

var (
	noticeSent     = &views.Notice{Kind: "success", Text: "Thanks! Your message has been sent. I'll get back to you soon."}
	noticeInFlight = &views.Notice{Kind: "info", Text: "Your previous message is still sending. Please wait a moment."}
	noticeFailed   = &views.Notice{Kind: "error", Text: "Your message could not be sent. Please try again."}
	noticeLimited  = &views.Notice{Kind: "error", Text: "Too many messages. Please wait a minute and try again."}
)

// handleContact runs one submission through the visitor's form and answers
// with the re-rendered form: 200 sent, 422 invalid, 409 already sending,
// 429 rate limited, 502 delivery failed (fields kept for a retry).
func (a *App) handleContact(c echo.Context) error {
	var fields contact.Fields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	vid, err := visitorID(c)
	if err != nil {
		return err
	}
	form := a.Desk.Form(vid)

	if !a.submitLimiter.Allow(c.RealIP()) {
		snap := form.Snapshot()
		snap.Fields = fields.Trimmed()
		return a.renderContact(c, http.StatusTooManyRequests, contactView(snap, nil, noticeLimited))
	}

	err = form.Submit(c.Request().Context(), fields, c.RealIP(), a.sender)

	var ve *contact.ValidationError
	var ne *contact.NetworkError
	switch {
	case err == nil:
		return a.renderContact(c, http.StatusOK, contactView(form.Snapshot(), nil, noticeSent))
	case errors.As(err, &ve):
		errs := map[string]string{ve.Field: fieldLabel(ve.Field) + " " + ve.Reason}
		return a.renderContact(c, http.StatusUnprocessableEntity, contactView(form.Snapshot(), errs, nil))
	case errors.Is(err, contact.ErrInFlight):
		return a.renderContact(c, http.StatusConflict, contactView(form.Snapshot(), nil, noticeInFlight))
	case errors.As(err, &ne):
		c.Logger().Errorf("contact delivery failed: %v", err)
		return a.renderContact(c, http.StatusBadGateway, contactView(form.Snapshot(), nil, noticeFailed))
	}
	return err
}

func (a *App) renderContact(c echo.Context, code int, v views.ContactView) error {
	if isFragment(c) {
		return RenderStatus(c, code, a.Views.ContactForm(v, CsrfToken(c)))
	}
	return RenderStatus(c, code, a.Views.Page(a.pageData(c, v, views.NewsletterView{})))
}

func (a *App) handleNewsletter(c echo.Context) error {
	var sub contact.Subscription
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	sub.Email = strings.TrimSpace(sub.Email)

	if !a.submitLimiter.Allow(c.RealIP()) {
		return a.renderNewsletter(c, http.StatusTooManyRequests,
			views.NewsletterView{Email: sub.Email, Error: noticeLimited.Text})
	}
	if err := c.Validate(&sub); err != nil {
		var ve *contact.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		return a.renderNewsletter(c, http.StatusUnprocessableEntity,
			views.NewsletterView{Email: sub.Email, Error: fieldLabel(ve.Field) + " " + ve.Reason})
	}

	if a.Store != nil {
		added, err := a.Store.AddSubscriber(c.Request().Context(), sub.Email)
		if err != nil {
			return err
		}
		if added {
			c.Logger().Infof("newsletter: new subscriber")
		}
	} else {
		c.Logger().Infof("newsletter: sign-up received but no database is configured")
	}
	return a.renderNewsletter(c, http.StatusOK, views.NewsletterView{Done: true})
}

func (a *App) renderNewsletter(c echo.Context, code int, v views.NewsletterView) error {
	if isFragment(c) {
		return RenderStatus(c, code, a.Views.NewsletterForm(v, CsrfToken(c)))
	}
	return RenderStatus(c, code, a.Views.Page(a.pageData(c, views.ContactView{}, v)))
}

func fieldLabel(field string) string {
	if field == "" {
		return "Field"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

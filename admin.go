package folio

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alexchen-dev/folio/views"
)

const inboxLimit = 200

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderInbox(c)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleMarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if err := a.Store.MarkRead(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	if !isFragment(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	m, err := a.Store.GetMessage(ctx, id)
	if err != nil {
		return err
	}
	return Render(c, a.Views.InboxRow(views.InboxMessage(m), CsrfToken(c)))
}

func (a *App) handleDeleteMessage(c echo.Context) error {
	if err := a.Store.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	// An empty 200 lets the client drop the row in place.
	return c.NoContent(http.StatusOK)
}

func (a *App) handleSubscribers(c echo.Context) error {
	subs, err := a.Store.ListSubscribers(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Subscribers(toSubscribers(subs), CsrfToken(c)))
}

func (a *App) renderInbox(c echo.Context) error {
	ctx := c.Request().Context()
	msgs, err := a.Store.ListMessages(ctx, inboxLimit)
	if err != nil {
		return err
	}
	unread, err := a.Store.CountUnread(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminInbox(toInbox(msgs), unread, CsrfToken(c)))
}

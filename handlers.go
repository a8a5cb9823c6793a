package folio

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alexchen-dev/folio/navstate"
	"github.com/alexchen-dev/folio/views"
)

// pageData assembles the full page state for this visitor.
func (a *App) pageData(c echo.Context, cv views.ContactView, nv views.NewsletterView) views.PageData {
	return views.PageData{
		Config: a.viewConfig(),
		Meta: views.PageMeta{
			URL:    views.BuildURL(a.Config.URL),
			OGType: "profile",
		},
		Nav:        a.navConfig(),
		Site:       a.Catalog.Get(),
		Contact:    cv,
		Newsletter: nv,
		CSRF:       CsrfToken(c),
	}
}

func (a *App) handleHome(c echo.Context) error {
	// Restore fields kept from a failed send so the visitor can retry.
	var cv views.ContactView
	if vid, err := visitorID(c); err == nil {
		if f, ok := a.Desk.Peek(vid); ok {
			cv = contactView(f.Snapshot(), nil, nil)
		}
	}
	d := a.pageData(c, cv, views.NewsletterView{})

	if partial := c.QueryParam("partial"); partial != "" && isFragment(c) {
		cmp, ok := a.Views.Section(navstate.SectionID(partial), d)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return Render(c, cmp)
	}
	return Render(c, a.Views.Page(d))
}

func (a *App) handleResume(c echo.Context) error {
	if a.Config.ResumePath != "" {
		return c.Attachment(a.Config.ResumePath, "resume.pdf")
	}
	if u := a.Catalog.Get().Profile.ResumeURL; strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://") {
		return c.Redirect(http.StatusFound, u)
	}
	return echo.NewHTTPError(http.StatusNotFound)
}

func (a *App) handleFavicon(c echo.Context) error {
	if p := filepath.Join(a.staticDir, "favicon.svg"); fileExists(p) {
		return c.File(p)
	}
	b, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", b)
}

func (a *App) handleRobots(c echo.Context) error {
	if p := filepath.Join(a.staticDir, "robots.txt"); fileExists(p) {
		return c.File(p)
	}
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n", a.absURL("/sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) handleHealth(c echo.Context) error {
	status := map[string]interface{}{
		"status":            "ok",
		"content_loaded_at": a.Catalog.LoadedAt().UTC().Format(time.RFC3339),
		"open_forms":        a.Desk.Len(),
		"delivery":          a.Config.Delivery,
	}
	code := http.StatusOK
	if a.Store != nil {
		if err := a.Store.Ping(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	return c.JSON(code, status)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

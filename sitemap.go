package folio

import (
	"bytes"
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alexchen-dev/folio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists the page itself, dated by the newest post.
func (a *App) buildSitemap(site *content.Site) ([]byte, error) {
	latest := ""
	for _, p := range site.Posts {
		if p.Date > latest {
			latest = p.Date
		}
	}
	urls := []sitemapURL{{Loc: a.absURL("/"), LastMod: latest}}
	if a.Config.ResumePath != "" {
		urls = append(urls, sitemapURL{Loc: a.absURL("/resume.pdf")})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(sitemap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) handleSitemap(c echo.Context) error {
	body, err := a.docs.Get("sitemap", a.buildSitemap)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", body)
}

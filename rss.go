package folio

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alexchen-dev/folio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// postURL is the post's own link, or its anchor on the page when it has none.
func (a *App) postURL(p content.Post) string {
	if p.URL != "" && p.URL != "#" {
		return p.URL
	}
	if p.Slug != "" {
		return a.absURL("/#post-" + p.Slug)
	}
	return a.absURL("/#blog")
}

func (a *App) buildRSS(site *content.Site) ([]byte, error) {
	items := make([]rssItem, 0, len(site.Posts))
	for _, p := range site.Posts {
		pubDate := ""
		if t, err := p.Published(); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := a.postURL(p)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Excerpt,
			Category:    p.Category,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        a.absURL("/"),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(feed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) handleFeed(c echo.Context) error {
	body, err := a.docs.Get("feed", a.buildRSS)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
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
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

func (a *App) renderRSS(c echo.Context, works []content.WorkItem) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(works))
	for _, w := range works {
		// Work items only carry a year; date them January 1st.
		pubDate := ""
		if t, err := time.Parse("2006", w.Year); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		workURL := BuildURL(base, "work", w.Slug())
		var categories []string
		if w.Category != "" {
			categories = append(categories, w.Category)
		}
		items = append(items, rssItem{
			Title:       w.Title,
			Link:        workURL,
			Description: w.Description,
			Categories:  append(categories, w.Tags...),
			PubDate:     pubDate,
			GUID:        workURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

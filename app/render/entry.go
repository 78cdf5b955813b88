// Package render projects article lists into display entries and
// writes them as HTML, plain text or telegram markdown.
package render

import (
	"net/url"

	"github.com/Semior001/newsview/app/news"
	"github.com/samber/lo"
)

// Messages shown instead of the list.
const (
	MsgNoArticles = "No articles found"
	MsgLoading    = "Loading news..."
	MsgFailed     = "Failed to fetch news. Please try again later."
)

// Title is a heading of the rendered list.
const Title = "Latest News in Bulgaria"

// Entry is a single displayed list item.
type Entry struct {
	Key         string
	Label       string
	Href        string
	Navigable   bool
	Timestamp   string
	Source      string
	Placeholder bool
}

// Document is everything needed to draw one state of the view.
// Message, if set, replaces the list.
type Document struct {
	Entries []Entry
	Message string
	Pager   string
}

// Entries projects articles into entries, keeping the order.
// An empty list yields a single placeholder entry.
func Entries(articles []news.Article) []Entry {
	if len(articles) == 0 {
		return []Entry{{Label: MsgNoArticles, Placeholder: true}}
	}

	return lo.Map(articles, func(a news.Article, _ int) Entry {
		e := Entry{
			Key:       a.ID,
			Label:     a.Title,
			Timestamp: FormatTimestamp(a.Published),
		}

		if navigable(a.Link) {
			e.Href, e.Navigable = a.Link, true
		}

		if a.HasSource() {
			e.Source = *a.Source
		}

		return e
	})
}

// navigable reports whether the link is an absolute http(s) URL.
func navigable(link string) bool {
	u, err := url.ParseRequestURI(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Page builds a document for a successfully retrieved page.
func Page(p news.Page) Document {
	doc := Document{Entries: Entries(p.Articles)}
	if p.Paged() {
		doc.Pager = pager(p)
	}
	return doc
}

// Loading builds a document for the loading state.
func Loading() Document { return Document{Message: MsgLoading} }

// Failed builds a document for the failed state. The cause is never shown.
func Failed() Document { return Document{Message: MsgFailed} }

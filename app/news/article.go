// Package news contains the article model and services to retrieve
// and normalize article lists from a remote endpoint.
package news

// Article is a single news item.
type Article struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Published string  `json:"published"`
	Source    *string `json:"source,omitempty"`
}

// HasSource reports whether the article carries a non-empty source label.
func (a Article) HasSource() bool { return a.Source != nil && *a.Source != "" }

// Page is a normalized article list with optional paging metadata.
// Metadata is zero when the endpoint responded with a bare array.
type Page struct {
	Articles    []Article
	Total       int
	Pages       int
	CurrentPage int
	// Dropped is the number of malformed or duplicate records skipped.
	Dropped int
}

// Paged reports whether the endpoint returned paging metadata.
func (p Page) Paged() bool { return p.Pages > 0 }

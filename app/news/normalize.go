package news

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Normalizer coerces loosely-shaped response bodies into article lists.
type Normalizer struct {
	log *slog.Logger
}

// NewNormalizer creates new Normalizer.
func NewNormalizer(lg *slog.Logger) Normalizer {
	return Normalizer{log: lg}
}

// Normalize returns the list of well-formed articles from the payload.
func (n Normalizer) Normalize(payload []byte) ([]Article, error) {
	page, err := n.NormalizePage(payload)
	if err != nil {
		return nil, err
	}
	return page.Articles, nil
}

// envelope is the keyed form of the response.
type envelope struct {
	Articles json.RawMessage `json:"articles"`
}

// paging is optional metadata sent along with the articles.
type paging struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
}

// NormalizePage accepts either a JSON array of article records or a JSON
// object with an "articles" array. Any other shape fails with
// ErrUnexpectedFormat. Records lacking required fields and records with
// an already seen id are dropped, the order of the rest is kept.
func (n Normalizer) NormalizePage(payload []byte) (Page, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return Page{}, fmt.Errorf("%w: empty body", ErrUnexpectedFormat)
	}

	var (
		page    Page
		records []json.RawMessage
	)

	switch payload[0] {
	case '[':
		if err := json.Unmarshal(payload, &records); err != nil {
			return Page{}, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			return Page{}, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}
		if !isArray(env.Articles) {
			return Page{}, fmt.Errorf("%w: no articles array in object", ErrUnexpectedFormat)
		}
		if err := json.Unmarshal(env.Articles, &records); err != nil {
			return Page{}, fmt.Errorf("%w: %v", ErrUnexpectedFormat, err)
		}

		var meta paging
		if err := json.Unmarshal(payload, &meta); err != nil {
			n.log.Debug("ignored malformed paging metadata", slog.Any("err", err))
			meta = paging{}
		}
		page.Total, page.Pages, page.CurrentPage = meta.Total, meta.Pages, meta.CurrentPage
	default:
		return Page{}, fmt.Errorf("%w: body is neither array nor object", ErrUnexpectedFormat)
	}

	parsed := lo.FilterMap(records, func(raw json.RawMessage, idx int) (Article, bool) {
		a, err := parseRecord(raw)
		if err != nil {
			n.log.Debug("dropped malformed article", slog.Int("index", idx), slog.Any("err", err))
			return Article{}, false
		}
		return a, true
	})

	page.Articles = lo.UniqBy(parsed, func(a Article) string { return a.ID })
	if dups := len(parsed) - len(page.Articles); dups > 0 {
		n.log.Debug("dropped duplicate articles", slog.Int("count", dups))
	}
	page.Dropped = len(records) - len(page.Articles)

	return page, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// record mirrors the wire form of an article, pointers tell absent
// fields apart from empty ones.
type record struct {
	ID        json.RawMessage `json:"id"`
	Title     *string         `json:"title"`
	Link      *string         `json:"link"`
	Published *string         `json:"published"`
	Source    *string         `json:"source"`
}

func parseRecord(raw json.RawMessage) (Article, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Article{}, fmt.Errorf("unmarshal record: %w", err)
	}

	id, err := parseID(rec.ID)
	if err != nil {
		return Article{}, err
	}

	required := []struct {
		name string
		val  *string
	}{
		{"title", rec.Title},
		{"link", rec.Link},
		{"published", rec.Published},
	}
	for _, f := range required {
		if f.val == nil || strings.TrimSpace(*f.val) == "" {
			return Article{}, fmt.Errorf("missing %s", f.name)
		}
	}

	return Article{
		ID:        id,
		Title:     *rec.Title,
		Link:      *rec.Link,
		Published: *rec.Published,
		Source:    rec.Source,
	}, nil
}

var errMissingID = errors.New("missing id")

// parseID accepts strings verbatim and numbers by their literal text.
func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", errMissingID
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("unmarshal id: %w", err)
		}
		if s == "" {
			return "", errMissingID
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return "", fmt.Errorf("unmarshal id: %w", err)
		}
		return num.String(), nil
	default:
		return "", fmt.Errorf("id must be a string or a number, got %s", raw)
	}
}

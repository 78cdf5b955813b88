package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Semior001/newsview/app/news"
)

// Format is an output format of the renderer.
type Format string

// Supported formats.
const (
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

//go:embed templates/page.html.tmpl
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// Write renders the document in the given format.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatHTML:
		return HTML(w, doc)
	case FormatText:
		return Text(w, doc)
	case FormatMarkdown:
		_, err := io.WriteString(w, strings.Join(Markdown(doc), "\n\n")+"\n")
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// HTML writes the document as an HTML page. Links open in a new
// window without opener or referrer.
func HTML(w io.Writer, doc Document) error {
	data := struct {
		Title string
		Doc   Document
	}{Title: Title, Doc: doc}

	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

// Text writes the document as a plain text listing.
func Text(w io.Writer, doc Document) error {
	sb := &strings.Builder{}
	_, _ = sb.WriteString(Title + "\n\n")

	if doc.Message != "" {
		_, _ = sb.WriteString(doc.Message + "\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	for i, e := range doc.Entries {
		if e.Placeholder {
			_, _ = sb.WriteString(e.Label + "\n")
			continue
		}

		_, _ = fmt.Fprintf(sb, "%d. %s\n", i+1, e.Label)
		if e.Navigable {
			_, _ = fmt.Fprintf(sb, "   %s\n", e.Href)
		}
		_, _ = fmt.Fprintf(sb, "   %s\n", meta(e))
	}

	if doc.Pager != "" {
		_, _ = sb.WriteString("\n" + doc.Pager + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// maxMessageLen is kept below telegram's 4096 characters limit.
const maxMessageLen = 4000

// Markdown renders the document as telegram markdown messages,
// splitting the list so that each message fits the telegram limit.
func Markdown(doc Document) []string {
	if doc.Message != "" {
		return []string{escapeMarkdown(doc.Message)}
	}

	blocks := make([]string, 0, len(doc.Entries)+2)
	blocks = append(blocks, "*"+escapeMarkdown(Title)+"*")

	for _, e := range doc.Entries {
		if e.Placeholder {
			blocks = append(blocks, escapeMarkdown(e.Label))
			continue
		}
		blocks = append(blocks, markdownEntry(e))
	}

	if doc.Pager != "" {
		blocks = append(blocks, escapeMarkdown(doc.Pager))
	}

	var (
		msgs []string
		cur  []string
		size int
	)
	for _, b := range blocks {
		n := blockLen(b)
		if size+n > maxMessageLen && len(cur) > 0 {
			msgs = append(msgs, strings.Join(cur, "\n\n"))
			cur, size = nil, 0
		}
		cur = append(cur, b)
		size += n
	}
	if len(cur) > 0 {
		msgs = append(msgs, strings.Join(cur, "\n\n"))
	}

	return msgs
}

// markdownEntry renders a single entry, shortening its fields when the
// entry alone does not fit into a message.
func markdownEntry(e Entry) string {
	b := formatMarkdownEntry(e)
	for over := blockLen(b) - maxMessageLen; over > 0; over = blockLen(b) - maxMessageLen {
		switch {
		case e.Label != ellipsis:
			e.Label = shorten(e.Label, over)
		case e.Source != "" && e.Source != ellipsis:
			e.Source = shorten(e.Source, over)
		case e.Timestamp != ellipsis:
			e.Timestamp = shorten(e.Timestamp, over)
		case e.Navigable:
			e.Navigable = false
		default:
			return b
		}
		b = formatMarkdownEntry(e)
	}
	return b
}

func formatMarkdownEntry(e Entry) string {
	label := escapeMarkdown(e.Label)
	if e.Navigable {
		href := linkEscaper.Replace(e.Href)
		label = entity(e.Label, "]", "]", func(s string) string { return "[" + s + "](" + href + ")" })
	}
	return label + "\n" + entity(meta(e), "_", `\_`, func(s string) string { return "_" + s + "_" })
}

// entity wraps s into a markdown entity. Telegram markdown does not allow
// escapes inside an entity, so the entity is closed before every special
// character and reopened after it.
func entity(s, special, escaped string, wrap func(string) string) string {
	sb := &strings.Builder{}
	for i, part := range strings.Split(s, special) {
		if i > 0 {
			_, _ = sb.WriteString(escaped)
		}
		if part != "" {
			_, _ = sb.WriteString(wrap(part))
		}
	}
	return sb.String()
}

const ellipsis = "…"

// shorten cuts n runes and appends an ellipsis.
func shorten(s string, n int) string {
	r := []rune(s)
	keep := len(r) - n - 1
	if keep <= 0 {
		return ellipsis
	}
	return string(r[:keep]) + ellipsis
}

func blockLen(b string) int { return utf8.RuneCountInString(b) + 2 }

func meta(e Entry) string {
	if e.Source == "" {
		return e.Timestamp
	}
	return e.Timestamp + " · " + e.Source
}

func pager(p news.Page) string {
	return fmt.Sprintf("Page %d of %d, %d articles in total", p.CurrentPage, p.Pages, p.Total)
}

var mdEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"[", "\\[",
)

var linkEscaper = strings.NewReplacer(
	")", "%29",
	" ", "%20",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// Package display shapes raw API results into uniform records for the list
// panel. All formatting here is total: invalid dates, missing fields, and
// unknown categories map to empty strings or defaults, never errors.
package display

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"reade_cli/api"
)

// Item is a single display record for the launcher list.
type Item struct {
	URL          string
	Title        string
	Subtitle     string
	Badge        string
	Label        string
	QuickLookURL string
	Icon         string
	DocumentID   string
	ReaderURL    string
	SourceURL    string
}

// OutputKind tags the value carried by an ActionOutput.
type OutputKind int

const (
	OutputURL OutputKind = iota
	OutputText
)

// ActionOutput is the tagged result of a create action: either the URL of
// the created resource or a plain message. Callers construct the variant
// explicitly instead of inferring it from the string's shape.
type ActionOutput struct {
	Kind  OutputKind
	Value string
}

// URLOutput returns an ActionOutput carrying a URL.
func URLOutput(u string) ActionOutput { return ActionOutput{Kind: OutputURL, Value: u} }

// TextOutput returns an ActionOutput carrying plain text.
func TextOutput(s string) ActionOutput { return ActionOutput{Kind: OutputText, Value: s} }

// Item maps an action output to a display record.
func (o ActionOutput) Item() Item {
	if o.Kind == OutputURL {
		return Item{URL: o.Value, Title: o.Value, QuickLookURL: o.Value}
	}
	return Item{Title: o.Value}
}

var categoryIcons = map[string]string{
	"article":   "📰",
	"email":     "✉️",
	"epub":      "📕",
	"pdf":       "📄",
	"rss":       "📡",
	"tweet":     "🐦",
	"video":     "🎬",
	"highlight": "🖍",
	"note":      "🔖",
}

const defaultIcon = "🌐"

// IconForCategory returns the icon glyph for a document category, with a
// generic fallback for unknown categories.
func IconForCategory(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return defaultIcon
}

// extensionLike matches content that is just a bare file-extension token
// (e.g. "pdf", ".epub"); such highlight rows are artifacts, not text worth
// listing.
var extensionLike = regexp.MustCompile(`^\.?(?i:pdf|epub|html?|md|txt|docx?|rtf|jpe?g|png|gif|mp3|mp4|mov|csv)$`)

// FormatList maps raw list results to display records. The branch is chosen
// from the requested category, not the category of each row; a mixed result
// set would format rows of the other branch with the wrong rules (known
// upstream ambiguity, kept as-is).
func FormatList(requestedCategory string, docs []api.Document) []Item {
	if requestedCategory == "highlight" || requestedCategory == "note" {
		return formatHighlights(docs)
	}
	return formatDocuments(docs)
}

// formatHighlights lists highlight/note rows: the content is the title, the
// creation date the badge.
func formatHighlights(docs []api.Document) []Item {
	items := make([]Item, 0, len(docs))
	for _, d := range docs {
		content := strings.TrimSpace(d.Content)
		if extensionLike.MatchString(content) {
			continue
		}
		items = append(items, Item{
			URL:          d.URL,
			Title:        content,
			Badge:        FormattedDate(d.CreatedAt),
			QuickLookURL: d.SourceURL,
			Icon:         IconForCategory(d.Category),
			DocumentID:   d.ID,
			ReaderURL:    d.URL,
			SourceURL:    d.SourceURL,
		})
	}
	return items
}

// formatDocuments lists general document rows, excluding nested highlights
// and notes (rows with a parent reference).
func formatDocuments(docs []api.Document) []Item {
	items := make([]Item, 0, len(docs))
	for _, d := range docs {
		if d.ParentID != nil {
			continue
		}
		items = append(items, Item{
			URL:          d.URL,
			Title:        d.Title,
			Subtitle:     subtitleFor(d.Title, d.Summary),
			Badge:        FormattedDate(d.PublishedDate.String()),
			Label:        ProgressLabel(d.ReadingProgress),
			QuickLookURL: d.SourceURL,
			Icon:         IconForCategory(d.Category),
			DocumentID:   d.ID,
			ReaderURL:    d.URL,
			SourceURL:    d.SourceURL,
		})
	}
	return items
}

// subtitleFor strips a leading duplicate of the title off the summary.
func subtitleFor(title, summary string) string {
	summary = strings.TrimSpace(summary)
	if title == "" || summary == "" {
		return summary
	}
	if strings.HasPrefix(summary, title) {
		return strings.TrimLeft(summary[len(title):], " \t-–—:.")
	}
	return summary
}

// ProgressLabel renders reading progress as a rounded percentage; zero
// progress yields an empty label.
func ProgressLabel(progress float64) string {
	if progress == 0 {
		return ""
	}
	return fmt.Sprintf("%.0f%%", progress*100)
}

// dateLayouts are tried in order when the value is not epoch millis.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormattedDate renders a date value as e.g. "2 Jan 2006". Numeric values
// parse as epoch millis, anything else as a date string; invalid dates
// format to an empty string, never an error.
func FormattedDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC().Format("2 Jan 2006")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2 Jan 2006")
		}
	}
	return ""
}

// Truncate shortens a string to at most max display columns, cutting at a
// word boundary where possible and trimming trailing punctuation before the
// ellipsis.
func Truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	cut := runewidth.Truncate(s, max, "")
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	cut = strings.TrimRight(cut, ",.!? ")
	return strings.TrimSpace(cut) + "…"
}

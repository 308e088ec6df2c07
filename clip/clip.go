// Package clip resolves missing action content from the host clipboard.
// It is consulted only when an action requires content and none was supplied
// inline; an empty clipboard leaves the params untouched.
package clip

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"reade_cli/display"
	"reade_cli/host"
	"reade_cli/logger"
	"reade_cli/parse"
	"reade_cli/textutil"
)

const previewLength = 1000

var (
	htmlTag = regexp.MustCompile(`<\w+>`)
	bareURL = regexp.MustCompile(`^https?:\S+$`)
)

var markdown = goldmark.New()

// FillHighlightText resolves highlight text from the clipboard. It reports
// whether text is now available.
func FillHighlightText(h host.Host, p *parse.Params) bool {
	if strings.TrimSpace(p.Text) != "" {
		return true
	}
	text := confirmedClipboard(h)
	if text == "" {
		return false
	}
	p.Text = text
	return true
}

// FillSaveTarget resolves a save target from the clipboard. A bare URL is
// used directly; anything else is treated as local content: converted from
// Markdown when it carries no HTML tags, wrapped in a container element, and
// given a synthetic placeholder URL derived from a content hash so the item
// has a stable deduplication key. It reports whether a target is now
// available.
func FillSaveTarget(h host.Host, p *parse.Params) bool {
	if p.URL != "" {
		return true
	}

	content := confirmedClipboard(h)
	if content == "" {
		return false
	}

	if bareURL.MatchString(content) {
		p.URL = content
		return true
	}

	if !htmlTag.MatchString(content) {
		html, err := markdownToHTML(content)
		if err != nil {
			logger.Warn("Markdown conversion failed, saving as-is", "error", err)
			html = content
		}
		content = "<div>" + html + "</div>"
	}

	p.URL = fmt.Sprintf("https://example.com/%d", textutil.Fnv1aHash(content))
	p.HTML = content
	// Let the server strip scripts and normalize the markup.
	p.ShouldCleanHTML = true
	return true
}

// confirmedClipboard reads the clipboard and asks the user before using it.
func confirmedClipboard(h host.Host) string {
	text := parse.Normalize(h.ClipboardText())
	if text == "" {
		logger.Debug("Clipboard is empty")
		return ""
	}
	preview := display.Truncate(text, previewLength)
	if !h.Confirm("Send this clipboard text to Readwise?", fmt.Sprintf("“%s”", preview)) {
		return ""
	}
	logger.Debug("Input from clipboard", "length", len(text))
	return text
}

func markdownToHTML(s string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

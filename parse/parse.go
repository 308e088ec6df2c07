// Package parse turns a single line of free text into a structured
// command-or-action record. Commands manage the client itself (config, help,
// version); actions are content operations submitted to the API.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"reade_cli/logger"
)

// MaxHighlightLength is the longest highlight text the API accepts.
const MaxHighlightLength = 8191

// Action identifies the content operation requested by parsed input.
type Action int

const (
	ActionNone Action = iota
	ActionHighlightCreate
	ActionDocumentCreate
	ActionDocumentList
)

func (a Action) String() string {
	switch a {
	case ActionHighlightCreate:
		return "highlight_create"
	case ActionDocumentCreate:
		return "document_create"
	case ActionDocumentList:
		return "document_list"
	default:
		return "none"
	}
}

// CommandKind identifies an administrative command, distinct from an Action.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdConfigList
	CmdConfigReset
	CmdConfigSet
	CmdHelp
	CmdVersion
)

// Params carries the action-specific parameters submitted to the API.
type Params struct {
	Text            string
	URL             string
	HTML            string
	ShouldCleanHTML bool
	Tags            []string
	Category        string
	Location        string
	WithHTMLContent bool
}

// Result is the outcome of parsing one line of input. It is created once per
// invocation and not mutated after parsing completes, except that the
// clipboard fallback may fill in missing content params before dispatch.
type Result struct {
	IsCommand   bool
	Command     CommandKind
	ConfigKey   string
	ConfigValue string
	Action      Action
	Params      Params
}

var (
	whitespaceRun   = regexp.MustCompile(`[^\S\r\n]+`)
	urlToken        = regexp.MustCompile(`^https?:`)
	configCommand   = regexp.MustCompile(`^config\s*(list|reset|set|get|delete|export)(\s.*)?$`)
	configSetPrefix = regexp.MustCompile(`(?i)^config\s*set\s*`)
	trailingPlural  = regexp.MustCompile(`s$`)
)

var locations = map[string]bool{
	"new":       true,
	"later":     true,
	"shortlist": true,
	"archive":   true,
	"feed":      true,
	// Not in the API docs, but accepted upstream.
	"seen":   true,
	"unseen": true,
}

var categories = map[string]bool{
	"article":   true,
	"email":     true,
	"epub":      true,
	"highlight": true,
	"note":      true,
	"pdf":       true,
	"rss":       true,
	"tweet":     true,
	"video":     true,
}

var pluralCategories = map[string]bool{
	"articles":   true,
	"emails":     true,
	"epubs":      true,
	"highlights": true,
	"notes":      true,
	"pdfs":       true,
	"tweets":     true,
	"videos":     true,
}

// Normalize collapses runs of non-newline whitespace to single spaces and
// trims the result.
func Normalize(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Parse processes one line of input. Command recognition runs first and
// short-circuits action parsing. A returned error is a user-facing
// validation message; no error crosses this boundary for mere absence of
// content (callers check Params for emptiness instead).
func Parse(input string) (Result, error) {
	text := Normalize(input)

	if res, ok := recognizeCommand(text); ok {
		logger.Debug("Parsed command", "command", res.Command, "key", res.ConfigKey)
		return res, nil
	}

	res, err := parseAction(text)
	if err != nil {
		return res, err
	}
	logger.Debug("Parse results",
		"action", res.Action.String(),
		"category", res.Params.Category,
		"location", res.Params.Location,
		"tags", strings.Join(res.Params.Tags, ","))
	return res, nil
}

// recognizeCommand matches administrative keywords. Two-word forms are
// canonicalized by removing the internal whitespace ("config set" ->
// "configset") before a fixed-string switch. Recognition itself has no side
// effects; the handlers live in the command package.
func recognizeCommand(text string) (Result, bool) {
	lowered := strings.ToLower(text)
	canonical := lowered
	if m := configCommand.FindStringSubmatch(lowered); m != nil {
		canonical = "config" + m[1]
	}

	res := Result{IsCommand: true}
	switch canonical {
	case "config", "configlist":
		res.Command = CmdConfigList
		return res, true

	case "configreset":
		res.Command = CmdConfigReset
		return res, true

	case "configset":
		res.Command = CmdConfigSet
		// Key and value follow whichever spelling of "config set" matched,
		// including the space-less "configset" form.
		rest := configSetPrefix.ReplaceAllString(text, "")
		if key, value := unprefix(rest); key != "" {
			res.ConfigKey = strings.ToLower(key)
			res.ConfigValue = value
		}
		return res, true

	case "help":
		res.Command = CmdHelp
		return res, true

	case "version":
		res.Command = CmdVersion
		return res, true
	}

	logger.Debug("Command not found", "input", canonical)
	return Result{}, false
}

// parseAction classifies the leading keyword of non-command input and
// consumes whitespace-delimited prefix tokens according to the action's
// vocabulary.
func parseAction(text string) (Result, error) {
	keyword, remainder := unprefix(text)

	res := Result{}
	switch strings.ToLower(keyword) {
	case "add":
		// Everything after the keyword is the highlight text verbatim.
		res.Action = ActionHighlightCreate
		res.Params.Text = remainder
		if err := ValidateHighlightText(remainder); err != nil {
			return res, err
		}
		return res, nil

	case "save":
		// Scan forward for the first URL-shaped token; the rest becomes tags.
		res.Action = ActionDocumentCreate
		for {
			prefix, rest := unprefix(remainder)
			if prefix == "" {
				break
			}
			if urlToken.MatchString(prefix) {
				res.Params.URL = prefix
				if rest != "" {
					res.Params.Tags = SplitTags(rest)
				}
				break
			}
			remainder = rest
		}
		return res, nil

	case "list":
		res.Action = ActionDocumentList
		res.Params.WithHTMLContent = false
		for {
			prefix, rest := unprefix(remainder)
			if prefix == "" {
				break
			}
			token := strings.ToLower(prefix)
			switch {
			case locations[token]:
				// Last-seen location wins.
				res.Params.Location = token
			case pluralCategories[token]:
				res.Params.Category = trailingPlural.ReplaceAllString(token, "")
			case categories[token]:
				res.Params.Category = token
			default:
				// First unrecognized token stops the keyword scan; the rest
				// of the line is comma-delimited tags.
				res.Params.Tags = SplitTags(remainder)
				return res, nil
			}
			remainder = rest
		}
		return res, nil
	}

	logger.Debug("No matching action", "keyword", keyword)
	return Result{}, fmt.Errorf("I don't know how to handle this input: %q", text)
}

// ValidateHighlightText rejects over-length highlight text. Emptiness is not
// an error here; empty text triggers the clipboard fallback instead.
func ValidateHighlightText(text string) error {
	if len(text) > MaxHighlightLength {
		return fmt.Errorf("that highlight text is too long (%d); max length %d", len(text), MaxHighlightLength)
	}
	return nil
}

// SplitTags splits comma-delimited tag text, trimming each tag and dropping
// empties.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// unprefix peels the leading whitespace-delimited token off a normalized
// string, returning the token and the remainder.
func unprefix(s string) (string, string) {
	s = Normalize(s)
	if s == "" {
		return "", ""
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

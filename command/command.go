// Package command executes parsed input: administrative commands directly,
// content actions through the API client, the clipboard resolver, and the
// list panel.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"reade_cli/api"
	"reade_cli/clip"
	"reade_cli/config"
	"reade_cli/display"
	"reade_cli/host"
	"reade_cli/logger"
	"reade_cli/parse"
	"reade_cli/textutil"
	"reade_cli/ui"
)

// BuildInfo carries version details from the main package.
type BuildInfo struct {
	Version string
	Info    string
}

// Handler dispatches parsed input to command handlers and actions.
type Handler struct {
	cfg        *config.Config
	configPath string
	cachePath  string
	host       host.Host
	client     *api.Client
	build      BuildInfo
	out        io.Writer
}

// NewHandler creates a handler bound to the loaded configuration.
func NewHandler(cfg *config.Config, configPath string, h host.Host, build BuildInfo) *Handler {
	client := api.NewClient(cfg.Token)
	client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &Handler{
		cfg:        cfg,
		configPath: configPath,
		cachePath:  config.GetCachePath(),
		host:       h,
		client:     client,
		build:      build,
		out:        os.Stdout,
	}
}

// Process runs one parsed invocation to completion. User-facing failures are
// reported through the host and are terminal for the invocation; the
// returned error covers only unexpected internal failures.
func (h *Handler) Process(res parse.Result) error {
	if res.IsCommand {
		return h.runCommand(res)
	}

	// Actions need a token; commands (notably "config set token") do not.
	if h.cfg.Token == "" {
		h.showAPIKeyHelp()
		return nil
	}

	switch res.Action {
	case parse.ActionHighlightCreate:
		return h.runHighlightCreate(res.Params)
	case parse.ActionDocumentCreate:
		return h.runDocumentCreate(res.Params)
	case parse.ActionDocumentList:
		return h.runDocumentList(res.Params)
	}
	return nil
}

func (h *Handler) runCommand(res parse.Result) error {
	logger.Debug("Running command", "command", res.Command)

	switch res.Command {
	case parse.CmdConfigList:
		fmt.Fprintf(h.out, "Reade configuration\n\n%s\nTo change a value use \"config set OPTION VALUE\".\n", h.cfg.Show())

	case parse.CmdConfigReset:
		if !h.host.Confirm("Are you sure?",
			"This will erase all configuration options (except the API token), resetting them to their default values.") {
			return nil
		}
		h.cfg.Reset()
		if err := config.SaveConfig(h.configPath, *h.cfg); err != nil {
			return err
		}
		h.host.Notify("Reade", "Configuration reset to default.")

	case parse.CmdConfigSet:
		if res.ConfigKey == "" {
			h.host.Alert("Failed to set configuration", `usage: config set OPTION VALUE`)
			return nil
		}
		shown, err := h.cfg.Set(res.ConfigKey, res.ConfigValue)
		if err != nil {
			h.host.Alert("Failed to set configuration", err.Error())
			return nil
		}
		if err := config.SaveConfig(h.configPath, *h.cfg); err != nil {
			return err
		}
		h.host.Notify("Reade configuration saved",
			fmt.Sprintf("“%s” has been set to “%s”", res.ConfigKey, shown))

	case parse.CmdHelp:
		h.ShowHelp()

	case parse.CmdVersion:
		fmt.Fprintln(h.out, h.build.Info)
		h.checkForUpdate()
	}
	return nil
}

// ShowHelp displays the user guide, falling back to plain output when the
// interactive panel cannot start.
func (h *Handler) ShowHelp() {
	if err := ui.RunHelp("Reade", helpText); err != nil {
		logger.Debug("Help panel unavailable, printing instead", "error", err)
		fmt.Fprint(h.out, helpText)
	}
}

func (h *Handler) showAPIKeyHelp() {
	h.host.Alert("Reade requires a Readwise API token", apiKeyHelp)
}

func (h *Handler) runHighlightCreate(params parse.Params) error {
	if !clip.FillHighlightText(h.host, &params) {
		h.host.Alert("Failed to create highlight",
			`The "add" action must be followed by the text of the highlight, e.g., "add This text".`)
		return nil
	}
	// Clipboard text is length-checked the same as inline text.
	if err := parse.ValidateHighlightText(params.Text); err != nil {
		h.host.Alert("Failed to create highlight", err.Error())
		return nil
	}

	url, callErr := h.client.HighlightCreate(params.Text, h.cfg.Title)
	if callErr != nil {
		h.alertCallError(callErr)
		return nil
	}

	h.printOutput(display.URLOutput(url))
	h.host.CopyText(url)
	h.host.Notify("Highlight saved", url)
	return nil
}

func (h *Handler) runDocumentCreate(params parse.Params) error {
	if !clip.FillSaveTarget(h.host, &params) {
		h.host.Alert("Failed to save",
			`The "save" action requires a URL, e.g., "save http://example.com tag1,tag2". Or, run "save" alone to get the URL or article content from the clipboard.`)
		return nil
	}

	saved, callErr := h.client.DocumentCreate(params)
	if callErr != nil {
		h.alertCallError(callErr)
		return nil
	}

	h.printOutput(display.URLOutput(saved.URL))
	h.host.Notify("Saved to Reader", saved.URL)
	return nil
}

func (h *Handler) runDocumentList(params parse.Params) error {
	docs, callErr := h.client.DocumentList(params)
	if callErr != nil {
		h.alertCallError(callErr)
		return nil
	}

	items := display.FormatList(params.Category, docs)
	if len(items) == 0 {
		h.host.Alert("No matching items", "")
		return nil
	}

	return ui.RunList(listTitle(params), items, h.listCallbacks())
}

func listTitle(params parse.Params) string {
	parts := []string{"Reader items"}
	if params.Category != "" {
		parts = append(parts, params.Category)
	}
	if params.Location != "" {
		parts = append(parts, params.Location)
	}
	if len(params.Tags) > 0 {
		parts = append(parts, strings.Join(params.Tags, ", "))
	}
	return strings.Join(parts, " · ")
}

func (h *Handler) listCallbacks() ui.Callbacks {
	return ui.Callbacks{
		Open: func(item display.Item) (string, error) {
			if err := h.host.OpenURL(item.ReaderURL); err != nil {
				return "", err
			}
			return "opened in Reader", nil
		},
		OpenSource: func(item display.Item) (string, error) {
			if host.IsAccessibleURL(item.SourceURL) {
				if err := h.host.OpenURL(item.SourceURL); err != nil {
					return "", err
				}
				return "opened source", nil
			}
			// Fall back to the distilled HTML.
			return h.openCachedHTML(item)
		},
		Preview: func(item display.Item) (string, error) {
			if host.IsAccessibleURL(item.QuickLookURL) {
				if err := h.host.OpenURL(item.QuickLookURL); err != nil {
					return "", err
				}
				return "previewing source", nil
			}
			return h.openCachedHTML(item)
		},
		Copy: func(item display.Item) (string, error) {
			if item.SourceURL == "" {
				return "", fmt.Errorf("item has no source URL")
			}
			h.host.CopyText(item.SourceURL)
			return "copied source URL", nil
		},
	}
}

// openCachedHTML fetches the document's distilled HTML, caches it, and
// opens the cached file.
func (h *Handler) openCachedHTML(item display.Item) (string, error) {
	doc, callErr := h.client.DocumentFetch(item.DocumentID)
	if callErr != nil {
		return "", callErr
	}
	if doc.HTMLContent == "" {
		return "", fmt.Errorf("document has no HTML content")
	}

	name := doc.Title
	if name == "" {
		name = doc.URL
	}
	path, err := host.SaveCacheFile(h.cachePath, textutil.SafeFilename(name)+".html", doc.HTMLContent)
	if err != nil {
		return "", err
	}
	if err := h.host.OpenFile(path); err != nil {
		return "", err
	}
	return "opened cached render", nil
}

func (h *Handler) printOutput(out display.ActionOutput) {
	item := out.Item()
	fmt.Fprintln(h.out, item.Title)
}

// alertCallError maps the API failure taxonomy to its user-facing alerts.
func (h *Handler) alertCallError(callErr *api.CallError) {
	switch callErr.Kind {
	case api.KindTransport:
		h.host.Alert("Network error", callErr.Message)
	case api.KindAPI:
		h.host.Alert("The request failed", callErr.Message)
	case api.KindEmpty:
		h.host.Alert("The response was empty", "")
	default:
		h.host.Alert("An unknown error occurred", "")
	}
}

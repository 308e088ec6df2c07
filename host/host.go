// Package host wraps the capabilities the client borrows from its
// environment: the clipboard, user dialogs, URL/file opening, and the cache
// directory. Callers hold the Host interface so tests can substitute a fake.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"reade_cli/logger"
)

// Host is the capability surface provided by the environment. Missing or
// undefined values are reported as absence (empty string, false), not as
// failures.
type Host interface {
	// ClipboardText returns the current clipboard text, or "" if the
	// clipboard is empty or unreadable.
	ClipboardText() string
	// Confirm asks a yes/no question and reports the answer.
	Confirm(title, message string) bool
	// Alert shows a blocking error or notice.
	Alert(title, message string)
	// Notify shows a passive notification.
	Notify(title, message string)
	// OpenURL opens a URL with the system handler.
	OpenURL(url string) error
	// OpenFile opens a local file with the system handler.
	OpenFile(path string) error
	// CopyText places text on the clipboard (terminal OSC 52 plus the
	// system clipboard, best effort).
	CopyText(text string)
}

// Terminal is the interactive stdin/stdout implementation of Host.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminal returns a Host bound to the process's stdin and stdout.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

func (t *Terminal) ClipboardText() string {
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.Debug("Clipboard unreadable", "error", err)
		return ""
	}
	return text
}

func (t *Terminal) Confirm(title, message string) bool {
	fmt.Fprintf(t.Out, "%s\n%s\n[y/N] ", title, message)
	reader := bufio.NewReader(t.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (t *Terminal) Alert(title, message string) {
	logger.Info("Alert", "title", title, "message", message)
	if message == "" {
		fmt.Fprintf(t.Out, "⚠️  %s\n", title)
		return
	}
	fmt.Fprintf(t.Out, "⚠️  %s\n   %s\n", title, message)
}

func (t *Terminal) Notify(title, message string) {
	fmt.Fprintf(t.Out, "%s: %s\n", title, message)
}

func (t *Terminal) OpenURL(url string) error {
	logger.Debug("Opening URL", "url", url)
	return runOpener(url)
}

func (t *Terminal) OpenFile(path string) error {
	logger.Debug("Opening file", "path", path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		if runtime.GOOS == "darwin" {
			// Force the text editor rather than a previewer.
			return exec.Command("/usr/bin/open", "-t", path).Run()
		}
	}
	return runOpener(path)
}

func (t *Terminal) CopyText(text string) {
	// OSC 52 reaches the terminal's clipboard even over SSH.
	_, _ = fmt.Fprint(t.Out, osc52.New(text))
	if err := clipboard.WriteAll(text); err != nil {
		logger.Debug("System clipboard write failed", "error", err)
	}
}

func runOpener(target string) error {
	opener, err := openerCommand()
	if err != nil {
		return err
	}
	return exec.Command(opener, target).Run()
}

func openerCommand() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "/usr/bin/open", nil
	case "windows":
		return "", fmt.Errorf("no URL opener available on %s", runtime.GOOS)
	default:
		if path, err := exec.LookPath("xdg-open"); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("xdg-open not found")
	}
}

// CacheDir ensures the cache directory exists and returns it.
func CacheDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("unable to create cache directory %s: %w", dir, err)
	}
	return dir, nil
}

// SaveCacheFile writes content to a named file under the cache directory
// and returns its full path.
func SaveCacheFile(dir, name, content string) (string, error) {
	dir, err := CacheDir(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write cache file %s: %w", path, err)
	}
	logger.Debug("Created cache file", "path", path)
	return path, nil
}

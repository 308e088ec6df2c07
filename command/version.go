package command

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"reade_cli/logger"
)

const releasesURL = "https://api.github.com/repos/strangecode/reade-cli/releases/latest"

type releaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// checkForUpdate compares the running version against the latest published
// release. Failures are logged and otherwise ignored; the version command
// never fails on a network problem.
func (h *Handler) checkForUpdate() {
	if h.build.Version == "" || h.build.Version == "dev" {
		return
	}

	resp, err := h.client.HTTPClient.Get(releasesURL)
	if err != nil {
		logger.Debug("Update check failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("Update check returned non-OK status", "status_code", resp.StatusCode)
		return
	}

	var release releaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		logger.Debug("Update check response unreadable", "error", err)
		return
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(h.build.Version, "v")
	if latest == "" || latest == current {
		h.host.Notify("Reade", "You are on the latest version.")
		return
	}
	h.host.Notify("A new version of Reade is available",
		fmt.Sprintf("%s (you have %s): %s", latest, current, release.HTMLURL))
}

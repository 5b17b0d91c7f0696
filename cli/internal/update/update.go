// Package update compares the running version against the latest release.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
)

const releaseEndpoint = "https://api.github.com/repos/quern-dev/quern/releases/latest"

// Check reports whether a newer release exists. Network failures are
// returned, not fatal; the version command treats them as "unknown".
func Check(current string) (latest string, newer bool, err error) {
	cur, err := version.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return "", false, fmt.Errorf("invalid version %q: %w", current, err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(releaseEndpoint)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("release lookup returned %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", false, err
	}

	latestVer, err := version.NewVersion(strings.TrimPrefix(release.TagName, "v"))
	if err != nil {
		return "", false, fmt.Errorf("invalid release tag %q: %w", release.TagName, err)
	}
	return latestVer.String(), cur.LessThan(latestVer), nil
}

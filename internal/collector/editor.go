package collector

import (
	"strings"

	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// SplitEditor decomposes a slash-delimited last_activity_editor value into
// its four ordered parts: editor, editor version, plugin, plugin version.
// Parts beyond the available segments fill with the N/A sentinel; an empty
// source yields all four as N/A. Segments past the fourth are ignored.
func SplitEditor(value string) (editor, editorVersion, plugin, pluginVersion string) {
	parts := [4]string{models.SentinelNA, models.SentinelNA, models.SentinelNA, models.SentinelNA}
	if value != "" {
		for i, segment := range strings.Split(value, "/") {
			if i >= len(parts) {
				break
			}
			parts[i] = segment
		}
	}
	return parts[0], parts[1], parts[2], parts[3]
}

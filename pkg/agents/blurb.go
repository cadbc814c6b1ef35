// Package agents provides AGENTS.md integration for AI coding agents.
// It handles detection, content injection, and update checks for
// automatically adding lv usage instructions to agent configuration files.
package agents

import (
	"regexp"
	"strconv"
	"strings"
)

// BlurbVersion is the current version of the agent instructions blurb.
// Increment this when making breaking changes to the blurb format.
const BlurbVersion = 1

// BlurbStartMarker marks the beginning of injected agent instructions.
const BlurbStartMarker = "<!-- lv-agent-instructions-v1 -->"

// BlurbEndMarker marks the end of injected agent instructions.
const BlurbEndMarker = "<!-- end-lv-agent-instructions -->"

// AgentBlurb contains the instructions to be appended to AGENTS.md files.
const AgentBlurb = `<!-- lv-agent-instructions-v1 -->

---

## lv Robot Interface

This project uses [lv](https://github.com/vanderheijden86/listview) to browse its item collections. Items live in ` + "`" + `.lv/` + "`" + ` (kept out of git).

### Essential Commands

` + "```" + `bash
# Launch the TUI (avoid in automated sessions)
lv

# JSON modes for agents (use these instead)
lv --robot-stats      # Collection counts and window geometry
lv --robot-items      # Current view as JSON
lv --robot-range      # Visible range for the configured viewport
lv --robot-presets    # Available filter/sort presets
lv --robot-insights   # Value stats, categories, stale counts
lv --robot-drift      # Compare metrics against the saved baseline
` + "```" + `

### Workflow Pattern

1. **Inspect**: ` + "`" + `lv --robot-stats` + "`" + ` to see collection size and the render window
2. **Filter**: add ` + "`" + `--preset urgent` + "`" + ` (or any preset) to any robot mode
3. **Drill in**: ` + "`" + `lv --robot-items --preset high-value` + "`" + ` for the rows you need
4. **Guard**: ` + "`" + `lv --check-drift` + "`" + ` in CI; exit 1 means critical drift

### Key Concepts

- **Presets**: named filter+sort bundles. ` + "`" + `lv --robot-presets` + "`" + ` lists builtins and ` + "`" + `.lv/presets.yaml` + "`" + ` additions.
- **Categories**: urgent, normal, low.
- **Virtual mode**: ` + "`" + `--virtual` + "`" + ` keeps memory flat on huge collections; robot output is identical either way.
- **Baselines**: ` + "`" + `--save-baseline` + "`" + ` snapshots metrics, ` + "`" + `--check-drift` + "`" + ` compares.

### Best Practices

- Prefer robot modes over scraping TUI output
- Pass ` + "`" + `--data` + "`" + ` explicitly when operating outside the project root
- Re-save the baseline after intentional bulk edits
- Set ` + "`" + `LV_ROBOT=1` + "`" + ` in automated environments so lv never queries the terminal

<!-- end-lv-agent-instructions -->`

// SupportedAgentFiles lists the filenames that can contain agent instructions.
var SupportedAgentFiles = []string{
	"AGENTS.md",
	"CLAUDE.md",
	"agents.md",
	"claude.md",
}

// blurbVersionRegex extracts the version number from a blurb marker.
var blurbVersionRegex = regexp.MustCompile(`<!-- lv-agent-instructions-v(\d+) -->`)

// ContainsBlurb checks if the content already contains an lv agent blurb.
func ContainsBlurb(content string) bool {
	return strings.Contains(content, "<!-- lv-agent-instructions-v")
}

// GetBlurbVersion extracts the version number from existing blurb content.
func GetBlurbVersion(content string) int {
	matches := blurbVersionRegex.FindStringSubmatch(content)
	if len(matches) < 2 {
		return 0
	}
	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return version
}

// NeedsUpdate checks if the content has an older version of the blurb that should be updated.
func NeedsUpdate(content string) bool {
	if !ContainsBlurb(content) {
		return false
	}
	return GetBlurbVersion(content) < BlurbVersion
}

// AppendBlurb appends the agent blurb to the given content.
func AppendBlurb(content string) string {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += "\n"
	content += AgentBlurb
	content += "\n"
	return content
}

// RemoveBlurb removes an existing blurb from the content.
func RemoveBlurb(content string) string {
	startIdx := strings.Index(content, "<!-- lv-agent-instructions-v")
	if startIdx == -1 {
		return content
	}
	endIdx := strings.Index(content, BlurbEndMarker)
	if endIdx == -1 {
		return content
	}
	endIdx += len(BlurbEndMarker)
	for endIdx < len(content) && (content[endIdx] == '\n' || content[endIdx] == '\r') {
		endIdx++
	}
	for startIdx > 0 && (content[startIdx-1] == '\n' || content[startIdx-1] == '\r') {
		startIdx--
	}
	return content[:startIdx] + content[endIdx:]
}

// UpdateBlurb replaces an existing blurb with the current version.
func UpdateBlurb(content string) string {
	content = RemoveBlurb(content)
	return AppendBlurb(content)
}

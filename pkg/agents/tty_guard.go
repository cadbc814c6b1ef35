package agents

import "strings"

// nonInteractiveFlags are exact flags that bypass the TUI.
var nonInteractiveFlags = map[string]bool{
	"--help":            true,
	"-h":                true,
	"--version":         true,
	"--robot-help":      true,
	"--save-baseline":   true,
	"--baseline-info":   true,
	"--check-drift":     true,
	"--profile-startup": true,
	"--agents-setup":    true,
}

// ShouldSuppressTTYQueries reports whether the process must avoid
// querying the terminal (background color, cursor position). Robot and
// export modes write to stdout or files, and a stray escape response
// corrupts piped output.
func ShouldSuppressTTYQueries(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}
	for _, arg := range args {
		flag := arg
		if i := strings.IndexByte(flag, '='); i != -1 {
			flag = flag[:i]
		}
		if strings.HasPrefix(flag, "--robot-") || strings.HasPrefix(flag, "--export-") {
			return true
		}
		if nonInteractiveFlags[flag] {
			return true
		}
	}
	return false
}

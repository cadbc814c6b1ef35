package ui

import (
	"log"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// ViewState is the persisted slice of list UI state. It is saved to
// .lv/view-state.json so filter, sort, and cursor survive sessions.
//
// File format (JSON):
//
//	{
//	  "version": 1,
//	  "filter": "inv",
//	  "sort_field": "value",
//	  "sort_dir": "desc",
//	  "virtual": true,
//	  "cursor_id": 42,
//	  "scroll": 1320
//	}
//
// Design notes:
//   - Sort and filter strings are revalidated on load, unknown values
//     fall back to defaults rather than failing
//   - Version field enables future schema migrations
//   - Corrupted/missing file = use defaults (graceful degradation)
type ViewState struct {
	Version   int    `json:"version"`
	Filter    string `json:"filter,omitempty"`
	SortField string `json:"sort_field,omitempty"`
	SortDir   string `json:"sort_dir,omitempty"`
	Virtual   *bool  `json:"virtual,omitempty"`
	CursorID  int    `json:"cursor_id"`
	Scroll    int    `json:"scroll"`
}

// ViewStateVersion is the current schema version for view persistence
const ViewStateVersion = 1

// viewStateFileName is the filename for persisted view state
const viewStateFileName = "view-state.json"

// ViewStatePath returns the path to the view state file. The stateDir
// parameter allows overriding the .lv directory location.
func ViewStatePath(stateDir string) string {
	if stateDir == "" {
		stateDir = ".lv"
	}
	return filepath.Join(stateDir, viewStateFileName)
}

// SaveViewState persists the state to disk. Errors are logged but do
// not interrupt the user experience.
func SaveViewState(stateDir string, state ViewState) {
	state.Version = ViewStateVersion

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("warning: failed to marshal view state: %v", err)
		return
	}

	path := ViewStatePath(stateDir)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("warning: failed to create state directory %s: %v", dir, err)
		return
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("warning: failed to write view state to %s: %v", path, err)
		return
	}
}

// LoadViewState restores view state from disk. If the file does not
// exist or is corrupted, ok is false and defaults apply.
func LoadViewState(stateDir string) (ViewState, bool) {
	path := ViewStatePath(stateDir)
	data, err := os.ReadFile(path)
	if err != nil {
		// File doesn't exist = first run, use defaults
		return ViewState{}, false
	}

	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("warning: invalid view state file, using defaults: %v", err)
		return ViewState{}, false
	}
	if state.Version != ViewStateVersion {
		log.Printf("warning: view state version %d not supported, using defaults", state.Version)
		return ViewState{}, false
	}
	return state, true
}

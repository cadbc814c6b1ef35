package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vanderheijden86/listview/pkg/loader"
	"github.com/vanderheijden86/listview/pkg/model"
)

var (
	buildOnce sync.Once
	builtPath string
	buildErr  error
)

// buildLvBinary compiles cmd/lv once per test run and returns the
// binary path. Every e2e test shares the same build.
func buildLvBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "lv-e2e-*")
		if err != nil {
			buildErr = err
			return
		}
		builtPath = filepath.Join(dir, "lv")
		cmd := exec.Command("go", "build", "-o", builtPath, "github.com/vanderheijden86/listview/cmd/lv")
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("go build: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatalf("building lv: %v", buildErr)
	}
	return builtPath
}

// runLv executes the binary in dir and returns stdout, stderr, and the
// exit code. extraEnv entries are appended to the inherited environment.
func runLv(t *testing.T, dir string, extraEnv []string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(buildLvBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("running lv %v: %v", args, err)
		}
		code = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), code
}

// runLvJSON runs a robot mode, requires a zero exit, and decodes the
// stdout JSON into out. LV_TEST=1 keeps the child from touching the
// terminal.
func runLvJSON(t *testing.T, dir string, out any, args ...string) {
	t.Helper()
	stdout, stderr, code := runLv(t, dir, []string{"LV_TEST=1"}, args...)
	if code != 0 {
		t.Fatalf("lv %v exited %d\nstderr: %s", args, code, stderr)
	}
	if err := json.Unmarshal([]byte(stdout), out); err != nil {
		t.Fatalf("decoding lv %v output: %v\nstdout: %s", args, err, stdout)
	}
}

// fixtureItems is a small collection with a known shape: two items per
// category, values spanning 45 to 900.
func fixtureItems() []model.Item {
	return []model.Item{
		{ID: 0, Name: "Review invoices", Category: model.CategoryUrgent, Value: 900, Date: "2026-08-20", Selected: true},
		{ID: 1, Name: "Archive logs", Category: model.CategoryNormal, Value: 120, Date: "2026-01-01"},
		{ID: 2, Name: "Prune cache", Category: model.CategoryLow, Value: 45},
		{ID: 3, Name: "Rotate backups", Category: model.CategoryUrgent, Value: 700, Date: "2026-08-01"},
		{ID: 4, Name: "Update deps", Category: model.CategoryNormal, Value: 310, Date: "2026-07-15"},
		{ID: 5, Name: "Write report", Category: model.CategoryLow, Value: 80, Date: "2026-08-21"},
	}
}

// newFixtureDir creates a project directory with .lv/items.jsonl
// holding the given items.
func newFixtureDir(t *testing.T, items []model.Item) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".lv", "items.jsonl")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := loader.SaveItems(path, items); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return dir
}

// rewriteFixture replaces the fixture collection in place.
func rewriteFixture(t *testing.T, dir string, items []model.Item) {
	t.Helper()
	if err := loader.SaveItems(filepath.Join(dir, ".lv", "items.jsonl"), items); err != nil {
		t.Fatalf("rewriting fixture: %v", err)
	}
}

// e2eLogger marks test phases in the verbose output so failures read
// as a narrative.
type e2eLogger struct {
	t *testing.T
}

func newDetailedLogger(t *testing.T) *e2eLogger {
	return &e2eLogger{t: t}
}

func (l *e2eLogger) Step(msg string) {
	l.t.Logf("STEP: %s", msg)
}

func (l *e2eLogger) Metric(name string, value int64) {
	l.t.Logf("METRIC %s=%d", name, value)
}

func (l *e2eLogger) MetricDuration(name string, d time.Duration) {
	l.t.Logf("METRIC %s=%s", name, d)
}

func (l *e2eLogger) Success(msg string) {
	l.t.Logf("OK: %s", msg)
}

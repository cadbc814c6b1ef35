package drift

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/listview/pkg/baseline"
)

func makeBaseline(stats baseline.Stats, top []baseline.TopItem) *baseline.Baseline {
	if stats.CategoryCounts == nil {
		stats.CategoryCounts = map[string]int{}
	}
	return &baseline.Baseline{
		Version:    baseline.Version,
		Stats:      stats,
		TopByValue: top,
	}
}

func steadyStats() baseline.Stats {
	return baseline.Stats{
		ItemCount:     100,
		SelectedCount: 10,
		StaleCount:    2,
		ValueMean:     100,
		ValueStdDev:   10,
		ValueTotal:    10000,
		CategoryCounts: map[string]int{
			"urgent": 20,
			"normal": 60,
			"low":    20,
		},
	}
}

func alertsOfType(r *Result, t AlertType) []Alert {
	var out []Alert
	for _, a := range r.Alerts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func TestCalculate_NoDrift(t *testing.T) {
	bl := makeBaseline(steadyStats(), []baseline.TopItem{{ID: 1, Name: "A", Value: 500}})
	cur := makeBaseline(steadyStats(), []baseline.TopItem{{ID: 1, Name: "A", Value: 500}})

	result := NewCalculator(bl, cur, nil).Calculate()

	if result.HasDrift {
		t.Errorf("HasDrift = true, alerts: %+v", result.Alerts)
	}
	if result.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", result.ExitCode())
	}
	if !strings.Contains(result.Summary(), "No drift detected") {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestCalculate_ItemDropCritical(t *testing.T) {
	cur := steadyStats()
	cur.ItemCount = 40 // -60%

	result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()

	alerts := alertsOfType(result, AlertItemCountChange)
	if len(alerts) != 1 {
		t.Fatalf("got %d item count alerts, want 1: %+v", len(alerts), result.Alerts)
	}
	if alerts[0].Severity != SeverityCritical {
		t.Errorf("Severity = %s, want critical", alerts[0].Severity)
	}
	if alerts[0].Delta != -60 {
		t.Errorf("Delta = %v, want -60", alerts[0].Delta)
	}
	if !result.HasCritical() || result.ExitCode() != 1 {
		t.Errorf("HasCritical = %v, ExitCode = %d", result.HasCritical(), result.ExitCode())
	}
}

func TestCalculate_ItemGrowthInfo(t *testing.T) {
	cur := steadyStats()
	cur.ItemCount = 115 // +15%

	result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()

	alerts := alertsOfType(result, AlertItemCountChange)
	if len(alerts) != 1 || alerts[0].Severity != SeverityInfo {
		t.Fatalf("alerts = %+v", alerts)
	}
	// Info-only drift should not fail CI
	if result.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", result.ExitCode())
	}
}

func TestCalculate_MeanShift(t *testing.T) {
	tests := []struct {
		name         string
		mean         float64
		wantSeverity Severity
	}{
		{"WarningUp", 140, SeverityWarning},   // +40%
		{"WarningDown", 60, SeverityWarning},  // -40%
		{"InfoOnly", 115, SeverityInfo},       // +15%
		{"BelowThreshold", 105, Severity("")}, // +5%
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := steadyStats()
			cur.ValueMean = tt.mean

			result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()
			alerts := alertsOfType(result, AlertValueMeanShift)

			if tt.wantSeverity == "" {
				if len(alerts) != 0 {
					t.Errorf("got alerts %+v, want none", alerts)
				}
				return
			}
			if len(alerts) != 1 || alerts[0].Severity != tt.wantSeverity {
				t.Errorf("alerts = %+v, want one %s", alerts, tt.wantSeverity)
			}
		})
	}
}

func TestCalculate_SpreadGrowth(t *testing.T) {
	cur := steadyStats()
	cur.ValueStdDev = 20 // +100%

	result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()

	alerts := alertsOfType(result, AlertValueSpreadGrowth)
	if len(alerts) != 1 || alerts[0].Severity != SeverityWarning {
		t.Fatalf("alerts = %+v", alerts)
	}

	// Spread shrinking is not drift
	cur.ValueStdDev = 3
	result = NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()
	if len(alertsOfType(result, AlertValueSpreadGrowth)) != 0 {
		t.Error("shrinking spread should not alert")
	}
}

func TestCalculate_StaleIncrease(t *testing.T) {
	cur := steadyStats()
	cur.StaleCount = 8 // +6, threshold 5

	result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()

	alerts := alertsOfType(result, AlertStaleIncrease)
	if len(alerts) != 1 || alerts[0].Severity != SeverityWarning {
		t.Fatalf("alerts = %+v", alerts)
	}
	if alerts[0].Delta != 6 {
		t.Errorf("Delta = %v, want 6", alerts[0].Delta)
	}

	cur.StaleCount = 5 // +3, below threshold
	result = NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()
	if len(alertsOfType(result, AlertStaleIncrease)) != 0 {
		t.Error("below-threshold stale increase should not alert")
	}
}

func TestCalculate_SelectedChange(t *testing.T) {
	cur := steadyStats()
	cur.SelectedCount = 14 // +40%

	result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()

	alerts := alertsOfType(result, AlertSelectedChange)
	if len(alerts) != 1 || alerts[0].Severity != SeverityInfo {
		t.Fatalf("alerts = %+v", alerts)
	}
}

func TestCalculate_CategoryShift(t *testing.T) {
	cur := steadyStats()
	cur.CategoryCounts = map[string]int{
		"urgent": 30, // +50%
		"normal": 60,
		"low":    20,
	}

	result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()

	alerts := alertsOfType(result, AlertCategoryShift)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", result.Alerts)
	}
	if alerts[0].Category != "urgent" || alerts[0].Severity != SeverityWarning {
		t.Errorf("alert = %+v", alerts[0])
	}
}

func TestCalculate_TopValues(t *testing.T) {
	bl := makeBaseline(steadyStats(), []baseline.TopItem{
		{ID: 1, Name: "Review invoices", Value: 500},
		{ID: 2, Name: "Archive logs", Value: 400},
	})
	cur := makeBaseline(steadyStats(), []baseline.TopItem{
		{ID: 1, Name: "Review invoices", Value: 650}, // +30%
		{ID: 3, Name: "Prune cache", Value: 300},
	})

	result := NewCalculator(bl, cur, nil).Calculate()

	alerts := alertsOfType(result, AlertTopValueChange)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", result.Alerts)
	}
	if len(alerts[0].Details) != 3 {
		t.Fatalf("Details = %v, want 3 entries", alerts[0].Details)
	}

	joined := strings.Join(alerts[0].Details, "\n")
	for _, want := range []string{"#1 Review invoices: 30.0% change", "#2 Archive logs dropped from top", "#3 Prune cache entered top"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Details missing %q:\n%s", want, joined)
		}
	}
}

func TestResult_ExitCode(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   int
	}{
		{"Clean", Result{}, 0},
		{"InfoOnly", Result{InfoCount: 3}, 0},
		{"Warning", Result{WarningCount: 1}, 2},
		{"Critical", Result{CriticalCount: 1, WarningCount: 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResult_Summary(t *testing.T) {
	cur := steadyStats()
	cur.ItemCount = 40
	cur.StaleCount = 10

	result := NewCalculator(makeBaseline(steadyStats(), nil), makeBaseline(cur, nil), nil).Calculate()
	s := result.Summary()

	for _, want := range []string{"CRITICAL: 1", "WARNING: 1", "Details:", "Item count dropped", "Stale items increased"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() missing %q:\n%s", want, s)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "drift.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.ItemDropCriticalPct != 50 {
			t.Errorf("ItemDropCriticalPct = %v, want default 50", cfg.ItemDropCriticalPct)
		}
	})

	t.Run("PartialOverride", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "drift.yaml")
		if err := os.WriteFile(path, []byte("stale_increase_threshold: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.StaleIncreaseThreshold != 1 {
			t.Errorf("StaleIncreaseThreshold = %d, want 1", cfg.StaleIncreaseThreshold)
		}
		if cfg.MeanShiftWarningPct != 25 {
			t.Errorf("MeanShiftWarningPct = %v, want default 25", cfg.MeanShiftWarningPct)
		}
	})

	t.Run("NegativeThreshold", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "drift.yaml")
		if err := os.WriteFile(path, []byte("mean_shift_warning_pct: -5\n"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "must not be negative") {
			t.Errorf("LoadConfig() error = %v", err)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "drift.yaml")
		if err := os.WriteFile(path, []byte("\t{nope"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "parsing drift config") {
			t.Errorf("LoadConfig() error = %v", err)
		}
	})
}

func TestDefaultConfigPath(t *testing.T) {
	if got := DefaultConfigPath("/proj"); got != filepath.Join("/proj", ".lv", "drift.yaml") {
		t.Errorf("DefaultConfigPath() = %q", got)
	}
	if got := DefaultConfigPath(""); got != filepath.Join(".", ".lv", "drift.yaml") {
		t.Errorf("DefaultConfigPath(\"\") = %q", got)
	}
}

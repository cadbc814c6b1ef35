// Package drift provides drift detection by comparing current collection
// metrics to a saved baseline. It flags shrinkage, value shifts, and
// changes in the top-by-value list.
package drift

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/listview/pkg/baseline"
	"github.com/vanderheijden86/listview/pkg/model"
)

// Severity represents the severity level of a drift alert
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// AlertType categorizes different kinds of drift alerts
type AlertType string

const (
	AlertItemCountChange   AlertType = "item_count_change"
	AlertValueMeanShift    AlertType = "value_mean_shift"
	AlertValueSpreadGrowth AlertType = "value_spread_growth"
	AlertStaleIncrease     AlertType = "stale_increase"
	AlertSelectedChange    AlertType = "selected_change"
	AlertCategoryShift     AlertType = "category_shift"
	AlertTopValueChange    AlertType = "top_value_change"
)

// Alert represents a single drift detection alert
type Alert struct {
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	BaselineVal float64   `json:"baseline_value,omitempty"`
	CurrentVal  float64   `json:"current_value,omitempty"`
	Delta       float64   `json:"delta,omitempty"`
	Details     []string  `json:"details,omitempty"`
	Category    string    `json:"category,omitempty"`
	DetectedAt  time.Time `json:"detected_at,omitempty"`
}

// Result contains the complete drift analysis
type Result struct {
	// HasDrift is true if any alerts were generated
	HasDrift bool `json:"has_drift"`

	// Alerts lists all detected drift issues
	Alerts []Alert `json:"alerts"`

	// Summary statistics
	CriticalCount int `json:"critical_count"`
	WarningCount  int `json:"warning_count"`
	InfoCount     int `json:"info_count"`
}

// Calculator performs drift detection
type Calculator struct {
	config   *Config
	baseline *baseline.Baseline
	current  *baseline.Baseline
}

// NewCalculator creates a drift calculator with the given baseline and current snapshot
func NewCalculator(bl *baseline.Baseline, current *baseline.Baseline, cfg *Config) *Calculator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Calculator{
		config:   cfg,
		baseline: bl,
		current:  current,
	}
}

// Calculate performs drift detection and returns results
func (c *Calculator) Calculate() *Result {
	result := &Result{
		Alerts: make([]Alert, 0),
	}

	// Check item count shrinkage/growth (critical/info)
	c.checkItemCount(result)

	// Check mean value shift (warning/info)
	c.checkValueMean(result)

	// Check value spread growth (warning)
	c.checkValueSpread(result)

	// Check stale item increase (warning)
	c.checkStale(result)

	// Check selected count changes (info)
	c.checkSelected(result)

	// Check per-category count shifts (warning)
	c.checkCategories(result)

	// Check top-by-value changes (warning)
	c.checkTopValues(result)

	// Compute summary
	for _, alert := range result.Alerts {
		switch alert.Severity {
		case SeverityCritical:
			result.CriticalCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityInfo:
			result.InfoCount++
		}
	}
	result.HasDrift = len(result.Alerts) > 0

	return result
}

// checkItemCount flags collection shrinkage as critical and other
// size changes as informational
func (c *Calculator) checkItemCount(result *Result) {
	blCount := c.baseline.Stats.ItemCount
	curCount := c.current.Stats.ItemCount
	delta := curCount - blCount

	if blCount == 0 {
		return // No baseline to compare
	}

	pct := float64(delta) / float64(blCount) * 100

	if pct <= -c.config.ItemDropCriticalPct {
		result.Alerts = append(result.Alerts, Alert{
			Type:        AlertItemCountChange,
			Severity:    SeverityCritical,
			Message:     fmt.Sprintf("Item count dropped by %d (%.1f%%)", -delta, -pct),
			BaselineVal: float64(blCount),
			CurrentVal:  float64(curCount),
			Delta:       float64(delta),
			DetectedAt:  time.Now().UTC(),
		})
	} else if pct >= c.config.ItemGrowthInfoPct || pct <= -c.config.ItemGrowthInfoPct {
		result.Alerts = append(result.Alerts, Alert{
			Type:        AlertItemCountChange,
			Severity:    SeverityInfo,
			Message:     fmt.Sprintf("Item count changed by %+d (%.1f%%)", delta, pct),
			BaselineVal: float64(blCount),
			CurrentVal:  float64(curCount),
			Delta:       float64(delta),
			DetectedAt:  time.Now().UTC(),
		})
	}
}

// checkValueMean checks for significant shifts in the mean item value
func (c *Calculator) checkValueMean(result *Result) {
	blMean := c.baseline.Stats.ValueMean
	curMean := c.current.Stats.ValueMean

	if blMean == 0 {
		return // No baseline to compare
	}

	delta := curMean - blMean
	pctChange := (delta / blMean) * 100

	if pctChange >= c.config.MeanShiftWarningPct || pctChange <= -c.config.MeanShiftWarningPct {
		result.Alerts = append(result.Alerts, Alert{
			Type:        AlertValueMeanShift,
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("Mean value shifted by %.1f%%", pctChange),
			BaselineVal: blMean,
			CurrentVal:  curMean,
			Delta:       delta,
			DetectedAt:  time.Now().UTC(),
		})
	} else if pctChange >= c.config.MeanShiftInfoPct || pctChange <= -c.config.MeanShiftInfoPct {
		result.Alerts = append(result.Alerts, Alert{
			Type:        AlertValueMeanShift,
			Severity:    SeverityInfo,
			Message:     fmt.Sprintf("Mean value shifted by %.1f%%", pctChange),
			BaselineVal: blMean,
			CurrentVal:  curMean,
			Delta:       delta,
			DetectedAt:  time.Now().UTC(),
		})
	}
}

// checkValueSpread flags growth in the value standard deviation
func (c *Calculator) checkValueSpread(result *Result) {
	blDev := c.baseline.Stats.ValueStdDev
	curDev := c.current.Stats.ValueStdDev

	if blDev == 0 {
		return // No baseline to compare
	}

	delta := curDev - blDev
	pctChange := (delta / blDev) * 100

	if pctChange >= c.config.SpreadGrowthWarningPct {
		result.Alerts = append(result.Alerts, Alert{
			Type:        AlertValueSpreadGrowth,
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("Value spread grew by %.1f%%", pctChange),
			BaselineVal: blDev,
			CurrentVal:  curDev,
			Delta:       delta,
			DetectedAt:  time.Now().UTC(),
		})
	}
}

// checkStale checks for increases in stale items
func (c *Calculator) checkStale(result *Result) {
	blStale := c.baseline.Stats.StaleCount
	curStale := c.current.Stats.StaleCount
	delta := curStale - blStale

	if delta >= c.config.StaleIncreaseThreshold {
		result.Alerts = append(result.Alerts, Alert{
			Type:        AlertStaleIncrease,
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("Stale items increased by %d", delta),
			BaselineVal: float64(blStale),
			CurrentVal:  float64(curStale),
			Delta:       float64(delta),
			DetectedAt:  time.Now().UTC(),
		})
	}
}

// checkSelected checks for significant changes in selected items
func (c *Calculator) checkSelected(result *Result) {
	blSel := c.baseline.Stats.SelectedCount
	curSel := c.current.Stats.SelectedCount
	delta := curSel - blSel

	if blSel > 0 {
		pct := float64(delta) / float64(blSel) * 100
		if pct >= c.config.SelectedChangeInfoPct || pct <= -c.config.SelectedChangeInfoPct {
			result.Alerts = append(result.Alerts, Alert{
				Type:        AlertSelectedChange,
				Severity:    SeverityInfo,
				Message:     fmt.Sprintf("Selected items changed by %+d (%.1f%%)", delta, pct),
				BaselineVal: float64(blSel),
				CurrentVal:  float64(curSel),
				Delta:       float64(delta),
				DetectedAt:  time.Now().UTC(),
			})
		}
	}
}

// checkCategories flags categories whose counts moved past the threshold
func (c *Calculator) checkCategories(result *Result) {
	for _, cat := range model.Categories() {
		name := string(cat)
		blCount := c.baseline.Stats.CategoryCounts[name]
		curCount := c.current.Stats.CategoryCounts[name]
		delta := curCount - blCount

		if blCount == 0 {
			continue
		}

		pct := float64(delta) / float64(blCount) * 100
		if pct >= c.config.CategoryShiftWarningPct || pct <= -c.config.CategoryShiftWarningPct {
			result.Alerts = append(result.Alerts, Alert{
				Type:        AlertCategoryShift,
				Severity:    SeverityWarning,
				Message:     fmt.Sprintf("Category %s changed by %+d (%.1f%%)", name, delta, pct),
				BaselineVal: float64(blCount),
				CurrentVal:  float64(curCount),
				Delta:       float64(delta),
				Category:    name,
				DetectedAt:  time.Now().UTC(),
			})
		}
	}
}

// checkTopValues detects membership and value changes in the top-by-value list
func (c *Calculator) checkTopValues(result *Result) {
	blTop := make(map[int]float64)
	blNames := make(map[int]string)
	for _, item := range c.baseline.TopByValue {
		blTop[item.ID] = float64(item.Value)
		blNames[item.ID] = item.Name
	}

	curTop := make(map[int]float64)
	for _, item := range c.current.TopByValue {
		curTop[item.ID] = float64(item.Value)
	}

	var changes []string

	// Check for significant changes in existing items
	for _, item := range c.baseline.TopByValue {
		curVal, exists := curTop[item.ID]
		if !exists {
			changes = append(changes, fmt.Sprintf("#%d %s dropped from top", item.ID, item.Name))
			continue
		}
		blVal := blTop[item.ID]
		if blVal > 0 {
			pctChange := ((curVal - blVal) / blVal) * 100
			if pctChange >= c.config.TopValueChangeWarningPct || pctChange <= -c.config.TopValueChangeWarningPct {
				changes = append(changes, fmt.Sprintf("#%d %s: %.1f%% change", item.ID, item.Name, pctChange))
			}
		}
	}

	// Check for new entries in top
	for _, item := range c.current.TopByValue {
		if _, exists := blTop[item.ID]; !exists {
			changes = append(changes, fmt.Sprintf("#%d %s entered top", item.ID, item.Name))
		}
	}

	if len(changes) > 0 {
		result.Alerts = append(result.Alerts, Alert{
			Type:       AlertTopValueChange,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("%d top-by-value changes detected", len(changes)),
			Details:    changes,
			DetectedAt: time.Now().UTC(),
		})
	}
}

// Summary returns a human-readable summary of drift results
func (r *Result) Summary() string {
	if !r.HasDrift {
		return "No drift detected. Collection metrics are within baseline thresholds.\n"
	}

	var sb strings.Builder
	sb.WriteString("Drift Analysis Summary\n")
	sb.WriteString("======================\n\n")

	if r.CriticalCount > 0 {
		sb.WriteString(fmt.Sprintf("🔴 CRITICAL: %d issue(s)\n", r.CriticalCount))
	}
	if r.WarningCount > 0 {
		sb.WriteString(fmt.Sprintf("🟡 WARNING: %d issue(s)\n", r.WarningCount))
	}
	if r.InfoCount > 0 {
		sb.WriteString(fmt.Sprintf("🔵 INFO: %d issue(s)\n", r.InfoCount))
	}

	sb.WriteString("\nDetails:\n")
	for _, alert := range r.Alerts {
		icon := "ℹ️"
		switch alert.Severity {
		case SeverityCritical:
			icon = "🔴"
		case SeverityWarning:
			icon = "🟡"
		}
		sb.WriteString(fmt.Sprintf("  %s [%s] %s\n", icon, alert.Type, alert.Message))
		for _, detail := range alert.Details {
			sb.WriteString(fmt.Sprintf("      - %s\n", detail))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

// HasCritical returns true if there are any critical alerts
func (r *Result) HasCritical() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warning or critical alerts
func (r *Result) HasWarnings() bool {
	return r.CriticalCount > 0 || r.WarningCount > 0
}

// ExitCode returns suggested exit code for CI use
// 0 = no drift, 1 = critical, 2 = warning, 0 = info only
func (r *Result) ExitCode() int {
	if r.CriticalCount > 0 {
		return 1
	}
	if r.WarningCount > 0 {
		return 2
	}
	return 0
}

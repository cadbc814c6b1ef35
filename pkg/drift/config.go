package drift

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name inside .lv/.
const ConfigFile = "drift.yaml"

// Config holds the thresholds drift detection compares against.
// Percentages are relative to the baseline value.
type Config struct {
	// ItemGrowthInfoPct triggers an info alert when the item count
	// moves by this percentage in either direction.
	ItemGrowthInfoPct float64 `yaml:"item_growth_info_pct"`

	// ItemDropCriticalPct triggers a critical alert when the item
	// count shrinks by this percentage or more.
	ItemDropCriticalPct float64 `yaml:"item_drop_critical_pct"`

	// MeanShiftWarningPct and MeanShiftInfoPct apply to the mean
	// item value, in either direction.
	MeanShiftWarningPct float64 `yaml:"mean_shift_warning_pct"`
	MeanShiftInfoPct    float64 `yaml:"mean_shift_info_pct"`

	// SpreadGrowthWarningPct applies to the value standard deviation.
	SpreadGrowthWarningPct float64 `yaml:"spread_growth_warning_pct"`

	// StaleIncreaseThreshold is an absolute count of newly stale items.
	StaleIncreaseThreshold int `yaml:"stale_increase_threshold"`

	// SelectedChangeInfoPct applies to the selected count.
	SelectedChangeInfoPct float64 `yaml:"selected_change_info_pct"`

	// CategoryShiftWarningPct applies to each category count separately.
	CategoryShiftWarningPct float64 `yaml:"category_shift_warning_pct"`

	// TopValueChangeWarningPct applies to the values of items on the
	// top-by-value list.
	TopValueChangeWarningPct float64 `yaml:"top_value_change_warning_pct"`
}

// DefaultConfig returns the thresholds used when no drift.yaml is present.
func DefaultConfig() *Config {
	return &Config{
		ItemGrowthInfoPct:        10,
		ItemDropCriticalPct:      50,
		MeanShiftWarningPct:      25,
		MeanShiftInfoPct:         10,
		SpreadGrowthWarningPct:   50,
		StaleIncreaseThreshold:   5,
		SelectedChangeInfoPct:    25,
		CategoryShiftWarningPct:  30,
		TopValueChangeWarningPct: 25,
	}
}

// DefaultConfigPath returns root/.lv/drift.yaml.
func DefaultConfigPath(root string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(root, ".lv", ConfigFile)
}

// LoadConfig reads thresholds from path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing drift config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid drift config: %w", err)
	}
	return cfg, nil
}

// Validate rejects thresholds that would never make sense.
func (c *Config) Validate() error {
	pcts := map[string]float64{
		"item_growth_info_pct":         c.ItemGrowthInfoPct,
		"item_drop_critical_pct":       c.ItemDropCriticalPct,
		"mean_shift_warning_pct":       c.MeanShiftWarningPct,
		"mean_shift_info_pct":          c.MeanShiftInfoPct,
		"spread_growth_warning_pct":    c.SpreadGrowthWarningPct,
		"selected_change_info_pct":     c.SelectedChangeInfoPct,
		"category_shift_warning_pct":   c.CategoryShiftWarningPct,
		"top_value_change_warning_pct": c.TopValueChangeWarningPct,
	}
	for name, v := range pcts {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, v)
		}
	}
	if c.StaleIncreaseThreshold < 0 {
		return fmt.Errorf("stale_increase_threshold must not be negative, got %d", c.StaleIncreaseThreshold)
	}
	return nil
}

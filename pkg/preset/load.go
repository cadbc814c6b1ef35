package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// presetFile is the on-disk shape of .lv/presets.yaml.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile reads user presets from a YAML file. A missing file is not
// an error; presets are optional. Every preset is validated so a bad
// file fails as a whole.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}
	for _, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("presets %s: %w", path, err)
		}
	}
	return f.Presets, nil
}

// Merge overlays user presets onto the builtins. A user preset with a
// builtin's name replaces it in place; new names append in file order.
func Merge(builtin, user []Preset) []Preset {
	out := make([]Preset, len(builtin))
	copy(out, builtin)

	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.Name] = i
	}
	for _, p := range user {
		if i, ok := index[p.Name]; ok {
			out[i] = p
			continue
		}
		index[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}

// Find returns the preset with the given name.
func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Names lists preset names in order, for error messages and robot
// output.
func Names(presets []Preset) []string {
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = p.Name
	}
	return out
}

package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/listview/pkg/model"
)

// DefaultDataFile is the collection file lv looks for when no --data
// flag is given.
const DefaultDataFile = "items.jsonl"

// DefaultDataPath returns dir/.lv/items.jsonl. An empty dir means the
// current directory.
func DefaultDataPath(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, ".lv", DefaultDataFile)
}

// LoadItems reads a collection from path. The format follows the file
// extension: .jsonl is one item per line, .json is a single array.
// A missing file yields an empty collection, not an error, so a fresh
// project starts clean. Loaded items are validated as a whole.
func LoadItems(path string) ([]model.Item, error) {
	if path == "" {
		path = DefaultDataPath("")
	}

	var (
		items []model.Item
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		items, err = loadJSONArray(path)
	default:
		items, err = loadJSONLines(path)
	}
	if err != nil {
		return nil, err
	}

	if err := model.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func loadJSONLines(path string) ([]model.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Item{}, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	// Single items are small but imported collections can carry long
	// names; allow lines up to 10MB.
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	items := []model.Item{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var item model.Item
		if err := json.Unmarshal(b, &item); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func loadJSONArray(path string) ([]model.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Item{}, nil
		}
		return nil, err
	}

	items := []model.Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// SaveItems writes a collection to path in the format the extension
// names, creating parent directories as needed. The write goes through
// a temp file and rename so a crash never leaves a half-written
// collection behind.
func SaveItems(path string, items []model.Item) error {
	if path == "" {
		path = DefaultDataPath("")
	}
	if err := model.ValidateItems(items); err != nil {
		return err
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(items, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = encodeJSONLines(items)
	}
	if err != nil {
		return err
	}

	return writeFileAtomic(path, data)
}

func encodeJSONLines(items []model.Item) ([]byte, error) {
	var buf bytes.Buffer
	for _, item := range items {
		line, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Package loader reads and writes item collections and manages the
// files lv keeps alongside them.
// This file handles automatic .gitignore management for the .lv directory.
package loader

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// EnsureLVInGitignore ensures that .lv/ is listed in the project's .gitignore file.
// This prevents lv-specific files (presets, baselines, drift config, view state)
// from polluting the git repository.
//
// The function is idempotent and safe to call multiple times.
// It will:
//   - Create .gitignore if it doesn't exist
//   - Add ".lv/" if it's not already present (checks for .lv, .lv/, .lv/*, etc.)
//   - Preserve existing file content and formatting
//
// Returns nil on success, or an error if the file cannot be read/written.
func EnsureLVInGitignore(projectDir string) error {
	if projectDir == "" {
		var err error
		projectDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	gitignorePath := filepath.Join(projectDir, ".gitignore")

	// Check if .lv is already in .gitignore
	alreadyPresent, err := isLVInGitignore(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if alreadyPresent {
		return nil
	}

	// Append .lv/ to .gitignore
	return appendToGitignore(gitignorePath, ".lv/")
}

// isLVInGitignore checks if .lv is already covered by the .gitignore file.
// It returns true if any of these patterns are found:
//   - .lv
//   - .lv/
//   - .lv/*
//   - .lv/**
func isLVInGitignore(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Check for patterns that would cover .lv/
		if matchesLVPattern(line) {
			return true, nil
		}
	}

	return false, scanner.Err()
}

// matchesLVPattern checks if a gitignore line covers the .lv directory.
func matchesLVPattern(line string) bool {
	// Normalize: remove leading/trailing slashes for comparison
	normalized := strings.TrimPrefix(line, "/")

	// Exact matches for .lv directory
	patterns := []string{
		".lv",
		".lv/",
		".lv/*",
		".lv/**",
		".lv/**/*",
	}

	for _, pattern := range patterns {
		if normalized == pattern {
			return true
		}
	}

	return false
}

// appendToGitignore appends a pattern to the .gitignore file.
// It creates the file if it doesn't exist.
// It ensures there's a newline before the pattern if the file doesn't end with one.
func appendToGitignore(path string, pattern string) error {
	// Check if file exists and its current content
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	// Open file for appending (creates if not exists)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Build the content to append based on whether file has existing content
	var toWrite string
	if len(content) == 0 {
		// New file: just add comment and pattern (no leading blank line)
		toWrite = "# lv local config and caches\n" + pattern + "\n"
	} else {
		// Existing file: ensure proper separation
		if content[len(content)-1] != '\n' {
			// File doesn't end with newline, add one first
			toWrite = "\n"
		}
		// Add blank line separator, comment, and pattern
		toWrite += "\n# lv local config and caches\n" + pattern + "\n"
	}

	if _, err := file.WriteString(toWrite); err != nil {
		return err
	}

	return nil
}

package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatchesLVPattern(t *testing.T) {
	tests := []struct {
		line    string
		matches bool
	}{
		// Should match
		{".lv", true},
		{".lv/", true},
		{".lv/*", true},
		{".lv/**", true},
		{".lv/**/*", true},
		{"/.lv", true}, // Leading slash should be normalized
		{"/.lv/", true},

		// Should not match
		{"", false},
		{"#.lv", false}, // Comment
		{".lv2", false},
		{".lvx", false},
		{"lv/", false},
		{".cache/", false},
		{"node_modules/", false},
		{".lv-backup", false},
		{"*.lv", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := matchesLVPattern(tt.line)
			if got != tt.matches {
				t.Errorf("matchesLVPattern(%q) = %v, want %v", tt.line, got, tt.matches)
			}
		})
	}
}

func TestIsLVInGitignore(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{
			name:     "empty file",
			content:  "",
			expected: false,
		},
		{
			name:     "has .lv",
			content:  "node_modules/\n.lv\n*.log\n",
			expected: true,
		},
		{
			name:     "has .lv/",
			content:  "node_modules/\n.lv/\n*.log\n",
			expected: true,
		},
		{
			name:     "has .lv/*",
			content:  ".lv/*\n",
			expected: true,
		},
		{
			name:     "has /.lv/",
			content:  "/.lv/\n",
			expected: true,
		},
		{
			name:     "commented out",
			content:  "# .lv/\n",
			expected: false,
		},
		{
			name:     "different pattern",
			content:  ".cache/\nnode_modules/\n",
			expected: false,
		},
		{
			name:     "similar but not matching",
			content:  ".lv2/\n.lvx\nlv/\n",
			expected: false,
		},
		{
			name:     "with whitespace",
			content:  "  .lv/  \n",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			gitignorePath := filepath.Join(tmpDir, ".gitignore")

			if err := os.WriteFile(gitignorePath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			got, err := isLVInGitignore(gitignorePath)
			if err != nil {
				t.Fatalf("isLVInGitignore() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("isLVInGitignore() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsLVInGitignore_FileNotExists(t *testing.T) {
	tmpDir := t.TempDir()
	gitignorePath := filepath.Join(tmpDir, ".gitignore")

	_, err := isLVInGitignore(gitignorePath)
	if !os.IsNotExist(err) {
		t.Errorf("expected IsNotExist error, got %v", err)
	}
}

func TestAppendToGitignore(t *testing.T) {
	tests := []struct {
		name            string
		existingContent string
		pattern         string
		wantContains    []string
		wantPrefix      string // expected prefix of the file (for checking no leading blank line)
	}{
		{
			name:            "new file",
			existingContent: "",
			pattern:         ".lv/",
			wantContains:    []string{"# lv local config", ".lv/"},
			wantPrefix:      "#", // should start with comment, not blank line
		},
		{
			name:            "existing file with newline",
			existingContent: "node_modules/\n",
			pattern:         ".lv/",
			wantContains:    []string{"node_modules/", "# lv local config", ".lv/"},
			wantPrefix:      "node_modules/",
		},
		{
			name:            "existing file without trailing newline",
			existingContent: "node_modules/",
			pattern:         ".lv/",
			wantContains:    []string{"node_modules/", "# lv local config", ".lv/"},
			wantPrefix:      "node_modules/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			gitignorePath := filepath.Join(tmpDir, ".gitignore")

			// Create existing file if content is provided
			if tt.existingContent != "" {
				if err := os.WriteFile(gitignorePath, []byte(tt.existingContent), 0644); err != nil {
					t.Fatalf("failed to write existing file: %v", err)
				}
			}

			if err := appendToGitignore(gitignorePath, tt.pattern); err != nil {
				t.Fatalf("appendToGitignore() error = %v", err)
			}

			content, err := os.ReadFile(gitignorePath)
			if err != nil {
				t.Fatalf("failed to read result: %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(string(content), want) {
					t.Errorf("result missing %q, got:\n%s", want, content)
				}
			}

			// Check prefix (no unexpected leading blank lines)
			if tt.wantPrefix != "" && !strings.HasPrefix(string(content), tt.wantPrefix) {
				t.Errorf("expected file to start with %q, got:\n%s", tt.wantPrefix, content)
			}
		})
	}
}

func TestEnsureLVInGitignore(t *testing.T) {
	t.Run("creates gitignore if not exists", func(t *testing.T) {
		tmpDir := t.TempDir()

		if err := EnsureLVInGitignore(tmpDir); err != nil {
			t.Fatalf("EnsureLVInGitignore() error = %v", err)
		}

		content, err := os.ReadFile(filepath.Join(tmpDir, ".gitignore"))
		if err != nil {
			t.Fatalf("failed to read .gitignore: %v", err)
		}

		if !strings.Contains(string(content), ".lv/") {
			t.Errorf("expected .lv/ in .gitignore, got:\n%s", content)
		}
	})

	t.Run("adds to existing gitignore", func(t *testing.T) {
		tmpDir := t.TempDir()
		gitignorePath := filepath.Join(tmpDir, ".gitignore")

		// Create existing .gitignore
		if err := os.WriteFile(gitignorePath, []byte("node_modules/\n"), 0644); err != nil {
			t.Fatalf("failed to write .gitignore: %v", err)
		}

		if err := EnsureLVInGitignore(tmpDir); err != nil {
			t.Fatalf("EnsureLVInGitignore() error = %v", err)
		}

		content, err := os.ReadFile(gitignorePath)
		if err != nil {
			t.Fatalf("failed to read .gitignore: %v", err)
		}

		if !strings.Contains(string(content), "node_modules/") {
			t.Error("existing content was lost")
		}
		if !strings.Contains(string(content), ".lv/") {
			t.Errorf("expected .lv/ in .gitignore, got:\n%s", content)
		}
	})

	t.Run("idempotent - doesn't duplicate", func(t *testing.T) {
		tmpDir := t.TempDir()
		gitignorePath := filepath.Join(tmpDir, ".gitignore")

		// Create existing .gitignore with .lv/ already present
		if err := os.WriteFile(gitignorePath, []byte(".lv/\n"), 0644); err != nil {
			t.Fatalf("failed to write .gitignore: %v", err)
		}

		if err := EnsureLVInGitignore(tmpDir); err != nil {
			t.Fatalf("EnsureLVInGitignore() error = %v", err)
		}

		content, err := os.ReadFile(gitignorePath)
		if err != nil {
			t.Fatalf("failed to read .gitignore: %v", err)
		}

		// Count occurrences of .lv/
		count := strings.Count(string(content), ".lv/")
		if count != 1 {
			t.Errorf("expected exactly 1 occurrence of .lv/, got %d:\n%s", count, content)
		}
	})

	t.Run("recognizes existing .lv pattern", func(t *testing.T) {
		tmpDir := t.TempDir()
		gitignorePath := filepath.Join(tmpDir, ".gitignore")

		// Create existing .gitignore with .lv (without slash)
		if err := os.WriteFile(gitignorePath, []byte(".lv\n"), 0644); err != nil {
			t.Fatalf("failed to write .gitignore: %v", err)
		}

		if err := EnsureLVInGitignore(tmpDir); err != nil {
			t.Fatalf("EnsureLVInGitignore() error = %v", err)
		}

		content, err := os.ReadFile(gitignorePath)
		if err != nil {
			t.Fatalf("failed to read .gitignore: %v", err)
		}

		// Should still have just .lv, not add .lv/
		if strings.Contains(string(content), "# lv local config") {
			t.Errorf("should not add when .lv already present, got:\n%s", content)
		}
	})
}

func TestEnsureLVInGitignore_UsesCurrentDir(t *testing.T) {
	// Save current directory
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}

	// Call with empty string - should use current directory
	if err := EnsureLVInGitignore(""); err != nil {
		t.Fatalf("EnsureLVInGitignore() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, ".gitignore"))
	if err != nil {
		t.Fatalf("failed to read .gitignore: %v", err)
	}

	if !strings.Contains(string(content), ".lv/") {
		t.Errorf("expected .lv/ in .gitignore, got:\n%s", content)
	}
}

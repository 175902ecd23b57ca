// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestProject creates a temporary project tree in the standard
// directory layout, with one source package, one resource package, a
// test package and a project.ini.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	dirs := []string{
		filepath.Join(tmpDir, "src", "main", "python", "mypkg"),
		filepath.Join(tmpDir, "src", "main", "resources", "mypkg", "data"),
		filepath.Join(tmpDir, "src", "test", "python", "mypkg"),
		filepath.Join(tmpDir, "src", "test", "resources"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	WriteFile(t, filepath.Join(tmpDir, "src", "main", "python", "mypkg", "__init__.py"), "")
	WriteFile(t, filepath.Join(tmpDir, "src", "main", "python", "mypkg", "cli.py"),
		"def main():\n    print('hello')\n\n\nif __name__ == '__main__':\n    main()\n")
	WriteFile(t, filepath.Join(tmpDir, "src", "main", "resources", "mypkg", "data", "sample.txt"), "sample\n")
	WriteFile(t, filepath.Join(tmpDir, "src", "test", "python", "mypkg", "__init__.py"), "")
	WriteFile(t, filepath.Join(tmpDir, "src", "test", "python", "mypkg", "cli_test.py"),
		"import unittest\n\n\nclass CliTest(unittest.TestCase):\n    def test_ok(self):\n        self.assertTrue(True)\n")
	WriteFile(t, filepath.Join(tmpDir, "README.md"), "# My Project\n")
	WriteFile(t, filepath.Join(tmpDir, "project.ini"), `[PROJECT]
name = my-project
version = 1.2.3
author = Jane Doe
email = jane@example.com
description = Example project
use_pipenv = false
`)
	WriteFile(t, filepath.Join(tmpDir, "requirements.txt"), "requests==2.0\n")

	return tmpDir
}

// WriteFile writes a file, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildPysmellBinary builds the CLI from the project root into a temp dir
func buildPysmellBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "pysmell")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pysmell")

	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build pysmell binary: %v\n%s", err, out)
	}
	return binaryPath
}

func createTestPythonFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
}

// createTestConfigFile writes a .pysmell.toml that sends reports to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir, extra string) {
	t.Helper()
	content := fmt.Sprintf("[output]\ndirectory = %q\n%s", outputDir, extra)
	if err := os.WriteFile(filepath.Join(testDir, ".pysmell.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
}

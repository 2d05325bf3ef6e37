package test

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/ralt/prepub/internal/cli"
	"github.com/ralt/prepub/internal/history"
)

// TestIntegration drives the prepub CLI end to end against project fixtures
// built in temporary directories.
func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	t.Run("Check", func(t *testing.T) {
		testCheckPasses(t)
	})

	t.Run("CheckFailure", func(t *testing.T) {
		testCheckFails(t)
	})

	t.Run("History", func(t *testing.T) {
		testHistory(t)
	})

	t.Run("Digest", func(t *testing.T) {
		testDigest(t)
	})

	t.Run("VerifyImport", func(t *testing.T) {
		testVerifyImport(t)
	})

	t.Run("Version", func(t *testing.T) {
		testVersion(t)
	})
}

func testCheckPasses(t *testing.T) {
	t.Setenv(history.EnvDataDir, t.TempDir())

	projectDir := t.TempDir()
	writeProject(t, projectDir)

	output, err := runCommand(t, "check", "-C", projectDir)
	if err != nil {
		t.Fatalf("check failed: %v\nOutput: %s", err, output)
	}

	expected := []string{
		"📋 PRE-PUBLISHING CHECKLIST - llm-regression-tester",
		"   ✅ Version 1.0.1 is consistent",
		"   ✅ All required files are present",
		"   ✅ Package metadata is complete",
		"   ✅ README contains essential information",
		"   ✅ Dependencies look reasonable",
		"📊 CHECKLIST SUMMARY",
		"🎉 ALL CHECKS PASSED! Ready for publishing.",
		"5. Create git tag: git tag v1.0.1",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q\nOutput: %s", want, output)
		}
	}

	t.Log("✓ Check passed")
}

func testCheckFails(t *testing.T) {
	projectDir := t.TempDir()
	writeProject(t, projectDir)
	writeFile(t, filepath.Join(projectDir, "src", "llm_regression_tester", "_version.py"),
		"__version__ = \"2.0.0\"\n")

	output, err := runCommand(t, "check", "-C", projectDir, "--no-history")
	if err == nil {
		t.Fatalf("Expected check to fail\nOutput: %s", output)
	}
	if err.Error() != "1 of 7 checks failed" {
		t.Errorf("Expected failure count in error, got: %v", err)
	}

	expected := []string{
		"   ❌ Version mismatch: pyproject.toml=1.0.1, _version.py=2.0.0",
		"Version Consistency: ❌ FAILED",
		"Required Files: ✅ PASSED",
		"❌ SOME CHECKS FAILED! Please fix issues before publishing.",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q\nOutput: %s", want, output)
		}
	}

	t.Log("✓ Check failure reported")
}

func testHistory(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(history.EnvDataDir, dataDir)

	projectDir := t.TempDir()
	writeProject(t, projectDir)

	if output, err := runCommand(t, "check", "-C", projectDir); err != nil {
		t.Fatalf("check failed: %v\nOutput: %s", err, output)
	}

	output, err := runCommand(t, "history", "-C", projectDir)
	if err != nil {
		t.Fatalf("history failed: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"RUN", "llm-regression-tester", "1.0.1", "passed"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected history table to contain %q\nOutput: %s", want, output)
		}
	}

	// Look the run id up in the store to show a single run.
	store, err := history.OpenPath(filepath.Join(dataDir, "prepub.db"))
	if err != nil {
		t.Fatalf("OpenPath(): %v", err)
	}
	runs, err := store.List("llm-regression-tester", 1)
	store.Close()
	if err != nil || len(runs) != 1 {
		t.Fatalf("Expected one recorded run, got %d (%v)", len(runs), err)
	}

	output, err = runCommand(t, "history", "--run", runs[0].ID)
	if err != nil {
		t.Fatalf("history --run failed: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"Run " + runs[0].ID, "Result:  passed", "✅ Version Consistency", "✅ Signatures"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected run details to contain %q\nOutput: %s", want, output)
		}
	}

	t.Log("✓ History recorded and listed")
}

func testDigest(t *testing.T) {
	projectDir := t.TempDir()
	writeProject(t, projectDir)
	writeSdist(t, filepath.Join(projectDir, "dist", "llm_regression_tester-1.0.1.tar.gz"))

	output, err := runCommand(t, "digest", "-C", projectDir)
	if err != nil {
		t.Fatalf("digest failed: %v\nOutput: %s", err, output)
	}
	line := strings.TrimSpace(output)
	if !strings.HasSuffix(line, "  llm_regression_tester-1.0.1.tar.gz") {
		t.Errorf("Expected sha256sum-style line, got: %s", line)
	}
	if len(strings.Fields(line)[0]) != 64 {
		t.Errorf("Expected 64-char sha256 hex, got: %s", line)
	}

	output, err = runCommand(t, "digest", "-C", projectDir, "--full")
	if err != nil {
		t.Fatalf("digest --full failed: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"md5:", "sha256:", "blake2b-256:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected full digest output to contain %q\nOutput: %s", want, output)
		}
	}

	manifest := filepath.Join(projectDir, "SHA256SUMS")
	if _, err := runCommand(t, "digest", "-C", projectDir, "-o", manifest); err != nil {
		t.Fatalf("digest -o failed: %v", err)
	}
	if _, err := os.Stat(manifest); err != nil {
		t.Errorf("Expected manifest file to be written: %v", err)
	}

	t.Log("✓ Digest output verified")
}

func testVerifyImport(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping import verification on Windows")
	}
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available, skipping import verification")
	}

	projectDir := t.TempDir()
	writeProject(t, projectDir)
	writeFile(t, filepath.Join(projectDir, ".prepub.yaml"), fmt.Sprintf(`python: %s
import:
  symbols:
    - LLMRegressionTester
`, python))

	output, err := runCommand(t, "verify-import", "-C", projectDir)
	if err != nil {
		t.Fatalf("verify-import failed: %v\nOutput: %s", err, output)
	}
	expected := []string{
		"✅ Import successful!",
		"📦 Package version: 1.0.1",
		"🎉 Ready to use LLMRegressionTester!",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q\nOutput: %s", want, output)
		}
	}

	// A broken package must fail with the exception message.
	writeFile(t, filepath.Join(projectDir, "src", "llm_regression_tester", "__init__.py"),
		"raise ImportError(\"broken package\")\n")
	output, err = runCommand(t, "verify-import", "-C", projectDir)
	if err == nil {
		t.Fatalf("Expected verify-import to fail\nOutput: %s", output)
	}
	if !strings.Contains(output, "❌ Import failed:") || !strings.Contains(output, "broken package") {
		t.Errorf("Expected import failure message\nOutput: %s", output)
	}

	t.Log("✓ Import verification passed")
}

func testVersion(t *testing.T) {
	output, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(output, "prepub dev") {
		t.Errorf("Expected version output, got: %s", output)
	}
}

// Helper functions

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func writeProject(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "pyproject.toml"), `[build-system]
requires = ["setuptools>=61.0"]
build-backend = "setuptools.build_meta"

[project]
name = "llm-regression-tester"
version = "1.0.1"
description = "Regression testing for LLM outputs"
authors = [{ name = "Jane Doe", email = "jane@example.com" }]
license = { text = "MIT" }
requires-python = ">=3.9"
dependencies = ["requests>=2.28"]
`)
	writeFile(t, filepath.Join(dir, "README.md"), `# llm-regression-tester

## Installation

pip install llm-regression-tester

## Usage

Point the tester at a snapshot file and run it.

## Example

    from llm_regression_tester import LLMRegressionTester
`)
	writeFile(t, filepath.Join(dir, "LICENSE"), "MIT License\n")

	pkg := filepath.Join(dir, "src", "llm_regression_tester")
	writeFile(t, filepath.Join(pkg, "__init__.py"),
		"from .llm_regression_tester import LLMRegressionTester\nfrom ._version import __version__\n")
	writeFile(t, filepath.Join(pkg, "llm_regression_tester.py"),
		"class LLMRegressionTester:\n    pass\n")
	writeFile(t, filepath.Join(pkg, "_version.py"), "__version__ = \"1.0.1\"\n")
	writeFile(t, filepath.Join(dir, "tests", "test_basic.py"), "def test_basic():\n    assert True\n")
}

func writeSdist(t *testing.T, path string) {
	t.Helper()
	pkgInfo := "Metadata-Version: 2.1\nName: llm-regression-tester\nVersion: 1.0.1\n"

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	hdr := &tar.Header{
		Name: "llm-regression-tester-1.0.1/PKG-INFO",
		Mode: 0644,
		Size: int64(len(pkgInfo)),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		t.Fatalf("Failed to write tar header: %v", err)
	}
	if _, err := tw.Write([]byte(pkgInfo)); err != nil {
		t.Fatalf("Failed to write PKG-INFO: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	writeFile(t, path, buf.String())
}

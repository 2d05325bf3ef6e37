package verify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ralt/prepub/internal/config"
)

type fakeRunner struct {
	stdout string
	stderr string
	err    error

	gotPython string
	gotArgs   []string
	gotEnv    []string
}

func (f *fakeRunner) Run(ctx context.Context, python string, args []string, env []string) (string, string, error) {
	f.gotPython = python
	f.gotArgs = args
	f.gotEnv = env
	return f.stdout, f.stderr, f.err
}

func TestRunReportsVersion(t *testing.T) {
	r := &fakeRunner{stdout: "1.0.1\n"}

	res, err := Run(context.Background(), r, Options{
		Dir:     "/proj",
		Source:  "src",
		Python:  "python3",
		Module:  "llm_regression_tester",
		Symbols: []string{"LLMRegressionTester"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Version != "1.0.1" {
		t.Errorf("Version = %q", res.Version)
	}
	if r.gotPython != "python3" {
		t.Errorf("python = %q", r.gotPython)
	}
	if len(r.gotArgs) != 2 || r.gotArgs[0] != "-c" {
		t.Fatalf("args = %v", r.gotArgs)
	}
	if want := "from llm_regression_tester import LLMRegressionTester, __version__\nprint(__version__)"; r.gotArgs[1] != want {
		t.Errorf("snippet = %q, want %q", r.gotArgs[1], want)
	}
}

func TestRunCondensesTraceback(t *testing.T) {
	r := &fakeRunner{
		stderr: "Traceback (most recent call last):\n" +
			"  File \"<string>\", line 1, in <module>\n" +
			"ModuleNotFoundError: No module named 'llm_regression_tester'\n",
		err: errors.New("exit status 1"),
	}

	_, err := Run(context.Background(), r, Options{Module: "llm_regression_tester", Python: "python3"})
	if err == nil {
		t.Fatal("Run should fail when the interpreter fails")
	}
	if err.Error() != "ModuleNotFoundError: No module named 'llm_regression_tester'" {
		t.Errorf("condensed error = %q", err.Error())
	}
}

func TestRunFallsBackToExecError(t *testing.T) {
	r := &fakeRunner{err: errors.New(`exec: "python3": executable file not found in $PATH`)}

	_, err := Run(context.Background(), r, Options{Module: "pkg", Python: "python3"})
	if err == nil || !strings.Contains(err.Error(), "executable file not found") {
		t.Errorf("expected exec error, got %v", err)
	}
}

func TestBuildSnippetWithoutSymbols(t *testing.T) {
	got := buildSnippet(Options{Module: "pkg"})
	want := "from pkg import __version__\nprint(__version__)"
	if got != want {
		t.Errorf("snippet = %q, want %q", got, want)
	}
}

func TestPythonEnv(t *testing.T) {
	sep := string(os.PathListSeparator)

	// No PYTHONPATH present: appended
	env := pythonEnv([]string{"HOME=/home/u"}, "/proj/src")
	if env[len(env)-1] != "PYTHONPATH=/proj/src" {
		t.Errorf("appended env = %v", env)
	}

	// Existing PYTHONPATH without src: prepended
	env = pythonEnv([]string{"PYTHONPATH=/other"}, "/proj/src")
	if env[0] != "PYTHONPATH=/proj/src"+sep+"/other" {
		t.Errorf("prepended env = %v", env)
	}

	// src already a member: untouched
	in := []string{"PYTHONPATH=/proj/src" + sep + "/other"}
	env = pythonEnv(in, "/proj/src")
	if env[0] != in[0] {
		t.Errorf("env should be unchanged, got %v", env)
	}

	// Input slice is never mutated
	orig := []string{"PYTHONPATH=/other", "HOME=/home/u"}
	pythonEnv(orig, "/proj/src")
	if orig[0] != "PYTHONPATH=/other" {
		t.Error("pythonEnv mutated its input")
	}
}

func TestOptionsFor(t *testing.T) {
	dir := t.TempDir()
	pyprojectContent := `[project]
name = "LLM-Regression-Tester"
version = "1.0.1"
`
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(pyprojectContent), 0644); err != nil {
		t.Fatalf("Failed to write pyproject.toml: %v", err)
	}

	cfg := config.Default()
	cfg.Import.Symbols = []string{"LLMRegressionTester"}

	opts, subject, err := OptionsFor(dir, cfg)
	if err != nil {
		t.Fatalf("OptionsFor failed: %v", err)
	}

	if opts.Module != "llm_regression_tester" {
		t.Errorf("Module = %q", opts.Module)
	}
	if opts.Source != "src" || opts.Python != "python3" {
		t.Errorf("opts = %+v", opts)
	}
	if subject != "LLMRegressionTester" {
		t.Errorf("subject = %q", subject)
	}

	// Without symbols the module name is announced
	cfg.Import.Symbols = nil
	_, subject, err = OptionsFor(dir, cfg)
	if err != nil {
		t.Fatalf("OptionsFor failed: %v", err)
	}
	if subject != "llm_regression_tester" {
		t.Errorf("subject = %q", subject)
	}
}

func TestOptionsForMissingName(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\nversion = \"1.0\"\n"), 0644)

	if _, _, err := OptionsFor(dir, config.Default()); err == nil {
		t.Error("OptionsFor should fail without project.name")
	}

	if _, _, err := OptionsFor(t.TempDir(), config.Default()); err == nil {
		t.Error("OptionsFor should fail without pyproject.toml")
	}
}

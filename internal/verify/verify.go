package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ralt/prepub/internal/config"
	"github.com/ralt/prepub/internal/pyproject"
	"github.com/sirupsen/logrus"
)

// Runner executes a Python interpreter. Swappable so tests don't need a
// real interpreter on PATH.
type Runner interface {
	Run(ctx context.Context, python string, args []string, env []string) (stdout, stderr string, err error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, python string, args []string, env []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Options configures an import verification run.
type Options struct {
	Dir     string   // project root
	Source  string   // source directory to put on PYTHONPATH, e.g. "src"
	Python  string   // interpreter, e.g. "python3"
	Module  string   // import-package name
	Symbols []string // entry points that must be importable from Module
}

// Result is what a successful import reports back.
type Result struct {
	Version string
}

// OptionsFor assembles the import options for a project: module name from
// pyproject.toml, configured entry symbols, interpreter and source dir. The
// second return value is the name announced on success, the first entry
// symbol when one is configured.
func OptionsFor(dir string, cfg *config.Config) (Options, string, error) {
	doc, err := pyproject.Load(dir)
	if err != nil {
		return Options{}, "", fmt.Errorf("cannot determine package name: %w", err)
	}
	if doc.Project.Name == "" {
		return Options{}, "", errors.New("pyproject.toml has no project.name")
	}

	module := pyproject.ModuleName(doc.Project.Name)
	opts := Options{
		Dir:     dir,
		Source:  cfg.SourceDir,
		Python:  cfg.Python,
		Module:  module,
		Symbols: cfg.Import.Symbols,
	}

	subject := module
	if len(cfg.Import.Symbols) > 0 {
		subject = cfg.Import.Symbols[0]
	}
	return opts, subject, nil
}

// Run imports the package in a fresh interpreter and reports the version it
// declares. The project's source directory is prepended to PYTHONPATH so the
// checked-out tree is importable without an install.
func Run(ctx context.Context, r Runner, opts Options) (*Result, error) {
	code := buildSnippet(opts)
	env := pythonEnv(os.Environ(), filepath.Join(opts.Dir, opts.Source))

	logrus.Debugf("Running %s -c %q", opts.Python, code)

	stdout, stderr, err := r.Run(ctx, opts.Python, []string{"-c", code}, env)
	if err != nil {
		return nil, errors.New(importFailure(stderr, err))
	}

	return &Result{Version: lastLine(stdout)}, nil
}

// buildSnippet produces the -c program: import every required symbol plus
// __version__, then print the version.
func buildSnippet(opts Options) string {
	names := append([]string{}, opts.Symbols...)
	names = append(names, "__version__")
	return fmt.Sprintf("from %s import %s\nprint(__version__)", opts.Module, strings.Join(names, ", "))
}

// pythonEnv prepends src to PYTHONPATH unless it is already a member.
func pythonEnv(environ []string, src string) []string {
	const key = "PYTHONPATH="
	sep := string(os.PathListSeparator)

	for i, kv := range environ {
		if !strings.HasPrefix(kv, key) {
			continue
		}
		existing := strings.TrimPrefix(kv, key)
		for _, p := range strings.Split(existing, sep) {
			if p == src {
				return environ
			}
		}
		out := append([]string{}, environ...)
		out[i] = key + src + sep + existing
		return out
	}

	return append(append([]string{}, environ...), key+src)
}

// importFailure condenses a Python traceback to its last line, which carries
// the exception message.
func importFailure(stderr string, err error) string {
	if line := lastLine(stderr); line != "" {
		return line
	}
	return err.Error()
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

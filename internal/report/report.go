package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Reporter renders checklist progress. Checks write through it so the same
// rendering serves both the terminal and buffered captures.
type Reporter interface {
	// Section starts a new checklist item, e.g. "🔍 Checking dependencies..."
	Section(format string, args ...any)

	// Success prints an indented pass detail
	Success(format string, args ...any)

	// Warning prints an indented warning detail
	Warning(format string, args ...any)

	// Failure prints an indented failure detail
	Failure(format string, args ...any)

	// Info prints an indented neutral detail
	Info(format string, args ...any)

	// Line prints an unindented raw line
	Line(format string, args ...any)
}

// Console is a Reporter that writes to a terminal-style stream.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

// Section implements Reporter
func (c *Console) Section(format string, args ...any) {
	c.print("\n" + fmt.Sprintf(format, args...))
}

// Success implements Reporter
func (c *Console) Success(format string, args ...any) {
	c.print("   ✅ " + fmt.Sprintf(format, args...))
}

// Warning implements Reporter
func (c *Console) Warning(format string, args ...any) {
	c.print("   ⚠️  " + fmt.Sprintf(format, args...))
}

// Failure implements Reporter
func (c *Console) Failure(format string, args ...any) {
	c.print("   ❌ " + fmt.Sprintf(format, args...))
}

// Info implements Reporter
func (c *Console) Info(format string, args ...any) {
	c.print("   ℹ️  " + fmt.Sprintf(format, args...))
}

// Line implements Reporter
func (c *Console) Line(format string, args ...any) {
	c.print(fmt.Sprintf(format, args...))
}

// Buffered is a Reporter that collects rendered lines instead of writing
// them, for callers that return a report as data (the MCP server).
type Buffered struct {
	mu    sync.Mutex
	lines []string
}

// NewBuffered creates an empty buffered reporter.
func NewBuffered() *Buffered {
	return &Buffered{}
}

func (b *Buffered) add(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

// Section implements Reporter
func (b *Buffered) Section(format string, args ...any) {
	b.add("")
	b.add(fmt.Sprintf(format, args...))
}

// Success implements Reporter
func (b *Buffered) Success(format string, args ...any) {
	b.add("   ✅ " + fmt.Sprintf(format, args...))
}

// Warning implements Reporter
func (b *Buffered) Warning(format string, args ...any) {
	b.add("   ⚠️  " + fmt.Sprintf(format, args...))
}

// Failure implements Reporter
func (b *Buffered) Failure(format string, args ...any) {
	b.add("   ❌ " + fmt.Sprintf(format, args...))
}

// Info implements Reporter
func (b *Buffered) Info(format string, args ...any) {
	b.add("   ℹ️  " + fmt.Sprintf(format, args...))
}

// Line implements Reporter
func (b *Buffered) Line(format string, args ...any) {
	b.add(fmt.Sprintf(format, args...))
}

// Lines returns a copy of everything rendered so far.
func (b *Buffered) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// String joins the rendered lines into one report.
func (b *Buffered) String() string {
	return strings.Join(b.Lines(), "\n")
}

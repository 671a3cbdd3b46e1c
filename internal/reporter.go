package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// Reporter receives progress, warning, and summary events from the pipeline.
// The loader and exporter report through it instead of printing, so their
// behavior is observable in tests.
type Reporter interface {
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Successf(format string, args ...interface{})
}

// ConsoleReporter writes styled progress output: info and success to stdout,
// warnings and errors to stderr. Styling glyphs are used only on a TTY.
type ConsoleReporter struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
}

// NewConsoleReporter creates a reporter bound to the process streams.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{Out: os.Stdout, Err: os.Stderr, Verbose: verbose}
}

func (r *ConsoleReporter) Infof(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, format+"\n", args...)
}

func (r *ConsoleReporter) Debugf(format string, args ...interface{}) {
	if r.Verbose {
		fmt.Fprintf(r.Err, "[DEBUG] "+format+"\n", args...)
	}
}

func (r *ConsoleReporter) Warnf(format string, args ...interface{}) {
	r.print(r.Err, warningStyle.Render("⚠"), "Warning: ", format, args...)
}

func (r *ConsoleReporter) Errorf(format string, args ...interface{}) {
	r.print(r.Err, errorStyle.Render("✗"), "Error: ", format, args...)
}

func (r *ConsoleReporter) Successf(format string, args ...interface{}) {
	r.print(r.Out, successStyle.Render("✓"), "", format, args...)
}

func (r *ConsoleReporter) print(w io.Writer, glyph, plainPrefix, format string, args ...interface{}) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", glyph, fmt.Sprintf(format, args...))
		return
	}
	fmt.Fprintf(w, plainPrefix+format+"\n", args...)
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Infof(string, ...interface{})    {}
func (NopReporter) Debugf(string, ...interface{})   {}
func (NopReporter) Warnf(string, ...interface{})    {}
func (NopReporter) Errorf(string, ...interface{})   {}
func (NopReporter) Successf(string, ...interface{}) {}

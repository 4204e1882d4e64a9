package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer handles all terminal output with consistent styling.
type Renderer struct {
	out     io.Writer
	err     io.Writer
	noColor bool
	quiet   bool
	verbose bool
}

// Option is a functional option for configuring the Renderer.
type Option func(*Renderer)

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) { r.out = w }
}

// WithError sets the error writer.
func WithError(w io.Writer) Option {
	return func(r *Renderer) { r.err = w }
}

// WithNoColor disables color output.
func WithNoColor(noColor bool) Option {
	return func(r *Renderer) { r.noColor = noColor }
}

// WithQuiet suppresses status messages.
func WithQuiet(quiet bool) Option {
	return func(r *Renderer) { r.quiet = quiet }
}

// WithVerbose enables debug messages.
func WithVerbose(verbose bool) Option {
	return func(r *Renderer) { r.verbose = verbose }
}

// NewRenderer creates a Renderer writing to stdout/stderr.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		out: os.Stdout,
		err: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// render applies styling if color is enabled.
func (r *Renderer) render(style lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return style.Render(text)
}

// Status prints a status message to stderr (suppressed in quiet mode).
func (r *Renderer) Status(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.err, r.render(StatusStyle, fmt.Sprintf(format, args...)))
}

// Info prints an informational message.
func (r *Renderer) Info(format string, args ...any) {
	fmt.Fprintln(r.out, fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (r *Renderer) Success(format string, args ...any) {
	fmt.Fprintln(r.out, r.render(SuccessStyle, fmt.Sprintf(format, args...)))
}

// Warning prints a warning message to stderr.
func (r *Renderer) Warning(format string, args ...any) {
	fmt.Fprintln(r.err, r.render(WarningStyle, "Warning: "+fmt.Sprintf(format, args...)))
}

// Error prints an error message to stderr.
func (r *Renderer) Error(format string, args ...any) {
	fmt.Fprintln(r.err, r.render(ErrorStyle, "Error: "+fmt.Sprintf(format, args...)))
}

// Debug prints a debug message to stderr when verbose is enabled.
func (r *Renderer) Debug(format string, args ...any) {
	if !r.verbose {
		return
	}
	fmt.Fprintln(r.err, r.render(MutedStyle, "[DEBUG] "+fmt.Sprintf(format, args...)))
}

// KeyValue prints a key-value pair.
func (r *Renderer) KeyValue(key, value string) {
	fmt.Fprintf(r.out, "%s %s\n", r.render(LabelStyle, key+":"), value)
}

// Newline prints a blank line.
func (r *Renderer) Newline() {
	fmt.Fprintln(r.out)
}

// LogEntry renders one tailed log line.
func (r *Renderer) LogEntry(timestamp, stream, message string) {
	ts := r.render(TimestampStyle, timestamp)
	st := r.render(LogStreamStyle, stream)
	fmt.Fprintf(r.out, "%s | %s | %s\n", ts, st, message)
}

// URLList prints the view command's banner: a rule, the available paths as
// URLs (or a generic URL when there are none), and a closing rule.
func (r *Renderer) URLList(base string, paths []string) {
	rule := r.render(RuleStyle, strings.Repeat("—", 78))

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)

	if len(paths) > 0 {
		fmt.Fprintln(r.out, "    The following datasets and/or narratives should be available in a moment:")
		for _, path := range paths {
			fmt.Fprintf(r.out, "       • %s\n", r.render(URLStyle, base+path))
		}
	} else {
		fmt.Fprintf(r.out, "    Open <%s> in your browser.\n", r.render(URLStyle, base))
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "   ", r.render(WarningStyle, "Warning: No datasets or narratives detected."))
	}

	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)
}

// Table renders a simple aligned table.
func (r *Renderer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerParts := make([]string, len(headers))
	for i, h := range headers {
		headerParts[i] = r.render(LabelStyle, fmt.Sprintf("%-*s", widths[i], h))
	}
	fmt.Fprintln(r.out, strings.Join(headerParts, "  "))

	sepParts := make([]string, len(headers))
	for i, w := range widths {
		sepParts[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(r.out, r.render(MutedStyle, strings.Join(sepParts, "  ")))

	for _, row := range rows {
		rowParts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rowParts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(r.out, strings.TrimRight(strings.Join(rowParts, "  "), " "))
	}
}

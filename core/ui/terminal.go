// Package ui - Terminal user interface
// Styled CLI output and the interactive quote form.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette for terminal output
var (
	ColorHeader  = lipgloss.Color("#2196F3")
	ColorSuccess = lipgloss.Color("#8BC34A")
	ColorWarning = lipgloss.Color("#FFC107")
	ColorError   = lipgloss.Color("#E53935")
	ColorMuted   = lipgloss.Color("#7A8699")
)

// Styles used by Writer
type Styles struct {
	Header  lipgloss.Style
	Sub     lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Value   lipgloss.Style
}

// NewStyles builds the styles for a renderer; noColor yields plain styles
func NewStyles(r *lipgloss.Renderer, noColor bool) Styles {
	if noColor {
		plain := r.NewStyle()
		return Styles{plain, plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return Styles{
		Header:  r.NewStyle().Bold(true).Foreground(ColorHeader),
		Sub:     r.NewStyle().Bold(true),
		Label:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError),
		Info:    r.NewStyle().Foreground(ColorHeader),
		Dim:     r.NewStyle().Faint(true),
		Value:   r.NewStyle().Bold(true).Foreground(ColorSuccess),
	}
}

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	styles    Styles
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		styles:    NewStyles(lipgloss.NewRenderer(out), noColor),
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Println writes a line
func (w *Writer) Println(s string) {
	fmt.Fprintln(w.out, s)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println(w.styles.Header.Render("━━━ " + title + " ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println(w.styles.Sub.Render("▸ " + title))
}

// Field prints a "label: value" line
func (w *Writer) Field(label, value string) {
	w.Println(w.styles.Label.Render(label+":") + " " + value)
}

// Highlight prints a "label: value" line with the value emphasised
func (w *Writer) Highlight(label, value string) {
	w.Println(w.styles.Label.Render(label+":") + " " + w.styles.Value.Render(value))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println(w.styles.Success.Render("✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println(w.styles.Warning.Render("⚠ ") + fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println(w.styles.Error.Render("✗ ") + fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println(w.styles.Info.Render("ℹ ") + fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println(w.styles.Dim.Render("  " + fmt.Sprintf(format, args...)))
}

// List prints a labelled list of values on one line
func (w *Writer) List(label string, values []string) {
	if len(values) == 0 {
		w.Field(label, w.styles.Dim.Render("(none)"))
		return
	}
	w.Field(label, strings.Join(values, ", "))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := lipgloss.Width(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println(t.w.styles.Sub.Render(t.line(t.headers)))

	sep := make([]string, len(t.widths))
	for i, n := range t.widths {
		sep[i] = strings.Repeat("─", n)
	}
	t.w.Println(strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println(t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c + strings.Repeat(" ", t.widths[i]-lipgloss.Width(c))
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

package output

import (
	"fmt"
	"io"
	"strings"

	"freight-netback/core/types"
)

// MarkdownFormatter renders a markdown report
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// RenderQuote implements Formatter
func (f *MarkdownFormatter) RenderQuote(w io.Writer, r *QuoteReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title)
	fmt.Fprintf(&b, "Dataset: `%s`\n\n", r.Source.Name)

	b.WriteString("## Select Specifications\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Country | %s |\n", mdCell(r.Selection.Country))
	fmt.Fprintf(&b, "| Destination Port | %s |\n", mdCell(r.Selection.DestinationPort))
	fmt.Fprintf(&b, "| Unit | %s |\n\n", mdCell(r.Selection.Unit))

	b.WriteString("## Freight Rate Information\n\n")
	if r.Lookup.Status == types.LookupFound {
		fmt.Fprintf(&b, "**Freight Rate (%s):** %s\n\n", types.ColumnRate, r.Lookup.Display)
	} else {
		fmt.Fprintf(&b, "> %s\n\n", r.Lookup.Message)
	}

	b.WriteString("## Netback Calculation\n\n")
	switch r.Netback.Status {
	case types.NetbackComputed:
		fmt.Fprintf(&b, "- CIF: %s\n- Local Rate: %s\n- Divisor: %s\n\n", r.Netback.Cost, r.Netback.LocalRate, r.Netback.Divisor)
		fmt.Fprintf(&b, "**Calculated Netback:** %s\n", r.Netback.Display)
	default:
		fmt.Fprintf(&b, "> %s\n", r.Netback.Message)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderOptions implements Formatter
func (f *MarkdownFormatter) RenderOptions(w io.Writer, r *OptionsReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title)
	fmt.Fprintf(&b, "Dataset: `%s`\n\n", r.Source.Name)
	writeMDList(&b, "Countries", r.Countries)
	writeMDList(&b, "Units", r.Units)
	writeMDList(&b, fmt.Sprintf("Destination Ports (%s)", r.Country), r.Ports)
	if len(r.PortsByCountry) > 0 {
		b.WriteString("## Destination Ports by Country\n\n| Country | Destination Ports |\n|---|---|\n")
		for _, row := range r.PortsByCountry {
			fmt.Fprintf(&b, "| %s | %s |\n", mdCell(row.Country), mdCell(strings.Join(row.Ports, ", ")))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMDList(b *strings.Builder, title string, values []string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(values) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	for _, v := range values {
		fmt.Fprintf(b, "- %s\n", v)
	}
	b.WriteString("\n")
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

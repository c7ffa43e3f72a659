package output

import (
	"io"
	"strings"

	"freight-netback/core/types"
	"freight-netback/core/ui"
)

// Title heads every CLI report
const Title = "Freight Rate Netback Calculator"

// CLIFormatter renders styled terminal output
type CLIFormatter struct {
	noColor   bool
	verbosity int
}

// NewCLIFormatter creates a CLI formatter at normal verbosity
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor, verbosity: 1}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose).
// Verbose output adds lookup and formula details.
func (f *CLIFormatter) SetVerbosity(level int) {
	f.verbosity = level
}

func (f *CLIFormatter) writer(w io.Writer) *ui.Writer {
	out := f.writer(w)
	out.SetVerbosity(f.verbosity)
	return out
}

// Format implements Formatter
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// RenderQuote implements Formatter
func (f *CLIFormatter) RenderQuote(w io.Writer, r *QuoteReport) error {
	out := f.writer(w)
	out.SubHeader(Title)
	out.Field("Dataset", r.Source.Name)

	out.Header("Select Specifications")
	out.Highlight("Country", r.Selection.Country)
	out.Highlight("Destination Port", r.Selection.DestinationPort)
	out.Highlight("Unit", r.Selection.Unit)

	out.Header("Freight Rate Information")
	if r.Lookup.Status == types.LookupFound {
		out.Success("Freight Rate (%s): %s", types.ColumnRate, r.Lookup.Display)
	} else {
		out.Warning("%s", r.Lookup.Message)
	}
	if r.Lookup.Matches > 0 {
		out.Debug("matching rows: %d, first on line %d", r.Lookup.Matches, r.Lookup.Line)
	}

	out.Header("Netback Calculation")
	if r.Netback.Status == types.NetbackUnavailable {
		out.Info("%s", r.Netback.Message)
		return nil
	}
	out.Field("CIF (Cost, Insurance, Freight)", r.Netback.Cost)
	out.Field("Local Rate", r.Netback.LocalRate)
	if r.Netback.Status == types.NetbackComputed {
		out.Debug("%s - %s / %s - %s = %s", r.Netback.Cost, r.Lookup.Rate, r.Netback.Divisor, r.Netback.LocalRate, r.Netback.Value)
		out.Success("Calculated Netback: %s", r.Netback.Display)
	} else {
		out.Info("%s", r.Netback.Message)
	}
	return nil
}

// RenderOptions implements Formatter
func (f *CLIFormatter) RenderOptions(w io.Writer, r *OptionsReport) error {
	out := f.writer(w)
	out.SubHeader(Title)
	out.Field("Dataset", r.Source.Name)

	out.Header("Select Specifications")
	out.List("Countries", r.Countries)
	out.List("Units", r.Units)
	out.Println("")

	rows := r.PortsByCountry
	if len(rows) == 0 {
		rows = []CountryPorts{{Country: r.Country, Ports: r.Ports}}
	}
	table := out.NewTable("Country", "Destination Ports")
	for _, row := range rows {
		table.AddRow(row.Country, strings.Join(row.Ports, ", "))
	}
	table.Render()
	return nil
}

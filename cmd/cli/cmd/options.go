// Package cmd - options and quote commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"freight-netback/core/output"
	"freight-netback/internal/config"
	"freight-netback/internal/errors"
)

var (
	outputFormat   string
	optionsCountry string
	optionsAll     bool
)

// optionsCmd lists dropdown values
var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the countries, units and ports of a rate table",
	Long: `List the values a selection can take.

Ports are listed for --country, or for the first country when none is given.
With --all the ports of every country are listed as well.

Examples:
  netback options --data rates.csv
  netback options --data rates.csv --country Vietnam --format json`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().StringVarP(&optionsCountry, "country", "c", "", "country whose ports are listed")
	optionsCmd.Flags().BoolVarP(&optionsAll, "all", "a", false, "list the ports of every country")
	optionsCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, yaml, markdown)")
}

func runOptions(cmd *cobra.Command, args []string) error {
	formatter, err := selectFormatter(outputFormat)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context(), config.Get(), "")
	if err != nil {
		return err
	}

	country := optionsCountry
	if country == "" {
		country = sess.Catalog().DefaultCountry()
	}
	report := &output.OptionsReport{
		Source:    sess.Source(),
		Countries: sess.Countries(),
		Units:     sess.Units(),
		Country:   country,
		Ports:     sess.Ports(country),
	}
	if optionsAll {
		for _, c := range report.Countries {
			report.PortsByCountry = append(report.PortsByCountry, output.CountryPorts{Country: c, Ports: sess.Ports(c)})
		}
	}
	return formatter.RenderOptions(cmd.OutOrStdout(), report)
}

// selectFormatter resolves a --format value, falling back to output.format.
// --verbose adds detail lines to cli output.
func selectFormatter(name string) (output.Formatter, error) {
	cfg := config.Get()
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	formatter, ok := output.NewRegistry(cfg.Output.NoColor).Get(format)
	if !ok {
		return nil, errors.Internal(fmt.Sprintf("no formatter registered for %s", format), nil)
	}
	if cli, ok := formatter.(*output.CLIFormatter); ok && verbose {
		cli.SetVerbosity(2)
	}
	return formatter, nil
}

package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"freight-netback/core/output"
	"freight-netback/core/types"
	"freight-netback/internal/config"
	"freight-netback/internal/errors"
)

var (
	quoteCountry   string
	quotePort      string
	quoteUnit      string
	quoteCost      string
	quoteLocalRate string
	quoteFormat    string
)

// quoteCmd looks up a rate and computes the netback
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Look up a freight rate and compute the netback",
	Long: `Look up the first-half-of-month rate for a country, destination port
and unit, then compute

  netback = cost - (rate / 23000) - local rate

Without --cost the lookup is reported and the netback asks for a CIF cost.
Without --local-rate the configured default applies.

Examples:
  netback quote --data rates.csv --country India --port "Nhava Sheva" --unit 20ft
  netback quote --data rates.csv --country India --port "Nhava Sheva" --unit 20ft --cost 50 --format json`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteCountry, "country", "c", "", "country")
	quoteCmd.Flags().StringVarP(&quotePort, "port", "p", "", "destination port")
	quoteCmd.Flags().StringVarP(&quoteUnit, "unit", "u", "", "unit")
	quoteCmd.Flags().StringVar(&quoteCost, "cost", "", "CIF cost")
	quoteCmd.Flags().StringVar(&quoteLocalRate, "local-rate", "", "local rate (default from netback.local_rate)")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "", "output format (cli, json, yaml, markdown)")

	_ = quoteCmd.MarkFlagRequired("country")
	_ = quoteCmd.MarkFlagRequired("port")
	_ = quoteCmd.MarkFlagRequired("unit")
}

func runQuote(cmd *cobra.Command, args []string) error {
	formatter, err := selectFormatter(quoteFormat)
	if err != nil {
		return err
	}

	key := types.SelectionKey{Country: quoteCountry, DestinationPort: quotePort, Unit: quoteUnit}
	for _, f := range []struct{ flag, value string }{
		{"country", key.Country},
		{"port", key.DestinationPort},
		{"unit", key.Unit},
	} {
		if f.value == "" {
			return errors.Newf(errors.TypeInput, "--%s must not be empty", f.flag).
				WithContext(errors.ContextField, f.flag)
		}
	}

	cost, err := parseAmount("cost", quoteCost)
	if err != nil {
		return err
	}
	localRate, err := parseAmount("local-rate", quoteLocalRate)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd.Context(), config.Get(), "")
	if err != nil {
		return err
	}

	quote, err := sess.Quote(key, cost.Decimal, localRate)
	if err != nil {
		return err
	}
	return formatter.RenderQuote(cmd.OutOrStdout(), output.NewQuoteReport(sess.Source(), quote))
}

// parseAmount reads an optional decimal flag; empty is not Valid
func parseAmount(flag, value string) (decimal.NullDecimal, error) {
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, errors.Newf(errors.TypeInput, "--%s %q is not a number", flag, value).
			WithContext(errors.ContextField, flag)
	}
	return decimal.NewNullDecimal(d), nil
}

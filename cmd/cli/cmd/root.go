// Package cmd provides the CLI commands for netback.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"freight-netback/core/catalog"
	"freight-netback/core/input"
	"freight-netback/core/session"
	"freight-netback/internal/config"
	"freight-netback/internal/errors"
	"freight-netback/internal/logging"
)

// Version is stamped at build time with -ldflags "-X freight-netback/cmd/cli/cmd.Version=..."
var Version = "0.1.0"

var (
	cfgFile  string
	verbose  bool
	dataPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "netback",
	Short: "Look up freight rates and compute netbacks",
	Long: `netback loads a freight rate table (CSV or XLSX) and answers rate
lookups and netback calculations for a country, destination port and unit.

Examples:
  netback options --data rates.csv
  netback quote --data rates.csv --country India --port "Nhava Sheva" --unit 20ft --cost 50
  netback form --data rates.xlsx
  netback serve --addr :8080 --data rates.csv`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.hcl or .json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "rate table path (default from dataset.path)")

	// Add subcommands
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(*cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// sessionOptions derives session settings from the loaded configuration
func sessionOptions(cfg *config.Config) (session.Options, error) {
	opts := session.DefaultOptions()

	order, err := catalog.ParseOrder(cfg.Catalog.CountryOrder)
	if err != nil {
		return opts, err
	}
	opts.Order = order
	opts.LocalRate = decimal.NewFromFloat(cfg.Netback.LocalRate)
	opts.Dataset.Sheet = cfg.Dataset.Sheet
	return opts, nil
}

// datasetPath resolves --data against dataset.path
func datasetPath(cfg *config.Config) string {
	if dataPath != "" {
		return dataPath
	}
	return cfg.Dataset.Path
}

// openSession loads the configured rate table
func openSession(ctx context.Context, cfg *config.Config, id string) (*session.Session, error) {
	path := datasetPath(cfg)
	if path == "" {
		return nil, errors.Input("no rate table: pass --data or set dataset.path")
	}

	opts, err := sessionOptions(cfg)
	if err != nil {
		return nil, err
	}
	opts.ID = id
	return session.Open(ctx, input.NewFileSource(path), opts)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "netback version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(config.Get()); err != nil {
			return err
		}
		return enc.Close()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init <path.json>",
	Short: "Write the default configuration to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().Save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

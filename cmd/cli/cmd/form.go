package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"freight-netback/core/ui"
	"freight-netback/internal/config"
)

// formCmd runs the interactive calculator
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Interactive rate lookup and netback form",
	Long: `Step through country, destination port and unit, then enter the CIF cost
and local rate. Esc starts over, q quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), config.Get(), "")
		if err != nil {
			return err
		}
		return ui.RunForm(sess, os.Stdin, cmd.OutOrStdout(), config.Get().Output.NoColor)
	},
}

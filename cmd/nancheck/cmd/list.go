package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Check NAN support on every wireless radio",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runList(cmd))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

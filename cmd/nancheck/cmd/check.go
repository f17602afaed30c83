package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultInterface = "wlan0"

var checkCmd = &cobra.Command{
	Use:   "check [interface]",
	Short: "Check NAN support on the radio behind one interface (default wlan0)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		iface := defaultInterface
		if len(args) == 1 {
			iface = args[0]
		}
		os.Exit(runCheck(cmd, iface))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

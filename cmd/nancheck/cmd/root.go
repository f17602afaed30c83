package cmd

import (
	"os"

	"github.com/dogeorg/wifiaware/pkg/report"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nancheck [interface]",
	Short: "nancheck reports whether this host's WiFi hardware supports NAN (WiFi Aware)",
	Long: `nancheck queries nl80211 for every wireless radio on the host and reports
whether its driver advertises the NAN interface mode.

With no arguments every radio is checked. With an interface name only the
radio behind that interface is checked.

Exit codes: 0 NAN available, 1 no NAN support, 2 interface not found,
3 permission denied, 4 kernel query failed, 5 no wireless device.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			os.Exit(runCheck(cmd, args[0]))
		}
		os.Exit(runList(cmd))
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(report.ExitFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Print the report as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log nl80211 queries to stderr")
	rootCmd.PersistentFlags().Bool("no-hints", false, "Omit remedies and explanations from the report")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().Bool("host", true, "Include host and kernel details in the report")
	rootCmd.PersistentFlags().String("backend", "nl80211", "How to query the kernel: nl80211 (netlink) or iw (the iw tool)")
}

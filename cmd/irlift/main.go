package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"irlift/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "irlift",
	Short: "Lift foreign compiler IR into an owned model",
	Long:  `irlift decodes in-memory compiler IR from fixture files into an owned, immutable module and inspects the result`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("trace", "off", "decode tracing (off|phase|detail|debug)")
	rootCmd.PersistentFlags().Bool("locs", false, "track debug locations while decoding")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel decode jobs (0 = GOMAXPROCS)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyColorFlag maps the --color flag onto the global color switch.
func applyColorFlag(cmd *cobra.Command) {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch flag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
	// "auto" keeps the package's terminal detection.
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rotator",
	Short: "Rotator is an interaction controller for cyclic carousels",
	Long: `Rotator arbitrates between autoplay, swipe gestures and explicit navigation
for a carousel of testimonials or slides, and exposes it to terminals, HTTP
clients and MCP agents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "YAML configuration file")
	flags.String("deck", "", "YAML deck file (overrides deck.path)")
	flags.String("deck-dir", "", "Directory of Markdown slides (overrides deck.dir)")
	flags.Duration("interval", 0, "Autoplay interval, e.g. 5s (overrides carousel.interval)")
	flags.String("reading", "", "Reading direction: rtl or ltr (overrides carousel.reading_direction)")
	flags.Bool("no-autoplay", false, "Start with autoplay disabled")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
}

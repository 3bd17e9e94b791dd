package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and deck",
	Long:  `Loads the configuration and the configured deck and checks that a carousel can be built from them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context(), cmd, true)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if err := a.start(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		defer a.ctrl.Close()

		title := a.deck.Title
		if title == "" {
			title = a.cfg.Name
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deck %q is valid! ✅ (%d items, start %d, %s)\n",
			title, a.deck.Len(), a.ctrl.State().Index, a.ctrl.ReadingDirection())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

package main

import (
	"os"
	"strings"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/internal/cli"
	"github.com/aretw0/rotator/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the carousel in the terminal",
	Long: `Starts an interactive carousel demo. Autoplay advances the slides while line
commands (n, p, g <i>, pause, resume, swipe <x0> <x1>, hover, leave, state, quit)
drive the controller.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		a, err := loadApp(sigCtx, cmd, true)
		if err != nil {
			return err
		}
		if err := a.start(); err != nil {
			return err
		}
		defer a.ctrl.Close()

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		demo := &cli.Demo{
			Controller: a.ctrl,
			Deck:       a.deck,
			Out:        os.Stdout,
			Render:     tui.PlainRenderer,
			Profile:    termenv.Ascii,
			Logger:     a.logger,
		}
		if interactive {
			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			tui.PrintBanner(os.Stdout, strings.TrimSpace(rotator.Version))
			demo.Render = tui.NewRenderer(width)
			demo.Profile = termenv.ColorProfile()
		}
		return demo.Run(sigCtx, os.Stdin)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// 'run' is the default when no command is provided.
	rootCmd.RunE = runCmd.RunE
}

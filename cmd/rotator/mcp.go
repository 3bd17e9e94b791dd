package main

import (
	"strings"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/internal/cli"
	mcpAdapter "github.com/aretw0/rotator/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the carousel as an MCP server over stdio",
	Long: `Starts a Model Context Protocol server so agents can drive the carousel.
Tools: next, previous, goto, pause, resume, get_state.
Resources: rotator://state, rotator://items.
Logs go to stderr; stdout carries the protocol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		a, err := loadApp(sigCtx, cmd, false)
		if err != nil {
			return err
		}
		if err := a.start(); err != nil {
			return err
		}
		defer a.ctrl.Close()

		srv := mcpAdapter.NewServer(a.ctrl, a.deck, strings.TrimSpace(rotator.Version))
		a.logger.Info("mcp server on stdio", "items", a.deck.Len())
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

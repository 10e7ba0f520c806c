package main

import (
	"github.com/spf13/cobra"

	mcpserver "sitegen/internal/mcp"
)

func newMCPCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generation pipeline as an MCP tool over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; logs go to stderr.
			a, err := setup(*configDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			srv := mcpserver.New(mcpserver.Deps{
				Runner:  a.newBuilder(nil),
				Loader:  a.loader,
				Logger:  a.logger,
				Version: version,
			})
			return srv.ServeStdio()
		},
	}
}

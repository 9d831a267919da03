// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
	mcpserver "github.com/H0llyW00dzZ/tls-cert-validator/src/mcp-server"
)

func newMCPCommand(gf *globalFlags, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the certificate tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := gf.load()
			if err != nil {
				return err
			}

			// stdout carries the protocol; diagnostics stay on stderr as JSON lines.
			diag := logger.NewJSONLogger(os.Stderr, !gf.verbose)

			OperationPerformed = true
			if err := mcpserver.Run(cmd.Context(), mcpserver.Options{
				Version: version,
				Config:  cfg,
				Log:     diag,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}); err != nil {
				return err
			}

			OperationPerformedSuccessfully = true
			return nil
		},
	}
}

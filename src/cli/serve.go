// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/server"
)

func newServeCommand(gf *globalFlags, version string, log logger.Logger) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /validate_certificate over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := gf.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Address = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			insp := cfg.Inspector()
			if gf.verbose {
				insp.Connector.Observer = x509inspect.LogObserver{Log: log}
			}

			srv, err := server.New(insp, server.Options{
				AllowOrigins: cfg.Server.AllowOrigins,
				Log:          log,
			})
			if err != nil {
				return err
			}

			OperationPerformed = true
			log.Printf("tls-cert-validator %s (verification: %s)", version, cfg.Verification())
			if err := srv.Listen(cmd.Context(), cfg.Server.Address); err != nil {
				return err
			}

			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: config server.address, 127.0.0.1:8080)")
	return cmd
}

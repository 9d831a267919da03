// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/config"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
)

var (
	// OperationPerformed is set once a subcommand has started real work.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set when that work finished without error.
	OperationPerformedSuccessfully bool
)

// ErrInspectionFailed is returned when at least one requested certificate
// could not be obtained or evaluated. Per-host details are in the output.
var ErrInspectionFailed = errors.New("one or more certificate inspections failed")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	envFiles   []string
	verbose    bool
}

// Execute runs the command line in os.Args against ctx.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewCommand(version, log).ExecuteContext(ctx)
}

// NewCommand builds the root command. Results are written to the command's
// output stream, diagnostics to log.
func NewCommand(version string, log logger.Logger) *cobra.Command {
	if log == nil {
		log = logger.NewCLILogger()
	}

	gf := &globalFlags{}
	root := &cobra.Command{
		Use:           posix.CommandName("tls-cert-validator"),
		Short:         "Inspect and validate TLS leaf certificates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&gf.configFile, "config", "c", "", "JSON or YAML config file (default: $"+config.EnvConfigFile+")")
	root.PersistentFlags().StringSliceVar(&gf.envFiles, "env-file", nil, "load environment variables from these files (default: .env if present)")
	root.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "log connection progress to stderr")

	root.AddCommand(
		newCheckCommand(gf, log),
		newFileCommand(gf),
		newServeCommand(gf, version, log),
		newMCPCommand(gf, version),
	)

	return root
}

// load resolves the effective configuration for a subcommand.
func (gf *globalFlags) load() (*config.Config, error) {
	if err := config.LoadDotEnv(gf.envFiles...); err != nil {
		return nil, err
	}
	return config.Load(gf.configFile)
}

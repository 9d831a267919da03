// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	x509certs "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/certs"
	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
)

// ErrHostRequired is returned when the file command is run without --host.
var ErrHostRequired = errors.New("--host is required")

type fileFlags struct {
	host   string
	output string
	pem    bool
}

func newFileCommand(gf *globalFlags) *cobra.Command {
	f := &fileFlags{}
	cmd := &cobra.Command{
		Use:   "file FILE",
		Short: "Evaluate a certificate file (PEM, DER, base64 DER or PKCS7) without connecting",
		Example: `  tls-cert-validator file cert.pem --host example.com
  tls-cert-validator file bundle.p7b --host example.com --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.host == "" {
				return ErrHostRequired
			}
			if err := validateFormat(f.output); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading input file: %w", err)
			}

			cert, err := x509certs.New().Decode(data)
			if err != nil {
				return fmt.Errorf("error decoding certificate: %w", err)
			}

			OperationPerformed = true
			o := outcome{Report: x509inspect.Report{Host: f.host}, Cert: cert}
			o.Result, o.Err = x509inspect.Validate(cert, f.host, time.Now())

			outcomes := []outcome{o}
			if err := writeOutcomes(cmd.OutOrStdout(), f.output, outcomes, f.pem); err != nil {
				return err
			}
			if failed(outcomes) {
				return ErrInspectionFailed
			}

			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.host, "host", "H", "", "domain name the certificate is checked against (required)")
	cmd.Flags().StringVarP(&f.output, "output", "o", formatText, "output format: text, table or json")
	cmd.Flags().BoolVar(&f.pem, "pem", false, "include the certificate in PEM form")

	return cmd
}

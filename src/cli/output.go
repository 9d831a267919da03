// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/certs"
	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
)

// Output formats accepted by --output.
const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
)

// outcome is one inspected host plus the certificate it served, if any.
type outcome struct {
	x509inspect.Report
	Cert *x509.Certificate
}

// jsonOutcome is the JSON shape of an outcome.
type jsonOutcome struct {
	Host   string              `json:"host"`
	Result *x509inspect.Result `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
	PEM    string              `json:"pem,omitempty"`
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text, table or json)", format)
	}
}

// writeOutcomes renders outcomes in format. With withPEM the leaf
// certificates are included: appended after text and table output, or as a
// "pem" field in JSON.
func writeOutcomes(w io.Writer, format string, outcomes []outcome, withPEM bool) error {
	codec := x509certs.New()

	switch format {
	case formatJSON:
		out := make([]jsonOutcome, 0, len(outcomes))
		for _, o := range outcomes {
			j := jsonOutcome{Host: o.Host, Result: o.Result, Error: o.Error()}
			if withPEM && o.Cert != nil {
				j.PEM = string(codec.EncodePEM(o.Cert))
			}
			out = append(out, j)
		}
		return gc.With(gc.Default, func(buf gc.Buffer) error {
			enc := json.NewEncoder(buf)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to encode JSON output: %w", err)
			}
			_, err := buf.WriteTo(w)
			return err
		})

	case formatTable:
		if _, err := io.WriteString(w, x509inspect.RenderTable(reports(outcomes))); err != nil {
			return err
		}

	default:
		if err := x509inspect.RenderText(w, reports(outcomes)); err != nil {
			return err
		}
		if err := writeSummary(w, outcomes); err != nil {
			return err
		}
	}

	if !withPEM {
		return nil
	}
	for _, o := range outcomes {
		if o.Cert == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n# %s\n%s", o.Host, codec.EncodePEM(o.Cert)); err != nil {
			return err
		}
	}
	return nil
}

func reports(outcomes []outcome) []x509inspect.Report {
	out := make([]x509inspect.Report, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Report
	}
	return out
}

// writeSummary prints how many hosts were inspected without error,
// green when all of them were and red otherwise.
func writeSummary(w io.Writer, outcomes []outcome) error {
	passed := 0
	for _, o := range outcomes {
		if o.Err == nil {
			passed++
		}
	}

	c := color.New(color.FgGreen, color.Bold)
	if passed != len(outcomes) {
		c = color.New(color.FgRed, color.Bold)
	}
	_, err := c.Fprintf(w, "\n%d of %d hosts passed\n", passed, len(outcomes))
	return err
}

// failed reports whether any outcome carries an error.
func failed(outcomes []outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

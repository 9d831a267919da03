// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/sync/errgroup"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/config"
	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
)

type checkFlags struct {
	port        int
	timeout     time.Duration
	minTLS      string
	skipVerify  bool
	output      string
	pem         bool
	concurrency int
	trace       bool
}

func newCheckCommand(gf *globalFlags, log logger.Logger) *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check DOMAIN...",
		Short: "Connect to domains and evaluate their leaf certificates",
		Example: `  tls-cert-validator check example.com
  tls-cert-validator check example.com www.google.com --output table
  tls-cert-validator check internal.example --port 8443 --output json --pem`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(f.output); err != nil {
				return err
			}

			cfg, err := gf.load()
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}

			insp := cfg.Inspector()
			if gf.verbose {
				insp.Connector.Observer = x509inspect.LogObserver{Log: log}
			}

			var spans *tracetest.SpanRecorder
			if f.trace {
				spans = tracetest.NewSpanRecorder()
				tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
				defer func() {
					if err := tp.Shutdown(context.Background()); err != nil {
						log.Printf("Failed to shutdown trace provider: %v", err)
					}
				}()
				insp.TracerProvider = tp
			}

			OperationPerformed = true
			outcomes := checkAll(cmd.Context(), insp, args, f.concurrency)

			if err := writeOutcomes(cmd.OutOrStdout(), f.output, outcomes, f.pem); err != nil {
				return err
			}
			if spans != nil {
				if err := writeTraceSummary(cmd.ErrOrStderr(), spans.Ended()); err != nil {
					return err
				}
			}
			if failed(outcomes) {
				return ErrInspectionFailed
			}

			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "TCP port to connect to (default: config inspect.port, 443)")
	cmd.Flags().DurationVarP(&f.timeout, "timeout", "t", 0, "connect and handshake timeout (default: config inspect.timeoutSeconds, 10s)")
	cmd.Flags().StringVar(&f.minTLS, "min-tls", "", "minimum TLS version, 1.2 or 1.3 (default: config inspect.minTLSVersion)")
	cmd.Flags().BoolVar(&f.skipVerify, "skip-verify", true, "skip chain verification so untrusted certificates can be reported")
	cmd.Flags().StringVarP(&f.output, "output", "o", formatText, "output format: text, table or json")
	cmd.Flags().BoolVar(&f.pem, "pem", false, "include the leaf certificate in PEM form")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 8, "maximum number of domains inspected at once")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "print per-domain fetch timings to stderr")

	return cmd
}

// apply overlays explicitly set flags onto cfg and revalidates it.
func (f *checkFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Inspect.Port = f.port
	}
	if flags.Changed("timeout") {
		if f.timeout < time.Second {
			return errors.New("--timeout must be at least 1s")
		}
		if f.timeout%time.Second != 0 {
			return fmt.Errorf("--timeout must be a whole number of seconds, got %s", f.timeout)
		}
		cfg.Inspect.TimeoutSeconds = int(f.timeout / time.Second)
	}
	if flags.Changed("min-tls") {
		cfg.Inspect.MinTLSVersion = f.minTLS
	}
	if flags.Changed("skip-verify") {
		cfg.Inspect.SkipVerify = f.skipVerify
	}
	if f.concurrency < 1 {
		return errors.New("--concurrency must be at least 1")
	}
	return cfg.Validate()
}

// checkAll inspects every domain with at most limit running at once.
// Outcomes keep the order of domains.
func checkAll(ctx context.Context, insp *x509inspect.Inspector, domains []string, limit int) []outcome {
	outcomes := make([]outcome, len(domains))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, domain := range domains {
		g.Go(func() error {
			outcomes[i] = checkOne(ctx, insp, domain)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func checkOne(ctx context.Context, insp *x509inspect.Inspector, domain string) outcome {
	o := outcome{Report: x509inspect.Report{Host: domain}}

	cert, err := insp.Fetch(ctx, domain)
	if err != nil {
		o.Err = err
		return o
	}
	o.Cert = cert

	now := time.Now
	if insp.Now != nil {
		now = insp.Now
	}
	o.Result, o.Err = x509inspect.Validate(cert, domain, now())
	return o
}

// writeTraceSummary prints one line per recorded Fetch span, slowest first.
func writeTraceSummary(w io.Writer, spans []sdktrace.ReadOnlySpan) error {
	type timing struct {
		host     string
		duration time.Duration
		failed   bool
	}

	var timings []timing
	for _, span := range spans {
		if span.Name() != "Fetch" {
			continue
		}
		t := timing{duration: span.EndTime().Sub(span.StartTime())}
		for _, kv := range span.Attributes() {
			if kv.Key == "tls.host" {
				t.host = kv.Value.AsString()
			}
		}
		t.failed = span.Status().Code == codes.Error
		timings = append(timings, t)
	}

	sort.SliceStable(timings, func(i, j int) bool { return timings[i].duration > timings[j].duration })

	if _, err := fmt.Fprintln(w, "Fetch timings:"); err != nil {
		return err
	}
	for _, t := range timings {
		status := "ok"
		if t.failed {
			status = "failed"
		}
		if _, err := fmt.Fprintf(w, "  %-40s %10s  %s\n", t.host, t.duration.Round(time.Millisecond), status); err != nil {
			return err
		}
	}
	return nil
}

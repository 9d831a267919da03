// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"context"
	"crypto/x509"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of the spans an [Inspector] starts.
const TracerName = "github.com/H0llyW00dzZ/tls-cert-validator/inspect"

// Inspector runs the full pipeline: [Connector] → [Session.LeafCertificate] → [Validate].
//
// An Inspector keeps no per-request state; any number of Inspect calls may
// run concurrently, each with its own connection. Concurrent calls for the
// same host are not merged.
type Inspector struct {
	Connector    *Connector
	Verification Verification     // passed to every Dial
	Now          func() time.Time // time.Now when nil

	// TracerProvider receives one span per Inspect and Fetch call.
	// The global provider from otel.GetTracerProvider is used when nil.
	TracerProvider trace.TracerProvider
}

// NewInspector returns an Inspector around c.
//
// verify is required on purpose: [VerifyNone] reports on any endpoint,
// trusted or not, at the cost of no protection against a substituted certificate.
func NewInspector(c *Connector, verify Verification) *Inspector {
	return &Inspector{Connector: c, Verification: verify}
}

// Inspect fetches the leaf certificate of host and validates it.
//
// Every failure is terminal for this call; there is no retry and no partial result.
func (i *Inspector) Inspect(ctx context.Context, host string) (res *Result, err error) {
	ctx, span := i.tracer().Start(ctx, "Inspect", trace.WithAttributes(attribute.String("tls.host", host)))
	defer func() { endSpan(span, err) }()

	cert, err := i.Fetch(ctx, host)
	if err != nil {
		return nil, err
	}
	res, err = Validate(cert, host, i.now())
	if res != nil {
		span.SetAttributes(
			attribute.Bool("tls.validity_status", res.ValidityStatus),
			attribute.Bool("tls.valid_for_domain", res.IsValidForDomain),
		)
	}
	return res, err
}

// Fetch runs the acquisition half of the pipeline and returns the leaf
// certificate. The connection is closed before Fetch returns.
func (i *Inspector) Fetch(ctx context.Context, host string) (cert *x509.Certificate, err error) {
	c := i.Connector
	if c == nil {
		c = NewConnector()
	}

	traceID := uuid.NewString()
	start := time.Now()

	ctx, span := i.tracer().Start(ctx, "Fetch", trace.WithAttributes(
		attribute.String("tls.host", host),
		attribute.String("inspect.trace_id", traceID),
	))
	defer func() { endSpan(span, err) }()

	sess, err := c.dial(ctx, traceID, host, i.Verification)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	span.SetAttributes(attribute.String("net.peer.addr", sess.Addr))

	obs := c.observer()
	cert, err = sess.LeafCertificate()
	if err != nil {
		obs.Observe(Event{TraceID: traceID, Host: host, Addr: sess.Addr, Stage: StageFailed, Err: err, Elapsed: time.Since(start)})
		return nil, err
	}
	obs.Observe(Event{TraceID: traceID, Host: host, Addr: sess.Addr, Stage: StageCertificate, Elapsed: time.Since(start)})

	return cert, nil
}

func (i *Inspector) tracer() trace.Tracer {
	tp := i.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(TracerName)
}

// endSpan marks span failed with the error kind when err is non-nil, then ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		if kind, ok := KindOf(err); ok {
			span.SetAttributes(attribute.String("inspect.error_kind", kind.String()))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (i *Inspector) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

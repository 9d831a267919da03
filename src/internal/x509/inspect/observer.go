// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"time"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
)

// Stage identifies a point of progress in one inspection.
type Stage int

const (
	// StageResolved is emitted once the host resolved to Addr.
	StageResolved Stage = iota + 1
	// StageConnected is emitted once the TCP connection is up.
	StageConnected
	// StageHandshake is emitted once the TLS handshake completed.
	StageHandshake
	// StageCertificate is emitted once the leaf certificate was retrieved.
	StageCertificate
	// StageFailed is emitted when the pipeline stops with Err.
	StageFailed
)

// String returns a short label for s.
func (s Stage) String() string {
	switch s {
	case StageResolved:
		return "resolved"
	case StageConnected:
		return "connected"
	case StageHandshake:
		return "handshake"
	case StageCertificate:
		return "certificate"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event describes one progress report.
type Event struct {
	TraceID string
	Host    string
	Addr    string
	Stage   Stage
	Err     error
	Elapsed time.Duration
}

// Observer receives progress events. Implementations must be safe for
// concurrent use, since every in-flight inspection reports to the same one.
type Observer interface {
	Observe(ev Event)
}

// NopObserver discards every event.
type NopObserver struct{}

// Observe implements [Observer].
func (NopObserver) Observe(Event) {}

// LogObserver writes events to a [logger.Logger].
type LogObserver struct{ Log logger.Logger }

// Observe implements [Observer].
func (o LogObserver) Observe(ev Event) {
	if o.Log == nil {
		return
	}

	switch ev.Stage {
	case StageResolved:
		o.Log.Printf("[%s] Connecting to %s (%s)", ev.TraceID, ev.Addr, ev.Host)
	case StageConnected:
		o.Log.Printf("[%s] TCP connection established to %s", ev.TraceID, ev.Addr)
	case StageHandshake:
		o.Log.Printf("[%s] TLS handshake completed with %s in %s", ev.TraceID, ev.Host, ev.Elapsed)
	case StageCertificate:
		o.Log.Printf("[%s] Certificate retrieved for %s", ev.TraceID, ev.Host)
	case StageFailed:
		o.Log.Printf("[%s] Inspection of %s failed after %s: %v", ev.TraceID, ev.Host, ev.Elapsed, ev.Err)
	}
}

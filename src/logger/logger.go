// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and switching the destination.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger writing to stderr with timestamps disabled,
// leaving stdout to the command results.
func NewCLILogger() *CLILogger {
	return &CLILogger{logger: log.New(os.Stderr, "", 0)}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// entry is the shape of a single JSONLogger line.
type entry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// JSONLogger implements Logger with one JSON object per line.
//
// It is used by the HTTP server and by the MCP server; the latter runs it
// in silent mode by default because stdout carries the protocol stream.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
	now    func() time.Time
}

// NewJSONLogger creates a new JSON logger writing to writer.
// A nil writer discards output. When silent is true, nothing is written.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
		now:    time.Now,
	}
}

// Printf formats and logs a structured message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprintf(format, v...))
}

// Println logs a structured message built with fmt.Sprint semantics.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprint(v...))
}

func (j *JSONLogger) write(msg string) {
	e := entry{
		Time:    j.now().UTC().Format(time.RFC3339Nano),
		Level:   "info",
		Message: msg,
	}

	_ = gc.With(gc.Default, func(buf gc.Buffer) error {
		// Encoder appends the trailing newline.
		if err := json.NewEncoder(buf).Encode(e); err != nil {
			return err
		}

		j.mu.Lock()
		defer j.mu.Unlock()
		_, err := buf.WriteTo(j.writer)
		return err
	})
}

// SetOutput sets the output destination for the JSON logger.
// A nil writer discards output.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}

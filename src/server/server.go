// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/xeipuuv/gojsonschema"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
)

// shutdownTimeout bounds graceful shutdown after the listen context ends.
const shutdownTimeout = 5 * time.Second

// Inspector runs one certificate inspection.
// [*x509inspect.Inspector] satisfies it.
type Inspector interface {
	Inspect(ctx context.Context, host string) (*x509inspect.Result, error)
}

// Request is the body of POST /validate_certificate.
type Request struct {
	Domain string `json:"domain"`
}

// Options tune a [Server].
type Options struct {
	// AllowOrigins is passed to the CORS middleware; "*" when empty.
	AllowOrigins string
	// Log receives one line per request outcome; discarded when nil.
	Log logger.Logger
}

// Server is the HTTP front end for an [Inspector].
type Server struct {
	app    *fiber.App
	insp   Inspector
	schema *gojsonschema.Schema
	log    logger.Logger
}

// New builds a Server with its routes registered.
func New(insp Inspector, opts Options) (*Server, error) {
	if insp == nil {
		return nil, errors.New("server: inspector must not be nil")
	}

	schema, err := compileRequestSchema()
	if err != nil {
		return nil, err
	}

	log := opts.Log
	if log == nil {
		log = logger.NewJSONLogger(nil, true)
	}

	origins := opts.AllowOrigins
	if origins == "" {
		origins = "*"
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				if e, ok := err.(*fiber.Error); ok {
					code = e.Code
				}
				return c.Status(code).SendString(err.Error())
			},
		}),
		insp:   insp,
		schema: schema,
		log:    log,
	}

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
	}))

	s.app.Get("/health", s.health)
	s.app.Post("/validate_certificate", s.validateCertificate)

	return s, nil
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	s.log.Printf("HTTP server listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return <-errCh
	}
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) validateCertificate(c *fiber.Ctx) error {
	body := c.Body()
	if err := checkRequest(s.schema, body); err != nil {
		s.log.Printf("Rejected request from %s: %v", c.IP(), err)
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("%v: %v", ErrInvalidRequest, err))
	}

	res, err := s.insp.Inspect(c.UserContext(), req.Domain)
	if err != nil {
		status, msg := statusFor(err)
		s.log.Printf("Inspection of %s failed (%d): %v", req.Domain, status, err)
		return c.Status(status).SendString(msg)
	}

	s.log.Printf("Inspection of %s succeeded", req.Domain)
	return c.Status(fiber.StatusOK).JSON(res)
}

// statusFor maps an inspection error to its HTTP status and response body.
func statusFor(err error) (int, string) {
	if x509inspect.ClassOf(err) == x509inspect.ClassEvaluation {
		return fiber.StatusInternalServerError, "Validation error: " + err.Error()
	}
	return fiber.StatusBadRequest, "Error fetching certificate: " + err.Error()
}

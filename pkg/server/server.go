// Package server exposes stored profiles over HTTP.
package server

import (
	"context"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nikogura/cvforge/pkg/export"
	"github.com/nikogura/cvforge/pkg/llm"
	"github.com/nikogura/cvforge/pkg/ordering"
	"github.com/nikogura/cvforge/pkg/profile"
	"github.com/nikogura/cvforge/pkg/render"
	"github.com/nikogura/cvforge/pkg/store"
)

// LatexGenerator turns the LaTeX prompt text into a LaTeX document.
type LatexGenerator interface {
	GenerateLatex(ctx context.Context, req llm.LatexRequest) (document string, err error)
}

// Server holds the collaborators behind the HTTP routes. Generator may be
// nil, in which case LaTeX generation answers 503.
type Server struct {
	Store     store.Store
	Resolver  *ordering.Resolver
	Generator LatexGenerator
	Exporter  *export.Exporter
	Logger    logrus.FieldLogger
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// New creates a Server, filling in a silent logger and a preset-only
// resolver when none are given.
func New(s store.Store, resolver *ordering.Resolver, generator LatexGenerator, exporter *export.Exporter, logger logrus.FieldLogger) (srv *Server) {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	if resolver == nil {
		resolver = ordering.NewResolver(nil, logger)
	}
	if exporter == nil {
		exporter = &export.Exporter{}
	}
	srv = &Server{
		Store:     s,
		Resolver:  resolver,
		Generator: generator,
		Exporter:  exporter,
		Logger:    logger,
	}
	return srv
}

// App builds the fiber application with every route registered. The app is
// immutable because params and bodies are kept past the handler.
func (s *Server) App() (app *fiber.App) {
	app = fiber.New(fiber.Config{
		AppName:               "cvforge",
		DisableStartupMessage: true,
		Immutable:             true,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	p := app.Group("/profiles/:user")
	p.Get("/", s.getProfile)
	p.Put("/", s.putProfile)
	p.Delete("/", s.deleteProfile)
	p.Post("/order", s.postOrder)
	p.Get("/render", s.getRender)
	p.Get("/export", s.getExport)
	p.Post("/latex", s.postLatex)
	p.Post("/items/:section", s.postItem)
	p.Get("/items/:section/:id", s.getItem)
	p.Put("/items/:section/:id", s.putItem)
	p.Delete("/items/:section/:id", s.deleteItem)

	return app
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) (err error) {
	app := s.App()

	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%d", port)
	s.Logger.WithField("addr", addr).Info("cvforge server listening")

	err = app.Listen(addr)
	if err != nil {
		err = errors.Wrapf(err, "server on %s failed", addr)
		return err
	}
	return err
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) (status int) {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, profile.ErrItemNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, render.ErrUnsupportedTarget),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, profile.ErrSchemaViolation),
		errors.Is(err, profile.ErrUnknownSection),
		errors.Is(err, profile.ErrInvalidItem):
		status = fiber.StatusBadRequest
	default:
		status = fiber.StatusInternalServerError
	}
	return status
}

// fail logs err and writes it as a JSON error body.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	entry := s.Logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"status": status,
	})
	if status >= fiber.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	return c.Status(status).JSON(errorResponse{Error: err.Error()})
}

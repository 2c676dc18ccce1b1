// Package server exposes sheet generation over HTTP for previews and
// downloads.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ByLCY/omrkit/renderer"
	canvasrenderer "github.com/ByLCY/omrkit/renderer/canvas"
)

type (
	Options struct {
		Address        string
		Debug          bool
		DisableReqLogs bool
		LogLevel       log.Lvl
		// Fonts is passed to the canvas renderer (Bengali font slots).
		Fonts map[string]canvasrenderer.Resource
		// Data is merged under the query values when binding ${...} placeholders.
		Data map[string]any
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts      *Options
		app       *echo.Echo
		renderers map[renderer.Format]renderer.Renderer
		renderMu  sync.Mutex // one render at a time
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts == nil {
		opts = &Options{}
	}
	app := echo.New()
	logger, _ := app.Logger.(*log.Logger)
	s := &server{
		opts: opts,
		app:  app,
		renderers: map[renderer.Format]renderer.Renderer{
			renderer.PDF: canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Format: renderer.PDF, Fonts: opts.Fonts, Logger: logger}),
			renderer.SVG: canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Format: renderer.SVG, Fonts: opts.Fonts, Logger: logger}),
		},
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.opts.Debug
	if s.opts.LogLevel != 0 {
		s.app.Logger.SetLevel(s.opts.LogLevel)
	}

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in debug mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.app.Logger)

	s.app.GET("/healthz", healthz)
	s.app.GET("/omr/generator", s.generate)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func healthz(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

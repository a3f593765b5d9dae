// Package server exposes the workspace over HTTP for browser front ends.
package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/example/gridsketch/internal/workspace"
)

// Server wires HTTP routes to a workspace.
type Server struct {
	app *fiber.App
	ws  *workspace.Workspace
}

// Option configures a Server.
type Option func(*fiber.Config)

// WithTimeouts sets read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(c *fiber.Config) {
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// WithBodyLimit caps request bodies, which bounds dropped file size.
func WithBodyLimit(n int) Option {
	return func(c *fiber.Config) { c.BodyLimit = n }
}

// New builds the fiber app and registers every route.
func New(ws *workspace.Workspace, opts ...Option) *Server {
	cfg := fiber.Config{
		AppName:      "gridsketch",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    32 << 20,
	}
	for _, o := range opts {
		o(&cfg)
	}
	s := &Server{app: fiber.New(cfg), ws: ws}
	s.app.Use(recover.New())
	s.app.Use(requestLogger())
	s.routes()
	return s
}

func requestLogger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

func (s *Server) routes() {
	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	api := s.app.Group("/api")
	api.Get("/state", s.state)
	api.Put("/layout", s.setLayout)
	api.Post("/tab", s.setTab)

	api.Post("/canvases/:n/drag/enter", s.dragEnter)
	api.Post("/canvases/:n/drag/over", s.dragOver)
	api.Post("/canvases/:n/drag/leave", s.dragLeave)
	api.Post("/canvases/:n/drop", s.drop)
	api.Post("/canvases/:n/select", s.selectAt)
	api.Post("/canvases/:n/clear", s.clear)
	api.Post("/canvases/:n/add", s.quickAdd)
	api.Post("/canvases/:n/paste", s.paste)
	api.Post("/canvases/:n/copy", s.copyCanvas)
	api.Get("/canvases/:n/png", s.png)
	api.Get("/canvases/:n/export", s.export)

	api.Get("/panel", s.panel)
	api.Delete("/selection", s.deselect)
	api.Patch("/selection", s.patchSelection)
	api.Post("/selection/move", s.move)
	api.Post("/selection/front", s.front)
	api.Post("/selection/back", s.back)
	api.Delete("/selection/object", s.deleteObject)

	api.Post("/console", s.console)
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	log.Printf("gridsketch: serving on %s", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

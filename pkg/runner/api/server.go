// Package api serves the planner as a small JSON HTTP API.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/export"
	"tableflip.dev/planner/pkg/stats"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

const maxRangeDays = 366

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr string
	// LogOutput receives one access log line per request. Nil means stderr.
	LogOutput io.Writer
	// OnListening is called once the listener is up.
	OnListening func(addr string)
}

// Server exposes the Fiber application.
type Server struct {
	app   *fiber.App
	svc   *app.Service
	clock timeutil.Clock
	cfg   Config
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, svc *app.Service, clock timeutil.Clock) *Server {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	fa := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          errorHandler,
	})
	fa.Use(recover.New())
	fa.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path}\n",
		Output: out,
	}))

	srv := &Server{app: fa, svc: svc, clock: clock, cfg: cfg}
	srv.registerRoutes()
	return srv
}

// App exposes the underlying fiber application, for tests.
func (s *Server) App() *fiber.App { return s.app }

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	if s.cfg.OnListening != nil {
		s.app.Hooks().OnListen(func(ld fiber.ListenData) error {
			s.cfg.OnListening(ld.Host + ":" + ld.Port)
			return nil
		})
	}
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	api.Get("/days/:date", s.handleGetDay)
	api.Get("/range", s.handleRange)
	api.Post("/days/:date/items", s.handleAddItem)
	api.Put("/days/:date/items/:id", s.handleUpdateItem)
	api.Delete("/days/:date/items/:id", s.handleDeleteItem)
	api.Post("/days/:date/reorder", s.handleReorder)
	api.Post("/items/:id/move", s.handleMoveItem)
	api.Get("/stats", s.handleStats)
	api.Get("/export", s.handleExport)
}

func (s *Server) date(raw string) (string, error) {
	key, err := timeutil.ResolveDate(s.clock.Now(), raw)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid date %q", raw))
	}
	return key, nil
}

func (s *Server) handleGetDay(c *fiber.Ctx) error {
	date, err := s.date(c.Params("date"))
	if err != nil {
		return err
	}
	day, err := s.svc.Day(date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": day, "meta": fiber.Map{"count": len(day.Items)}})
}

func (s *Server) handleRange(c *fiber.Ctx) error {
	from, err := s.date(c.Query("from"))
	if err != nil {
		return err
	}
	to := from
	if raw := c.Query("to"); raw != "" {
		if to, err = s.date(raw); err != nil {
			return err
		}
	}
	a, _ := timeutil.ParseDateKey(from)
	b, _ := timeutil.ParseDateKey(to)
	if b.Before(a) {
		return fiber.NewError(fiber.StatusBadRequest, "to is before from")
	}

	var dates []time.Time
	for d := a; !d.After(b); d = d.AddDate(0, 0, 1) {
		if len(dates) == maxRangeDays {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("range is longer than %d days", maxRangeDays))
		}
		dates = append(dates, d)
	}
	days := s.svc.Snapshot().Range(dates)
	return c.JSON(fiber.Map{"data": days, "meta": fiber.Map{"count": len(days)}})
}

type addItemInput struct {
	Kind string `json:"kind"`
	app.Patch
}

func (s *Server) handleAddItem(c *fiber.Ctx) error {
	date, err := s.date(c.Params("date"))
	if err != nil {
		return err
	}
	var payload addItemInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	kind, err := entry.ParseKind(payload.Kind)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := s.svc.Add(c.UserContext(), date, kind, payload.Patch)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": res})
}

func (s *Server) handleUpdateItem(c *fiber.Ctx) error {
	date, id, err := s.itemParams(c)
	if err != nil {
		return err
	}
	var patch app.Patch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	res, err := s.svc.Edit(c.UserContext(), date, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": s.current(res, date, id)})
}

func (s *Server) handleDeleteItem(c *fiber.Ctx) error {
	date, id, err := s.itemParams(c)
	if err != nil {
		return err
	}
	res, err := s.svc.Delete(c.UserContext(), date, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res})
}

type reorderInput struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleReorder(c *fiber.Ctx) error {
	date, err := s.date(c.Params("date"))
	if err != nil {
		return err
	}
	var payload reorderInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	n := len(s.svc.Snapshot().Items(date))
	if payload.From < 0 || payload.From >= n || payload.To < 0 || payload.To >= n {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("index out of range, %s has %d items", date, n))
	}

	res, err := s.svc.Reorder(c.UserContext(), date, payload.From, payload.To)
	if err != nil {
		return err
	}
	day, err := s.svc.Day(date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": day, "meta": fiber.Map{"changed": res.Changed}})
}

type moveInput struct {
	To string `json:"to"`
}

func (s *Server) handleMoveItem(c *fiber.Ctx) error {
	id := c.Params("id")
	var payload moveInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	to, err := s.date(payload.To)
	if err != nil {
		return err
	}
	if _, _, err := s.svc.Find(id); err != nil {
		return err
	}

	res, err := s.svc.Move(c.UserContext(), id, "", to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": s.current(res, to, id)})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	snap := s.svc.Snapshot()
	if raw := c.Query("date"); raw != "" {
		date, err := s.date(raw)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": stats.Day(snap, date)})
	}
	if last := c.Query("last"); last != "" {
		n, label, err := timeutil.ParseWindow(last)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"data": stats.ReportFor(snap, label, timeutil.LastDays(s.clock.Now(), n))})
	}
	return c.JSON(fiber.Map{"data": stats.Totals(snap)})
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	snap := s.svc.Snapshot()
	switch strings.ToLower(c.Query("format", "json")) {
	case "json":
		b, err := store.Encode(snap)
		if err != nil {
			return err
		}
		c.Type("json")
		return c.Send(b)
	case "ics":
		var buf bytes.Buffer
		if err := export.ICS(&buf, snap, s.clock.Now()); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
		return c.Send(buf.Bytes())
	}
	return fiber.NewError(fiber.StatusBadRequest, "format must be json or ics")
}

// itemParams resolves :date and :id and fails with 404 when the day does not
// hold the item.
func (s *Server) itemParams(c *fiber.Ctx) (string, string, error) {
	date, err := s.date(c.Params("date"))
	if err != nil {
		return "", "", err
	}
	id := c.Params("id")
	if s.svc.Snapshot().Index(date, id) < 0 {
		return "", "", fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("no item %s on %s", id, date))
	}
	return date, id, nil
}

// current fills an unchanged result with the item as it stands.
func (s *Server) current(res app.Result, date, id string) app.Result {
	if res.Changed {
		return res
	}
	if found, it, err := s.svc.Find(id); err == nil {
		res.Date, res.Item = found, &it
	} else {
		res.Date = date
	}
	return res
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, app.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, app.ErrInvalidDate), errors.Is(err, app.ErrInvalidKind):
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

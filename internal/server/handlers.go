package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/example/gridsketch/internal/canvas"
	"github.com/example/gridsketch/internal/console"
	"github.com/example/gridsketch/internal/dnd"
	"github.com/example/gridsketch/internal/layout"
	"github.com/example/gridsketch/internal/panel"
	"github.com/example/gridsketch/internal/selection"
	"github.com/example/gridsketch/internal/shape"
)

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// done answers a mutation: 200 with fresh state when something changed,
// 204 when the request was a silent no-op.
func (s *Server) done(c fiber.Ctx, changed bool) error {
	if !changed {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(s.ws.State())
}

// canvasParam reads the 1-based :n route parameter.
func canvasParam(c fiber.Ctx) (canvas.ID, error) {
	return console.ParseCanvas(c.Params("n"))
}

func floatValue(c fiber.Ctx, key string) (float64, error) {
	raw := c.FormValue(key)
	if raw == "" {
		raw = c.Query(key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

func (s *Server) state(c fiber.Ctx) error {
	return c.JSON(s.ws.State())
}

type layoutRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) setLayout(c fiber.Ctx) error {
	var req layoutRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, fmt.Errorf("invalid JSON payload"))
	}
	m, err := layout.ParseMode(req.Mode)
	if err != nil {
		return badRequest(c, err)
	}
	if err := s.ws.SetMode(m); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(s.ws.State())
}

func (s *Server) setTab(c fiber.Ctx) error {
	t := selection.Tab(strings.ToLower(c.FormValue("tab", c.Query("tab"))))
	if t != selection.TabElements && t != selection.TabProperties {
		return badRequest(c, fmt.Errorf("tab must be elements or properties"))
	}
	s.ws.SetTab(t)
	return c.JSON(s.ws.State())
}

func (s *Server) dragEnter(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	return s.done(c, s.ws.DragEnter(id))
}

func (s *Server) dragOver(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	return s.done(c, s.ws.DragOver(id))
}

func (s *Server) dragLeave(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	return s.done(c, s.ws.DragLeave(id))
}

// drop accepts either a shape tag (form fields kind, x, y) or one or more
// multipart files under "file".
func (s *Server) drop(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	if form, ferr := c.MultipartForm(); ferr == nil && len(form.File["file"]) > 0 {
		var files []dnd.File
		for _, fh := range form.File["file"] {
			f, err := fh.Open()
			if err != nil {
				return badRequest(c, fmt.Errorf("failed to open file"))
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return badRequest(c, fmt.Errorf("failed to read file"))
			}
			files = append(files, dnd.FromBytes(fh.Filename, fh.Header.Get("Content-Type"), data))
		}
		log.Printf("server: %d file(s) dropped on canvas %d", len(files), int(id)+1)
		s.ws.DropFiles(id, files...)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"queued": len(files)})
	}
	kind := c.FormValue("kind")
	if kind == "" {
		return badRequest(c, fmt.Errorf("kind or file required"))
	}
	x, err := floatValue(c, "x")
	if err != nil {
		return badRequest(c, err)
	}
	y, err := floatValue(c, "y")
	if err != nil {
		return badRequest(c, err)
	}
	return s.done(c, s.ws.DropTag(id, kind, x, y))
}

func (s *Server) selectAt(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	x, err := floatValue(c, "x")
	if err != nil {
		return badRequest(c, err)
	}
	y, err := floatValue(c, "y")
	if err != nil {
		return badRequest(c, err)
	}
	return s.done(c, s.ws.Click(id, x, y))
}

func (s *Server) clear(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	return s.done(c, s.ws.Clear(id))
}

func (s *Server) quickAdd(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	kind := shape.Kind(strings.ToLower(c.FormValue("kind", c.Query("kind"))))
	if kind == "rect" {
		kind = shape.KindRectangle
	}
	if _, err := s.ws.QuickAdd(id, kind); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(s.ws.State())
}

func (s *Server) paste(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	if err := s.ws.Paste(id); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(s.ws.State())
}

func (s *Server) copyCanvas(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	if err := s.ws.Copy(id); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) png(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	data, _, err := s.ws.PNG(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Cache-Control", "no-store")
	c.Type("png")
	return c.Send(data)
}

func (s *Server) export(c fiber.Ctx) error {
	id, err := canvasParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	s.ws.Wait()
	data, name, err := s.ws.PNG(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	c.Attachment(name)
	return c.Send(data)
}

func (s *Server) panel(c fiber.Ctx) error {
	return c.JSON(s.ws.Panel())
}

func (s *Server) deselect(c fiber.Ctx) error {
	return s.done(c, s.ws.Deselect())
}

// patchSelection applies a JSON object of control names to values, for
// example {"opacity": "70%", "fill": "#ff0000"}.
func (s *Server) patchSelection(c fiber.Ctx) error {
	var req map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, fmt.Errorf("invalid JSON payload"))
	}
	changed := false
	for key, raw := range req {
		ctl, ok := panel.ParseControl(key)
		if !ok {
			return badRequest(c, fmt.Errorf("unknown control %q", key))
		}
		value, err := rawValue(raw)
		if err != nil {
			return badRequest(c, fmt.Errorf("%s: %w", key, err))
		}
		ok, err = s.ws.Apply(ctl, value)
		if err != nil {
			return badRequest(c, err)
		}
		changed = changed || ok
	}
	if !changed {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(s.ws.Panel())
}

// rawValue accepts JSON strings and numbers.
func rawValue(raw json.RawMessage) (string, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}
	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return "", fmt.Errorf("value must be a string or number")
	}
	return num.String(), nil
}

type moveRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *Server) move(c fiber.Ctx) error {
	var req moveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, fmt.Errorf("invalid JSON payload"))
	}
	return s.done(c, s.ws.Move(req.DX, req.DY))
}

func (s *Server) front(c fiber.Ctx) error {
	return s.done(c, s.ws.BringToFront())
}

func (s *Server) back(c fiber.Ctx) error {
	return s.done(c, s.ws.SendToBack())
}

func (s *Server) deleteObject(c fiber.Ctx) error {
	return s.done(c, s.ws.Delete())
}

// console runs one command line per body line and returns the output.
func (s *Server) console(c fiber.Ctx) error {
	var out bytes.Buffer
	in := console.New(s.ws, &out)
	if err := in.Run(bytes.NewReader(c.Body())); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "output": out.String()})
	}
	return c.JSON(fiber.Map{"output": out.String()})
}

package http

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-maker/internal/domain"
	"resume-maker/internal/model"
	"resume-maker/internal/usecase"
)

type Handler struct {
	session *usecase.Session
	logger  *slog.Logger
}

func NewHandler(s *usecase.Session, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{session: s, logger: logger}
}

type fieldReq struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

type moveReq struct {
	Direction string `json:"direction"`
}

type valueReq struct {
	Value string `json:"value"`
}

type templateReq struct {
	Template string `json:"template"`
}

type accentReq struct {
	Color string `json:"color"`
}

func (h *Handler) Page(c *fiber.Ctx) error {
	page, err := h.session.StandaloneHTML(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(page)
}

func (h *Handler) State(c *fiber.Ctx) error {
	st, err := h.session.State(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(st)
}

// Preview returns the styled render. A matching If-None-Match yields 304.
func (h *Handler) Preview(c *fiber.Ctx) error {
	p, err := h.session.Preview(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	etag := `"` + p.ETag + `"`
	c.Set(fiber.HeaderETag, etag)
	if match := c.Get(fiber.HeaderIfNoneMatch); match != "" && (match == etag || match == p.ETag) {
		return c.SendStatus(fiber.StatusNotModified)
	}
	return c.JSON(p)
}

func (h *Handler) Input(c *fiber.Ctx) error {
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.session.Input(c.UserContext(), req.Name, req.Value); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Change(c *fiber.Ctx) error {
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.session.Change(c.UserContext(), req.Name, req.Value, req.Checked); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddItem(c *fiber.Ctx) error {
	sec, err := model.ParseSection(c.Params("section"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	view, err := h.session.AddItem(c.UserContext(), sec)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	sec, err := model.ParseSection(c.Params("section"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.session.RemoveItem(c.UserContext(), sec, c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) MoveItem(c *fiber.Ctx) error {
	sec, err := model.ParseSection(c.Params("section"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	var req moveReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	d, err := usecase.ParseDirection(req.Direction)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.session.MoveItem(c.UserContext(), sec, c.Params("id"), d); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) EditItem(c *fiber.Ctx) error {
	sec, err := model.ParseSection(c.Params("section"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	var req valueReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.session.EditItem(c.UserContext(), sec, c.Params("id"), c.Params("field"), req.Value); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPhoto accepts a multipart "photo" file or a raw image body. Encoding
// finishes in the background.
func (h *Handler) UploadPhoto(c *fiber.Ctx) error {
	data, contentType, err := upload(c, "photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.session.UploadPhoto(c.UserContext(), data, contentType); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "processing"})
}

func (h *Handler) RemovePhoto(c *fiber.Ctx) error {
	if err := h.session.RemovePhoto(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SetTemplate(c *fiber.Ctx) error {
	var req templateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.session.SetTemplate(c.UserContext(), req.Template); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SetAccentColor(c *fiber.Ctx) error {
	var req accentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.session.SetAccentColor(c.UserContext(), req.Color); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Zoom(c *fiber.Ctx) error {
	a, err := usecase.ParseZoomAction(c.Params("action"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	z, err := h.session.Zoom(c.UserContext(), a)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"zoom": z})
}

func (h *Handler) Save(c *fiber.Ctx) error {
	if err := h.session.Save(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "saved"})
}

func (h *Handler) Load(c *fiber.Ctx) error {
	loaded, err := h.session.Load(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"loaded": loaded})
}

// Import accepts a multipart "file" or a raw JSON body.
func (h *Handler) Import(c *fiber.Ctx) error {
	raw, _, err := upload(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.session.Import(c.UserContext(), raw); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "imported"})
}

func (h *Handler) Export(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		dl  usecase.Download
		err error
	)
	switch format := strings.ToLower(c.Params("format")); format {
	case "json":
		dl, err = h.session.ExportJSON(ctx)
	case "html":
		dl, err = h.session.ExportHTML(ctx)
	case "md", "markdown":
		dl, err = h.session.ExportMarkdown(ctx)
	case "pdf", "png", "jpeg", "jpg":
		cfg, perr := h.exportConfig(c, format)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": perr.Error()})
		}
		dl, err = h.session.ExportDocument(ctx, cfg)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": fmt.Sprintf("unknown export format %q", format)})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return sendDownload(c, dl)
}

// exportConfig overlays query parameters on the session's export defaults.
func (h *Handler) exportConfig(c *fiber.Ctx, format string) (domain.ExportConfig, error) {
	cfg := h.session.ExportDefaults()
	if format == "jpg" {
		format = "jpeg"
	}
	cfg.Output = domain.OutputFormat(format)

	floats := []struct {
		key string
		dst *float64
	}{
		{"margin", &cfg.MarginInches},
		{"quality", &cfg.ImageQuality},
		{"scale", &cfg.Scale},
	}
	for _, f := range floats {
		v := c.Query(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q", f.key, v)
		}
		*f.dst = n
	}
	if v := c.Query("pageFormat"); v != "" {
		cfg.PageFormat = strings.ToLower(v)
	}
	if v := c.Query("orientation"); v != "" {
		cfg.Orientation = strings.ToLower(v)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Shortcut resolves a key press. When the bound action produced a file, the
// file is the response.
func (h *Handler) Shortcut(c *fiber.Ctx) error {
	var ev usecase.KeyEvent
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	res, err := h.session.HandleKey(c.UserContext(), ev)
	if err != nil {
		return h.fail(c, err)
	}
	if res.Download != nil {
		c.Set("X-Shortcut-Action", string(res.Action))
		return sendDownload(c, *res.Download)
	}
	return c.JSON(res)
}

// RecentExports lists recorded export artifacts, newest first.
func (h *Handler) RecentExports(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 100"})
	}
	list, err := h.session.RecentExports(c.UserContext(), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) Notifications(c *fiber.Ctx) error {
	return c.JSON(h.session.Notifications())
}

func (h *Handler) DismissNotification(c *fiber.Ctx) error {
	h.session.DismissNotification(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func sendDownload(c *fiber.Ctx, dl usecase.Download) error {
	c.Set(fiber.HeaderContentType, dl.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", dl.FileName))
	return c.Send(dl.Body)
}

// upload reads a multipart file field, falling back to the raw body.
func upload(c *fiber.Ctx, field string) ([]byte, string, error) {
	if fh, err := c.FormFile(field); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return data, fh.Header.Get(fiber.HeaderContentType), nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, "", fmt.Errorf("missing %s", field)
	}
	data := make([]byte, len(body))
	copy(data, body)
	return data, c.Get(fiber.HeaderContentType), nil
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	} else {
		h.logger.Debug("Request rejected", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

package usecase

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/google/uuid"

	"resume-maker/internal/domain"
	"resume-maker/internal/markup"
	"resume-maker/internal/metrics"
	"resume-maker/internal/model"
	"resume-maker/internal/theme"
)

//go:embed templates/document.html.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/document.html.tmpl"))

// ErrNoRenderer is returned when document export is requested without a renderer.
var ErrNoRenderer = errors.New("no document renderer configured")

// DocumentRenderer turns a standalone HTML document into a PDF or image file.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, html string, cfg domain.ExportConfig) ([]byte, error)
}

// ExportsRepo records produced files.
type ExportsRepo interface {
	Save(ctx context.Context, a *domain.ExportArtifact) error
	Recent(ctx context.Context, limit int) ([]domain.ExportArtifact, error)
}

// ExporterConfig wires an Exporter. Renderer, Repo and Dir are optional.
type ExporterConfig struct {
	Renderer DocumentRenderer
	Themes   *theme.Registry
	Repo     ExportsRepo
	Dir      string
	Defaults domain.ExportConfig
	Notifier Notifier
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Exporter assembles standalone documents from the record.
type Exporter struct {
	renderer DocumentRenderer
	themes   *theme.Registry
	repo     ExportsRepo
	dir      string
	defaults domain.ExportConfig
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	markdown *md.Converter
}

func NewExporter(cfg ExporterConfig) *Exporter {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Defaults == (domain.ExportConfig{}) {
		cfg.Defaults = domain.DefaultExportConfig()
	}
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	return &Exporter{
		renderer: cfg.Renderer,
		themes:   cfg.Themes,
		repo:     cfg.Repo,
		dir:      cfg.Dir,
		defaults: cfg.Defaults,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		markdown: conv,
	}
}

// Defaults returns the export options used when a request names none.
func (e *Exporter) Defaults() domain.ExportConfig {
	return e.defaults
}

func title(doc model.Document) string {
	if name := model.FormatValue(doc[model.FieldFullName]); name != "" {
		return name
	}
	return "Resume"
}

// StandaloneHTML renders doc into a self-contained HTML document.
func (e *Exporter) StandaloneHTML(doc model.Document, sel domain.TemplateSelection) (string, error) {
	body, err := markup.Render(Render(model.Decode(doc), sel.Template))
	if err != nil {
		return "", err
	}
	css := ""
	if e.themes != nil {
		css = e.themes.CSS(sel)
	}
	var buf bytes.Buffer
	err = documentTemplate.Execute(&buf, map[string]any{
		"Title": title(doc),
		"CSS":   template.CSS(css),
		"Body":  template.HTML(body),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportHTML produces the standalone HTML download.
func (e *Exporter) ExportHTML(ctx context.Context, doc model.Document, sel domain.TemplateSelection) (Download, error) {
	page, err := e.StandaloneHTML(doc, sel)
	e.metrics.Export("html", err)
	if err != nil {
		return Download{}, &domain.ExportError{Format: "html", Err: err}
	}
	dl := Download{FileName: BaseName(doc) + ".html", ContentType: "text/html; charset=utf-8", Body: []byte(page)}
	e.record(ctx, "html", doc, sel, dl)
	e.notify(domain.LevelSuccess, "HTML file downloaded successfully!")
	return dl, nil
}

// ExportMarkdown converts the rendered document to Markdown.
func (e *Exporter) ExportMarkdown(ctx context.Context, doc model.Document, sel domain.TemplateSelection) (Download, error) {
	body, err := markup.Render(Render(model.Decode(doc), sel.Template))
	if err == nil {
		body, err = e.markdown.ConvertString(body)
	}
	e.metrics.Export("md", err)
	if err != nil {
		return Download{}, &domain.ExportError{Format: "md", Err: err}
	}
	dl := Download{FileName: BaseName(doc) + ".md", ContentType: "text/markdown; charset=utf-8", Body: []byte(body)}
	e.record(ctx, "md", doc, sel, dl)
	e.notify(domain.LevelSuccess, "Markdown file downloaded successfully!")
	return dl, nil
}

// ExportDocument hands the standalone document to the renderer once. Failures
// are reported and returned as *domain.ExportError; there is no retry.
func (e *Exporter) ExportDocument(ctx context.Context, doc model.Document, sel domain.TemplateSelection, cfg domain.ExportConfig) (Download, error) {
	label := strings.ToUpper(string(cfg.Output))
	e.notify(domain.LevelInfo, fmt.Sprintf("Generating %s...", label))

	data, err := e.renderDocument(ctx, doc, sel, cfg)
	e.metrics.Export(string(cfg.Output), err)
	if err != nil {
		e.logger.Error("Export failed", "format", cfg.Output, "error", err)
		e.notify(domain.LevelError, fmt.Sprintf("Error generating %s. Please try again.", label))
		return Download{}, &domain.ExportError{Format: string(cfg.Output), Err: err}
	}

	dl := Download{
		FileName:    BaseName(doc) + "." + cfg.Output.Extension(),
		ContentType: cfg.Output.ContentType(),
		Body:        data,
	}
	e.record(ctx, string(cfg.Output), doc, sel, dl)
	e.notify(domain.LevelSuccess, fmt.Sprintf("%s downloaded successfully!", label))
	return dl, nil
}

func (e *Exporter) renderDocument(ctx context.Context, doc model.Document, sel domain.TemplateSelection, cfg domain.ExportConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}
	page, err := e.StandaloneHTML(doc, sel)
	if err != nil {
		return nil, err
	}
	data, err := e.renderer.RenderDocument(ctx, page, cfg)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("renderer returned no data")
	}
	if cfg.Output == domain.OutputPDF && !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, fmt.Errorf("invalid PDF output (len=%d)", len(data))
	}
	return data, nil
}

// Recent lists the latest recorded exports, newest first.
func (e *Exporter) Recent(ctx context.Context, limit int) ([]domain.ExportArtifact, error) {
	if e.repo == nil {
		return []domain.ExportArtifact{}, nil
	}
	out, err := e.repo.Recent(ctx, limit)
	if err != nil {
		return nil, &domain.StorageError{Key: "resume_exports", Err: err}
	}
	if out == nil {
		out = []domain.ExportArtifact{}
	}
	return out, nil
}

func (e *Exporter) notify(level domain.Level, msg string) {
	if e.notifier != nil {
		e.notifier.Notify(level, msg)
	}
}

// record keeps a copy of dl under the export directory and registers it in
// the exports repository. Both steps are best-effort.
func (e *Exporter) record(ctx context.Context, kind string, doc model.Document, sel domain.TemplateSelection, dl Download) {
	if e.dir == "" && e.repo == nil {
		return
	}
	a := &domain.ExportArtifact{
		ID:        uuid.New(),
		Kind:      kind,
		FileName:  dl.FileName,
		FileSize:  len(dl.Body),
		Template:  sel.Template,
		Title:     title(doc),
		CreatedAt: time.Now(),
	}
	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0o755); err != nil {
			e.logger.Warn("Unable to create export directory (non-fatal)", "dir", e.dir, "error", err)
		} else {
			name := fmt.Sprintf("%s_%s", a.CreatedAt.Format("20060102T150405"), SafeFileName(dl.FileName))
			p := filepath.Join(e.dir, name)
			if err := os.WriteFile(p, dl.Body, 0o644); err != nil {
				e.logger.Warn("Unable to write export artifact (non-fatal)", "path", p, "error", err)
			} else {
				a.FilePath = p
			}
		}
	}
	if e.repo != nil {
		if err := e.repo.Save(ctx, a); err != nil {
			e.logger.Warn("Unable to record export (non-fatal)", "id", a.ID, "error", err)
		}
	}
}

// SafeFileName makes name usable as a single path element.
func SafeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)
	if name == "." || name == ".." {
		return "_"
	}
	return name
}

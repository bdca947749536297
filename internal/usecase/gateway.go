package usecase

import (
	"context"
	"log/slog"
	"strings"

	"resume-maker/internal/domain"
	"resume-maker/internal/metrics"
	"resume-maker/internal/model"
)

// Keys of the persisted entries.
const (
	KeyData        = "resumeData"
	KeyTemplate    = "resumeTemplate"
	KeyAccentColor = "resumeAccentColor"
)

// Storage is a string key/value store. Get reports found=false for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Download is a file handed to the user.
type Download struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Loaded is the state read back from storage.
type Loaded struct {
	Doc       model.Document
	HasData   bool
	Selection domain.TemplateSelection
}

// Gateway moves the record between the store, persistent storage and
// exchange files.
type Gateway struct {
	storage  Storage
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewGateway(storage Storage, notifier Notifier, logger *slog.Logger, m *metrics.Metrics) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{storage: storage, notifier: notifier, logger: logger, metrics: m}
}

// Save writes the record and the template selection. A failure is reported
// as an error notification and returned as a *domain.StorageError; the entries
// written before the failure stay written.
func (g *Gateway) Save(ctx context.Context, doc model.Document, sel domain.TemplateSelection, trigger string) error {
	err := g.save(ctx, doc, sel)
	g.metrics.Save(trigger, err)
	if err != nil {
		g.logger.Error("Save failed", "trigger", trigger, "error", err)
		g.notifier.Notify(domain.LevelError, "Error saving data. Storage might be full.")
		return err
	}
	g.notifier.Notify(domain.LevelSuccess, "Data saved successfully!")
	return nil
}

func (g *Gateway) save(ctx context.Context, doc model.Document, sel domain.TemplateSelection) error {
	raw, err := model.ToExchange(doc)
	if err != nil {
		return &domain.StorageError{Key: KeyData, Err: err}
	}
	entries := []struct{ key, value string }{
		{KeyData, string(raw)},
		{KeyTemplate, string(sel.Template)},
		{KeyAccentColor, sel.AccentColor},
	}
	for _, e := range entries {
		if err := g.storage.Set(ctx, e.key, e.value); err != nil {
			return &domain.StorageError{Key: e.key, Err: err}
		}
	}
	return nil
}

// Load reads the persisted state. It returns false when nothing usable is
// stored; read and parse failures are logged and count as nothing stored.
func (g *Gateway) Load(ctx context.Context) (Loaded, bool) {
	out := Loaded{Doc: model.Default(), Selection: domain.DefaultSelection()}

	raw, found, err := g.storage.Get(ctx, KeyData)
	if err != nil {
		g.logger.Error("Error loading from storage", "error", &domain.StorageError{Key: KeyData, Err: err})
		return out, false
	}
	if found {
		doc, err := model.FromExchange([]byte(raw))
		if err != nil {
			g.logger.Error("Error loading from storage", "error", err)
			return Loaded{Doc: model.Default(), Selection: domain.DefaultSelection()}, false
		}
		out.Doc = doc
		out.HasData = true
	}

	loaded := out.HasData
	if v, ok := g.read(ctx, KeyTemplate); ok {
		if id, err := domain.ParseTemplate(v); err == nil {
			out.Selection.Template = id
			loaded = true
		} else {
			g.logger.Warn("Ignoring stored template", "template", v, "error", err)
		}
	}
	if v, ok := g.read(ctx, KeyAccentColor); ok {
		if err := domain.ValidateAccentColor(v); err == nil {
			out.Selection.AccentColor = v
			loaded = true
		} else {
			g.logger.Warn("Ignoring stored accent color", "color", v, "error", err)
		}
	}
	return out, loaded
}

func (g *Gateway) read(ctx context.Context, key string) (string, bool) {
	v, found, err := g.storage.Get(ctx, key)
	if err != nil {
		g.logger.Error("Error loading from storage", "error", &domain.StorageError{Key: key, Err: err})
		return "", false
	}
	return v, found && v != ""
}

// ExportJSON produces the indented exchange file of doc.
func (g *Gateway) ExportJSON(doc model.Document) (Download, error) {
	body, err := model.ToExchangeIndent(doc)
	g.metrics.Export("json", err)
	if err != nil {
		return Download{}, &domain.ExportError{Format: "json", Err: err}
	}
	g.notifier.Notify(domain.LevelSuccess, "JSON file exported successfully!")
	return Download{
		FileName:    BaseName(doc) + "_data.json",
		ContentType: "application/json",
		Body:        body,
	}, nil
}

// ImportJSON parses an exchange file. On failure exactly one error
// notification is raised and the caller keeps its state.
func (g *Gateway) ImportJSON(raw []byte) (model.Document, error) {
	doc, err := model.FromExchange(raw)
	g.metrics.Import(err)
	if err != nil {
		g.logger.Warn("Import failed", "error", err)
		g.notifier.Notify(domain.LevelError, "Error importing data. Please check the file format.")
		return nil, err
	}
	return doc, nil
}

// BaseName is the download file name stem: the full name or "resume",
// reduced to a single path element.
func BaseName(doc model.Document) string {
	if name := strings.TrimSpace(model.FormatValue(doc[model.FieldFullName])); name != "" {
		return SafeFileName(name)
	}
	return "resume"
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"resume-maker/internal/domain"
	"resume-maker/internal/markup"
	"resume-maker/internal/metrics"
	"resume-maker/internal/model"
	"resume-maker/internal/theme"
)

// DefaultAutosaveInterval is the period of the unconditional autosave.
const DefaultAutosaveInterval = 30 * time.Second

// ErrSessionClosed is returned by Do once Run has returned.
var ErrSessionClosed = errors.New("session closed")

// Options wires a Session. Storage is required.
type Options struct {
	Storage          Storage
	Themes           *theme.Registry
	DocumentRenderer DocumentRenderer
	Exports          ExportsRepo
	ExportDir        string
	ExportDefaults   domain.ExportConfig
	AutosaveInterval time.Duration
	NotificationTTL  time.Duration
	Logger           *slog.Logger
	Metrics          *metrics.Metrics
}

// ItemView is the visible state of one section row.
type ItemView struct {
	ID     string            `json:"id"`
	Values model.SectionItem `json:"values"`
}

// State is a snapshot of the whole session.
type State struct {
	Record       model.Document               `json:"record"`
	Form         model.Document               `json:"form"`
	Sections     map[model.Section][]ItemView `json:"sections"`
	Selection    domain.TemplateSelection     `json:"selection"`
	Zoom         float64                      `json:"zoom"`
	PhotoPreview string                       `json:"photoPreview"`
	PhotoPending bool                         `json:"photoPending"`
}

// KeyResult reports what a key press did.
type KeyResult struct {
	Action         Action    `json:"action"`
	PreventDefault bool      `json:"preventDefault"`
	Download       *Download `json:"-"`
}

// Session owns the editing state of one user and runs its event loop. All
// mutation happens on the loop goroutine; other goroutines go through Do.
type Session struct {
	events chan func()
	done   chan struct{}

	logger  *slog.Logger
	metrics *metrics.Metrics

	store    *RecordStore
	sections *SectionList
	binder   *FormBinder
	photo    *PhotoLoader
	styler   *Styler
	gateway  *Gateway
	exporter *Exporter
	notices  *NotificationCenter

	selection domain.TemplateSelection
	zoom      float64
	preview   Preview
	autosave  time.Duration
}

// NewSession builds a session holding the default record.
func NewSession(opts Options) (*Session, error) {
	if opts.Storage == nil {
		return nil, errors.New("session: storage is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	themes := opts.Themes
	if themes == nil {
		var err error
		if themes, err = theme.NewRegistry("", logger); err != nil {
			return nil, err
		}
	}
	autosave := opts.AutosaveInterval
	if autosave <= 0 {
		autosave = DefaultAutosaveInterval
	}

	s := &Session{
		events:    make(chan func()),
		done:      make(chan struct{}),
		logger:    logger,
		metrics:   opts.Metrics,
		selection: domain.DefaultSelection(),
		zoom:      1,
		autosave:  autosave,
	}
	s.notices = NewNotificationCenter(opts.NotificationTTL, logger, opts.Metrics)
	s.store = NewRecordStore()
	s.sections = NewSectionList(s.notices)
	s.photo = NewPhotoLoader(s.post, logger)
	s.binder = NewFormBinder(s.store, s.sections, s.photo, s.refresh, logger)
	s.styler = NewStyler(themes)
	s.gateway = NewGateway(opts.Storage, s.notices, logger, opts.Metrics)
	s.exporter = NewExporter(ExporterConfig{
		Renderer: opts.DocumentRenderer,
		Themes:   themes,
		Repo:     opts.Exports,
		Dir:      opts.ExportDir,
		Defaults: opts.ExportDefaults,
		Notifier: s.notices,
		Logger:   logger,
		Metrics:  opts.Metrics,
	})
	s.refresh()
	return s, nil
}

// Start restores the persisted state and renders it. It must be called before Run.
func (s *Session) Start(ctx context.Context) bool {
	return s.load(ctx)
}

// Run processes events and autosaves until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	ticker := time.NewTicker(s.autosave)
	defer ticker.Stop()
	s.logger.Info("Session started", "autosave", s.autosave)
	for {
		select {
		case <-ctx.Done():
			s.photo.Cancel()
			s.logger.Info("Session stopped")
			return nil
		case fn := <-s.events:
			fn()
		case <-ticker.C:
			_ = s.gateway.Save(ctx, s.store.Snapshot(), s.selection, "autosave")
		}
	}
}

// Do runs fn on the event loop and waits for its result.
func (s *Session) Do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	task := func() { errc <- fn() }
	select {
	case s.events <- task:
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post queues fn without waiting for it to run.
func (s *Session) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

// refresh renders the record and applies the styling step.
func (s *Session) refresh() {
	tree := Render(s.store.Record(), s.selection.Template)
	s.preview = s.styler.Apply(tree, s.selection, s.zoom)
	s.metrics.Render()
}

func (s *Session) load(ctx context.Context) bool {
	st, ok := s.gateway.Load(ctx)
	if !ok {
		return false
	}
	if st.HasData {
		s.store.Replace(st.Doc)
		s.binder.Populate(s.store.Snapshot())
	}
	s.selection = st.Selection
	s.refresh()
	return true
}

func (s *Session) save(ctx context.Context, trigger string) error {
	return s.gateway.Save(ctx, s.store.Snapshot(), s.selection, trigger)
}

// Input forwards a character-level edit.
func (s *Session) Input(ctx context.Context, name, value string) error {
	return s.Do(ctx, func() error { return s.binder.Input(name, value) })
}

// Change forwards a committed value change.
func (s *Session) Change(ctx context.Context, name, value string, checked bool) error {
	return s.Do(ctx, func() error { return s.binder.Change(name, value, checked) })
}

// AddItem appends a blank row to a section.
func (s *Session) AddItem(ctx context.Context, sec model.Section) (ItemView, error) {
	var view ItemView
	err := s.Do(ctx, func() error {
		e, err := s.binder.AddItem(sec)
		if err != nil {
			return err
		}
		view = ItemView{ID: e.ID, Values: e.Values()}
		return nil
	})
	return view, err
}

// RemoveItem deletes a row; removing the last row of a section is refused.
func (s *Session) RemoveItem(ctx context.Context, sec model.Section, id string) error {
	return s.Do(ctx, func() error { return s.binder.RemoveItem(sec, id) })
}

// MoveItem swaps a row with its neighbour.
func (s *Session) MoveItem(ctx context.Context, sec model.Section, id string, d Direction) error {
	return s.Do(ctx, func() error { return s.binder.MoveItem(sec, id, d) })
}

// EditItem sets one field of a row.
func (s *Session) EditItem(ctx context.Context, sec model.Section, id, field, value string) error {
	return s.Do(ctx, func() error { return s.binder.EditItem(sec, id, field, value) })
}

// UploadPhoto starts encoding a photo; it is applied once encoding finishes.
func (s *Session) UploadPhoto(ctx context.Context, data []byte, contentType string) error {
	return s.Do(ctx, func() error { return s.binder.UploadPhoto(data, contentType) })
}

// RemovePhoto clears the photo.
func (s *Session) RemovePhoto(ctx context.Context) error {
	return s.Do(ctx, s.binder.RemovePhoto)
}

// SetTemplate switches the visual template, re-renders and saves.
func (s *Session) SetTemplate(ctx context.Context, name string) error {
	id, err := domain.ParseTemplate(name)
	if err != nil {
		return err
	}
	return s.Do(ctx, func() error {
		s.selection.Template = id
		s.refresh()
		_ = s.save(ctx, "template")
		return nil
	})
}

// SetAccentColor changes the accent color, re-renders and saves.
func (s *Session) SetAccentColor(ctx context.Context, color string) error {
	if err := domain.ValidateAccentColor(color); err != nil {
		return err
	}
	return s.Do(ctx, func() error {
		s.selection.AccentColor = color
		s.refresh()
		_ = s.save(ctx, "accent")
		return nil
	})
}

// Zoom changes the preview zoom and returns the new level.
func (s *Session) Zoom(ctx context.Context, a ZoomAction) (float64, error) {
	var z float64
	err := s.Do(ctx, func() error {
		s.zoom = a.Apply(s.zoom)
		s.preview = s.styler.Apply(s.preview.Tree, s.selection, s.zoom)
		z = s.zoom
		return nil
	})
	return z, err
}

// Save persists the current state. A storage failure has already been
// reported as a notification when it is returned.
func (s *Session) Save(ctx context.Context) error {
	return s.Do(ctx, func() error { return s.save(ctx, "manual") })
}

// Load replaces the state with the persisted one, if any.
func (s *Session) Load(ctx context.Context) (bool, error) {
	var loaded bool
	err := s.Do(ctx, func() error {
		loaded = s.load(ctx)
		return nil
	})
	return loaded, err
}

// Import replaces the record with an exchange file. Malformed input leaves
// the state untouched.
func (s *Session) Import(ctx context.Context, raw []byte) error {
	return s.Do(ctx, func() error {
		doc, err := s.gateway.ImportJSON(raw)
		if err != nil {
			return err
		}
		s.store.Replace(doc)
		s.binder.Populate(s.store.Snapshot())
		s.refresh()
		_ = s.save(ctx, "import")
		s.notices.Notify(domain.LevelSuccess, "Data imported successfully!")
		return nil
	})
}

func (s *Session) snapshot(ctx context.Context) (model.Document, domain.TemplateSelection, error) {
	var (
		doc model.Document
		sel domain.TemplateSelection
	)
	err := s.Do(ctx, func() error {
		doc = s.store.Snapshot()
		sel = s.selection
		return nil
	})
	return doc, sel, err
}

// ExportJSON returns the record as an indented exchange file.
func (s *Session) ExportJSON(ctx context.Context) (Download, error) {
	doc, _, err := s.snapshot(ctx)
	if err != nil {
		return Download{}, err
	}
	return s.gateway.ExportJSON(doc)
}

// ExportHTML returns the standalone HTML document.
func (s *Session) ExportHTML(ctx context.Context) (Download, error) {
	doc, sel, err := s.snapshot(ctx)
	if err != nil {
		return Download{}, err
	}
	return s.exporter.ExportHTML(ctx, doc, sel)
}

// ExportMarkdown returns the document converted to Markdown.
func (s *Session) ExportMarkdown(ctx context.Context) (Download, error) {
	doc, sel, err := s.snapshot(ctx)
	if err != nil {
		return Download{}, err
	}
	return s.exporter.ExportMarkdown(ctx, doc, sel)
}

// ExportDocument renders a PDF or image. The renderer runs outside the event
// loop so edits keep flowing while it works.
func (s *Session) ExportDocument(ctx context.Context, cfg domain.ExportConfig) (Download, error) {
	doc, sel, err := s.snapshot(ctx)
	if err != nil {
		return Download{}, err
	}
	return s.exporter.ExportDocument(ctx, doc, sel, cfg)
}

// RecentExports lists the latest recorded exports.
func (s *Session) RecentExports(ctx context.Context, limit int) ([]domain.ExportArtifact, error) {
	return s.exporter.Recent(ctx, limit)
}

// ExportDefaults returns the default document export options.
func (s *Session) ExportDefaults() domain.ExportConfig {
	return s.exporter.Defaults()
}

// HandleKey runs the action bound to a keyboard shortcut.
func (s *Session) HandleKey(ctx context.Context, ev KeyEvent) (KeyResult, error) {
	action, prevent := ResolveShortcut(ev)
	res := KeyResult{Action: action, PreventDefault: prevent}
	var (
		dl  Download
		err error
	)
	switch action {
	case ActionSave:
		err = s.Save(ctx)
		return res, err
	case ActionExportPDF:
		cfg := s.exporter.Defaults()
		cfg.Output = domain.OutputPDF
		dl, err = s.ExportDocument(ctx, cfg)
	case ActionExportJSON:
		dl, err = s.ExportJSON(ctx)
	default:
		return res, nil
	}
	if err != nil {
		return res, err
	}
	res.Download = &dl
	return res, nil
}

// State returns a snapshot of the session.
func (s *Session) State(ctx context.Context) (State, error) {
	var st State
	err := s.Do(ctx, func() error {
		st = State{
			Record:       s.store.Snapshot(),
			Form:         s.binder.FormData(),
			Sections:     map[model.Section][]ItemView{},
			Selection:    s.selection,
			Zoom:         s.zoom,
			PhotoPreview: s.binder.PhotoPreview(),
			PhotoPending: s.photo.Pending(),
		}
		for _, sec := range model.Sections {
			for _, e := range s.sections.Items(sec) {
				st.Sections[sec] = append(st.Sections[sec], ItemView{ID: e.ID, Values: e.Values()})
			}
		}
		return nil
	})
	return st, err
}

// Preview returns the latest styled render.
func (s *Session) Preview(ctx context.Context) (Preview, error) {
	var p Preview
	err := s.Do(ctx, func() error {
		p = s.preview
		p.Tree = markup.Clone(p.Tree)
		return nil
	})
	return p, err
}

// StandaloneHTML returns the current document as a full HTML page.
func (s *Session) StandaloneHTML(ctx context.Context) (string, error) {
	doc, sel, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}
	return s.exporter.StandaloneHTML(doc, sel)
}

// Notifications returns the notifications still visible.
func (s *Session) Notifications() []domain.Notification {
	return s.notices.Active()
}

// DismissNotification hides a notification early.
func (s *Session) DismissNotification(id string) {
	s.notices.Dismiss(id)
}

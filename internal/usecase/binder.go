package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"resume-maker/internal/model"
)

var (
	// ErrUnboundField is returned for events on a field with no bound element.
	ErrUnboundField = errors.New("no element bound to field")
	// ErrSectionField is returned when a section is edited as if it were a scalar.
	ErrSectionField = errors.New("sections are edited through their items")
)

// Element is the view state of one bound form control.
type Element struct {
	Name    string
	Kind    model.FieldKind
	Value   string
	Checked bool
}

// FormBinder keeps the form view and the record store in step. Every edit
// updates the store and re-renders before returning.
type FormBinder struct {
	store    *RecordStore
	sections *SectionList
	photo    *PhotoLoader
	render   func()
	logger   *slog.Logger

	elements     map[string]*Element
	photoPreview string
}

// NewFormBinder binds an element for every scalar field of the schema.
func NewFormBinder(store *RecordStore, sections *SectionList, photo *PhotoLoader, render func(), logger *slog.Logger) *FormBinder {
	if logger == nil {
		logger = slog.Default()
	}
	if render == nil {
		render = func() {}
	}
	b := &FormBinder{
		store:    store,
		sections: sections,
		photo:    photo,
		render:   render,
		logger:   logger,
		elements: map[string]*Element{},
	}
	for _, f := range model.ScalarFields {
		b.Bind(&Element{Name: f.Name, Kind: f.Kind})
	}
	return b
}

// Bind registers an element under its name, replacing any previous one.
func (b *FormBinder) Bind(el *Element) {
	b.elements[el.Name] = el
}

// Element returns the element bound to name.
func (b *FormBinder) Element(name string) (*Element, bool) {
	el, ok := b.elements[name]
	return el, ok
}

func (b *FormBinder) resolve(name string) (*Element, error) {
	if _, err := model.ParseSection(strings.SplitN(name, ".", 2)[0]); err == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrSectionField)
	}
	el, ok := b.elements[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnboundField)
	}
	if el.Kind == model.KindFile {
		return nil, fmt.Errorf("%s is set by uploading a file", name)
	}
	return el, nil
}

// Input handles a character-level edit of a field.
func (b *FormBinder) Input(name, value string) error {
	el, err := b.resolve(name)
	if err != nil {
		return err
	}
	if el.Kind == model.KindCheckbox {
		return b.Change(name, value, value == "true" || value == "on")
	}
	if err := b.store.Update(name, value); err != nil {
		return err
	}
	el.Value = value
	b.render()
	return nil
}

// Change handles a committed value change. Checkbox elements bind checked.
func (b *FormBinder) Change(name, value string, checked bool) error {
	el, err := b.resolve(name)
	if err != nil {
		return err
	}
	if el.Kind == model.KindCheckbox {
		if err := b.store.Update(name, checked); err != nil {
			return err
		}
		el.Checked = checked
		b.render()
		return nil
	}
	if err := b.store.Update(name, value); err != nil {
		return err
	}
	el.Value = value
	b.render()
	return nil
}

// AddItem appends a blank row to a section.
func (b *FormBinder) AddItem(s model.Section) (*ItemEditor, error) {
	e, err := b.sections.AddItem(s)
	if err != nil {
		return nil, err
	}
	if err := b.sync(s); err != nil {
		return nil, err
	}
	return e, nil
}

// RemoveItem deletes a row from a section.
func (b *FormBinder) RemoveItem(s model.Section, id string) error {
	if err := b.sections.RemoveItem(s, id); err != nil {
		return err
	}
	return b.sync(s)
}

// MoveItem moves a row of section s one step in direction d.
func (b *FormBinder) MoveItem(s model.Section, id string, d Direction) error {
	if indexOf(b.sections.lists[s], id) < 0 {
		return fmt.Errorf("%s/%s: %w", s, id, ErrItemNotFound)
	}
	if err := b.sections.MoveItem(id, d); err != nil {
		return err
	}
	return b.sync(s)
}

// EditItem sets one field of a section row.
func (b *FormBinder) EditItem(s model.Section, id, field, value string) error {
	if err := b.sections.SetField(s, id, field, value); err != nil {
		return err
	}
	return b.sync(s)
}

// sync writes the collected section back into the store and re-renders.
func (b *FormBinder) sync(s model.Section) error {
	if err := b.store.Update(string(s), model.ItemsValue(b.sections.Collect(s))); err != nil {
		return err
	}
	b.render()
	return nil
}

// Populate loads doc into the form. Elements are only overwritten by non-empty
// values; record keys without an element are skipped.
func (b *FormBinder) Populate(doc model.Document) {
	for name, el := range b.elements {
		v, ok := lookup(doc, name)
		if !ok || !truthy(v) {
			continue
		}
		switch el.Kind {
		case model.KindFile:
			if name == model.FieldPhoto {
				b.photoPreview, _ = v.(string)
			}
		case model.KindCheckbox:
			el.Checked = true
		default:
			el.Value = model.FormatValue(v)
		}
	}
	for _, s := range model.Sections {
		b.sections.Populate(s, model.Items(doc, s))
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	}
	return true
}

// FormData rebuilds the canonical record from the visible form. Keys the form
// does not show are carried over from the store.
func (b *FormBinder) FormData() model.Document {
	doc := b.store.Snapshot()
	for name, el := range b.elements {
		switch el.Kind {
		case model.KindFile:
			if name == model.FieldPhoto {
				doc[name] = b.photoPreview
			}
		case model.KindCheckbox:
			_ = setPath(doc, name, el.Checked)
		default:
			_ = setPath(doc, name, el.Value)
		}
	}
	for _, s := range model.Sections {
		doc[string(s)] = model.ItemsValue(b.sections.Collect(s))
	}
	return doc
}

// UploadPhoto starts encoding an uploaded image. The photo field and preview
// are updated when the encode completes; non-images are rejected up front.
func (b *FormBinder) UploadPhoto(data []byte, contentType string) error {
	return b.photo.Load(data, contentType, b.setPhoto)
}

func (b *FormBinder) setPhoto(uri string) {
	if err := b.store.Update(model.FieldPhoto, uri); err != nil {
		b.logger.Error("set photo failed", "error", err)
		return
	}
	b.photoPreview = uri
	b.render()
}

// RemovePhoto clears the photo field and its preview.
func (b *FormBinder) RemovePhoto() error {
	b.photo.Cancel()
	if err := b.store.Update(model.FieldPhoto, ""); err != nil {
		return err
	}
	b.photoPreview = ""
	b.render()
	return nil
}

// PhotoPreview returns the data URI shown next to the upload control.
func (b *FormBinder) PhotoPreview() string {
	return b.photoPreview
}

package usecase

import (
	"errors"
	"fmt"
	"strings"

	"resume-maker/internal/model"
)

// ErrPathConflict is returned when a path walks through a value that is not a mapping.
var ErrPathConflict = errors.New("path conflicts with a non-object value")

// RecordStore owns the canonical record. It is not safe for concurrent use; the
// session serializes every access through its event loop.
type RecordStore struct {
	doc model.Document
}

// NewRecordStore returns a store holding the default record.
func NewRecordStore() *RecordStore {
	return &RecordStore{doc: model.Default()}
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("path %q has an empty segment", path)
		}
	}
	return parts, nil
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case model.Document:
		return t, true
	}
	return nil, false
}

// Update sets the value at a dot-delimited path, creating missing intermediate
// objects. The record is left untouched when the path is rejected.
func (s *RecordStore) Update(path string, value any) error {
	return setPath(s.doc, path, value)
}

func setPath(doc model.Document, path string, value any) error {
	parts, err := splitPath(path)
	if err != nil {
		return err
	}
	cur := map[string]any(doc)
	for i, p := range parts[:len(parts)-1] {
		v, ok := cur[p]
		if !ok {
			break
		}
		next, ok := asMap(v)
		if !ok {
			return fmt.Errorf("%s: %w", strings.Join(parts[:i+1], "."), ErrPathConflict)
		}
		cur = next
	}

	cur = doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := asMap(cur[p])
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = model.Clone(value)
	return nil
}

// Get returns the value at a dot-delimited path.
func (s *RecordStore) Get(path string) (any, bool) {
	return lookup(s.doc, path)
}

func lookup(doc model.Document, path string) (any, bool) {
	parts, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	var cur any = doc
	for _, p := range parts {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[p]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Replace swaps the whole record.
func (s *RecordStore) Replace(doc model.Document) {
	if doc == nil {
		doc = model.Default()
	}
	s.doc = model.CloneDocument(doc)
}

// Snapshot returns a deep copy of the record.
func (s *RecordStore) Snapshot() model.Document {
	return model.CloneDocument(s.doc)
}

// Record returns the typed view used for rendering.
func (s *RecordStore) Record() model.Resume {
	return model.Decode(s.doc)
}

// Exchange serializes the record in the exchange format.
func (s *RecordStore) Exchange() ([]byte, error) {
	return model.ToExchange(s.doc)
}

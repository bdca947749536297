package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-maker/internal/domain"
	"resume-maker/internal/model"
)

// ErrItemNotFound is returned for an unknown item editor id.
var ErrItemNotFound = errors.New("item not found")

// Direction moves an item towards the start (Up) or end (Down) of its section.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// ParseDirection accepts "up" and "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ItemEditor is one visible row of a section.
type ItemEditor struct {
	ID      string
	Section model.Section
	values  map[string]string
}

func newItemEditor(s model.Section) *ItemEditor {
	e := &ItemEditor{ID: uuid.NewString(), Section: s, values: map[string]string{}}
	for _, f := range model.Schema[s].Fields {
		e.values[f.Name] = ""
	}
	return e
}

// Value returns the current value of a field.
func (e *ItemEditor) Value(field string) string {
	return e.values[field]
}

// Values returns a copy of every field, empty ones included.
func (e *ItemEditor) Values() model.SectionItem {
	out := make(model.SectionItem, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// CollectItem reads the fields of e whose trimmed value is non-empty.
func CollectItem(e *ItemEditor) model.SectionItem {
	out := model.SectionItem{}
	for _, f := range model.Schema[e.Section].Fields {
		v := strings.TrimSpace(e.values[f.Name])
		if v == "" {
			continue
		}
		out[f.Name] = v
	}
	return out
}

// SectionList holds the live item editors of every section. Each section
// always has at least one editor.
type SectionList struct {
	lists    map[model.Section][]*ItemEditor
	notifier Notifier
}

// NewSectionList creates one blank editor per section.
func NewSectionList(n Notifier) *SectionList {
	l := &SectionList{lists: map[model.Section][]*ItemEditor{}, notifier: n}
	for _, s := range model.Sections {
		l.lists[s] = []*ItemEditor{newItemEditor(s)}
	}
	return l
}

// Items returns the editors of a section in display order.
func (l *SectionList) Items(s model.Section) []*ItemEditor {
	return append([]*ItemEditor(nil), l.lists[s]...)
}

// AddItem appends a blank editor.
func (l *SectionList) AddItem(s model.Section) (*ItemEditor, error) {
	if _, ok := model.Schema[s]; !ok {
		return nil, fmt.Errorf("unknown section %q", s)
	}
	e := newItemEditor(s)
	l.lists[s] = append(l.lists[s], e)
	return e, nil
}

// RemoveItem deletes an editor unless it is the last one of its section.
func (l *SectionList) RemoveItem(s model.Section, id string) error {
	items := l.lists[s]
	if len(items) <= 1 {
		if l.notifier != nil {
			l.notifier.Notify(domain.LevelWarning, "Cannot remove the last item in a section.")
		}
		return &domain.ConstraintViolation{Rule: "a section keeps at least one item"}
	}
	i := indexOf(items, id)
	if i < 0 {
		return fmt.Errorf("%s/%s: %w", s, id, ErrItemNotFound)
	}
	l.lists[s] = append(items[:i:i], items[i+1:]...)
	return nil
}

// MoveItem swaps an editor with its neighbour in direction d. Moving past either
// end of the section does nothing.
func (l *SectionList) MoveItem(id string, d Direction) error {
	s, i, ok := l.find(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrItemNotFound)
	}
	items := l.lists[s]
	j := i + int(d)
	if j < 0 || j >= len(items) {
		return nil
	}
	items[i], items[j] = items[j], items[i]
	return nil
}

// SetField edits one field of an editor.
func (l *SectionList) SetField(s model.Section, id, field, value string) error {
	i := indexOf(l.lists[s], id)
	if i < 0 {
		return fmt.Errorf("%s/%s: %w", s, id, ErrItemNotFound)
	}
	if !model.Schema[s].Has(field) {
		return fmt.Errorf("section %s has no field %q", s, field)
	}
	l.lists[s][i].values[field] = value
	return nil
}

// Collect assembles the section for the canonical record, skipping empty items.
func (l *SectionList) Collect(s model.Section) []model.SectionItem {
	out := []model.SectionItem{}
	for _, e := range l.lists[s] {
		item := CollectItem(e)
		if len(item) == 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Populate rebuilds a section from items. Without items one blank editor remains.
func (l *SectionList) Populate(s model.Section, items []model.SectionItem) {
	schema := model.Schema[s]
	editors := make([]*ItemEditor, 0, len(items)+1)
	for _, it := range items {
		e := newItemEditor(s)
		for _, f := range schema.Fields {
			if v, ok := it[f.Name]; ok {
				e.values[f.Name] = v
			}
		}
		editors = append(editors, e)
	}
	if len(editors) == 0 {
		editors = append(editors, newItemEditor(s))
	}
	l.lists[s] = editors
}

func (l *SectionList) find(id string) (model.Section, int, bool) {
	for _, s := range model.Sections {
		if i := indexOf(l.lists[s], id); i >= 0 {
			return s, i, true
		}
	}
	return "", -1, false
}

func indexOf(items []*ItemEditor, id string) int {
	for i, e := range items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

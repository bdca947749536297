package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-maker/internal/domain"
	"resume-maker/internal/model"
)

func ids(items []*ItemEditor) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.ID
	}
	return out
}

func TestNewSectionListHasOneBlankItemPerSection(t *testing.T) {
	l := NewSectionList(nil)
	for _, s := range model.Sections {
		items := l.Items(s)
		require.Len(t, items, 1, s)
		assert.Empty(t, CollectItem(items[0]))
		for _, f := range model.Schema[s].Fields {
			assert.Equal(t, "", items[0].Value(f.Name))
		}
	}
}

func TestRemoveLastItemIsRefused(t *testing.T) {
	for _, s := range model.Sections {
		t.Run(string(s), func(t *testing.T) {
			n := &recordingNotifier{}
			l := NewSectionList(n)
			only := l.Items(s)[0]

			err := l.RemoveItem(s, only.ID)

			var cv *domain.ConstraintViolation
			require.True(t, errors.As(err, &cv))
			assert.ErrorIs(t, err, domain.ErrConstraint)
			assert.Equal(t, []string{only.ID}, ids(l.Items(s)))
			assert.Equal(t, []notice{{domain.LevelWarning, "Cannot remove the last item in a section."}}, n.all())
		})
	}
}

func TestRemoveItem(t *testing.T) {
	n := &recordingNotifier{}
	l := NewSectionList(n)
	first := l.Items(model.SectionSkills)[0]
	second, err := l.AddItem(model.SectionSkills)
	require.NoError(t, err)

	require.NoError(t, l.RemoveItem(model.SectionSkills, first.ID))
	assert.Equal(t, []string{second.ID}, ids(l.Items(model.SectionSkills)))
	assert.Empty(t, n.all())

	_, err = l.AddItem(model.SectionSkills)
	require.NoError(t, err)
	assert.ErrorIs(t, l.RemoveItem(model.SectionSkills, "missing"), ErrItemNotFound)
}

func TestAddItemUnknownSection(t *testing.T) {
	l := NewSectionList(nil)
	_, err := l.AddItem(model.Section("hobbies"))
	assert.Error(t, err)
}

func TestMoveItemSwapsWithinBounds(t *testing.T) {
	l := NewSectionList(nil)
	s := model.SectionProjects
	a := l.Items(s)[0]
	b, _ := l.AddItem(s)
	c, _ := l.AddItem(s)

	require.NoError(t, l.MoveItem(a.ID, Up))
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(l.Items(s)), "first item moving up")

	require.NoError(t, l.MoveItem(c.ID, Down))
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(l.Items(s)), "last item moving down")

	require.NoError(t, l.MoveItem(b.ID, Up))
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(l.Items(s)))

	require.NoError(t, l.MoveItem(a.ID, Down))
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, ids(l.Items(s)))

	assert.ErrorIs(t, l.MoveItem("missing", Down), ErrItemNotFound)
}

func TestCollectOmitsEmptyFieldsAndItems(t *testing.T) {
	l := NewSectionList(nil)
	s := model.SectionExperience
	first := l.Items(s)[0]
	require.NoError(t, l.SetField(s, first.ID, "position", "  Engineer "))
	require.NoError(t, l.SetField(s, first.ID, "company", "   "))
	_, err := l.AddItem(s)
	require.NoError(t, err)

	assert.Equal(t, model.SectionItem{"position": "Engineer"}, CollectItem(first))
	assert.Equal(t, []model.SectionItem{{"position": "Engineer"}}, l.Collect(s))

	assert.Error(t, l.SetField(s, first.ID, "nickname", "x"))
	assert.ErrorIs(t, l.SetField(s, "missing", "position", "x"), ErrItemNotFound)
}

func TestPopulate(t *testing.T) {
	l := NewSectionList(nil)
	s := model.SectionLanguages

	l.Populate(s, []model.SectionItem{
		{"name": "English", "proficiency": "Native", "extra": "ignored"},
		{"name": "French", "proficiency": ""},
	})
	items := l.Items(s)
	require.Len(t, items, 2)
	assert.Equal(t, model.SectionItem{"name": "English", "proficiency": "Native"}, items[0].Values())
	assert.Equal(t, model.SectionItem{"name": "French", "proficiency": ""}, items[1].Values())

	l.Populate(s, nil)
	items = l.Items(s)
	require.Len(t, items, 1)
	assert.Empty(t, CollectItem(items[0]))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	require.NoError(t, err)
	assert.Equal(t, Up, d)

	d, err = ParseDirection(" DOWN ")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-maker/internal/model"
)

func TestStoreStartsFromDefaults(t *testing.T) {
	s := NewRecordStore()
	if diff := cmp.Diff(model.Default(), s.Snapshot()); diff != "" {
		t.Fatalf("unexpected initial record (-want +got):\n%s", diff)
	}
}

func TestUpdateFlatAndNestedPaths(t *testing.T) {
	s := NewRecordStore()

	require.NoError(t, s.Update("fullName", "Ada Lovelace"))
	require.NoError(t, s.Update("meta.source.app", "cli"))
	require.NoError(t, s.Update("meta.version", 2.0))

	v, ok := s.Get("fullName")
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", v)

	v, ok = s.Get("meta.source.app")
	require.True(t, ok)
	assert.Equal(t, "cli", v)

	meta, ok := s.Get("meta")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"source": map[string]any{"app": "cli"}, "version": 2.0}, meta)

	_, ok = s.Get("meta.missing")
	assert.False(t, ok)
}

func TestUpdateRejectsInvalidPaths(t *testing.T) {
	s := NewRecordStore()
	require.NoError(t, s.Update("fullName", "Ada"))
	before := s.Snapshot()

	assert.Error(t, s.Update("", "x"))
	assert.Error(t, s.Update("a..b", "x"))
	assert.Error(t, s.Update(".a", "x"))

	err := s.Update("fullName.first", "x")
	assert.ErrorIs(t, err, ErrPathConflict)

	err = s.Update("newKey.child", "x")
	require.NoError(t, err)
	err = s.Update("newKey.child.leaf", "x")
	assert.ErrorIs(t, err, ErrPathConflict)

	after := s.Snapshot()
	delete(after, "newKey")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("rejected updates mutated the record (-before +after):\n%s", diff)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewRecordStore()
	require.NoError(t, s.Update("experience", []any{map[string]any{"company": "Analytical Engines"}}))

	snap := s.Snapshot()
	snap["experience"].([]any)[0].(map[string]any)["company"] = "changed"
	snap["fullName"] = "changed"

	r := s.Record()
	assert.Equal(t, "Analytical Engines", r.Experience[0]["company"])
	assert.Empty(t, r.FullName)
}

func TestReplaceCopiesDocument(t *testing.T) {
	s := NewRecordStore()
	doc := model.Default()
	doc["fullName"] = "Grace Hopper"
	s.Replace(doc)
	doc["fullName"] = "mutated"

	assert.Equal(t, "Grace Hopper", s.Record().FullName)

	s.Replace(nil)
	assert.Equal(t, model.Default(), s.Snapshot())
}

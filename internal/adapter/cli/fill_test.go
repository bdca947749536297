package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-maker/internal/model"
)

// scriptedDriver answers prompts by message. Unscripted inputs keep their
// default and unscripted confirms answer false.
type scriptedDriver struct {
	inputs   map[string][]string
	confirms map[string][]bool
	selects  map[string]int
	infos    []string
	rejected []string
}

func (d *scriptedDriver) next(msg string) (string, bool) {
	q := d.inputs[msg]
	if len(q) == 0 {
		return "", false
	}
	d.inputs[msg] = q[1:]
	return q[0], true
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	v, ok := d.next(cfg.Message)
	if !ok {
		return cfg.Default, nil
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(v); err != nil {
			d.rejected = append(d.rejected, v)
			return cfg.Default, nil
		}
	}
	return v, nil
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if v, ok := d.next(cfg.Message); ok {
		return v, nil
	}
	return cfg.Default, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	q := d.confirms[cfg.Message]
	if len(q) == 0 {
		return false, nil
	}
	d.confirms[cfg.Message] = q[1:]
	return q[0], nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if i, ok := d.selects[cfg.Message]; ok {
		return i, nil
	}
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestFillScalarsAndSections(t *testing.T) {
	d := &scriptedDriver{
		inputs: map[string][]string{
			"Full Name": {"  Ada Lovelace "},
			"Email":     {"not-an-email"},
			"Skill":     {"Go", "SQL"},
			"Language":  {"English"},
		},
		confirms: map[string][]bool{
			"Edit Skills (0 entries)?":    {true},
			"Add a Skills entry?":         {true, true, false},
			"Edit Languages (0 entries)?": {true},
			"Add a Languages entry?":      {true, false},
		},
		selects: map[string]int{"Select Proficiency": 2},
	}

	doc, err := NewFiller(d).Fill(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", doc[model.FieldFullName])
	assert.Equal(t, "", doc[model.FieldEmail])
	assert.Equal(t, []string{"not-an-email"}, d.rejected)
	assert.Equal(t, []any{
		map[string]any{"name": "Go"},
		map[string]any{"name": "SQL"},
	}, doc[string(model.SectionSkills)])
	assert.Equal(t, []any{
		map[string]any{"name": "English", "proficiency": "Fluent"},
	}, doc[string(model.SectionLanguages)])
	assert.Equal(t, []any{}, doc[string(model.SectionProjects)])
}

func TestFillKeepsDefaultsAndUnknownKeys(t *testing.T) {
	doc := model.Default()
	doc[model.FieldJobTitle] = "Analyst"
	doc["custom"] = "kept"
	doc[string(model.SectionSkills)] = []any{map[string]any{"name": "Go"}, map[string]any{"name": "Perl"}}

	d := &scriptedDriver{
		inputs: map[string][]string{},
		confirms: map[string][]bool{
			"Edit Skills (2 entries)?": {true},
			"Keep this entry?":         {true, false},
		},
	}
	out, err := NewFiller(d).Fill(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "Analyst", out[model.FieldJobTitle])
	assert.Equal(t, "kept", out["custom"])
	assert.Equal(t, []any{map[string]any{"name": "Go"}}, out[string(model.SectionSkills)])
	assert.Equal(t, []string{"Skills entry 1", "Skills entry 2"}, d.infos)
	assert.Equal(t, "Analyst", doc[model.FieldJobTitle])
}

type abortingDriver struct{ scriptedDriver }

func (abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestFillAborted(t *testing.T) {
	_, err := NewFiller(&abortingDriver{}).Fill(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrAborted))
}

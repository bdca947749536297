package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"resume-maker/internal/model"
)

// Filler walks the form schema and asks for every value, offering the
// current record's values as defaults.
type Filler struct {
	driver   PromptDriver
	validate *validator.Validate
}

func NewFiller(d PromptDriver) *Filler {
	return &Filler{driver: d, validate: validator.New()}
}

// Fill returns a copy of doc with the answers applied. Unknown keys of doc
// are kept; the photo is left untouched.
func (f *Filler) Fill(ctx context.Context, doc model.Document) (model.Document, error) {
	if doc == nil {
		doc = model.Default()
	}
	out := model.CloneDocument(doc)

	for _, field := range model.ScalarFields {
		if field.Kind == model.KindFile {
			continue
		}
		v, err := f.ask(ctx, field, field.Label, model.FormatValue(doc[field.Name]))
		if err != nil {
			return nil, err
		}
		out[field.Name] = strings.TrimSpace(v)
	}

	for _, s := range model.Sections {
		items, err := f.fillSection(ctx, model.Schema[s], model.Items(doc, s))
		if err != nil {
			return nil, err
		}
		out[string(s)] = model.ItemsValue(items)
	}
	return out, nil
}

func (f *Filler) fillSection(ctx context.Context, schema model.SectionSchema, current []model.SectionItem) ([]model.SectionItem, error) {
	edit, err := f.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Edit %s (%d entries)?", schema.Title, len(current)),
	})
	if err != nil {
		return nil, err
	}
	if !edit {
		return current, nil
	}

	var items []model.SectionItem
	for i, it := range current {
		if err := f.driver.Info(ctx, fmt.Sprintf("%s entry %d", schema.Title, i+1)); err != nil {
			return nil, err
		}
		keep, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Keep this entry?", Default: true})
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		next, err := f.fillItem(ctx, schema, it)
		if err != nil {
			return nil, err
		}
		if len(next) > 0 {
			items = append(items, next)
		}
	}

	for {
		more, err := f.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Add a %s entry?", schema.Title)})
		if err != nil {
			return nil, err
		}
		if !more {
			return items, nil
		}
		next, err := f.fillItem(ctx, schema, model.SectionItem{})
		if err != nil {
			return nil, err
		}
		if len(next) > 0 {
			items = append(items, next)
		}
	}
}

// fillItem keeps only the non-empty answers.
func (f *Filler) fillItem(ctx context.Context, schema model.SectionSchema, current model.SectionItem) (model.SectionItem, error) {
	out := model.SectionItem{}
	for _, field := range schema.Fields {
		v, err := f.ask(ctx, field, field.Placeholder, current[field.Name])
		if err != nil {
			return nil, err
		}
		if v = strings.TrimSpace(v); v != "" {
			out[field.Name] = v
		}
	}
	return out, nil
}

func (f *Filler) ask(ctx context.Context, field model.Field, label, current string) (string, error) {
	switch field.Kind {
	case model.KindTextArea:
		return f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current})
	case model.KindSelect:
		options := append([]string{""}, field.Options...)
		def := indexOf(options, current)
		if def < 0 {
			def = 0
		}
		i, err := f.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: def})
		if err != nil || i < 0 {
			return "", err
		}
		return options[i], nil
	}
	cfg := InputConfig{Message: label, Default: current}
	switch field.Kind {
	case model.KindEmail:
		cfg.Validator = f.rule("omitempty,email")
	case model.KindURL:
		cfg.Validator = f.rule("omitempty,url")
	}
	return f.driver.Input(ctx, cfg)
}

func (f *Filler) rule(tag string) func(string) error {
	return func(v string) error {
		if err := f.validate.Var(strings.TrimSpace(v), tag); err != nil {
			return fmt.Errorf("invalid value %q", v)
		}
		return nil
	}
}

package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TemplateID names a visual template. Templates change appearance only.
type TemplateID string

const (
	TemplateClassic  TemplateID = "classic"
	TemplateModern   TemplateID = "modern"
	TemplateMinimal  TemplateID = "minimal"
	TemplateCreative TemplateID = "creative"
)

// Templates lists the selectable templates.
var Templates = []TemplateID{TemplateClassic, TemplateModern, TemplateMinimal, TemplateCreative}

const (
	DefaultTemplate    = TemplateClassic
	DefaultAccentColor = "#2563eb"
)

// TemplateSelection holds the presentation parameters persisted next to the record.
type TemplateSelection struct {
	Template    TemplateID `json:"template" validate:"required,oneof=classic modern minimal creative"`
	AccentColor string     `json:"accentColor" validate:"required,hexcolor"`
}

// DefaultSelection returns the selection used before anything is loaded.
func DefaultSelection() TemplateSelection {
	return TemplateSelection{Template: DefaultTemplate, AccentColor: DefaultAccentColor}
}

// Validate checks the selection against the known templates and color syntax.
func (s TemplateSelection) Validate() error {
	return formatValidationErrors("template selection", domainValidator.Struct(s))
}

// ParseTemplate validates a template identifier.
func ParseTemplate(v string) (TemplateID, error) {
	id := TemplateID(strings.TrimSpace(v))
	for _, t := range Templates {
		if t == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown template %q", v)
}

// ValidateAccentColor checks that c is a hex color.
func ValidateAccentColor(c string) error {
	if err := domainValidator.Var(c, "required,hexcolor"); err != nil {
		return formatValidationErrors("accent color", err)
	}
	return nil
}

func formatValidationErrors(prefix string, err error) error {
	if err == nil {
		return nil
	}
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		return fmt.Errorf("%s: %w", prefix, validationErrs)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}

package model

import (
	"encoding/json"
	"errors"

	"resume-maker/internal/domain"
)

var errNotObject = errors.New("exchange data must be a JSON object")

// FromExchange parses raw and merges it over Default, so every field absent in
// raw falls back to its default. Malformed input yields a *domain.ParseError.
func FromExchange(raw []byte) (Document, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &domain.ParseError{Source: "exchange", Err: err}
	}
	m, ok := parsed.(map[string]any)
	if !ok {
		return nil, &domain.ParseError{Source: "exchange", Err: errNotObject}
	}
	if err := ValidateMap(m); err != nil {
		return nil, &domain.ParseError{Source: "exchange", Err: err}
	}
	return Merge(m), nil
}

// Merge overlays m on Default at the top level. A null known field keeps its
// default.
func Merge(m map[string]any) Document {
	doc := Default()
	for k, v := range m {
		if _, known := doc[k]; known && v == nil {
			continue
		}
		doc[k] = Clone(v)
	}
	return doc
}

// ToExchange serializes doc as compact JSON.
func ToExchange(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

// ToExchangeIndent serializes doc with 2-space indentation.
func ToExchangeIndent(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

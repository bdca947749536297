package model

import (
	"fmt"
	"strings"
)

// Document is the canonical resume record as held by the record store. It keeps
// the exchange shape (JSON-native values) so that nested paths and unknown keys
// survive a load/save cycle untouched.
type Document map[string]any

// SectionItem maps a section field name to its value.
type SectionItem map[string]string

// Resume is the typed read view of a Document used for rendering.
type Resume struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	Summary  string `json:"summary"`
	Photo    string `json:"photo"`

	Experience     []SectionItem `json:"experience"`
	Education      []SectionItem `json:"education"`
	Skills         []SectionItem `json:"skills"`
	Projects       []SectionItem `json:"projects"`
	Certifications []SectionItem `json:"certifications"`
	Languages      []SectionItem `json:"languages"`
}

// Section returns the items of the named section.
func (r Resume) Section(s Section) []SectionItem {
	switch s {
	case SectionExperience:
		return r.Experience
	case SectionEducation:
		return r.Education
	case SectionSkills:
		return r.Skills
	case SectionProjects:
		return r.Projects
	case SectionCertifications:
		return r.Certifications
	case SectionLanguages:
		return r.Languages
	}
	return nil
}

// Scalar returns the value of a scalar field by its exchange name.
func (r Resume) Scalar(name string) string {
	switch name {
	case FieldFullName:
		return r.FullName
	case FieldJobTitle:
		return r.JobTitle
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldLocation:
		return r.Location
	case FieldWebsite:
		return r.Website
	case FieldLinkedIn:
		return r.LinkedIn
	case FieldSummary:
		return r.Summary
	case FieldPhoto:
		return r.Photo
	}
	return ""
}

// Default returns a document with every scalar set to "" and every section empty.
func Default() Document {
	doc := Document{}
	for _, f := range ScalarFields {
		doc[f.Name] = ""
	}
	for _, s := range Sections {
		doc[string(s)] = []any{}
	}
	return doc
}

// Decode builds the typed view of doc. It is lenient about shapes: a bare string
// inside a section becomes {"name": s} and non-string values are formatted.
func Decode(doc Document) Resume {
	str := func(key string) string {
		return FormatValue(doc[key])
	}
	r := Resume{
		FullName: str(FieldFullName),
		JobTitle: str(FieldJobTitle),
		Email:    str(FieldEmail),
		Phone:    str(FieldPhone),
		Location: str(FieldLocation),
		Website:  str(FieldWebsite),
		LinkedIn: str(FieldLinkedIn),
		Summary:  str(FieldSummary),
		Photo:    str(FieldPhoto),
	}
	r.Experience = decodeItems(doc[string(SectionExperience)])
	r.Education = decodeItems(doc[string(SectionEducation)])
	r.Skills = decodeItems(doc[string(SectionSkills)])
	r.Projects = decodeItems(doc[string(SectionProjects)])
	r.Certifications = decodeItems(doc[string(SectionCertifications)])
	r.Languages = decodeItems(doc[string(SectionLanguages)])
	return r
}

// Items returns the section of doc as section items.
func Items(doc Document, s Section) []SectionItem {
	return decodeItems(doc[string(s)])
}

// ItemsValue converts items into the JSON-native form stored in a Document.
func ItemsValue(items []SectionItem) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		m := make(map[string]any, len(it))
		for k, v := range it {
			m[k] = v
		}
		out = append(out, m)
	}
	return out
}

func decodeItems(v any) []SectionItem {
	switch t := v.(type) {
	case []any:
		out := make([]SectionItem, 0, len(t))
		for _, it := range t {
			switch iv := it.(type) {
			case map[string]any:
				item := make(SectionItem, len(iv))
				for k, fv := range iv {
					item[k] = FormatValue(fv)
				}
				out = append(out, item)
			case string:
				out = append(out, SectionItem{"name": iv})
			}
		}
		return out
	case []SectionItem:
		return t
	case []map[string]string:
		out := make([]SectionItem, 0, len(t))
		for _, it := range t {
			out = append(out, SectionItem(it))
		}
		return out
	}
	return []SectionItem{}
}

// FormatValue renders a JSON-native value as field text. false and null are empty.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// Clone deep-copies a JSON-native value.
func Clone(v any) any {
	switch t := v.(type) {
	case Document:
		return Document(cloneMap(t))
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = Clone(it)
		}
		return out
	case SectionItem:
		out := make(SectionItem, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case []SectionItem:
		return ItemsValue(t)
	}
	return v
}

// CloneDocument deep-copies doc.
func CloneDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	return Document(cloneMap(doc))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

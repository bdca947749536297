package model

import "fmt"

// Section names one of the repeated-item groups of a resume.
type Section string

const (
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionLanguages      Section = "languages"
)

// Sections lists every section in render order.
var Sections = []Section{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionLanguages,
}

// ParseSection validates a section name.
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if _, ok := Schema[s]; !ok {
		return "", fmt.Errorf("unknown section %q", name)
	}
	return s, nil
}

// Scalar field names.
const (
	FieldFullName = "fullName"
	FieldJobTitle = "jobTitle"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldWebsite  = "website"
	FieldLinkedIn = "linkedin"
	FieldSummary  = "summary"
	FieldPhoto    = "photo"
)

// FieldKind is the input control used to edit a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindURL      FieldKind = "url"
	KindEmail    FieldKind = "email"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
	KindFile     FieldKind = "file"
)

// Field describes one editable field.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        FieldKind
	Options     []string
}

// ScalarFields lists the top-level fields in form order.
var ScalarFields = []Field{
	{Name: FieldFullName, Label: "Full Name", Placeholder: "John Doe", Kind: KindText},
	{Name: FieldJobTitle, Label: "Job Title", Placeholder: "Software Engineer", Kind: KindText},
	{Name: FieldEmail, Label: "Email", Placeholder: "john@example.com", Kind: KindEmail},
	{Name: FieldPhone, Label: "Phone", Placeholder: "+1 (555) 123-4567", Kind: KindText},
	{Name: FieldLocation, Label: "Location", Placeholder: "City, Country", Kind: KindText},
	{Name: FieldWebsite, Label: "Website", Placeholder: "https://example.com", Kind: KindURL},
	{Name: FieldLinkedIn, Label: "LinkedIn", Placeholder: "linkedin.com/in/johndoe", Kind: KindText},
	{Name: FieldSummary, Label: "Professional Summary", Placeholder: "A brief summary of your experience...", Kind: KindTextArea},
	{Name: FieldPhoto, Label: "Photo", Kind: KindFile},
}

// SectionSchema is the field layout of one section's items.
type SectionSchema struct {
	Section Section
	Title   string
	Fields  []Field
}

// Has reports whether name is one of the schema's fields.
func (s SectionSchema) Has(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ProficiencyLevels are the selectable language proficiencies.
var ProficiencyLevels = []string{"Native", "Fluent", "Advanced", "Intermediate", "Basic"}

// Schema holds the item layout of every section.
var Schema = map[Section]SectionSchema{
	SectionExperience: {
		Section: SectionExperience,
		Title:   "Experience",
		Fields: []Field{
			{Name: "position", Placeholder: "Position/Job Title", Kind: KindText},
			{Name: "company", Placeholder: "Company/Organization", Kind: KindText},
			{Name: "startDate", Placeholder: "Start Date", Kind: KindText},
			{Name: "endDate", Placeholder: "End Date", Kind: KindText},
			{Name: "location", Placeholder: "Location", Kind: KindText},
			{Name: "description", Placeholder: "Job description and achievements...", Kind: KindTextArea},
		},
	},
	SectionEducation: {
		Section: SectionEducation,
		Title:   "Education",
		Fields: []Field{
			{Name: "degree", Placeholder: "Degree/Program", Kind: KindText},
			{Name: "institution", Placeholder: "Institution/School", Kind: KindText},
			{Name: "graduationDate", Placeholder: "Graduation Date", Kind: KindText},
			{Name: "gpa", Placeholder: "GPA", Kind: KindText},
			{Name: "description", Placeholder: "Relevant coursework, honors, activities...", Kind: KindTextArea},
		},
	},
	SectionSkills: {
		Section: SectionSkills,
		Title:   "Skills",
		Fields: []Field{
			{Name: "name", Placeholder: "Skill", Kind: KindText},
		},
	},
	SectionProjects: {
		Section: SectionProjects,
		Title:   "Projects",
		Fields: []Field{
			{Name: "name", Placeholder: "Project Name", Kind: KindText},
			{Name: "technologies", Placeholder: "Technologies Used", Kind: KindText},
			{Name: "startDate", Placeholder: "Start Date", Kind: KindText},
			{Name: "endDate", Placeholder: "End Date", Kind: KindText},
			{Name: "url", Placeholder: "Project URL", Kind: KindURL},
			{Name: "description", Placeholder: "Project description and your contributions...", Kind: KindTextArea},
		},
	},
	SectionCertifications: {
		Section: SectionCertifications,
		Title:   "Certifications",
		Fields: []Field{
			{Name: "name", Placeholder: "Certification Name", Kind: KindText},
			{Name: "issuer", Placeholder: "Issuing Organization", Kind: KindText},
			{Name: "date", Placeholder: "Date Obtained", Kind: KindText},
			{Name: "expiry", Placeholder: "Expiry Date", Kind: KindText},
			{Name: "credentialId", Placeholder: "Credential ID", Kind: KindText},
		},
	},
	SectionLanguages: {
		Section: SectionLanguages,
		Title:   "Languages",
		Fields: []Field{
			{Name: "name", Placeholder: "Language", Kind: KindText},
			{Name: "proficiency", Placeholder: "Select Proficiency", Kind: KindSelect, Options: ProficiencyLevels},
		},
	},
}

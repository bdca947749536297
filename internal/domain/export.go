package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var domainValidator *validator.Validate

func init() {
	domainValidator = validator.New()
}

// OutputFormat is the kind of file produced by the document renderer.
type OutputFormat string

const (
	OutputPDF  OutputFormat = "pdf"
	OutputPNG  OutputFormat = "png"
	OutputJPEG OutputFormat = "jpeg"
)

// Extension returns the file extension for the format.
func (f OutputFormat) Extension() string {
	if f == OutputJPEG {
		return "jpg"
	}
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f OutputFormat) ContentType() string {
	switch f {
	case OutputPNG:
		return "image/png"
	case OutputJPEG:
		return "image/jpeg"
	}
	return "application/pdf"
}

// ExportConfig is handed to the document renderer together with the markup.
type ExportConfig struct {
	Output       OutputFormat `json:"output" validate:"oneof=pdf png jpeg"`
	MarginInches float64      `json:"margin" validate:"gte=0,lte=3"`
	ImageQuality float64      `json:"imageQuality" validate:"gt=0,lte=1"`
	Scale        float64      `json:"scale" validate:"gt=0,lte=4"`
	PageFormat   string       `json:"format" validate:"oneof=letter a4 legal"`
	Orientation  string       `json:"orientation" validate:"oneof=portrait landscape"`
}

// DefaultExportConfig mirrors the options the preview was designed for.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Output:       OutputPDF,
		MarginInches: 0.5,
		ImageQuality: 0.98,
		Scale:        2,
		PageFormat:   "letter",
		Orientation:  "portrait",
	}
}

// Validate checks the export options.
func (c ExportConfig) Validate() error {
	return formatValidationErrors("export config", domainValidator.Struct(c))
}

// PaperSize returns width and height in inches, swapped for landscape.
func (c ExportConfig) PaperSize() (float64, float64) {
	w, h := 8.5, 11.0
	switch c.PageFormat {
	case "a4":
		// A4: 210mm x 297mm
		w, h = 8.27, 11.69
	case "legal":
		w, h = 8.5, 14
	}
	if c.Orientation == "landscape" {
		return h, w
	}
	return w, h
}

// ExportArtifact records a file produced by an export.
type ExportArtifact struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	FileName  string     `json:"file_name"`
	FilePath  string     `json:"file_path"`
	FileSize  int        `json:"file_size"`
	Template  TemplateID `json:"template"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
}

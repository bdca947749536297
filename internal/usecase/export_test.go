package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-maker/internal/domain"
	"resume-maker/internal/theme"
)

func newTestExporter(t *testing.T, r DocumentRenderer, repo ExportsRepo, dir string) (*Exporter, *recordingNotifier) {
	t.Helper()
	themes, err := theme.NewRegistry("", nil)
	require.NoError(t, err)
	n := &recordingNotifier{}
	cfg := ExporterConfig{Renderer: r, Themes: themes, Dir: dir, Notifier: n}
	if repo != nil {
		cfg.Repo = repo
	}
	return NewExporter(cfg), n
}

func pdfConfig() domain.ExportConfig {
	return domain.DefaultExportConfig()
}

func TestExportDocumentPDF(t *testing.T) {
	r := &fakeRenderer{out: []byte("%PDF-1.7 fake")}
	e, n := newTestExporter(t, r, nil, "")
	sel := domain.TemplateSelection{Template: domain.TemplateModern, AccentColor: "#112233"}

	dl, err := e.ExportDocument(context.Background(), sampleDoc(), sel, pdfConfig())
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace.pdf", dl.FileName)
	assert.Equal(t, "application/pdf", dl.ContentType)
	assert.Equal(t, []byte("%PDF-1.7 fake"), dl.Body)
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, domain.DefaultExportConfig(), r.cfg)
	assert.Contains(t, r.html, `class="resume modern"`)
	assert.Contains(t, r.html, "--primary-color: #112233")
	assert.Equal(t, []notice{
		{domain.LevelInfo, "Generating PDF..."},
		{domain.LevelSuccess, "PDF downloaded successfully!"},
	}, n.all())
}

func TestExportDocumentFailureIsNotRetried(t *testing.T) {
	r := &fakeRenderer{err: errors.New("chrome crashed")}
	e, n := newTestExporter(t, r, nil, "")

	_, err := e.ExportDocument(context.Background(), sampleDoc(), domain.DefaultSelection(), pdfConfig())

	var ee *domain.ExportError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "pdf", ee.Format)
	assert.ErrorIs(t, err, domain.ErrExport)
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, []notice{
		{domain.LevelInfo, "Generating PDF..."},
		{domain.LevelError, "Error generating PDF. Please try again."},
	}, n.all())
}

func TestExportDocumentRejectsBadOutput(t *testing.T) {
	r := &fakeRenderer{out: []byte("<html>not a pdf</html>")}
	e, _ := newTestExporter(t, r, nil, "")
	_, err := e.ExportDocument(context.Background(), sampleDoc(), domain.DefaultSelection(), pdfConfig())
	assert.ErrorIs(t, err, domain.ErrExport)

	cfg := pdfConfig()
	cfg.Scale = 0
	_, err = e.ExportDocument(context.Background(), sampleDoc(), domain.DefaultSelection(), cfg)
	assert.ErrorIs(t, err, domain.ErrExport)

	noRenderer, _ := newTestExporter(t, nil, nil, "")
	_, err = noRenderer.ExportDocument(context.Background(), sampleDoc(), domain.DefaultSelection(), pdfConfig())
	assert.ErrorIs(t, err, ErrNoRenderer)
}

func TestExportDocumentImage(t *testing.T) {
	r := &fakeRenderer{out: []byte("\x89PNG")}
	e, n := newTestExporter(t, r, nil, "")
	cfg := pdfConfig()
	cfg.Output = domain.OutputJPEG

	dl, err := e.ExportDocument(context.Background(), sampleDoc(), domain.DefaultSelection(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace.jpg", dl.FileName)
	assert.Equal(t, "image/jpeg", dl.ContentType)
	assert.Equal(t, notice{domain.LevelInfo, "Generating JPEG..."}, n.all()[0])
}

func TestExportHTMLIsStandalone(t *testing.T) {
	e, n := newTestExporter(t, nil, nil, "")
	sel := domain.TemplateSelection{Template: domain.TemplateClassic, AccentColor: "#2563eb"}

	dl, err := e.ExportHTML(context.Background(), sampleDoc(), sel)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace.html", dl.FileName)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(dl.Body)))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", doc.Find("head title").Text())
	style := doc.Find("head style").Text()
	assert.Contains(t, style, "--primary-color: #2563eb")
	assert.Contains(t, style, ".resume.classic")
	assert.Equal(t, 1, doc.Find("body #resumeContent.resume.classic").Length())
	assert.Equal(t, "Go", doc.Find("body .skill-tag").Text())
	assert.Equal(t, []notice{{domain.LevelSuccess, "HTML file downloaded successfully!"}}, n.all())
}

func TestStandaloneHTMLDropsScriptLinks(t *testing.T) {
	e, _ := newTestExporter(t, nil, nil, "")
	doc := sampleDoc()
	doc["projects"] = []any{map[string]any{"name": "Notes", "url": "javascript:fetch('/api/import')"}}

	page, err := e.StandaloneHTML(doc, domain.DefaultSelection())
	require.NoError(t, err)
	assert.NotContains(t, page, "javascript:")
	assert.Contains(t, page, "View Project")
}

func TestExportMarkdown(t *testing.T) {
	e, _ := newTestExporter(t, nil, nil, "")

	dl, err := e.ExportMarkdown(context.Background(), sampleDoc(), domain.DefaultSelection())
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace.md", dl.FileName)
	body := string(dl.Body)
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "Skills")
	assert.NotContains(t, body, "<div")
}

func TestExportRecordsArtifacts(t *testing.T) {
	dir := t.TempDir()
	repo := &fakeExportsRepo{}
	e, _ := newTestExporter(t, &fakeRenderer{out: []byte("%PDF-1.4")}, repo, dir)

	_, err := e.ExportDocument(context.Background(), sampleDoc(), domain.DefaultSelection(), pdfConfig())
	require.NoError(t, err)
	_, err = e.ExportHTML(context.Background(), sampleDoc(), domain.DefaultSelection())
	require.NoError(t, err)

	require.Len(t, repo.saved, 2)
	a := repo.saved[0]
	assert.Equal(t, "pdf", a.Kind)
	assert.Equal(t, "Ada Lovelace.pdf", a.FileName)
	assert.Equal(t, "Ada Lovelace", a.Title)
	assert.Equal(t, domain.TemplateClassic, a.Template)
	assert.Equal(t, len("%PDF-1.4"), a.FileSize)
	require.NotEmpty(t, a.FilePath)
	assert.Equal(t, dir, filepath.Dir(a.FilePath))

	b, err := os.ReadFile(a.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
	assert.Equal(t, "html", repo.saved[1].Kind)
}

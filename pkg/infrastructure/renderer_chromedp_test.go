package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-maker/internal/domain"
)

func TestJPEGQuality(t *testing.T) {
	assert.Equal(t, 98, jpegQuality(0.98))
	assert.Equal(t, 99, jpegQuality(1))
	assert.Equal(t, 1, jpegQuality(0))
}

func TestNewChromedpRendererUsesEnv(t *testing.T) {
	t.Setenv("CHROME_PATH", "/opt/chrome/chrome")
	assert.Equal(t, "/opt/chrome/chrome", NewChromedpRenderer("").execPath)
	assert.Equal(t, "/usr/bin/chromium", NewChromedpRenderer("/usr/bin/chromium").execPath)
}

func TestRenderDocumentRejectsUnknownOutput(t *testing.T) {
	r := NewChromedpRenderer("/nonexistent/chrome")
	cfg := domain.DefaultExportConfig()
	cfg.Output = "gif"
	_, err := r.RenderDocument(context.Background(), "<html></html>", cfg)
	require.Error(t, err)
}

func TestNewPoolRequiresURL(t *testing.T) {
	_, err := NewPool(context.Background(), "")
	assert.Error(t, err)
}

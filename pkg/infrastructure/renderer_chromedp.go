package infrastructure

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"resume-maker/internal/domain"
)

// RenderTimeout bounds a single export.
const RenderTimeout = 60 * time.Second

// Viewport width in CSS pixels for image exports, matching the preview page.
const viewportWidth = 816

type ChromedpRenderer struct {
	execPath string
}

// NewChromedpRenderer creates a renderer. An empty execPath falls back to
// CHROME_PATH and then to chromedp's lookup.
func NewChromedpRenderer(execPath string) *ChromedpRenderer {
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	return &ChromedpRenderer{execPath: execPath}
}

// RenderDocument loads html in a headless browser and prints it as a PDF or
// captures it as a PNG or JPEG image.
func (r *ChromedpRenderer) RenderDocument(ctx context.Context, html string, cfg domain.ExportConfig) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, RenderTimeout)
	defer cancel2()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var out []byte
	actions := []chromedp.Action{}
	if cfg.Output != domain.OutputPDF {
		actions = append(actions, chromedp.EmulateViewport(viewportWidth, 1056, chromedp.EmulateScale(cfg.Scale)))
	}
	actions = append(actions,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)

	switch cfg.Output {
	case domain.OutputPDF:
		w, h := cfg.PaperSize()
		m := cfg.MarginInches
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(w).
				WithPaperHeight(h).
				WithMarginTop(m).
				WithMarginBottom(m).
				WithMarginLeft(m).
				WithMarginRight(m).
				Do(ctx)
			return err
		}))
	case domain.OutputPNG:
		actions = append(actions, chromedp.FullScreenshot(&out, 100))
	case domain.OutputJPEG:
		actions = append(actions, chromedp.FullScreenshot(&out, jpegQuality(cfg.ImageQuality)))
	default:
		return nil, fmt.Errorf("unsupported output %q", cfg.Output)
	}

	if err := chromedp.Run(ctx2, actions...); err != nil {
		return nil, err
	}
	return out, nil
}

// jpegQuality maps a 0..1 quality to chromedp's 1..99 JPEG range; 100 would
// switch the capture to PNG.
func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	if v >= 100 {
		v = 99
	}
	if v < 1 {
		v = 1
	}
	return v
}

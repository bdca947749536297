package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// ErrNotImage is returned for uploads whose content type is not an image.
var ErrNotImage = errors.New("uploaded file is not an image")

// PhotoLoader encodes uploaded photos into data URIs off the event loop. Only
// one encode is live at a time: starting a new one invalidates the previous,
// whose completion is then dropped.
type PhotoLoader struct {
	post   func(func())
	logger *slog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewPhotoLoader creates a loader whose completions are scheduled with post.
func NewPhotoLoader(post func(func()), logger *slog.Logger) *PhotoLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PhotoLoader{post: post, logger: logger}
}

// Load starts encoding data. done runs through post once the data URI is
// ready, unless another Load or Cancel happened in the meantime.
func (p *PhotoLoader) Load(data []byte, contentType string, done func(uri string)) error {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !strings.HasPrefix(mediaType, "image/") {
		return ErrNotImage
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.gen++
	gen := p.gen
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		uri := "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
		if ctx.Err() != nil {
			p.logger.Debug("photo encode superseded", "generation", gen)
			return
		}
		p.post(func() {
			if !p.current(gen) {
				p.logger.Debug("dropping stale photo", "generation", gen)
				return
			}
			p.finish(gen)
			done(uri)
		})
	}()
	return nil
}

// Cancel invalidates the pending encode, if any.
func (p *PhotoLoader) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
}

// Pending reports whether an encode has started and not completed yet.
func (p *PhotoLoader) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *PhotoLoader) current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen == gen
}

func (p *PhotoLoader) finish(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen == gen && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

package usecase

import (
	"context"
	"errors"
	"sync"

	"resume-maker/internal/domain"
)

type notice struct {
	Level   domain.Level
	Message string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recordingNotifier) Notify(level domain.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{level, message})
}

func (r *recordingNotifier) all() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.notices...)
}

func (r *recordingNotifier) count(level domain.Level) int {
	n := 0
	for _, x := range r.all() {
		if x.Level == level {
			n++
		}
	}
	return n
}

var errStorageFull = errors.New("storage full")

// mapStorage is an in-memory Storage whose writes to failKey fail.
type mapStorage struct {
	mu      sync.Mutex
	data    map[string]string
	failKey string
	readErr error
}

func newMapStorage() *mapStorage {
	return &mapStorage{data: map[string]string{}}
}

func (m *mapStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", false, m.readErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failKey != "" && (m.failKey == "*" || m.failKey == key) {
		return errStorageFull
	}
	m.data[key] = value
	return nil
}

func (m *mapStorage) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

type fakeRenderer struct {
	mu    sync.Mutex
	calls int
	html  string
	cfg   domain.ExportConfig
	out   []byte
	err   error
}

func (f *fakeRenderer) RenderDocument(_ context.Context, html string, cfg domain.ExportConfig) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.html = html
	f.cfg = cfg
	return f.out, f.err
}

type fakeExportsRepo struct {
	mu    sync.Mutex
	saved []*domain.ExportArtifact
}

func (f *fakeExportsRepo) Save(_ context.Context, a *domain.ExportArtifact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeExportsRepo) Recent(_ context.Context, limit int) ([]domain.ExportArtifact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ExportArtifact
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.saved[i])
	}
	return out, nil
}
